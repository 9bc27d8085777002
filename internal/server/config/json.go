package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/walletd/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. Money fields are decimal strings so amounts survive the
// round trip without float truncation.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct.
type JsonConfig struct {
	EndpointAddr    string `json:"endpoint_addr"`
	DatabaseDSN     string `json:"database_dsn"`
	StartingBalance string `json:"starting_balance"`
	TransferCap     string `json:"transfer_cap"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. If the file cannot be
// read or contains invalid JSON, the function panics. Empty fields leave
// the current value untouched so defaults survive a partial file.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != "" {
		config.EndpointAddr = c.EndpointAddr
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.StartingBalance != "" {
		config.StartingBalance = mustDecimal(c.StartingBalance)
	}
	if c.TransferCap != "" {
		config.TransferCap = mustDecimal(c.TransferCap)
	}
}
