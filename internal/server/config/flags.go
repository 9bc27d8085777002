package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/walletd/internal/flagx"
	"github.com/shopspring/decimal"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   TCP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-b string   starting balance for new accounts (decimal)
//	-m string   per-transfer cap (decimal)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. Money flags
// are accepted as decimal strings; a malformed value panics, consistent
// with the rest of the config layer.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-b", "-m"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")

	startingBalance := fs.String("b", config.StartingBalance.String(), "starting balance for new accounts")
	transferCap := fs.String("m", config.TransferCap.String(), "per-transfer cap")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.StartingBalance = mustDecimal(*startingBalance)
	config.TransferCap = mustDecimal(*transferCap)
}

func mustDecimal(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}
