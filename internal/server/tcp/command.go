package tcp

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// errInvalidCommand covers every malformed request line: unknown verbs,
// wrong argument counts, and unparseable amounts. The session reports it to
// the client and keeps running.
var errInvalidCommand = errors.New("invalid command")

type commandKind int

const (
	cmdSignup commandKind = iota
	cmdLogin
	cmdBalance
	cmdTransfer
	cmdHistory
	cmdShowAllUsers
	cmdAdminStats
)

// command is one parsed request line.
type command struct {
	kind      commandKind
	username  string
	password  string
	recipient string
	amount    decimal.Decimal
}

// parseCommand tokenizes a request line on whitespace and validates the
// argument list for the verb. Amounts are parsed as decimals; anything
// malformed degrades to errInvalidCommand rather than undefined scanning
// behavior.
func parseCommand(line string) (*command, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, errInvalidCommand
	}

	switch fields[0] {
	case "SIGNUP":
		if len(fields) != 3 {
			return nil, errInvalidCommand
		}
		return &command{kind: cmdSignup, username: fields[1], password: fields[2]}, nil

	case "LOGIN":
		if len(fields) != 3 {
			return nil, errInvalidCommand
		}
		return &command{kind: cmdLogin, username: fields[1], password: fields[2]}, nil

	case "BALANCE":
		if len(fields) != 1 {
			return nil, errInvalidCommand
		}
		return &command{kind: cmdBalance}, nil

	case "TRANSFER":
		if len(fields) != 3 {
			return nil, errInvalidCommand
		}
		amount, err := decimal.NewFromString(fields[2])
		if err != nil {
			return nil, errInvalidCommand
		}
		return &command{kind: cmdTransfer, recipient: fields[1], amount: amount}, nil

	case "HISTORY":
		if len(fields) != 1 {
			return nil, errInvalidCommand
		}
		return &command{kind: cmdHistory}, nil

	case "SHOW_ALL_USERS":
		if len(fields) != 1 {
			return nil, errInvalidCommand
		}
		return &command{kind: cmdShowAllUsers}, nil

	case "ADMIN_STATS":
		if len(fields) != 1 {
			return nil, errInvalidCommand
		}
		return &command{kind: cmdAdminStats}, nil
	}

	return nil, errInvalidCommand
}
