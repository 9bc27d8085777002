// Package cli implements the interactive wallet client: a REPL that turns
// user commands into protocol lines and prints the server's replies.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/walletd/internal/client/config"
	"github.com/dmitrijs2005/walletd/internal/client/wire"
	"github.com/dmitrijs2005/walletd/internal/common"
)

// sender is the wire surface the App needs. *wire.Client satisfies it.
type sender interface {
	Send(ctx context.Context, line string) (string, error)
	Close() error
}

type App struct {
	config   *config.Config
	conn     sender
	reader   *bufio.Reader
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	conn, err := wire.Dial(c.ServerEndpointAddr)
	if err != nil {
		return nil, err
	}
	return &App{config: c, conn: conn, reader: bufio.NewReader(os.Stdin)}, nil
}

func (a *App) Run(ctx context.Context) {
	defer a.conn.Close()
	printlnFn(fmt.Sprintf("Connected to %s (type 'help' for commands)", a.config.ServerEndpointAddr))
	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) status() string {
	if a.userName == "" {
		return "not logged in"
	}
	return a.userName
}

// send ships one command line and prints the server's reply. The reply is
// returned so callers can inspect it.
func (a *App) send(ctx context.Context, line string) (string, error) {
	resp, err := a.conn.Send(ctx, line)
	if err != nil {
		printlnFn(err.Error())
		return "", err
	}
	printlnFn(strings.TrimRight(resp, "\n"))
	return resp, nil
}

func (a *App) SignUp(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	_, err = a.send(ctx, fmt.Sprintf("SIGNUP %s %s", username, password))
	return err
}

func (a *App) Login(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}
	password, err := GetPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	resp, err := a.send(ctx, fmt.Sprintf("LOGIN %s %s", username, password))
	if err != nil {
		return err
	}
	// the session identity lives on the server; this only drives the prompt
	if strings.HasPrefix(resp, "Login successful") {
		a.userName = username
	}
	return nil
}

func (a *App) Balance(ctx context.Context) error {
	_, err := a.send(ctx, "BALANCE")
	return err
}

func (a *App) Transfer(ctx context.Context) error {
	recipient, err := GetSimpleText(a.reader, "Enter recipient", os.Stdout)
	if err != nil {
		return err
	}
	amount, err := GetSimpleText(a.reader, "Enter amount", os.Stdout)
	if err != nil {
		return err
	}

	_, err = a.send(ctx, fmt.Sprintf("TRANSFER %s %s", recipient, amount))
	return err
}

func (a *App) History(ctx context.Context) error {
	_, err := a.send(ctx, "HISTORY")
	return err
}

func (a *App) Users(ctx context.Context) error {
	_, err := a.send(ctx, "SHOW_ALL_USERS")
	return err
}

func (a *App) Stats(ctx context.Context) error {
	_, err := a.send(ctx, "ADMIN_STATS")
	return err
}
