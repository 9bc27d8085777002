package wire

import (
	"bufio"
	"context"
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// startStubServer accepts one connection and answers every received line
// with the given response payload.
func startStubServer(t *testing.T, response string) string {
	t.Helper()

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { listener.Close() })

	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			if _, err := io.WriteString(conn, response); err != nil {
				return
			}
		}
	}()

	return listener.Addr().String()
}

func TestClient_SendRoundTrip(t *testing.T) {
	addr := startStubServer(t, "Balance: 1000.00\n")

	c, err := Dial(addr)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Send(context.Background(), "BALANCE")
	require.NoError(t, err)
	assert.Equal(t, "Balance: 1000.00\n", got)
}

func TestClient_SendMultilineResponse(t *testing.T) {
	response := "Transaction History:\n2026-03-01 12:00:00 | From: alice | To: bob | 50.00\n"
	addr := startStubServer(t, response)

	c, err := Dial(addr)
	require.NoError(t, err)
	defer c.Close()

	got, err := c.Send(context.Background(), "HISTORY")
	require.NoError(t, err)
	assert.Equal(t, response, got, "the whole payload arrives in one read")
}

func TestClient_SendAfterServerClosed(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	accepted := make(chan net.Conn, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		accepted <- conn
	}()

	c, err := Dial(listener.Addr().String())
	require.NoError(t, err)
	defer c.Close()

	(<-accepted).Close()
	listener.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err = c.Send(ctx, "BALANCE")
	require.Error(t, err)
}

func TestDial_Unreachable(t *testing.T) {
	// grab a port and release it so nothing is listening there
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, err = Dial(addr)
	require.Error(t, err)
}
