// Package wire implements the client side of the line-oriented wallet
// protocol: one request line out, one response payload back.
package wire

import (
	"context"
	"fmt"
	"net"
	"time"
)

// responseBufferSize bounds a single response payload. The server writes
// every response in one piece, so one read is enough.
const responseBufferSize = 64 * 1024

// Client is a connected wallet protocol client. It is not safe for
// concurrent use; the protocol is strictly request/response.
type Client struct {
	conn net.Conn
}

// Dial connects to the wallet server at address.
func Dial(address string) (*Client, error) {
	conn, err := net.DialTimeout("tcp", address, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}
	return &Client{conn: conn}, nil
}

// Send writes one command line and returns the server's response payload.
// A deadline on ctx bounds both the write and the read.
func (c *Client) Send(ctx context.Context, line string) (string, error) {
	if deadline, ok := ctx.Deadline(); ok {
		if err := c.conn.SetDeadline(deadline); err != nil {
			return "", err
		}
		defer c.conn.SetDeadline(time.Time{})
	}

	if _, err := fmt.Fprintf(c.conn, "%s\n", line); err != nil {
		return "", fmt.Errorf("send failed: %w", err)
	}

	buf := make([]byte, responseBufferSize)
	n, err := c.conn.Read(buf)
	if err != nil {
		return "", fmt.Errorf("read failed: %w", err)
	}
	return string(buf[:n]), nil
}

// Close closes the underlying connection.
func (c *Client) Close() error {
	return c.conn.Close()
}
