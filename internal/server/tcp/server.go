// Package tcp implements the line-oriented text protocol endpoint: a
// listener that spawns one session per connection, and the per-session
// command state machine.
package tcp

import (
	"context"
	"net"
	"sync"

	"github.com/dmitrijs2005/walletd/internal/logging"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Server struct {
	address     string
	logger      logging.Logger
	accounts    accountService
	transfers   transferService
	history     historyService
	reports     reportService
	transferCap decimal.Decimal
}

func NewServer(address string, l logging.Logger, as accountService, ts transferService, hs historyService, rs reportService, transferCap decimal.Decimal) *Server {
	return &Server{
		address:     address,
		logger:      l.With("module", "tcp_server"),
		accounts:    as,
		transfers:   ts,
		history:     hs,
		reports:     rs,
		transferCap: transferCap,
	}
}

// Run announces the address and serves until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listener)
}

// serve accepts connections and spawns one session goroutine per
// connection. On shutdown the listener closes first, then serve waits for
// in-flight sessions to drain (cancellation also closes their connections,
// so blocked reads unwind promptly).
func (s *Server) serve(ctx context.Context, listener net.Listener) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping TCP server...")
		_ = listener.Close()
	}()

	s.logger.Info(ctx, "Starting TCP server", "address", listener.Addr().String())

	var wg sync.WaitGroup
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.logger.Warn(ctx, "accept failed", "error", err)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.newSession(conn).run(ctx)
		}()
	}

	wg.Wait()
	s.logger.Info(ctx, "All sessions finished")
	return nil
}

func (s *Server) newSession(conn net.Conn) *session {
	return &session{
		conn:        conn,
		logger:      s.logger.With("session_id", uuid.NewString()),
		accounts:    s.accounts,
		transfers:   s.transfers,
		history:     s.history,
		reports:     s.reports,
		transferCap: s.transferCap,
	}
}
