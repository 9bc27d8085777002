package tcp

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"

	"github.com/dmitrijs2005/walletd/internal/common"
	"github.com/dmitrijs2005/walletd/internal/logging"
	"github.com/dmitrijs2005/walletd/internal/server/models"
	"github.com/dmitrijs2005/walletd/internal/server/services"
	"github.com/shopspring/decimal"
)

const timestampLayout = "2006-01-02 15:04:05"

// accountService is the slice of AccountService the session needs.
type accountService interface {
	SignUp(ctx context.Context, username, password string) error
	Verify(ctx context.Context, username, password string) (bool, error)
	Balance(ctx context.Context, username string) (decimal.Decimal, error)
	IsAdmin(ctx context.Context, username string) (bool, error)
}

// transferService is the slice of TransferService the session needs.
type transferService interface {
	Transfer(ctx context.Context, sender, receiver string, amount decimal.Decimal) (decimal.Decimal, error)
}

// historyService is the slice of the ledger surface the session needs.
type historyService interface {
	HistoryFor(ctx context.Context, username string) ([]*models.Transaction, error)
}

// reportService is the slice of ReportService the session needs.
type reportService interface {
	Stats(ctx context.Context) (*services.Stats, error)
	AllUsers(ctx context.Context) ([]*services.UserReport, error)
}

// session is the per-connection command state machine. A session starts
// unauthenticated; a successful LOGIN records the username and every later
// command runs on behalf of that identity. The session holds only the
// username, never a cached balance. Nothing survives the connection.
type session struct {
	conn        net.Conn
	logger      logging.Logger
	accounts    accountService
	transfers   transferService
	history     historyService
	reports     reportService
	transferCap decimal.Decimal

	username string // empty until LOGIN succeeds
}

// run processes command lines until the client disconnects, a read fails,
// or the server shuts down. Each response is written as a single payload so
// clients that issue one read per command see it whole.
func (s *session) run(ctx context.Context) {
	defer s.conn.Close()

	// unblocks the read when the server is stopping
	stop := context.AfterFunc(ctx, func() { _ = s.conn.Close() })
	defer stop()

	s.logger.Info(ctx, "client connected", "remote", s.conn.RemoteAddr().String())

	scanner := bufio.NewScanner(s.conn)
	for scanner.Scan() {
		response := s.handle(ctx, scanner.Text())
		if _, err := io.WriteString(s.conn, response); err != nil {
			s.logger.Warn(ctx, "write failed", "error", err)
			return
		}
	}

	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		s.logger.Warn(ctx, "read failed", "error", err)
		return
	}
	s.logger.Info(ctx, "client disconnected")
}

// handle dispatches one request line and returns the full response text.
// Client input never terminates the session from here; malformed lines and
// failed operations all map to response strings.
func (s *session) handle(ctx context.Context, line string) string {
	cmd, err := parseCommand(line)
	if err != nil {
		return "Invalid command!\n"
	}

	switch cmd.kind {
	case cmdSignup:
		return s.handleSignup(ctx, cmd)
	case cmdLogin:
		return s.handleLogin(ctx, cmd)
	case cmdBalance:
		return s.handleBalance(ctx)
	case cmdTransfer:
		return s.handleTransfer(ctx, cmd)
	case cmdHistory:
		return s.handleHistory(ctx)
	case cmdShowAllUsers:
		return s.handleShowAllUsers(ctx)
	case cmdAdminStats:
		return s.handleAdminStats(ctx)
	}
	return "Invalid command!\n"
}

func (s *session) handleSignup(ctx context.Context, cmd *command) string {
	if err := s.accounts.SignUp(ctx, cmd.username, cmd.password); err != nil {
		if errors.Is(err, common.ErrUsernameTaken) {
			return "Signup failed! Username might be taken.\n"
		}
		s.logger.Error(ctx, "signup failed", "error", err)
		return "Signup failed! Please try again later.\n"
	}
	s.logger.Info(ctx, "user registered", "username", cmd.username)
	return "Signup successful!\n"
}

func (s *session) handleLogin(ctx context.Context, cmd *command) string {
	ok, err := s.accounts.Verify(ctx, cmd.username, cmd.password)
	if err != nil {
		s.logger.Error(ctx, "login check failed", "error", err)
		return "Login failed\n"
	}
	if !ok {
		// state unchanged on failure
		return "Login failed\n"
	}
	s.username = cmd.username
	s.logger.Info(ctx, "user logged in", "username", cmd.username)
	return "Login successful\n"
}

func (s *session) handleBalance(ctx context.Context) string {
	if s.username == "" {
		return "Please login first.\n"
	}
	balance, err := s.accounts.Balance(ctx, s.username)
	if err != nil {
		s.logger.Error(ctx, "balance lookup failed", "error", err)
		return "Server error. Please try again later.\n"
	}
	return fmt.Sprintf("Balance: %s\n", balance.StringFixed(2))
}

func (s *session) handleTransfer(ctx context.Context, cmd *command) string {
	if s.username == "" {
		return "Please login first.\n"
	}

	// policy rule, checked before the engine is ever involved
	if cmd.amount.GreaterThan(s.transferCap) {
		return fmt.Sprintf("Transaction limit exceeded! Max %s.\n", s.transferCap.StringFixed(2))
	}

	newBalance, err := s.transfers.Transfer(ctx, s.username, cmd.recipient, cmd.amount)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrNonPositiveAmount):
			return "Transfer failed! Amount must be positive.\n"
		case errors.Is(err, common.ErrInsufficientFunds):
			return "Transfer failed! Insufficient funds.\n"
		case errors.Is(err, common.ErrUnknownAccount):
			return "Transfer failed! Unknown recipient.\n"
		default:
			s.logger.Error(ctx, "transfer failed", "error", err)
			return "Transfer failed! Please try again later.\n"
		}
	}

	s.logger.Info(ctx, "transfer completed",
		"sender", s.username, "receiver", cmd.recipient, "amount", cmd.amount.StringFixed(2))
	return fmt.Sprintf("Transfer successful! New balance: %s\n", newBalance.StringFixed(2))
}

func (s *session) handleHistory(ctx context.Context) string {
	if s.username == "" {
		return "Please login first.\n"
	}

	records, err := s.history.HistoryFor(ctx, s.username)
	if err != nil {
		s.logger.Error(ctx, "history lookup failed", "error", err)
		return "Server error. Please try again later.\n"
	}

	var b strings.Builder
	b.WriteString("Transaction History:\n")
	for _, r := range records {
		fmt.Fprintf(&b, "%s | From: %s | To: %s | %s\n",
			r.Timestamp.Format(timestampLayout), r.Sender, r.Receiver, r.Amount.StringFixed(2))
	}
	return b.String()
}

func (s *session) handleShowAllUsers(ctx context.Context) string {
	if !s.isAdmin(ctx) {
		return "Unauthorized. Admin access only.\n"
	}

	reports, err := s.reports.AllUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "user dump failed", "error", err)
		return "Server error. Please try again later.\n"
	}

	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "\nUser: %s\nBalance: %s\nTransaction History:\n",
			r.Username, r.Balance.StringFixed(2))
		for _, t := range r.History {
			fmt.Fprintf(&b, "  From: %s | To: %s | %s | %s\n",
				t.Sender, t.Receiver, t.Amount.StringFixed(2), t.Timestamp.Format(timestampLayout))
		}
	}
	if b.Len() == 0 {
		return "No users found.\n"
	}
	return b.String()
}

func (s *session) handleAdminStats(ctx context.Context) string {
	if !s.isAdmin(ctx) {
		return "Unauthorized. Admin access only.\n"
	}

	stats, err := s.reports.Stats(ctx)
	if err != nil {
		s.logger.Error(ctx, "stats query failed", "error", err)
		return "Server error. Please try again later.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Total Users: %d\n", stats.TotalUsers)
	fmt.Fprintf(&b, "Total Balance in System: %s\n", stats.TotalBalance.StringFixed(2))
	fmt.Fprintf(&b, "Total Transactions: %d\n", stats.TotalTransactions)
	b.WriteString("\nTop 3 Most Active Senders:\n")
	for _, top := range stats.TopSenders {
		fmt.Fprintf(&b, "  %s - %d transactions\n", top.Sender, top.Count)
	}
	return b.String()
}

// isAdmin gates the admin commands. Unauthenticated sessions and unknown
// usernames are never admins.
func (s *session) isAdmin(ctx context.Context) bool {
	if s.username == "" {
		return false
	}
	ok, err := s.accounts.IsAdmin(ctx, s.username)
	if err != nil {
		s.logger.Error(ctx, "admin check failed", "error", err)
		return false
	}
	return ok
}
