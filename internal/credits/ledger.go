// Package credits implements the credit ledger that meters generation
// requests. The ledger is a stateless facade over a store providing an atomic
// decrement-if-positive primitive; request handlers never read and write the
// balance in separate steps.
package credits

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrAccountNotFound is returned when the account id has no ledger row.
// Store unavailability surfaces as any other (wrapped) error, so callers can
// distinguish a 500-class infrastructure failure from a missing account.
var ErrAccountNotFound = errors.New("account not found")

// ConsumeResult reports the outcome of a consume attempt. Exhaustion is
// discriminated by OK, not by a numeric sentinel: Remaining always holds the
// actual balance observed after the attempt.
type ConsumeResult struct {
	OK        bool
	Remaining int
}

// Ledger guards per-account credit balances.
//
// TryConsume atomically decrements the balance by one if it is positive.
// Two concurrent calls against a balance of one must yield exactly one
// success and one exhausted result.
type Ledger interface {
	TryConsume(ctx context.Context, accountID uuid.UUID) (ConsumeResult, error)
	Balance(ctx context.Context, accountID uuid.UUID) (int, error)
	Grant(ctx context.Context, accountID uuid.UUID, amount int) (int, error)
	CreateAccount(ctx context.Context, accountID uuid.UUID, email string, initial int) error
}
