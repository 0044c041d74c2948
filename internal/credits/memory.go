package credits

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryLedger keeps balances in process memory. It is the dev-mode fallback
// when DATABASE_URL is not set; a single instance only, state is lost on
// restart.
type MemoryLedger struct {
	mu       sync.Mutex
	balances map[uuid.UUID]int
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		balances: make(map[uuid.UUID]int),
	}
}

func (l *MemoryLedger) TryConsume(ctx context.Context, accountID uuid.UUID) (ConsumeResult, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[accountID]
	if !ok {
		return ConsumeResult{}, ErrAccountNotFound
	}
	if balance <= 0 {
		return ConsumeResult{OK: false, Remaining: balance}, nil
	}

	l.balances[accountID] = balance - 1
	return ConsumeResult{OK: true, Remaining: balance - 1}, nil
}

func (l *MemoryLedger) Balance(ctx context.Context, accountID uuid.UUID) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[accountID]
	if !ok {
		return 0, ErrAccountNotFound
	}
	return balance, nil
}

func (l *MemoryLedger) Grant(ctx context.Context, accountID uuid.UUID, amount int) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[accountID]
	if !ok {
		return 0, ErrAccountNotFound
	}

	l.balances[accountID] = balance + amount
	return balance + amount, nil
}

func (l *MemoryLedger) CreateAccount(ctx context.Context, accountID uuid.UUID, email string, initial int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.balances[accountID]; !ok {
		l.balances[accountID] = initial
	}
	return nil
}
