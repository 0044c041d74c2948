package credits

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
)

// PostgresLedger stores balances in the Supabase profiles table. The
// read-check-decrement is a single conditional UPDATE so concurrent consumers
// of the same account serialize on the row, never on application state.
type PostgresLedger struct {
	db *sql.DB
}

func NewPostgresLedger(connectionString string) (*PostgresLedger, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresLedger{db: db}, nil
}

func (l *PostgresLedger) TryConsume(ctx context.Context, accountID uuid.UUID) (ConsumeResult, error) {
	var remaining int
	err := l.db.QueryRowContext(ctx, `
		UPDATE profiles
		SET credits = credits - 1, updated_at = NOW()
		WHERE id = $1 AND credits > 0
		RETURNING credits
	`, accountID).Scan(&remaining)

	if err == nil {
		return ConsumeResult{OK: true, Remaining: remaining}, nil
	}
	if err != sql.ErrNoRows {
		return ConsumeResult{}, fmt.Errorf("failed to consume credit: %w", err)
	}

	// No row updated: either the account is exhausted or it does not exist.
	balance, err := l.Balance(ctx, accountID)
	if err != nil {
		return ConsumeResult{}, err
	}

	return ConsumeResult{OK: false, Remaining: balance}, nil
}

func (l *PostgresLedger) Balance(ctx context.Context, accountID uuid.UUID) (int, error) {
	var credits int
	err := l.db.QueryRowContext(ctx, `
		SELECT credits FROM profiles WHERE id = $1
	`, accountID).Scan(&credits)

	if err == sql.ErrNoRows {
		return 0, ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}

	return credits, nil
}

func (l *PostgresLedger) Grant(ctx context.Context, accountID uuid.UUID, amount int) (int, error) {
	var credits int
	err := l.db.QueryRowContext(ctx, `
		UPDATE profiles
		SET credits = credits + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING credits
	`, accountID, amount).Scan(&credits)

	if err == sql.ErrNoRows {
		return 0, ErrAccountNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to grant credits: %w", err)
	}

	return credits, nil
}

func (l *PostgresLedger) CreateAccount(ctx context.Context, accountID uuid.UUID, email string, initial int) error {
	_, err := l.db.ExecContext(ctx, `
		INSERT INTO profiles (id, email, credits)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO NOTHING
	`, accountID, email, initial)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

func (l *PostgresLedger) Close() error {
	return l.db.Close()
}
