package ledger

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is the PostgreSQL writer for ledger entries
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a Postgres writer on pool
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// Migrate creates the ledger table if it does not exist
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS bank_ledger (
			id             BIGSERIAL PRIMARY KEY,
			account_number BIGINT           NOT NULL,
			kind           TEXT             NOT NULL,
			amount         DOUBLE PRECISION NOT NULL,
			balance        DOUBLE PRECISION NOT NULL,
			created_at     TIMESTAMPTZ      NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS bank_ledger_account_number_idx
			ON bank_ledger (account_number, id);
	`)
	return err
}

// Insert stores e and fills its ID
func (p *Postgres) Insert(ctx context.Context, e *Entry) error {
	return p.pool.QueryRow(ctx, `
		INSERT INTO bank_ledger (account_number, kind, amount, balance, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, e.AccountNumber, e.Kind, e.Amount, e.Balance, e.CreatedAt).Scan(&e.ID)
}

// ListByAccount returns the latest entries of an account, newest first
func (p *Postgres) ListByAccount(ctx context.Context, accountNumber int64, limit int) ([]*Entry, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}

	rows, err := p.pool.Query(ctx, `
		SELECT id, account_number, kind, amount, balance, created_at
		FROM bank_ledger
		WHERE account_number = $1
		ORDER BY id DESC
		LIMIT $2
	`, accountNumber, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var e Entry
		err := rows.Scan(
			&e.ID,
			&e.AccountNumber,
			&e.Kind,
			&e.Amount,
			&e.Balance,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if entries == nil {
		entries = []*Entry{}
	}
	return entries, nil
}
