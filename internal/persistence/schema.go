package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Collection table names.
const (
	JobsTable = "jobs"
	BidsTable = "bids"
)

// EnsureSchema creates the document tables if they do not exist. Each
// collection is one jsonb table keyed by a uuid minted in code.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger *zap.Logger) error {
	for _, table := range []string{JobsTable, BidsTable} {
		query := fmt.Sprintf(`
            CREATE TABLE IF NOT EXISTS %s (
                id UUID PRIMARY KEY,
                doc JSONB NOT NULL,
                created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
            )`, table)
		if _, err := pool.Exec(ctx, query); err != nil {
			return fmt.Errorf("ensure table %s: %w", table, err)
		}
	}

	logger.Info("schema ready", zap.Strings("tables", []string{JobsTable, BidsTable}))
	return nil
}
