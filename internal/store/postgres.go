package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresCollection stores each document as a (id uuid, doc jsonb) row on a
// shared pool. Filters use jsonb containment; partial updates merge with the
// || operator so untouched fields survive byte for byte.
type PostgresCollection struct {
	pool  *pgxpool.Pool
	table string
}

// NewPostgresCollection binds a collection to its table.
func NewPostgresCollection(pool *pgxpool.Pool, table string) *PostgresCollection {
	return &PostgresCollection{pool: pool, table: table}
}

func (c *PostgresCollection) Find(ctx context.Context, filter Filter, sort *Sort) ([]Document, error) {
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT id::text, doc FROM %s WHERE doc @> $1`, c.table)
	args := []any{filterJSON}
	if sort != nil {
		query += sortClause(sort)
		args = append(args, sort.Field)
	} else {
		query += ` ORDER BY created_at`
	}

	rows, err := c.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]Document, 0)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		var doc Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		doc["_id"] = id
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// sortClause orders on the jsonb value with ->, which keeps the field's
// type. The text form (->>) would order numbers lexicographically, putting
// "1000" before "300".
func sortClause(sort *Sort) string {
	if sort.Descending {
		return ` ORDER BY doc->$2 DESC`
	}
	return ` ORDER BY doc->$2 ASC`
}

func (c *PostgresCollection) FindOne(ctx context.Context, id string) (Document, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, ErrInvalidID
	}

	query := fmt.Sprintf(`SELECT doc FROM %s WHERE id = $1`, c.table)
	var raw []byte
	if err := c.pool.QueryRow(ctx, query, parsed).Scan(&raw); err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc["_id"] = parsed.String()
	return doc, nil
}

func (c *PostgresCollection) InsertOne(ctx context.Context, doc Document) (string, error) {
	id := uuid.NewString()
	delete(doc, "_id")
	raw, err := json.Marshal(doc)
	if err != nil {
		return "", err
	}

	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)`, c.table)
	if _, err := c.pool.Exec(ctx, query, id, raw); err != nil {
		return "", err
	}
	return id, nil
}

func (c *PostgresCollection) UpdateOne(ctx context.Context, id string, fields Document, upsert bool) (UpdateResult, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return UpdateResult{}, ErrInvalidID
	}
	delete(fields, "_id")
	raw, err := json.Marshal(fields)
	if err != nil {
		return UpdateResult{}, err
	}

	if upsert {
		// xmax = 0 distinguishes a fresh insert from a conflicting update.
		query := fmt.Sprintf(`
            INSERT INTO %s (id, doc) VALUES ($1, $2)
            ON CONFLICT (id) DO UPDATE SET doc = %s.doc || EXCLUDED.doc
            RETURNING (xmax = 0)`, c.table, c.table)
		var inserted bool
		if err := c.pool.QueryRow(ctx, query, parsed, raw).Scan(&inserted); err != nil {
			return UpdateResult{}, err
		}
		if inserted {
			return UpdateResult{UpsertedID: parsed.String()}, nil
		}
		return UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
	}

	query := fmt.Sprintf(`UPDATE %s SET doc = doc || $2 WHERE id = $1`, c.table)
	cmd, err := c.pool.Exec(ctx, query, parsed, raw)
	if err != nil {
		return UpdateResult{}, err
	}
	return UpdateResult{MatchedCount: cmd.RowsAffected(), ModifiedCount: cmd.RowsAffected()}, nil
}

func (c *PostgresCollection) DeleteOne(ctx context.Context, id string) (DeleteResult, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return DeleteResult{}, ErrInvalidID
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, c.table)
	cmd, err := c.pool.Exec(ctx, query, parsed)
	if err != nil {
		return DeleteResult{}, err
	}
	return DeleteResult{DeletedCount: cmd.RowsAffected()}, nil
}
