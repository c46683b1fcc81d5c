package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type LegacyRowRepository struct {
	pool *pgxpool.Pool
}

func NewLegacyRowRepository(pool *pgxpool.Pool) *LegacyRowRepository {
	return &LegacyRowRepository{pool: pool}
}

// ReplaceAll swaps the full contents of the legacy blob table for the
// given rows in one transaction: delete everything, then bulk-insert.
func (r *LegacyRowRepository) ReplaceAll(ctx context.Context, rows []json.RawMessage) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM excel_data_universal"); err != nil {
		return 0, fmt.Errorf("clear legacy rows: %w", err)
	}

	copyRows := make([][]any, 0, len(rows))
	for _, row := range rows {
		copyRows = append(copyRows, []any{string(row)})
	}

	inserted, err := tx.CopyFrom(
		ctx,
		pgx.Identifier{"excel_data_universal"},
		[]string{"row_content_json"},
		pgx.CopyFromRows(copyRows),
	)
	if err != nil {
		return 0, fmt.Errorf("copy legacy rows: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit legacy replace: %w", err)
	}
	return inserted, nil
}
