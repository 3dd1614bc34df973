package store

import (
	"context"
	"database/sql"
	"fmt"
)

// nextSequence claims the next global sequence number inside tx. Numbers
// live in their own table so they keep increasing after events are
// pruned, and `llm list --after N` stays stable. A rolled back tx gives
// its number back.
func nextSequence(ctx context.Context, tx *sql.Tx) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}
