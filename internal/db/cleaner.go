package db

import (
	"context"
	"database/sql"

	"go.uber.org/zap"
)

// CleanStaleUsers deletes mirrored users left over from earlier runs and
// returns how many rows went. Ids are assigned from zero on every start,
// so any row whose id is not below keep belongs to no live user.
//
// It must run before the server accepts requests: a registration mirrored
// while the delete is in flight would lose its row.
func CleanStaleUsers(ctx context.Context, db *sql.DB, keep int, log *zap.Logger) (int64, error) {
	res, err := db.ExecContext(ctx, `DELETE FROM users WHERE id >= $1`, keep)
	if err != nil {
		log.Error("failed to clean stale users", zap.Error(err))
		return 0, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rows > 0 {
		log.Info("cleaned stale users", zap.Int64("removed", rows))
	}
	return rows, nil
}
