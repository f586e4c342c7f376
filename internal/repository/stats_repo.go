package repository

import (
	"context"
	"database/sql"
)

// StatsRepository считает записи для админской сводки.
type StatsRepository struct {
	db DBProvider
}

func NewStatsRepository(db DBProvider) *StatsRepository {
	return &StatsRepository{db: db}
}

// EstimateCount returns an approximate row count for table. On PostgreSQL it
// reads the planner estimate from pg_class and falls back to COUNT(*) when the
// table has never been analysed; other dialects always count.
func (r *StatsRepository) EstimateCount(ctx context.Context, table string) (int64, error) {
	db, err := session(ctx, r.db, "stats.count")
	if err != nil {
		return 0, err
	}

	if db.Dialector.Name() == "postgres" {
		var estimate sql.NullInt64
		err := db.Raw("SELECT reltuples::bigint FROM pg_class WHERE oid = to_regclass(?)", table).
			Scan(&estimate).Error
		if err != nil {
			return 0, storageErr("stats.estimate", err)
		}
		if estimate.Valid && estimate.Int64 >= 0 {
			return estimate.Int64, nil
		}
	}

	var n int64
	if err := db.Table(table).Count(&n).Error; err != nil {
		return 0, storageErr("stats.count", err)
	}
	return n, nil
}
