package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"canvas/internal/database"
)

// DBProvider hands out the shared database handle. Repositories ask for it on
// every call and never keep a handle of their own.
type DBProvider interface {
	Acquire(ctx context.Context) (*gorm.DB, error)
}

// session returns a context-bound handle. A missing connection target is
// passed through untouched, anything else becomes a StorageError.
func session(ctx context.Context, p DBProvider, op string) (*gorm.DB, error) {
	db, err := p.Acquire(ctx)
	if err != nil {
		var cfgErr *database.ConfigurationError
		if errors.As(err, &cfgErr) {
			return nil, err
		}
		return nil, storageErr(op, err)
	}
	return db.WithContext(ctx), nil
}
