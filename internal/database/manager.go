package database

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ConfigurationError means there is no connection target to open.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "database configuration: " + e.Reason
}

type ManagerConfig struct {
	DSN         string
	Options     Options
	AutoMigrate bool
}

// Manager lazily opens one database handle and hands the same handle to
// every caller for the rest of the process lifetime.
type Manager struct {
	cfg   ManagerConfig
	group singleflight.Group

	mu sync.RWMutex
	db *gorm.DB

	opens atomic.Int64
}

func NewManager(cfg ManagerConfig) *Manager {
	cfg.DSN = strings.TrimSpace(cfg.DSN)
	return &Manager{cfg: cfg}
}

// Acquire returns the shared handle, opening it on first use. Callers that
// arrive while the first attempt is still running wait for that attempt
// instead of starting their own. A failed attempt is not cached.
func (m *Manager) Acquire(ctx context.Context) (*gorm.DB, error) {
	if db := m.cached(); db != nil {
		return db, nil
	}
	if m.cfg.DSN == "" {
		return nil, &ConfigurationError{Reason: "DATABASE_URL is empty"}
	}

	ch := m.group.DoChan("connect", func() (any, error) {
		if db := m.cached(); db != nil {
			return db, nil
		}
		db, err := m.open()
		if err != nil {
			return nil, err
		}

		m.mu.Lock()
		m.db = db
		m.mu.Unlock()
		return db, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*gorm.DB), nil
	}
}

// Opens reports how many times a connection was actually established.
func (m *Manager) Opens() int64 {
	return m.opens.Load()
}

func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.db == nil {
		return nil
	}
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	m.db = nil
	return sqlDB.Close()
}

func (m *Manager) cached() *gorm.DB {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.db
}

func (m *Manager) open() (*gorm.DB, error) {
	m.opens.Add(1)

	db, err := ConnectWithOptions(m.cfg.DSN, m.cfg.Options)
	if err != nil {
		logrus.WithError(err).Error("database connect failed")
		return nil, err
	}

	if m.cfg.AutoMigrate {
		if err := Migrate(db); err != nil {
			if sqlDB, dbErr := db.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, err
		}
	}

	logrus.WithField("postgres", IsPostgres(m.cfg.DSN)).Info("database connection established")
	return db, nil
}
