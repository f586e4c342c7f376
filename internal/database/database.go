package database

import (
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"canvas/internal/domain"
)

// Options tune the pool behind a single handle. Zero values keep the
// database/sql defaults.
type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	// Silent disables gorm's SQL logger (tests, seed).
	Silent bool
}

func ConnectWithOptions(dsn string, opts Options) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	if opts.Silent {
		gormCfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	if IsPostgres(dsn) {
		logrus.Info("Connecting to PostgreSQL...")
		db, err := gorm.Open(postgres.Open(dsn), gormCfg)
		if err != nil {
			return nil, err
		}
		if err := tunePool(db, opts); err != nil {
			return nil, err
		}
		return db, nil
	}

	logrus.WithField("dsn", dsn).Info("Using SQLite for local development")

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        sqliteDSN(dsn),
		}),
		gormCfg,
	)
	if err != nil {
		return nil, err
	}

	// sqlite допускает одного писателя
	opts.MaxOpenConns = 1
	if err := tunePool(db, opts); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates tables and the unique indexes the stores rely on.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.Artwork{},
		&domain.Favorite{},
	)
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func tunePool(db *gorm.DB, opts Options) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	if opts.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(opts.MaxOpenConns)
	}
	if opts.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(opts.MaxIdleConns)
	}
	if opts.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(opts.ConnMaxLifetime)
	}
	return nil
}

// sqliteDSN pins the time format so created_at sorts lexically and adds a
// busy timeout for concurrent writers.
func sqliteDSN(dsn string) string {
	var params []string
	if !strings.Contains(dsn, "_time_format=") {
		params = append(params, "_time_format=sqlite")
	}
	if !strings.Contains(dsn, "busy_timeout") {
		params = append(params, "_pragma=busy_timeout(5000)")
	}
	if len(params) == 0 {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(params, "&")
}
