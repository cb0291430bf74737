package testutil

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/yungbote/ledger-backend/internal/data/db"
	"github.com/yungbote/ledger-backend/internal/platform/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error

	sqliteSeq atomic.Int64
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a migrated database private to tb. With TEST_POSTGRES_DSN set it is a fresh
// Postgres schema, otherwise a shared-cache in-memory SQLite database on one connection.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	var (
		conn *gorm.DB
		err  error
	)
	if dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN")); dsn != "" {
		conn, err = openPostgresSchema(tb, dsn)
	} else {
		conn, err = openSQLite(tb)
	}
	if err != nil {
		tb.Fatalf("failed to init test db: %v", err)
	}
	if err := db.AutoMigrateAll(conn); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return conn
}

// IsPostgres reports whether DB(tb) hands out Postgres connections.
func IsPostgres() bool {
	return strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN")) != ""
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func gormTestConfig() *gorm.Config {
	return &gorm.Config{Logger: gormLogger.Default.LogMode(gormLogger.Silent)}
}

func openSQLite(tb testing.TB) (*gorm.DB, error) {
	name := fmt.Sprintf("ledger_test_%d_%s", sqliteSeq.Add(1), uuid.NewString()[:8])
	dsn := "file:" + name + "?mode=memory&cache=shared&_foreign_keys=on&_busy_timeout=5000"
	conn, err := gorm.Open(sqlite.Open(dsn), gormTestConfig())
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = sqlDB.Close() })
	return conn, nil
}

func openPostgresSchema(tb testing.TB, dsn string) (*gorm.DB, error) {
	admin, err := gorm.Open(postgres.Open(dsn), gormTestConfig())
	if err != nil {
		return nil, err
	}
	schema := "ledger_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	if err := admin.Exec(`CREATE SCHEMA ` + schema).Error; err != nil {
		return nil, err
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	conn, err := gorm.Open(postgres.Open(dsn+sep+"search_path="+schema), gormTestConfig())
	if err != nil {
		return nil, err
	}
	tb.Cleanup(func() {
		if sqlDB, err := conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
		_ = admin.Exec(`DROP SCHEMA IF EXISTS ` + schema + ` CASCADE`).Error
		if sqlDB, err := admin.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return conn, nil
}
