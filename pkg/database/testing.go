package database

import (
	"testing"

	"gorm.io/gorm"

	"github.com/d60-Lab/gin-blog/config"
)

// MemoryConfig returns a config pointing at a private in-memory sqlite database.
func MemoryConfig() *config.Config {
	return &config.Config{Database: config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:", LogLevel: "silent"}}
}

// OpenTest opens and migrates an in-memory database that is closed when tb ends.
func OpenTest(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := Open(MemoryConfig())
	if err != nil {
		tb.Fatalf("open test db: %v", err)
	}
	tb.Cleanup(func() { _ = Close(db) })
	return db
}
