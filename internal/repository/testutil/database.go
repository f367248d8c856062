// Package testutil provides isolated Postgres schemas for integration tests.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"

	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/config"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/database"
	"github.com/mamidisrisaiteja/ECommercePortal-14Aug/internal/logging"
)

// TestDatabase represents an isolated test schema
type TestDatabase struct {
	DB         *sql.DB
	SchemaName string
	masterDB   *sql.DB
}

// SetupTestDatabase creates a fresh schema, migrates it and registers its
// teardown with t.Cleanup.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	cfg, err := config.LoadPostgresConfig(func(key string) string {
		switch key {
		case "POSTGRES_USER":
			return getEnvOrDefault(key, "postgres")
		case "POSTGRES_PASSWORD":
			return getEnvOrDefault(key, "postgres")
		case "POSTGRES_DB":
			return getEnvOrDefault(key, "postgres")
		case "POSTGRES_HOSTNAME":
			return getEnvOrDefault(key, "localhost")
		default:
			return os.Getenv(key)
		}
	})
	if err != nil {
		t.Fatalf("Failed to load postgres config: %v", err)
	}

	ctx := context.Background()
	masterDB, err := database.Open(ctx, cfg)
	if err != nil {
		t.Fatalf("Failed to connect to master database: %v", err)
	}

	schemaName := fmt.Sprintf("test_schema_%d_%d", time.Now().UnixNano(), rand.Intn(10000))
	if _, err := masterDB.ExecContext(ctx, fmt.Sprintf("CREATE SCHEMA %s", schemaName)); err != nil {
		masterDB.Close()
		t.Fatalf("Failed to create test schema: %v", err)
	}

	td := &TestDatabase{SchemaName: schemaName, masterDB: masterDB}
	t.Cleanup(func() { td.teardown(t) })

	schemaCfg := *cfg
	schemaCfg.SearchPath = schemaName
	if td.DB, err = database.Open(ctx, &schemaCfg); err != nil {
		t.Fatalf("Failed to connect to test schema: %v", err)
	}

	if err := database.RunMigrations(ctx, td.DB, logging.NewNullLogger()); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	return td
}

func (td *TestDatabase) teardown(t *testing.T) {
	t.Helper()

	if td.DB != nil {
		td.DB.Close()
	}
	if _, err := td.masterDB.Exec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", td.SchemaName)); err != nil {
		t.Logf("Warning: Failed to drop test schema %s: %v", td.SchemaName, err)
	}
	td.masterDB.Close()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
