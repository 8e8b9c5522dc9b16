package db

import (
	"os"
	"testing"
)

// TestConnectPostgres exercises the connect + schema init path against a
// real database when one is available.
func TestConnectPostgres(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}

	pool := ConnectPostgres()
	defer pool.Close()

	// schema init is idempotent, a second run must not fail
	if err := initSchema(pool); err != nil {
		t.Fatalf("schema re-init failed: %v", err)
	}
}
