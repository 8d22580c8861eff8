package testutil

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/codr1/streetball/internal/db"
	dbgen "github.com/codr1/streetball/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// InsertTeam stores a team row with a three player roster.
func InsertTeam(t *testing.T, database *db.DB, id, name string) {
	t.Helper()

	players, err := json.Marshal([]map[string]string{
		{"name": name + " One"},
		{"name": name + " Two"},
		{"name": name + " Three"},
	})
	if err != nil {
		t.Fatalf("encode players: %v", err)
	}
	err = database.Queries.CreateTeam(context.Background(), dbgen.CreateTeamParams{
		ID:      id,
		Name:    name,
		Players: string(players),
	})
	if err != nil {
		t.Fatalf("insert team %s: %v", id, err)
	}
}
