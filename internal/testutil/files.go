package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
)

// WritePlayersFile writes items as a players JSON file under dir and returns its path.
func WritePlayersFile(t *testing.T, dir string, items []players.Player) string {
	t.Helper()
	if items == nil {
		items = []players.Player{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		t.Fatalf("marshal players: %v", err)
	}
	path := filepath.Join(dir, "players.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write players file: %v", err)
	}
	return path
}

// ReadPlayersFile decodes a players JSON file, failing the test on error.
func ReadPlayersFile(t *testing.T, path string) []players.Player {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read players file: %v", err)
	}
	var items []players.Player
	if err := json.Unmarshal(data, &items); err != nil {
		t.Fatalf("decode players file: %v", err)
	}
	return items
}
