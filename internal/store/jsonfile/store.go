// Package jsonfile persists players as a single JSON array on disk.
//
// Every mutation reads the whole file, applies the change in memory and rewrites the
// whole array. Mutations on one Store are serialized by a mutex and written through a
// temp file + rename, so concurrent requests in this process cannot interleave their
// read-modify-write cycles and a crash never leaves a truncated array behind. Separate
// processes sharing the file still race; the last writer wins.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
)

// Store is the flat-file player backend.
type Store struct {
	path   string
	logger *slog.Logger
	newID  func() string
	mu     sync.Mutex
}

// New returns a Store backed by the file at path. The file and its directory are created
// on first write.
func New(path string, logger *slog.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// Path exposes the backing file location.
func (s *Store) Path() string {
	return s.path
}

// ListPlayers returns every player in file order. A missing file is an empty roster.
func (s *Store) ListPlayers(ctx context.Context) ([]players.Player, error) {
	return s.read(ctx)
}

func (s *Store) GetPlayer(ctx context.Context, id string) (players.Player, bool, error) {
	items, err := s.read(ctx)
	if err != nil {
		return players.Player{}, false, err
	}
	for _, p := range items {
		if p.ID == id {
			return p, true, nil
		}
	}
	return players.Player{}, false, nil
}

// AddPlayer validates the draft, assigns a fresh id and appends it to the file.
func (s *Store) AddPlayer(ctx context.Context, draft players.Draft) (players.Player, error) {
	p, err := players.NewPlayer(s.newID(), draft)
	if err != nil {
		return players.Player{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(ctx)
	if err != nil {
		return players.Player{}, err
	}
	items = append(items, p)
	if err := s.write(items); err != nil {
		return players.Player{}, err
	}
	return p, nil
}

// UpdatePlayer merges patch onto the stored player and rewrites the file.
func (s *Store) UpdatePlayer(ctx context.Context, id string, patch players.Patch) (players.Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(ctx)
	if err != nil {
		return players.Player{}, false, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return players.Player{}, false, nil
	}
	next, err := items[idx].Apply(patch)
	if err != nil {
		return players.Player{}, true, err
	}
	items[idx] = next
	if err := s.write(items); err != nil {
		return players.Player{}, true, err
	}
	return next, true, nil
}

// DeletePlayer removes the player and reports whether it was present.
func (s *Store) DeletePlayer(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(ctx)
	if err != nil {
		return false, err
	}
	idx := indexOf(items, id)
	if idx < 0 {
		return false, nil
	}
	items = append(items[:idx], items[idx+1:]...)
	if err := s.write(items); err != nil {
		return false, err
	}
	return true, nil
}

func (s *Store) PlayersByTeam(ctx context.Context, team teams.Team) ([]players.Player, error) {
	items, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return players.FilterByTeam(items, team), nil
}

func (s *Store) PlayersByPosition(ctx context.Context, position players.Position) ([]players.Player, error) {
	items, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return players.FilterByPosition(items, position), nil
}

// RenameTeams rewrites players whose raw team name is a key of renames and returns how
// many changed. The file is left untouched when nothing matches.
func (s *Store) RenameTeams(ctx context.Context, renames map[string]teams.Team) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.read(ctx)
	if err != nil {
		return 0, err
	}
	changed := 0
	for i := range items {
		if to, ok := renames[string(items[i].Team)]; ok {
			items[i].Team = to
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	if err := s.write(items); err != nil {
		return 0, err
	}
	return changed, nil
}

// Backup copies the current file to dest. A missing source is reported as os.ErrNotExist.
func (s *Store) Backup(dest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	dst, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return err
	}
	return dst.Close()
}

func (s *Store) read(ctx context.Context) ([]players.Player, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []players.Player{}, nil
		}
		logging.Error(logging.FromContext(ctx, s.logger), "failed to read players file", err, "path", s.path)
		return nil, fmt.Errorf("read players file: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []players.Player{}, nil
	}

	var items []players.Player
	if err := json.Unmarshal(data, &items); err != nil {
		logging.Error(logging.FromContext(ctx, s.logger), "players file is not a valid JSON array", err, "path", s.path)
		return nil, fmt.Errorf("decode players file: %w", err)
	}
	if items == nil {
		items = []players.Player{}
	}
	return items, nil
}

func (s *Store) write(items []players.Player) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode players: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write players file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace players file: %w", err)
	}
	return nil
}

func indexOf(items []players.Player, id string) int {
	for i, p := range items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
