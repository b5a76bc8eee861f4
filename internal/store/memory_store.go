package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

// MemoryStore keeps players in memory in insertion order. It is safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	items []players.Player
}

// NewMemoryStore constructs a MemoryStore seeded with the given players.
func NewMemoryStore(seed ...players.Player) *MemoryStore {
	items := make([]players.Player, len(seed))
	copy(items, seed)
	return &MemoryStore{items: items}
}

// ListPlayers returns a copy of every stored player.
func (s *MemoryStore) ListPlayers(ctx context.Context) ([]players.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]players.Player, len(s.items))
	copy(result, s.items)
	return result, nil
}

// GetPlayer retrieves a player by ID.
func (s *MemoryStore) GetPlayer(ctx context.Context, id string) (players.Player, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.indexOf(id); idx >= 0 {
		return s.items[idx], true, nil
	}
	return players.Player{}, false, nil
}

// AddPlayer validates the draft and appends it under a fresh id.
func (s *MemoryStore) AddPlayer(ctx context.Context, draft players.Draft) (players.Player, error) {
	p, err := players.NewPlayer(uuid.NewString(), draft)
	if err != nil {
		return players.Player{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, p)
	return p, nil
}

// UpdatePlayer merges patch onto the stored player.
func (s *MemoryStore) UpdatePlayer(ctx context.Context, id string, patch players.Patch) (players.Player, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return players.Player{}, false, nil
	}
	next, err := s.items[idx].Apply(patch)
	if err != nil {
		return players.Player{}, true, err
	}
	s.items[idx] = next
	return next, true, nil
}

// DeletePlayer removes a player, reporting whether it existed.
func (s *MemoryStore) DeletePlayer(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return false, nil
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return true, nil
}

func (s *MemoryStore) PlayersByTeam(ctx context.Context, team teams.Team) ([]players.Player, error) {
	all, _ := s.ListPlayers(ctx)
	return players.FilterByTeam(all, team), nil
}

func (s *MemoryStore) PlayersByPosition(ctx context.Context, position players.Position) ([]players.Player, error) {
	all, _ := s.ListPlayers(ctx)
	return players.FilterByPosition(all, position), nil
}

func (s *MemoryStore) indexOf(id string) int {
	for i, p := range s.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
