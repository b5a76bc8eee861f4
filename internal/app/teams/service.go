package teams

import (
	"context"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

// Lister is the part of the player store the team service reads from.
type Lister interface {
	ListPlayers(ctx context.Context) ([]players.Player, error)
}

// Summary is a team with its current squad size.
type Summary struct {
	Name    teams.Team `json:"name"`
	Players int        `json:"players"`
}

// Service derives team summaries from the roster.
type Service struct {
	store Lister
}

// NewService constructs a Service with the provided store.
func NewService(store Lister) *Service {
	return &Service{store: store}
}

// Teams returns every accepted team in display order, including empty ones.
func (s *Service) Teams(ctx context.Context) ([]Summary, error) {
	roster, err := s.store.ListPlayers(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[teams.Team]int, len(teams.All))
	for _, p := range roster {
		counts[p.Team]++
	}
	out := make([]Summary, 0, len(teams.All))
	for _, t := range teams.All {
		out = append(out, Summary{Name: t, Players: counts[t]})
	}
	return out, nil
}
