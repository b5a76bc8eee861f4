package testutil

import (
	"context"
	"errors"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

// ErrStoreUnavailable is the default error returned by ErrStore.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrStore fails every operation with Err (or ErrStoreUnavailable).
type ErrStore struct {
	Err error
}

func (s ErrStore) err() error {
	if s.Err == nil {
		return ErrStoreUnavailable
	}
	return s.Err
}

func (s ErrStore) ListPlayers(context.Context) ([]players.Player, error) { return nil, s.err() }

func (s ErrStore) GetPlayer(context.Context, string) (players.Player, bool, error) {
	return players.Player{}, false, s.err()
}

func (s ErrStore) AddPlayer(context.Context, players.Draft) (players.Player, error) {
	return players.Player{}, s.err()
}

func (s ErrStore) UpdatePlayer(context.Context, string, players.Patch) (players.Player, bool, error) {
	return players.Player{}, false, s.err()
}

func (s ErrStore) DeletePlayer(context.Context, string) (bool, error) { return false, s.err() }

func (s ErrStore) PlayersByTeam(context.Context, teams.Team) ([]players.Player, error) {
	return nil, s.err()
}

func (s ErrStore) PlayersByPosition(context.Context, players.Position) ([]players.Player, error) {
	return nil, s.err()
}
