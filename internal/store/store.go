package store

import (
	"context"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

// PlayerStore is the record store contract shared by every backend.
// Lookups report absence with ok == false rather than an error; list results keep creation order.
type PlayerStore interface {
	ListPlayers(ctx context.Context) ([]players.Player, error)
	GetPlayer(ctx context.Context, id string) (players.Player, bool, error)
	AddPlayer(ctx context.Context, draft players.Draft) (players.Player, error)
	UpdatePlayer(ctx context.Context, id string, patch players.Patch) (players.Player, bool, error)
	DeletePlayer(ctx context.Context, id string) (bool, error)
	PlayersByTeam(ctx context.Context, team teams.Team) ([]players.Player, error)
	PlayersByPosition(ctx context.Context, position players.Position) ([]players.Player, error)
}
