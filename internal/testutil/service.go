package testutil

import (
	appplayers "github.com/preston-bernstein/sunday-game-service/internal/app/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/store"
)

// NewServiceWithPlayers builds a players service backed by an in-memory store preloaded with items.
func NewServiceWithPlayers(items ...players.Player) *appplayers.Service {
	return appplayers.NewService(store.NewMemoryStore(items...))
}
