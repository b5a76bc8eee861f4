package testutil

import (
	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

// SamplePlayer returns a valid stored player with the provided id.
func SamplePlayer(id string) players.Player {
	return players.Player{
		ID:              id,
		Name:            "Sam LEE",
		FirstName:       "Sam",
		LastName:        "LEE",
		Position:        players.Goalkeepers,
		PositionDisplay: "goalkeepers",
		Team:            teams.TharkiTigers,
		Photo:           players.DefaultPhoto,
		Appearances:     3,
		Saves:           7,
	}
}

// SampleDraft returns a minimal valid creation payload.
func SampleDraft(first, last string, position players.Position, team teams.Team) players.Draft {
	return players.Draft{
		FirstName: first,
		LastName:  last,
		Position:  position,
		Team:      team,
	}
}
