package players

import (
	"strings"
	"time"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

// DefaultPhoto is used when a player is created without a photo URL.
const DefaultPhoto = "https://images.unsplash.com/photo-1472099645785-5658abf4ff4e?w=400&h=500&fit=crop&crop=face"

// Position is the squad section a player is listed under.
type Position string

const (
	Goalkeepers    Position = "GOALKEEPERS"
	Defenders      Position = "DEFENDERS"
	Midfielders    Position = "MIDFIELDERS"
	Forwards       Position = "FORWARDS"
	CoachingStaff  Position = "COACHING STAFF"
	coachingLegacy Position = "COACHING_STAFF"
)

// Positions lists every accepted position in roster order.
var Positions = []Position{Goalkeepers, Defenders, Midfielders, Forwards, CoachingStaff}

// Valid reports whether p is one of the accepted positions.
func (p Position) Valid() bool {
	for _, candidate := range Positions {
		if p == candidate {
			return true
		}
	}
	return false
}

func (p Position) canonical() Position {
	if p == coachingLegacy {
		return CoachingStaff
	}
	return p
}

// ParsePosition resolves a raw position, accepting COACHING_STAFF as an alias.
func ParsePosition(raw string) (Position, bool) {
	p := Position(strings.TrimSpace(raw)).canonical()
	if !p.Valid() {
		return "", false
	}
	return p, true
}

// DisplayPosition derives the lower-case label shown next to a player.
func DisplayPosition(p Position) string {
	return strings.ReplaceAll(strings.ToLower(string(p)), "_", " ")
}

// Player is a roster entry. CreatedAt/UpdatedAt are only populated by the document store.
type Player struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Nickname        string     `json:"nickname"`
	Position        Position   `json:"position"`
	PositionDisplay string     `json:"positionDisplay"`
	Team            teams.Team `json:"team"`
	JerseyNumber    string     `json:"jerseyNumber,omitempty"`
	Photo           string     `json:"photo"`
	Bio             string     `json:"bio"`
	Appearances     int        `json:"appearances"`
	Goals           int        `json:"goals"`
	Saves           int        `json:"saves"`
	CleanSheets     int        `json:"cleanSheets"`
	FunFact         string     `json:"funFact"`
	Quote           string     `json:"quote"`
	CreatedAt       *time.Time `json:"createdAt,omitempty"`
	UpdatedAt       *time.Time `json:"updatedAt,omitempty"`
}

// FilterByTeam returns the players on team, keeping input order.
func FilterByTeam(items []Player, team teams.Team) []Player {
	out := make([]Player, 0, len(items))
	for _, p := range items {
		if p.Team == team {
			out = append(out, p)
		}
	}
	return out
}

// FilterByPosition returns the players listed at position, keeping input order.
func FilterByPosition(items []Player, position Position) []Player {
	out := make([]Player, 0, len(items))
	for _, p := range items {
		if p.Position == position {
			out = append(out, p)
		}
	}
	return out
}
