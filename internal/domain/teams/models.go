package teams

import "strings"

// Team is the roster side a player belongs to.
// The two named sides were renamed once ("Team A"/"Team B"); see LegacyRenames.
type Team string

const (
	TharkiTigers Team = "Tharki Tigers"
	NangeShikari Team = "Nange Shikari"
	None         Team = "None"
)

// All lists every accepted team in display order.
var All = []Team{TharkiTigers, NangeShikari, None}

// LegacyRenames maps the historical team names onto their current ones.
var LegacyRenames = map[string]Team{
	"Team A": TharkiTigers,
	"Team B": NangeShikari,
}

// Valid reports whether t is one of the accepted teams.
func (t Team) Valid() bool {
	for _, candidate := range All {
		if t == candidate {
			return true
		}
	}
	return false
}

// Parse resolves a raw team name. Matching is exact after trimming surrounding space.
func Parse(raw string) (Team, bool) {
	t := Team(strings.TrimSpace(raw))
	if !t.Valid() {
		return "", false
	}
	return t, true
}
