package players

import (
	"strings"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

// Draft is the payload for creating a player. It has no id: ids are assigned by the store.
type Draft struct {
	Name            string     `json:"name"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Nickname        string     `json:"nickname"`
	Position        Position   `json:"position"`
	PositionDisplay string     `json:"positionDisplay"`
	Team            teams.Team `json:"team"`
	JerseyNumber    string     `json:"jerseyNumber"`
	Photo           string     `json:"photo"`
	Bio             string     `json:"bio"`
	Appearances     int        `json:"appearances"`
	Goals           int        `json:"goals"`
	Saves           int        `json:"saves"`
	CleanSheets     int        `json:"cleanSheets"`
	FunFact         string     `json:"funFact"`
	Quote           string     `json:"quote"`
}

// MissingRequired lists the required fields that are blank, in field order.
func (d Draft) MissingRequired() []string {
	var missing []string
	if strings.TrimSpace(d.FirstName) == "" {
		missing = append(missing, "firstName")
	}
	if strings.TrimSpace(d.LastName) == "" {
		missing = append(missing, "lastName")
	}
	if strings.TrimSpace(string(d.Position)) == "" {
		missing = append(missing, "position")
	}
	if strings.TrimSpace(string(d.Team)) == "" {
		missing = append(missing, "team")
	}
	return missing
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Name            *string     `json:"name"`
	FirstName       *string     `json:"firstName"`
	LastName        *string     `json:"lastName"`
	Nickname        *string     `json:"nickname"`
	Position        *Position   `json:"position"`
	PositionDisplay *string     `json:"positionDisplay"`
	Team            *teams.Team `json:"team"`
	JerseyNumber    *string     `json:"jerseyNumber"`
	Photo           *string     `json:"photo"`
	Bio             *string     `json:"bio"`
	Appearances     *int        `json:"appearances"`
	Goals           *int        `json:"goals"`
	Saves           *int        `json:"saves"`
	CleanSheets     *int        `json:"cleanSheets"`
	FunFact         *string     `json:"funFact"`
	Quote           *string     `json:"quote"`
}

// NewPlayer builds a validated player from a draft, filling defaults and derived fields.
func NewPlayer(id string, d Draft) (Player, error) {
	p := Player{
		ID:              id,
		Name:            d.Name,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Nickname:        d.Nickname,
		Position:        d.Position,
		PositionDisplay: d.PositionDisplay,
		Team:            d.Team,
		JerseyNumber:    d.JerseyNumber,
		Photo:           d.Photo,
		Bio:             d.Bio,
		Appearances:     d.Appearances,
		Goals:           d.Goals,
		Saves:           d.Saves,
		CleanSheets:     d.CleanSheets,
		FunFact:         d.FunFact,
		Quote:           d.Quote,
	}
	p.normalize()
	if p.PositionDisplay == "" {
		p.PositionDisplay = DisplayPosition(p.Position)
	}
	if p.Photo == "" {
		p.Photo = DefaultPhoto
	}
	if p.Name == "" {
		p.Name = strings.TrimSpace(p.FirstName + " " + p.LastName)
	}
	if err := p.Validate(); err != nil {
		return Player{}, err
	}
	return p, nil
}

// Apply merges patch onto a copy of p and validates the result. p itself is never modified,
// so a rejected patch leaves the caller's record intact. ID and CreatedAt are not patchable.
func (p Player) Apply(patch Patch) (Player, error) {
	next := p
	setString(&next.Name, patch.Name)
	setString(&next.FirstName, patch.FirstName)
	setString(&next.LastName, patch.LastName)
	setString(&next.Nickname, patch.Nickname)
	setString(&next.JerseyNumber, patch.JerseyNumber)
	setString(&next.Photo, patch.Photo)
	setString(&next.Bio, patch.Bio)
	setString(&next.FunFact, patch.FunFact)
	setString(&next.Quote, patch.Quote)
	setInt(&next.Appearances, patch.Appearances)
	setInt(&next.Goals, patch.Goals)
	setInt(&next.Saves, patch.Saves)
	setInt(&next.CleanSheets, patch.CleanSheets)
	if patch.Team != nil {
		next.Team = *patch.Team
	}
	if patch.Position != nil {
		next.Position = patch.Position.canonical()
		if patch.PositionDisplay == nil {
			next.PositionDisplay = DisplayPosition(next.Position)
		}
	}
	setString(&next.PositionDisplay, patch.PositionDisplay)

	next.normalize()
	if err := next.Validate(); err != nil {
		return p, err
	}
	return next, nil
}

// normalize trims free-text identity fields and upper-cases the last name.
func (p *Player) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.FirstName = strings.TrimSpace(p.FirstName)
	p.LastName = strings.ToUpper(strings.TrimSpace(p.LastName))
	p.Nickname = strings.TrimSpace(p.Nickname)
	p.JerseyNumber = strings.TrimSpace(p.JerseyNumber)
	p.PositionDisplay = strings.TrimSpace(p.PositionDisplay)
	p.Position = Position(strings.TrimSpace(string(p.Position))).canonical()
	p.Team = teams.Team(strings.TrimSpace(string(p.Team)))
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
