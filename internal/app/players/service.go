package players

import (
	"context"
	"errors"
	"strings"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
	"github.com/preston-bernstein/sunday-game-service/internal/store"
)

var (
	ErrInvalidTeam     = errors.New("invalid team name")
	ErrInvalidPosition = errors.New("invalid position")
)

// RequiredFieldsError lists the required draft fields that were blank.
type RequiredFieldsError struct {
	Fields []string
}

func (e *RequiredFieldsError) Error() string {
	if e.NamesMissing() {
		return "first name and last name are required"
	}
	return "position and team are required"
}

func (e *RequiredFieldsError) Unwrap() error { return players.ErrValidation }

// NamesMissing reports whether either name field was blank.
func (e *RequiredFieldsError) NamesMissing() bool {
	for _, f := range e.Fields {
		if f == "firstName" || f == "lastName" {
			return true
		}
	}
	return false
}

// Service coordinates player operations over a PlayerStore.
type Service struct {
	store store.PlayerStore
}

// NewService constructs a Service with the provided store.
func NewService(s store.PlayerStore) *Service {
	return &Service{store: s}
}

// Players returns the whole roster.
func (s *Service) Players(ctx context.Context) ([]players.Player, error) {
	return s.store.ListPlayers(ctx)
}

// PlayerByID returns a single player if present.
func (s *Service) PlayerByID(ctx context.Context, id string) (players.Player, bool, error) {
	return s.store.GetPlayer(ctx, id)
}

// AddPlayer checks required fields before handing the draft to the store.
func (s *Service) AddPlayer(ctx context.Context, draft players.Draft) (players.Player, error) {
	if missing := draft.MissingRequired(); len(missing) > 0 {
		return players.Player{}, &RequiredFieldsError{Fields: missing}
	}
	return s.store.AddPlayer(ctx, draft)
}

func (s *Service) UpdatePlayer(ctx context.Context, id string, patch players.Patch) (players.Player, bool, error) {
	return s.store.UpdatePlayer(ctx, id, patch)
}

func (s *Service) DeletePlayer(ctx context.Context, id string) (bool, error) {
	return s.store.DeletePlayer(ctx, id)
}

// PlayersByTeam filters by a raw team name.
func (s *Service) PlayersByTeam(ctx context.Context, raw string) ([]players.Player, error) {
	team, ok := teams.Parse(raw)
	if !ok {
		return nil, ErrInvalidTeam
	}
	return s.store.PlayersByTeam(ctx, team)
}

// PlayersByPosition filters by a raw position; matching ignores case.
func (s *Service) PlayersByPosition(ctx context.Context, raw string) ([]players.Player, error) {
	position, ok := players.ParsePosition(strings.ToUpper(raw))
	if !ok {
		return nil, ErrInvalidPosition
	}
	return s.store.PlayersByPosition(ctx, position)
}
