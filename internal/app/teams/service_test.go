package teams

import (
	"context"
	"errors"
	"testing"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

type stubLister struct {
	items []players.Player
	err   error
}

func (s *stubLister) ListPlayers(context.Context) ([]players.Player, error) { return s.items, s.err }

func TestTeamsServiceCountsPlayers(t *testing.T) {
	svc := NewService(&stubLister{items: []players.Player{
		{ID: "1", Team: teams.TharkiTigers},
		{ID: "2", Team: teams.TharkiTigers},
		{ID: "3", Team: teams.None},
	}})

	got, err := svc.Teams(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Summary{
		{Name: teams.TharkiTigers, Players: 2},
		{Name: teams.NangeShikari, Players: 0},
		{Name: teams.None, Players: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d teams, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("team %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestTeamsServicePropagatesStoreError(t *testing.T) {
	boom := errors.New("boom")
	if _, err := NewService(&stubLister{err: boom}).Teams(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}
