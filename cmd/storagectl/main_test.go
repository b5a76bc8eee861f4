package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/preston-bernstein/sunday-game-service/internal/config"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
	mongostore "github.com/preston-bernstein/sunday-game-service/internal/store/mongo"
	"github.com/preston-bernstein/sunday-game-service/internal/testutil"
)

func jsonOnlyConfig(path string) config.Config {
	return config.Config{Storage: config.StorageConfig{DataFile: path, MongoDatabase: "sunday-game-test"}}
}

func withMongoURI(cfg config.Config) config.Config {
	cfg.Storage.MongoURI = "mongodb://127.0.0.1:1"
	return cfg
}

func runCmd(t *testing.T, cfg config.Config, args ...string) (int, string, string) {
	t.Helper()
	logger, _ := testutil.NewBufferLogger()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, cfg, logger, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func stubConnect(t *testing.T, fn func(context.Context, mongostore.Config, ...mongostore.Option) (*mongostore.Store, error)) {
	t.Helper()
	orig := connectMongo
	connectMongo = fn
	t.Cleanup(func() { connectMongo = orig })
}

func failConnect(err error) func(context.Context, mongostore.Config, ...mongostore.Option) (*mongostore.Store, error) {
	return func(context.Context, mongostore.Config, ...mongostore.Option) (*mongostore.Store, error) {
		return nil, err
	}
}

func legacyPlayer(id string, team teams.Team) players.Player {
	p := testutil.SamplePlayer(id)
	p.Team = team
	return p
}

func TestRunWithoutCommandPrintsUsage(t *testing.T) {
	code, _, stderr := runCmd(t, config.Config{})
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	for _, name := range []string{"rename-teams", "import-json", "smoke"} {
		if !strings.Contains(stderr, name) {
			t.Fatalf("expected usage to list %s, got %q", name, stderr)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := runCmd(t, config.Config{}, "drop-everything")
	if code != 2 || !strings.Contains(stderr, `unknown command "drop-everything"`) {
		t.Fatalf("expected unknown command error, got %d %q", code, stderr)
	}
}

func TestRunRejectsExtraArguments(t *testing.T) {
	code, _, stderr := runCmd(t, jsonOnlyConfig(filepath.Join(t.TempDir(), "players.json")), "smoke", "now")
	if code != 2 || !strings.Contains(stderr, "unexpected arguments") {
		t.Fatalf("expected usage error, got %d %q", code, stderr)
	}
}

func TestRunUnknownFlag(t *testing.T) {
	code, _, _ := runCmd(t, config.Config{}, "import-json", "-force")
	if code != 2 {
		t.Fatalf("expected flag error exit 2, got %d", code)
	}
}

func TestRenameTeamsNeedsATarget(t *testing.T) {
	code, _, stderr := runCmd(t, jsonOnlyConfig(filepath.Join(t.TempDir(), "players.json")), "rename-teams")
	if code != 2 || !strings.Contains(stderr, "-json") {
		t.Fatalf("expected hint about -json, got %d %q", code, stderr)
	}
}

func TestRenameTeamsRewritesDataFile(t *testing.T) {
	path := testutil.WritePlayersFile(t, t.TempDir(), []players.Player{
		legacyPlayer("1", teams.Team("Team A")),
		legacyPlayer("2", teams.Team("Team B")),
		legacyPlayer("3", teams.None),
	})

	code, stdout, stderr := runCmd(t, jsonOnlyConfig(path), "rename-teams", "-json")
	if code != 0 {
		t.Fatalf("expected success, got %d %q", code, stderr)
	}
	if !strings.Contains(stdout, "updated 2 players") {
		t.Fatalf("expected rename count, got %q", stdout)
	}
	got := testutil.ReadPlayersFile(t, path)
	want := []teams.Team{teams.TharkiTigers, teams.NangeShikari, teams.None}
	for i, p := range got {
		if p.Team != want[i] {
			t.Fatalf("player %s: expected %q, got %q", p.ID, want[i], p.Team)
		}
	}
}

func TestRenameTeamsReportsConnectFailure(t *testing.T) {
	stubConnect(t, failConnect(errors.New("bad uri")))
	cfg := withMongoURI(jsonOnlyConfig(filepath.Join(t.TempDir(), "players.json")))
	code, _, stderr := runCmd(t, cfg, "rename-teams")
	if code != 1 || !strings.Contains(stderr, "bad uri") {
		t.Fatalf("expected connect failure, got %d %q", code, stderr)
	}
}

func TestImportJSONRequiresDocumentStore(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WritePlayersFile(t, dir, []players.Player{testutil.SamplePlayer("1")})

	code, _, stderr := runCmd(t, jsonOnlyConfig(path), "import-json")
	if code != 1 || !strings.Contains(stderr, "MONGODB_URI") {
		t.Fatalf("expected missing URI error, got %d %q", code, stderr)
	}
	if _, err := os.Stat(backupPath(path)); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected no backup without a document store, got %v", err)
	}
}

func TestImportJSONEmptyFileSkipsConnect(t *testing.T) {
	stubConnect(t, func(context.Context, mongostore.Config, ...mongostore.Option) (*mongostore.Store, error) {
		t.Fatal("connect should not be called for an empty data file")
		return nil, nil
	})
	path := filepath.Join(t.TempDir(), "players.json")

	code, stdout, stderr := runCmd(t, withMongoURI(jsonOnlyConfig(path)), "import-json")
	if code != 0 || !strings.Contains(stdout, "nothing to import") {
		t.Fatalf("expected no-op import, got %d %q %q", code, stdout, stderr)
	}
}

func TestImportJSONBacksUpBeforeConnecting(t *testing.T) {
	var gotCfg mongostore.Config
	stubConnect(t, func(_ context.Context, cfg mongostore.Config, _ ...mongostore.Option) (*mongostore.Store, error) {
		gotCfg = cfg
		return nil, errors.New("unreachable")
	})
	dir := t.TempDir()
	path := testutil.WritePlayersFile(t, dir, []players.Player{testutil.SamplePlayer("1")})
	dest := filepath.Join(dir, "copies", "before-import.json")

	code, stdout, _ := runCmd(t, withMongoURI(jsonOnlyConfig(path)), "import-json", "-backup", dest)
	if code != 1 {
		t.Fatalf("expected connect failure exit 1, got %d", code)
	}
	if !strings.Contains(stdout, "backed up") {
		t.Fatalf("expected backup message, got %q", stdout)
	}
	src, _ := os.ReadFile(path)
	copied, err := os.ReadFile(dest)
	if err != nil || !bytes.Equal(src, copied) {
		t.Fatalf("expected identical backup, err=%v", err)
	}
	if gotCfg.Database != "sunday-game-test" || gotCfg.Timeout != defaultTimeout {
		t.Fatalf("unexpected connect config %+v", gotCfg)
	}
}

func TestSmokeRoundTripLeavesDataFileCount(t *testing.T) {
	path := testutil.WritePlayersFile(t, t.TempDir(), []players.Player{testutil.SamplePlayer("1")})

	code, stdout, stderr := runCmd(t, jsonOnlyConfig(path), "smoke")
	if code != 0 {
		t.Fatalf("expected smoke success, got %d %q", code, stderr)
	}
	for _, want := range []string{"smoke testing json store", "read: Test PLAYER", "update: appearances=2 goals=1", "delete: ok", "final count: 1"} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("expected %q in output %q", want, stdout)
		}
	}
	got := testutil.ReadPlayersFile(t, path)
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected original roster only, got %+v", got)
	}
}

func TestSmokeCleansUpWhenAStepFails(t *testing.T) {
	s := &failingUpdateStore{ErrStore: testutil.ErrStore{}}
	env := &environment{out: &bytes.Buffer{}}
	s.added = testutil.SamplePlayer("tmp")

	err := roundTrip(context.Background(), env, s)
	if err == nil || !strings.Contains(err.Error(), "update") {
		t.Fatalf("expected update failure, got %v", err)
	}
	if s.deletedID != "tmp" {
		t.Fatalf("expected cleanup delete of tmp, got %q", s.deletedID)
	}
}

func TestBackupPath(t *testing.T) {
	if got := backupPath("server/data/players.json"); got != "server/data/players_backup.json" {
		t.Fatalf("unexpected backup path %q", got)
	}
}

type failingUpdateStore struct {
	testutil.ErrStore
	added     players.Player
	deletedID string
}

func (s *failingUpdateStore) ListPlayers(context.Context) ([]players.Player, error) {
	return []players.Player{}, nil
}

func (s *failingUpdateStore) AddPlayer(context.Context, players.Draft) (players.Player, error) {
	return s.added, nil
}

func (s *failingUpdateStore) GetPlayer(context.Context, string) (players.Player, bool, error) {
	return s.added, true, nil
}

func (s *failingUpdateStore) DeletePlayer(_ context.Context, id string) (bool, error) {
	s.deletedID = id
	return true, nil
}
