package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
	"github.com/preston-bernstein/sunday-game-service/internal/store"
	"github.com/preston-bernstein/sunday-game-service/internal/store/jsonfile"
)

func renameTeams(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet("rename-teams", env)
	alsoJSON := fs.Bool("json", false, "also rewrite legacy team names in the JSON data file")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if !env.cfg.Storage.MongoEnabled() && !*alsoJSON {
		return fmt.Errorf("%w: MONGODB_URI is not set; pass -json to migrate the data file", errUsage)
	}

	if env.cfg.Storage.MongoEnabled() {
		if err := renameMongoTeams(ctx, env); err != nil {
			return err
		}
	}
	if *alsoJSON {
		file := jsonfile.New(env.cfg.Storage.DataFile, env.logger)
		n, err := file.RenameTeams(ctx, teams.LegacyRenames)
		if err != nil {
			return fmt.Errorf("rename teams in %s: %w", file.Path(), err)
		}
		fmt.Fprintf(env.out, "updated %d players in %s\n", n, file.Path())
	}
	return nil
}

func renameMongoTeams(ctx context.Context, env *environment) error {
	s, err := env.openMongo(ctx)
	if err != nil {
		return err
	}
	defer disconnect(env, s)

	for _, legacy := range legacyTeamNames() {
		to := teams.LegacyRenames[legacy]
		n, err := s.RenameTeam(ctx, legacy, to)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.out, "updated %d players from %q to %q\n", n, legacy, to)
	}

	fmt.Fprintln(env.out, "team distribution:")
	for _, team := range teams.All {
		n, err := s.CountByTeam(ctx, string(team))
		if err != nil {
			return fmt.Errorf("count %s: %w", team, err)
		}
		fmt.Fprintf(env.out, "  %s: %d\n", team, n)
	}
	return nil
}

func legacyTeamNames() []string {
	names := make([]string, 0, len(teams.LegacyRenames))
	for name := range teams.LegacyRenames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func importJSON(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet("import-json", env)
	backup := fs.String("backup", "", "where to copy the data file before importing (default <file>_backup.json)")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if !env.cfg.Storage.MongoEnabled() {
		return errors.New("MONGODB_URI is not set")
	}

	src := jsonfile.New(env.cfg.Storage.DataFile, env.logger)
	items, err := src.ListPlayers(ctx)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		fmt.Fprintf(env.out, "no players in %s, nothing to import\n", src.Path())
		return nil
	}

	dest := *backup
	if dest == "" {
		dest = backupPath(src.Path())
	}
	if err := src.Backup(dest); err != nil {
		return fmt.Errorf("backup %s: %w", src.Path(), err)
	}
	fmt.Fprintf(env.out, "backed up %s to %s\n", src.Path(), dest)

	s, err := env.openMongo(ctx)
	if err != nil {
		return err
	}
	defer disconnect(env, s)

	if err := s.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("schema setup: %w", err)
	}
	n, err := s.ImportPlayers(ctx, items)
	if err != nil {
		return err
	}
	logging.Info(env.logger, "players imported", logging.FieldCount, n, "source", src.Path())
	fmt.Fprintf(env.out, "imported %d players into %s\n", n, env.cfg.Storage.MongoDatabase)
	return nil
}

// backupPath turns data/players.json into data/players_backup.json.
func backupPath(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + "_backup" + ext
}

func smoke(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet("smoke", env)
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	var target store.PlayerStore
	backend := "json"
	if env.cfg.Storage.MongoEnabled() {
		s, err := env.openMongo(ctx)
		if err != nil {
			return err
		}
		defer disconnect(env, s)
		target, backend = s, "mongo"
	} else {
		target = jsonfile.New(env.cfg.Storage.DataFile, env.logger)
	}
	fmt.Fprintf(env.out, "smoke testing %s store\n", backend)
	return roundTrip(ctx, env, target)
}

func roundTrip(ctx context.Context, env *environment, s store.PlayerStore) error {
	before, err := s.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("count: %w", err)
	}
	fmt.Fprintf(env.out, "found %d players\n", len(before))

	created, err := s.AddPlayer(ctx, smokeDraft())
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	fmt.Fprintf(env.out, "create: %s\n", created.ID)

	deleted := false
	defer func() {
		if deleted {
			return
		}
		if _, cleanupErr := s.DeletePlayer(ctx, created.ID); cleanupErr != nil {
			logging.Warn(env.logger, "smoke player cleanup failed", logging.FieldPlayerID, created.ID, logging.FieldError, cleanupErr)
		}
	}()

	got, ok, err := s.GetPlayer(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if !ok {
		return fmt.Errorf("read: player %s not found after create", created.ID)
	}
	fmt.Fprintf(env.out, "read: %s\n", got.Name)

	appearances, goals := 2, 1
	updated, ok, err := s.UpdatePlayer(ctx, created.ID, players.Patch{Appearances: &appearances, Goals: &goals})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if !ok || updated.Appearances != appearances || updated.Goals != goals {
		return fmt.Errorf("update: unexpected result %+v", updated)
	}
	fmt.Fprintf(env.out, "update: appearances=%d goals=%d\n", updated.Appearances, updated.Goals)

	removed, err := s.DeletePlayer(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if !removed {
		return fmt.Errorf("delete: player %s already gone", created.ID)
	}
	deleted = true
	fmt.Fprintln(env.out, "delete: ok")

	after, err := s.ListPlayers(ctx)
	if err != nil {
		return fmt.Errorf("final count: %w", err)
	}
	if len(after) != len(before) {
		return fmt.Errorf("final count %d does not match initial %d", len(after), len(before))
	}
	fmt.Fprintf(env.out, "final count: %d\n", len(after))
	return nil
}

func smokeDraft() players.Draft {
	return players.Draft{
		FirstName:    "Test",
		LastName:     "Player",
		Nickname:     "Tester",
		Position:     players.Midfielders,
		Team:         teams.None,
		JerseyNumber: "99",
		Bio:          "Created by storagectl smoke",
		Appearances:  1,
		FunFact:      "Deleted again a moment later",
		Quote:        "Test successful!",
	}
}
