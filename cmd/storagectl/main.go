// Command storagectl runs one-off maintenance jobs against the player stores.
//
//	storagectl rename-teams [-json]   move "Team A"/"Team B" players onto the current team names
//	storagectl import-json [-backup]  copy the JSON data file into the document store
//	storagectl smoke                  create, read, update and delete a throwaway player
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/preston-bernstein/sunday-game-service/internal/config"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
	mongostore "github.com/preston-bernstein/sunday-game-service/internal/store/mongo"
)

const appVersion = "dev"

const defaultTimeout = 5 * time.Second

var errUsage = errors.New("usage")

// connectMongo remains a var for tests to override.
var connectMongo = mongostore.Connect

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

var commands = []command{
	{name: "rename-teams", summary: "rename legacy teams in the document store (and the JSON file with -json)", run: renameTeams},
	{name: "import-json", summary: "import the JSON data file into the document store", run: importJSON},
	{name: "smoke", summary: "round-trip a throwaway player through the configured store", run: smoke},
}

// environment carries what every command needs.
type environment struct {
	cfg    config.Config
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer
}

func main() {
	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()

	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "storagectl",
		Version: appVersion,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], config.Load(), logger, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run dispatches args to a command and returns the process exit code.
func run(ctx context.Context, args []string, cfg config.Config, logger *slog.Logger, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}
	for _, cmd := range commands {
		if cmd.name != args[0] {
			continue
		}
		env := &environment{cfg: cfg, logger: logger, out: stdout, errOut: stderr}
		err := cmd.run(ctx, env, args[1:])
		switch {
		case err == nil:
			return 0
		case errors.Is(err, flag.ErrHelp):
			return 2
		case errors.Is(err, errUsage):
			fmt.Fprintf(stderr, "%s: %v\n", cmd.name, err)
			return 2
		default:
			logging.Error(logger, cmd.name+" failed", err)
			fmt.Fprintf(stderr, "%s: %v\n", cmd.name, err)
			return 1
		}
	}
	fmt.Fprintf(stderr, "unknown command %q\n", args[0])
	usage(stderr)
	return 2
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: storagectl <command> [flags]")
	fmt.Fprintln(w)
	for _, cmd := range commands {
		fmt.Fprintf(w, "  %-14s %s\n", cmd.name, cmd.summary)
	}
}

func newFlagSet(name string, env *environment) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.errOut)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: unexpected arguments %q", errUsage, fs.Args())
	}
	return nil
}

func (env *environment) timeout() time.Duration {
	if env.cfg.Storage.MongoTimeout > 0 {
		return env.cfg.Storage.MongoTimeout
	}
	return defaultTimeout
}

// openMongo connects to the configured document store. Callers must Disconnect.
func (env *environment) openMongo(ctx context.Context) (*mongostore.Store, error) {
	if !env.cfg.Storage.MongoEnabled() {
		return nil, errors.New("MONGODB_URI is not set")
	}
	var poolSize uint64
	if env.cfg.Storage.MongoPoolSize > 0 {
		poolSize = uint64(env.cfg.Storage.MongoPoolSize)
	}
	return connectMongo(ctx, mongostore.Config{
		URI:         env.cfg.Storage.MongoURI,
		Database:    env.cfg.Storage.MongoDatabase,
		Timeout:     env.timeout(),
		MaxPoolSize: poolSize,
	}, mongostore.WithLogger(env.logger))
}

func disconnect(env *environment, s *mongostore.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), env.timeout())
	defer cancel()
	if err := s.Disconnect(ctx); err != nil {
		logging.Warn(env.logger, "document store disconnect failed", logging.FieldError, err)
	}
}
