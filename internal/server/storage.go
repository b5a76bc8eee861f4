package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/sunday-game-service/internal/config"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
	"github.com/preston-bernstein/sunday-game-service/internal/metrics"
	"github.com/preston-bernstein/sunday-game-service/internal/store"
	"github.com/preston-bernstein/sunday-game-service/internal/store/jsonfile"
	mongostore "github.com/preston-bernstein/sunday-game-service/internal/store/mongo"
)

// mongoConnect remains a var for tests to override.
var mongoConnect = mongostore.Connect

// storageComponents holds the backends behind the selector.
type storageComponents struct {
	json     *jsonfile.Store
	mongo    *mongostore.Store
	selector *store.Selector
}

// buildStorage wires the JSON backend, the optional document store and the selector.
// Probing happens once here; a failing document store leaves the selector degraded.
func buildStorage(ctx context.Context, cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) storageComponents {
	timeout := cfg.Storage.MongoTimeout
	if timeout <= 0 {
		timeout = defaultStorageTimeout
	}

	comps := storageComponents{json: jsonfile.New(cfg.Storage.DataFile, logger)}
	if cfg.Storage.MongoEnabled() {
		comps.mongo = connectMongo(ctx, cfg.Storage, timeout, logger)
	}

	var primary store.PlayerStore
	if comps.mongo != nil {
		primary = comps.mongo
	}
	comps.selector = store.NewSelector(primary, comps.json,
		store.WithLogger(logger),
		store.WithMetrics(recorder),
	)

	probeCtx, cancel := context.WithTimeout(ctx, 2*timeout)
	defer cancel()
	if err := comps.selector.Probe(probeCtx); err != nil {
		return comps
	}

	schemaCtx, cancelSchema := context.WithTimeout(ctx, timeout)
	defer cancelSchema()
	if err := comps.mongo.EnsureSchema(schemaCtx); err != nil {
		logging.Warn(logger, "players schema setup failed", logging.FieldError, err)
	}
	logging.Info(logger, "storage ready", slog.String(logging.FieldBackend, comps.selector.Backend()))
	return comps
}

func connectMongo(ctx context.Context, cfg config.StorageConfig, timeout time.Duration, logger *slog.Logger) *mongostore.Store {
	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var poolSize uint64
	if cfg.MongoPoolSize > 0 {
		poolSize = uint64(cfg.MongoPoolSize)
	}
	s, err := mongoConnect(connectCtx, mongostore.Config{
		URI:         cfg.MongoURI,
		Database:    cfg.MongoDatabase,
		Timeout:     timeout,
		MaxPoolSize: poolSize,
	}, mongostore.WithLogger(logger))
	if err != nil {
		logging.Warn(logger, "document store connect failed", logging.FieldError, err)
		return nil
	}
	return s
}

// close releases the document store connection.
func (c storageComponents) close(ctx context.Context) error {
	if c.mongo == nil {
		return nil
	}
	return c.mongo.Disconnect(ctx)
}
