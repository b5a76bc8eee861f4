// Package mongo stores players in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
	"github.com/preston-bernstein/sunday-game-service/internal/logging"
)

// namespaceExistsCode is returned by createCollection when the collection is already there.
const namespaceExistsCode = 48

// Config holds connection settings.
type Config struct {
	URI         string
	Database    string
	Timeout     time.Duration
	MaxPoolSize uint64
}

// Store is the document-database player backend.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	coll   *mongo.Collection
	clock  clockwork.Clock
	logger *slog.Logger
}

// Option customizes a Store.
type Option func(*Store)

// WithClock sets the clock used for createdAt/updatedAt.
func WithClock(clock clockwork.Clock) Option {
	return func(s *Store) { s.clock = clock }
}

// WithLogger sets the store logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Connect creates a client for cfg.URI. The driver connects lazily, so an unreachable
// server is reported by the first operation rather than here; only a malformed URI fails.
func Connect(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	clientOpts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		clientOpts.SetServerSelectionTimeout(cfg.Timeout).SetConnectTimeout(cfg.Timeout)
	}
	if cfg.MaxPoolSize > 0 {
		clientOpts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	s := NewFromDatabase(client.Database(cfg.Database), opts...)
	s.client = client
	return s, nil
}

// NewFromDatabase wraps an existing database handle.
func NewFromDatabase(db *mongo.Database, opts ...Option) *Store {
	s := &Store{
		db:    db,
		clock: clockwork.NewRealClock(),
	}
	if db != nil {
		s.client = db.Client()
		s.coll = db.Collection(collectionName)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Disconnect closes the underlying client.
func (s *Store) Disconnect(ctx context.Context) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

// EnsureSchema installs the collection validator and the team/position/name indexes.
// It is safe to run repeatedly.
func (s *Store) EnsureSchema(ctx context.Context) error {
	validator := bson.M{"$jsonSchema": playerSchema()}
	err := s.db.CreateCollection(ctx, collectionName, options.CreateCollection().SetValidator(validator))
	if err != nil {
		var cmdErr mongo.CommandError
		if !errors.As(err, &cmdErr) || cmdErr.Code != namespaceExistsCode {
			return fmt.Errorf("create players collection: %w", err)
		}
		mod := bson.D{{Key: "collMod", Value: collectionName}, {Key: "validator", Value: validator}}
		if err := s.db.RunCommand(ctx, mod).Err(); err != nil {
			return fmt.Errorf("update players validator: %w", err)
		}
	}

	_, err = s.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "team", Value: 1}}},
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "firstName", Value: 1}, {Key: "lastName", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("create players indexes: %w", err)
	}
	logging.Info(s.logger, "players collection ready", "collection", collectionName)
	return nil
}

// ListPlayers returns every player ordered by creation time.
func (s *Store) ListPlayers(ctx context.Context) ([]players.Player, error) {
	return s.find(ctx, bson.D{})
}

func (s *Store) GetPlayer(ctx context.Context, id string) (players.Player, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return players.Player{}, false, nil
	}
	doc, ok, err := s.findByID(ctx, oid)
	if err != nil || !ok {
		return players.Player{}, ok, err
	}
	return doc.toPlayer(), true, nil
}

// AddPlayer validates the draft and inserts it with fresh timestamps.
func (s *Store) AddPlayer(ctx context.Context, draft players.Draft) (players.Player, error) {
	p, err := players.NewPlayer("", draft)
	if err != nil {
		return players.Player{}, err
	}
	doc := fromPlayer(p)
	doc.ID = primitive.NewObjectID()
	doc.CreatedAt = s.now()
	doc.UpdatedAt = doc.CreatedAt

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return players.Player{}, fmt.Errorf("insert player: %w", err)
	}
	return doc.toPlayer(), nil
}

// UpdatePlayer merges patch onto the stored document and replaces it.
func (s *Store) UpdatePlayer(ctx context.Context, id string, patch players.Patch) (players.Player, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return players.Player{}, false, nil
	}
	current, ok, err := s.findByID(ctx, oid)
	if err != nil || !ok {
		return players.Player{}, ok, err
	}

	next, err := current.toPlayer().Apply(patch)
	if err != nil {
		return players.Player{}, true, err
	}
	doc := fromPlayer(next)
	doc.ID = oid
	doc.CreatedAt = current.CreatedAt
	doc.UpdatedAt = s.now()

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return players.Player{}, true, fmt.Errorf("replace player: %w", err)
	}
	if res.MatchedCount == 0 {
		// Removed between the read and the write.
		return players.Player{}, false, nil
	}
	return doc.toPlayer(), true, nil
}

// DeletePlayer removes the document and reports whether it existed.
func (s *Store) DeletePlayer(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete player: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (s *Store) PlayersByTeam(ctx context.Context, team teams.Team) ([]players.Player, error) {
	return s.find(ctx, bson.D{{Key: "team", Value: string(team)}})
}

func (s *Store) PlayersByPosition(ctx context.Context, position players.Position) ([]players.Player, error) {
	return s.find(ctx, bson.D{{Key: "position", Value: string(position)}})
}

// Count returns the number of stored players.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{})
}

// CountByTeam returns the number of players stored under a raw team name.
func (s *Store) CountByTeam(ctx context.Context, team string) (int64, error) {
	return s.coll.CountDocuments(ctx, bson.D{{Key: "team", Value: team}})
}

// RenameTeam moves every player on team from to team to and returns how many changed.
func (s *Store) RenameTeam(ctx context.Context, from string, to teams.Team) (int64, error) {
	if !to.Valid() {
		return 0, &players.ValidationError{Field: "team", Reason: fmt.Sprintf("%q is not a valid team", to)}
	}
	res, err := s.coll.UpdateMany(ctx,
		bson.D{{Key: "team", Value: from}},
		bson.D{{Key: "$set", Value: bson.D{
			{Key: "team", Value: string(to)},
			{Key: "updatedAt", Value: s.now()},
		}}},
	)
	if err != nil {
		return 0, fmt.Errorf("rename team %q: %w", from, err)
	}
	return res.ModifiedCount, nil
}

// ImportPlayers inserts players read from another store under new ObjectIDs, keeping their
// order. Legacy team names are mapped to current ones; invalid records abort the import
// before anything is written.
func (s *Store) ImportPlayers(ctx context.Context, items []players.Player) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(items))
	base := s.now()
	for i, p := range items {
		if renamed, ok := teams.LegacyRenames[string(p.Team)]; ok {
			p.Team = renamed
		}
		if p.PositionDisplay == "" {
			p.PositionDisplay = players.DisplayPosition(p.Position)
		}
		if err := p.Validate(); err != nil {
			return 0, fmt.Errorf("player %d (%s): %w", i, p.ID, err)
		}
		doc := fromPlayer(p)
		doc.ID = primitive.NewObjectID()
		// Spread timestamps so createdAt ordering preserves the source order.
		doc.CreatedAt = base.Add(time.Duration(i) * time.Millisecond)
		doc.UpdatedAt = doc.CreatedAt
		docs = append(docs, doc)
	}
	res, err := s.coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("import players: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (s *Store) find(ctx context.Context, filter bson.D) ([]players.Player, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}, {Key: "_id", Value: 1}})
	cur, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find players: %w", err)
	}
	var docs []playerDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	out := make([]players.Player, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toPlayer())
	}
	return out, nil
}

func (s *Store) findByID(ctx context.Context, oid primitive.ObjectID) (playerDocument, bool, error) {
	var doc playerDocument
	err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return playerDocument{}, false, nil
	}
	if err != nil {
		return playerDocument{}, false, fmt.Errorf("find player: %w", err)
	}
	return doc, true, nil
}

// now is truncated to BSON datetime precision so returned values match what is stored.
func (s *Store) now() time.Time {
	return s.clock.Now().UTC().Truncate(time.Millisecond)
}
