package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/preston-bernstein/sunday-game-service/internal/domain/players"
	"github.com/preston-bernstein/sunday-game-service/internal/domain/teams"
)

const collectionName = "players"

// playerDocument is the stored shape of a player. The ObjectID is exposed to clients as hex.
type playerDocument struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	Name            string             `bson:"name"`
	FirstName       string             `bson:"firstName"`
	LastName        string             `bson:"lastName"`
	Nickname        string             `bson:"nickname"`
	Position        string             `bson:"position"`
	PositionDisplay string             `bson:"positionDisplay"`
	Team            string             `bson:"team"`
	JerseyNumber    string             `bson:"jerseyNumber,omitempty"`
	Photo           string             `bson:"photo"`
	Bio             string             `bson:"bio"`
	Appearances     int                `bson:"appearances"`
	Goals           int                `bson:"goals"`
	Saves           int                `bson:"saves"`
	CleanSheets     int                `bson:"cleanSheets"`
	FunFact         string             `bson:"funFact"`
	Quote           string             `bson:"quote"`
	CreatedAt       time.Time          `bson:"createdAt"`
	UpdatedAt       time.Time          `bson:"updatedAt"`
}

func fromPlayer(p players.Player) playerDocument {
	doc := playerDocument{
		Name:            p.Name,
		FirstName:       p.FirstName,
		LastName:        p.LastName,
		Nickname:        p.Nickname,
		Position:        string(p.Position),
		PositionDisplay: p.PositionDisplay,
		Team:            string(p.Team),
		JerseyNumber:    p.JerseyNumber,
		Photo:           p.Photo,
		Bio:             p.Bio,
		Appearances:     p.Appearances,
		Goals:           p.Goals,
		Saves:           p.Saves,
		CleanSheets:     p.CleanSheets,
		FunFact:         p.FunFact,
		Quote:           p.Quote,
	}
	if oid, err := primitive.ObjectIDFromHex(p.ID); err == nil {
		doc.ID = oid
	}
	if p.CreatedAt != nil {
		doc.CreatedAt = *p.CreatedAt
	}
	if p.UpdatedAt != nil {
		doc.UpdatedAt = *p.UpdatedAt
	}
	return doc
}

func (d playerDocument) toPlayer() players.Player {
	p := players.Player{
		ID:              d.ID.Hex(),
		Name:            d.Name,
		FirstName:       d.FirstName,
		LastName:        d.LastName,
		Nickname:        d.Nickname,
		Position:        players.Position(d.Position),
		PositionDisplay: d.PositionDisplay,
		Team:            teams.Team(d.Team),
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
	if !d.CreatedAt.IsZero() {
		created := d.CreatedAt
		p.CreatedAt = &created
	}
	if !d.UpdatedAt.IsZero() {
		updated := d.UpdatedAt
		p.UpdatedAt = &updated
	}
	return p
}

// playerSchema mirrors players.Validate as a $jsonSchema collection validator.
func playerSchema() bson.M {
	positions := make(bson.A, 0, len(players.Positions))
	for _, p := range players.Positions {
		positions = append(positions, string(p))
	}
	teamNames := make(bson.A, 0, len(teams.All))
	for _, t := range teams.All {
		teamNames = append(teamNames, string(t))
	}
	counter := bson.M{"bsonType": bson.A{"int", "long"}, "minimum": 0}

	return bson.M{
		"bsonType": "object",
		"required": bson.A{"name", "firstName", "lastName", "position", "positionDisplay", "team", "photo"},
		"properties": bson.M{
			"name":            bson.M{"bsonType": "string"},
			"firstName":       bson.M{"bsonType": "string", "minLength": 1},
			"lastName":        bson.M{"bsonType": "string", "minLength": 1},
			"nickname":        bson.M{"bsonType": "string"},
			"position":        bson.M{"enum": positions},
			"positionDisplay": bson.M{"bsonType": "string"},
			"team":            bson.M{"enum": teamNames},
			"jerseyNumber":    bson.M{"bsonType": "string"},
			"photo":           bson.M{"bsonType": "string"},
			"appearances":     counter,
			"goals":           counter,
			"saves":           counter,
			"cleanSheets":     counter,
			"createdAt":       bson.M{"bsonType": "date"},
			"updatedAt":       bson.M{"bsonType": "date"},
		},
	}
}
