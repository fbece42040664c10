/* store.go
 * Contains the store struct and NewStore function. Each resource kind lives in its own collection, accessed through
 * the generic Collection type in collection.go
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"axe-throwing-api/api/models"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	UsersCollection         = "users"
	GamesCollection         = "games"
	LeaguesCollection       = "leagues"
	LeagueMembersCollection = "league_members"
	TeamsCollection         = "teams"
	SeasonsCollection       = "seasons"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	Collections struct {
		Users         *Collection[models.User]
		Games         *Collection[models.Game]
		Leagues       *Collection[models.League]
		LeagueMembers *Collection[models.LeagueMember]
		Teams         *Collection[models.Team]
		Seasons       *Collection[models.Season]
	}
}

// NewStore connects to mongo and sets up the resource collections.
// Preconditions: Receives a context, the database name and the mongo connection uri
// Postconditions: Returns pointer to a connected Store with its unique indexes in place, or an error if it occurs
func NewStore(ctx context.Context, dbName string, mongoURI string) (*Store, error) {
	if dbName == "" {
		return nil, fmt.Errorf("dbName cannot be empty")
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	s := newStore(client, client.Database(dbName))
	if err := s.Ping(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func newStore(client *mongo.Client, db *mongo.Database) *Store {
	s := &Store{
		Client:   client,
		Database: db,
	}
	s.Collections.Users = NewCollection[models.User](db.Collection(UsersCollection))
	s.Collections.Games = NewCollection[models.Game](db.Collection(GamesCollection))
	s.Collections.Leagues = NewCollection[models.League](db.Collection(LeaguesCollection))
	s.Collections.LeagueMembers = NewCollection[models.LeagueMember](db.Collection(LeagueMembersCollection))
	s.Collections.Teams = NewCollection[models.Team](db.Collection(TeamsCollection))
	s.Collections.Seasons = NewCollection[models.Season](db.Collection(SeasonsCollection))
	return s
}

// Ping checks the connection to the database server
func (s *Store) Ping(ctx context.Context) error {
	if err := s.Client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping mongo: %w", err)
	}
	return nil
}

// Disconnect closes the underlying client
func (s *Store) Disconnect(ctx context.Context) error {
	return s.Client.Disconnect(ctx)
}
