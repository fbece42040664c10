/* test_helpers.go
 * Contains test helper functions and sample records for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"axe-throwing-api/api/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function that drops the database and logs any failure to do so.
func CreateTestStore(ctx context.Context, mongoURI string) (*Store, func(), error) {
	s, err := NewStore(ctx, "test_axe_throwing", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if err := teardownTestStore(context.Background(), s); err != nil {
			log.Error().Err(err).Msg("failed to clean up test store")
		}
	}

	return s, cleanup, nil
}

// teardownTestStore drops the test database and disconnects the client. Both steps run even if the first fails.
func teardownTestStore(ctx context.Context, s *Store) error {
	var errs []error
	if err := s.Database.Drop(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to drop test database: %w", err))
	}
	if err := s.Disconnect(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to disconnect test client: %w", err))
	}
	return errors.Join(errs...)
}

// SampleTime is a millisecond precision UTC time, so it survives a round trip through the db unchanged
var SampleTime = time.Date(2024, time.March, 2, 18, 30, 0, 0, time.UTC)

// CreateSampleGame creates a Game for testing
func CreateSampleGame(gameID int64) models.Game {
	return models.Game{
		ID:            primitive.NewObjectID(),
		GameID:        gameID,
		Player1ID:     1,
		Player2ID:     2,
		LeagueGame:    true,
		GameType:      "standard",
		RuleType:      "WATL",
		Rounds:        10,
		WinningScore:  45,
		Player1Score:  45,
		Player2Score:  39,
		Player1Sticks: 9,
		Player2Sticks: 8,
		Player1Drops:  0,
		Player2Drops:  1,
		SeasonName:    "Spring 2024",
		SeasonID:      1,
		DateCreated:   SampleTime,
		DateUpdated:   SampleTime,
	}
}

// CreateSampleLeagueMember creates a LeagueMember for testing
func CreateSampleLeagueMember(memberID int64) models.LeagueMember {
	return models.LeagueMember{
		ID:             primitive.NewObjectID(),
		LeagueMemberID: memberID,
		LeagueID:       7,
		FirstName:      "Ada",
		LastName:       "Hatchet",
		Nickname:       "Bullseye",
		DateJoined:     SampleTime,
	}
}

// CreateSampleTeam creates a Team with one member for testing
func CreateSampleTeam(name string, leagues ...int64) models.Team {
	if leagues == nil {
		leagues = []int64{}
	}
	return models.Team{
		ID:       primitive.NewObjectID(),
		TeamName: name,
		Members: []models.TeamMember{
			{ID: "2b7f5c7e-0d5a-4c55-9d47-5e1f2b0c9a11", PlayerID: 11, Name: "Ada Hatchet"},
		},
		Leagues:     leagues,
		DateCreated: SampleTime,
		DateUpdated: SampleTime,
	}
}
