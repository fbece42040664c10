/* api.go
 * This file contains the public methods for interacting with this package. Each resource kind is exposed as a
 * Resource field of API; team member sub-resource operations live in teams.go
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"time"

	"axe-throwing-api/api/logic"
	"axe-throwing-api/api/models"
	"axe-throwing-api/api/store"

	"github.com/go-playground/validator/v10"
	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
)

type (
	UserResource         = Resource[models.User, models.UserInput, models.UserInput]
	GameResource         = Resource[models.Game, models.GameInput, models.GameInput]
	LeagueResource       = Resource[models.League, models.LeagueInput, models.LeagueInput]
	LeagueMemberResource = Resource[models.LeagueMember, models.LeagueMemberInput, models.LeagueMemberInput]
	TeamResource         = Resource[models.Team, models.TeamInput, models.TeamInput]
	SeasonResource       = Resource[models.Season, models.SeasonInput, models.SeasonPatch]
)

// API provides methods for interacting with the league data layer
type API struct {
	Store store.Interface

	Users         *UserResource
	Games         *GameResource
	Leagues       *LeagueResource
	LeagueMembers *LeagueMemberResource
	Teams         *TeamResource
	Seasons       *SeasonResource

	validate *validator.Validate
	clock    clock.Clock
	log      zerolog.Logger
}

// NewAPI creates a new API instance over the provided store.
// Preconditions: Receives the store, the clock used for timestamps and the root logger
// Postconditions: Returns pointer to an API with every resource wired to its repository
func NewAPI(s store.Interface, clk clock.Clock, logger zerolog.Logger) *API {
	a := &API{
		Store:    s,
		validate: models.NewValidator(),
		clock:    clk,
		log:      logger,
	}

	a.Users = newResource[models.User, models.UserInput, models.UserInput](
		a, "User", "User", store.ObjectIDKey, s.Users())
	a.Users.search = logic.FilterByName[models.User]

	a.Games = newResource[models.Game, models.GameInput, models.GameInput](
		a, "Game", "Game", store.NumericKey("gameId"), s.Games())
	a.Games.BulkField = "gameIds"

	a.Leagues = newResource[models.League, models.LeagueInput, models.LeagueInput](
		a, "League", "League", store.NumericKey("league_id"), s.Leagues())
	a.Leagues.search = logic.FilterByName[models.League]

	a.LeagueMembers = newResource[models.LeagueMember, models.LeagueMemberInput, models.LeagueMemberInput](
		a, "LeagueMember", "League member", store.NumericKey("league_member_id"), s.LeagueMembers())
	a.LeagueMembers.BulkField = "league_member_ids"
	a.LeagueMembers.search = logic.FilterByName[models.LeagueMember]

	a.Teams = newResource[models.Team, models.TeamInput, models.TeamInput](
		a, "Team", "Team", store.ObjectIDKey, s.Teams())
	a.Teams.search = logic.FilterByName[models.Team]
	a.Teams.beforeDelete = checkTeamLeagues

	a.Seasons = newResource[models.Season, models.SeasonInput, models.SeasonPatch](
		a, "Season", "Season", store.NumericKey("seasonId"), s.Seasons())
	a.Seasons.search = logic.FilterByName[models.Season]

	return a
}

// Ping checks that the store is reachable
func (a *API) Ping(ctx context.Context) error {
	return a.Store.Ping(ctx)
}

// now returns the current time at the precision the db stores
func now(clk clock.Clock) time.Time {
	return clk.Now().UTC().Truncate(time.Millisecond)
}
