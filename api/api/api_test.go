/* api_test.go
 * Contains unit tests for api.go, resource.go and teams.go - testing all public API methods against the in-memory
 * store
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"axe-throwing-api/api/models"
	"axe-throwing-api/api/store"

	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var startTime = time.Date(2024, time.April, 6, 19, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T {
	return &v
}

func newTestAPI(t *testing.T) (*API, *MockStore, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(startTime)
	s := NewMockStore()
	return NewAPI(s, clk, zerolog.Nop()), s, clk
}

func gameInput(gameID int64) models.GameInput {
	return models.GameInput{
		GameID:        ptr(gameID),
		Player1ID:     ptr(int64(1)),
		Player2ID:     ptr(int64(2)),
		LeagueGame:    ptr(false),
		GameType:      ptr("standard"),
		RuleType:      ptr("WATL"),
		Rounds:        ptr(10),
		WinningScore:  ptr(45),
		Player1Score:  ptr(45),
		Player2Score:  ptr(38),
		Player1Sticks: ptr(9),
		Player2Sticks: ptr(7),
		Player1Drops:  ptr(0),
		Player2Drops:  ptr(2),
		SeasonName:    ptr("Spring 2024"),
		SeasonID:      ptr(int64(1)),
	}
}

func userInput(first, last, email string) models.UserInput {
	return models.UserInput{FirstName: ptr(first), LastName: ptr(last), Email: ptr(email)}
}

// region Create tests

func TestCreate_GameDefaults(t *testing.T) {
	a, s, _ := newTestAPI(t)

	g, err := a.Games.Create(context.Background(), gameInput(1))
	require.NoError(t, err)

	assert.False(t, g.ID.IsZero())
	assert.Equal(t, startTime, g.DateCreated)
	assert.Equal(t, startTime, g.DateUpdated)
	assert.Len(t, s.GameRepo.All(), 1)
}

func TestCreate_MissingFieldsIsBadInput(t *testing.T) {
	a, s, _ := newTestAPI(t)
	in := gameInput(1)
	in.SeasonName = nil
	in.Rounds = nil

	_, err := a.Games.Create(context.Background(), in)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadInput)
	assert.Equal(t,
		"Game validation failed: rounds: Path `rounds` is required, seasonName: Path `seasonName` is required",
		err.Error())
	assert.Empty(t, s.GameRepo.All())
}

func TestCreate_DuplicateKeyIsBadInput(t *testing.T) {
	a, _, _ := newTestAPI(t)

	_, err := a.Games.Create(context.Background(), gameInput(7))
	require.NoError(t, err)

	_, err = a.Games.Create(context.Background(), gameInput(7))
	assert.ErrorIs(t, err, ErrBadInput)
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
	assert.Contains(t, err.Error(), "E11000 duplicate key error")
}

func TestCreate_UserDefaultsAndEnum(t *testing.T) {
	a, _, _ := newTestAPI(t)

	u, err := a.Users.Create(context.Background(), userInput("Ada", "Hatchet", "ada@example.com"))
	require.NoError(t, err)
	assert.Equal(t, models.UserTypePlayer, u.UserType)
	assert.Equal(t, 0, u.Wins)

	in := userInput("Bo", "Cleaver", "bo@example.com")
	in.UserType = ptr("referee")
	_, err = a.Users.Create(context.Background(), in)
	assert.ErrorIs(t, err, ErrBadInput)
	assert.Contains(t, err.Error(), "userType: `referee` is not a valid enum value for path `userType`")
}

func TestCreate_PersistenceFailureIsBadInput(t *testing.T) {
	a, s, _ := newTestAPI(t)
	s.GameRepo.InsertError = errors.New("write concern timeout")

	_, err := a.Games.Create(context.Background(), gameInput(1))
	assert.ErrorIs(t, err, ErrBadInput)
	assert.EqualError(t, err, "write concern timeout")
}

func TestCreate_LeagueMemberDateJoinedDefaultsToNow(t *testing.T) {
	a, _, _ := newTestAPI(t)

	m, err := a.LeagueMembers.Create(context.Background(), models.LeagueMemberInput{
		LeagueMemberID: ptr(int64(3)),
		LeagueID:       ptr(int64(1)),
		FirstName:      ptr("Ada"),
		LastName:       ptr("Hatchet"),
		Nickname:       ptr("Bullseye"),
	})
	require.NoError(t, err)
	assert.Equal(t, startTime, m.DateJoined)
	assert.Equal(t, 0, m.GamesWon)
}

// endregion

// region List tests

func TestList_ReturnsEveryRecord(t *testing.T) {
	a, s, _ := newTestAPI(t)
	s.GameRepo.Seed(store.CreateSampleGame(1), store.CreateSampleGame(2))

	games, err := a.Games.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, games, 2)
}

func TestList_EmptyCollection(t *testing.T) {
	a, _, _ := newTestAPI(t)

	seasons, err := a.Seasons.List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, seasons)
	assert.Empty(t, seasons)
}

func TestList_FailureIsInternal(t *testing.T) {
	a, s, _ := newTestAPI(t)
	s.TeamRepo.FindAllError = errors.New("connection reset by peer")

	_, err := a.Teams.List(context.Background(), "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadInput)
	assert.NotErrorIs(t, err, store.ErrNotFound)
}

func TestList_Search(t *testing.T) {
	a, s, _ := newTestAPI(t)
	s.TeamRepo.Seed(store.CreateSampleTeam("Splitters"), store.CreateSampleTeam("Hatchet Gang"))

	teams, err := a.Teams.List(context.Background(), "hatchet")
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "Hatchet Gang", teams[0].TeamName)

	assert.True(t, a.Teams.Searchable())
	assert.False(t, a.Games.Searchable())
}

// endregion

// region Load tests

func TestLoad(t *testing.T) {
	a, s, _ := newTestAPI(t)
	game := store.CreateSampleGame(4)
	s.GameRepo.Seed(game)

	t.Run("found by business key", func(t *testing.T) {
		result := a.Games.Load(context.Background(), "4")
		require.Equal(t, store.Found, result.Status)
		assert.Equal(t, game.ID, result.Record.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		result := a.Games.Load(context.Background(), "5")
		assert.Equal(t, store.NotFound, result.Status)
	})

	t.Run("unparseable id", func(t *testing.T) {
		result := a.Games.Load(context.Background(), game.ID.Hex())
		assert.Equal(t, store.NotFound, result.Status)
	})

	t.Run("store failure", func(t *testing.T) {
		s.GameRepo.FindError = errors.New("timeout")
		defer func() { s.GameRepo.FindError = nil }()

		result := a.Games.Load(context.Background(), "4")
		assert.Equal(t, store.Failed, result.Status)
		assert.EqualError(t, result.Err, "timeout")
	})
}

// endregion

// region Patch tests

func TestPatch_OnlySuppliedFieldsChange(t *testing.T) {
	a, s, clk := newTestAPI(t)
	game := store.CreateSampleGame(4)
	s.GameRepo.Seed(game)
	clk.Add(time.Hour)

	patched, err := a.Games.Patch(context.Background(), game, models.GameInput{Player2Score: ptr(41)})
	require.NoError(t, err)

	assert.Equal(t, 41, patched.Player2Score)
	assert.Equal(t, game.Player1Score, patched.Player1Score)
	assert.Equal(t, game.DateCreated, patched.DateCreated)
	assert.Equal(t, startTime.Add(time.Hour), patched.DateUpdated)

	stored := s.GameRepo.All()
	assert.Equal(t, 41, stored[0].Player2Score)
}

func TestPatch_InvalidEnumIsBadInput(t *testing.T) {
	a, s, _ := newTestAPI(t)
	league, err := a.Leagues.Create(context.Background(), models.LeagueInput{
		LeagueID:        ptr(int64(1)),
		LeagueName:      ptr("Tuesday Night"),
		LeagueType:      ptr(models.LeagueTypeStandard),
		RuleType:        ptr(models.RuleTypeWATL),
		GameType:        ptr("standard"),
		NumberOfMatches: ptr(8),
		KillshotAverage: ptr(1.5),
		ThrowAverage:    ptr(4.2),
		ScoreAverage:    ptr(52.0),
	})
	require.NoError(t, err)

	_, err = a.Leagues.Patch(context.Background(), league, models.LeagueInput{LeagueType: ptr("TRIO")})
	assert.ErrorIs(t, err, ErrBadInput)
	assert.Contains(t, err.Error(), "league_type: `TRIO` is not a valid enum value for path `league_type`")
	assert.Equal(t, models.LeagueTypeStandard, s.LeagueRepo.All()[0].LeagueType)
}

func TestPatch_SaveFailureIsBadInput(t *testing.T) {
	a, s, _ := newTestAPI(t)
	game := store.CreateSampleGame(4)
	s.GameRepo.Seed(game)
	s.GameRepo.SaveError = errors.New("write conflict")

	_, err := a.Games.Patch(context.Background(), game, models.GameInput{Rounds: ptr(12)})
	assert.ErrorIs(t, err, ErrBadInput)
}

func TestPatch_VanishedRecordIsNotFound(t *testing.T) {
	a, _, _ := newTestAPI(t)

	_, err := a.Games.Patch(context.Background(), store.CreateSampleGame(4), models.GameInput{Rounds: ptr(12)})
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.NotErrorIs(t, err, ErrBadInput)
}

func TestPatch_DuplicateKeyIsBadInput(t *testing.T) {
	a, s, _ := newTestAPI(t)
	g1, g2 := store.CreateSampleGame(1), store.CreateSampleGame(2)
	s.GameRepo.Seed(g1, g2)

	_, err := a.Games.Patch(context.Background(), g2, models.GameInput{GameID: ptr(int64(1))})
	assert.ErrorIs(t, err, ErrBadInput)
	assert.ErrorIs(t, err, store.ErrDuplicateKey)
}

func TestPatch_SeasonShallowMerge(t *testing.T) {
	a, s, clk := newTestAPI(t)
	season, err := a.Seasons.Create(context.Background(), models.SeasonInput{
		SeasonID:   ptr(int64(2)),
		SeasonName: ptr("Spring"),
		StartDate:  ptr(startTime),
		EndDate:    ptr(startTime.AddDate(0, 3, 0)),
	})
	require.NoError(t, err)
	clk.Add(time.Minute)

	var patch models.SeasonPatch
	require.NoError(t, json.Unmarshal([]byte(`{"seasonName": "Summer", "games": ["6610a1f2c3d4e5f6a7b8c9d0"]}`), &patch))

	patched, err := a.Seasons.Patch(context.Background(), season, patch)
	require.NoError(t, err)
	assert.Equal(t, "Summer", patched.SeasonName)
	assert.Equal(t, season.StartDate, patched.StartDate)
	require.Len(t, patched.Games, 1)
	assert.Equal(t, "6610a1f2c3d4e5f6a7b8c9d0", patched.Games[0].Hex())
	assert.Equal(t, startTime.Add(time.Minute), patched.DateUpdated)
	assert.Equal(t, "Summer", s.SeasonRepo.All()[0].SeasonName)
}

func TestPatch_SeasonNullResetIsBadInput(t *testing.T) {
	a, s, _ := newTestAPI(t)
	season, err := a.Seasons.Create(context.Background(), models.SeasonInput{
		SeasonID:   ptr(int64(2)),
		SeasonName: ptr("Spring"),
		StartDate:  ptr(startTime),
		EndDate:    ptr(startTime.AddDate(0, 3, 0)),
	})
	require.NoError(t, err)

	_, err = a.Seasons.Patch(context.Background(), season, models.SeasonPatch{"endDate": json.RawMessage("null")})
	assert.ErrorIs(t, err, ErrBadInput)
	assert.Contains(t, err.Error(), "endDate: Path `endDate` is required")
	assert.False(t, s.SeasonRepo.All()[0].EndDate.IsZero())
}

func TestPatch_SeasonNullIDIsBadInput(t *testing.T) {
	a, s, _ := newTestAPI(t)
	season, err := a.Seasons.Create(context.Background(), models.SeasonInput{
		SeasonID:   ptr(int64(3)),
		SeasonName: ptr("Fall"),
		StartDate:  ptr(startTime),
		EndDate:    ptr(startTime.AddDate(0, 3, 0)),
	})
	require.NoError(t, err)

	_, err = a.Seasons.Patch(context.Background(), season, models.SeasonPatch{"seasonId": json.RawMessage("null")})
	assert.ErrorIs(t, err, ErrBadInput)
	assert.Contains(t, err.Error(), "seasonId: Path `seasonId` is required")
	assert.Equal(t, int64(3), s.SeasonRepo.All()[0].SeasonID)

	loaded := a.Seasons.Load(context.Background(), "3")
	assert.Equal(t, store.Found, loaded.Status)
}

// endregion

// region Delete tests

func TestDelete_RemovesRecord(t *testing.T) {
	a, s, _ := newTestAPI(t)
	u, err := a.Users.Create(context.Background(), userInput("Ada", "Hatchet", "ada@example.com"))
	require.NoError(t, err)

	require.NoError(t, a.Users.Delete(context.Background(), u))
	assert.Empty(t, s.UserRepo.All())
	assert.Equal(t, "User deleted", a.Users.DeletedMessage())
}

func TestDelete_FailureIsInternal(t *testing.T) {
	a, s, _ := newTestAPI(t)
	game := store.CreateSampleGame(1)
	s.GameRepo.Seed(game)
	s.GameRepo.DeleteError = errors.New("not primary")

	err := a.Games.Delete(context.Background(), game)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadInput)
}

func TestDelete_TeamInLeagueIsRefused(t *testing.T) {
	a, s, _ := newTestAPI(t)
	team := store.CreateSampleTeam("Splitters", 3)
	s.TeamRepo.Seed(team)

	err := a.Teams.Delete(context.Background(), team)
	assert.ErrorIs(t, err, ErrBadInput)
	assert.ErrorIs(t, err, ErrTeamInLeague)
	assert.EqualError(t, err, "Team is part of one or more leagues and cannot be deleted")
	assert.Len(t, s.TeamRepo.All(), 1)
}

func TestDelete_TeamWithoutLeagues(t *testing.T) {
	a, s, _ := newTestAPI(t)
	team := store.CreateSampleTeam("Splitters")
	s.TeamRepo.Seed(team)

	require.NoError(t, a.Teams.Delete(context.Background(), team))
	assert.Empty(t, s.TeamRepo.All())
}

// endregion

// region BulkDelete tests

func TestBulkDelete_SkipsUnknownIDs(t *testing.T) {
	a, s, _ := newTestAPI(t)
	s.GameRepo.Seed(store.CreateSampleGame(1), store.CreateSampleGame(2), store.CreateSampleGame(3))

	result, err := a.Games.BulkDelete(context.Background(), []int64{1, 2, 99})
	require.NoError(t, err)
	assert.Equal(t, BulkDeleteResult{Acknowledged: true, DeletedCount: 2}, result)

	remaining := s.GameRepo.All()
	require.Len(t, remaining, 1)
	assert.Equal(t, int64(3), remaining[0].GameID)
}

func TestBulkDelete_LeagueMembers(t *testing.T) {
	a, s, _ := newTestAPI(t)
	s.LeagueMemberRepo.Seed(store.CreateSampleLeagueMember(10), store.CreateSampleLeagueMember(11))

	result, err := a.LeagueMembers.BulkDelete(context.Background(), []int64{10, 11})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.DeletedCount)
	assert.Empty(t, s.LeagueMemberRepo.All())
}

func TestBulkDelete_NoIDs(t *testing.T) {
	a, s, _ := newTestAPI(t)
	s.GameRepo.Seed(store.CreateSampleGame(1))

	result, err := a.Games.BulkDelete(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, BulkDeleteResult{Acknowledged: true}, result)
	assert.Len(t, s.GameRepo.All(), 1)
}

func TestBulkDelete_FailureIsInternal(t *testing.T) {
	a, s, _ := newTestAPI(t)
	s.GameRepo.DeleteManyError = errors.New("shutdown in progress")

	_, err := a.Games.BulkDelete(context.Background(), []int64{1})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadInput)
}

func TestBulkDelete_RequiresNumericKey(t *testing.T) {
	a, _, _ := newTestAPI(t)

	_, err := a.Users.BulkDelete(context.Background(), []int64{1})
	assert.Error(t, err)
}

// endregion

// region Team member tests

func TestAddTeamMember(t *testing.T) {
	a, s, clk := newTestAPI(t)
	team := store.CreateSampleTeam("Splitters")
	s.TeamRepo.Seed(team)
	clk.Add(time.Hour)

	updated, err := a.AddTeamMember(context.Background(), team, models.TeamMemberInput{
		PlayerID: ptr(int64(12)),
		Name:     ptr("Bo Cleaver"),
	})
	require.NoError(t, err)

	require.Len(t, updated.Members, 2)
	added := updated.Members[1]
	assert.NotEmpty(t, added.ID)
	assert.Equal(t, "Bo Cleaver", added.Name)
	assert.Equal(t, startTime.Add(time.Hour), updated.DateUpdated)
	assert.Len(t, a.ListTeamMembers(s.TeamRepo.All()[0]), 2)

	// The loaded record is left untouched
	assert.Len(t, team.Members, 1)
}

func TestAddTeamMember_InvalidIsBadInput(t *testing.T) {
	a, s, _ := newTestAPI(t)
	team := store.CreateSampleTeam("Splitters")
	s.TeamRepo.Seed(team)

	_, err := a.AddTeamMember(context.Background(), team, models.TeamMemberInput{PlayerID: ptr(int64(12))})
	assert.ErrorIs(t, err, ErrBadInput)
	assert.Contains(t, err.Error(), "name: Path `name` is required")
	assert.Len(t, s.TeamRepo.All()[0].Members, 1)
}

func TestRemoveTeamMember(t *testing.T) {
	a, s, _ := newTestAPI(t)
	team := store.CreateSampleTeam("Splitters")
	s.TeamRepo.Seed(team)

	updated, err := a.RemoveTeamMember(context.Background(), team, team.Members[0].ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Members)
	assert.Empty(t, s.TeamRepo.All()[0].Members)
}

func TestRemoveTeamMember_UnknownIsNotFound(t *testing.T) {
	a, s, _ := newTestAPI(t)
	team := store.CreateSampleTeam("Splitters")
	s.TeamRepo.Seed(team)

	_, err := a.RemoveTeamMember(context.Background(), team, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	assert.Len(t, s.TeamRepo.All()[0].Members, 1)
}

func TestListTeamMembers_NeverNil(t *testing.T) {
	a, _, _ := newTestAPI(t)
	assert.Equal(t, []models.TeamMember{}, a.ListTeamMembers(models.Team{ID: primitive.NewObjectID()}))
}

// endregion

func TestPing(t *testing.T) {
	a, s, _ := newTestAPI(t)
	assert.NoError(t, a.Ping(context.Background()))

	s.PingError = errors.New("no reachable servers")
	assert.EqualError(t, a.Ping(context.Background()), "no reachable servers")
}
