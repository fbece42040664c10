/* league.go
 * Contains the League and LeagueMember schemas
 * Authors: Zachary Bower
 */

package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	LeagueTypeStandard = "STANDARD"
	LeagueTypeDuo      = "DUO"
	LeagueTypeOther    = "OTHER"

	RuleTypeWATL  = "WATL"
	RuleTypeIATF  = "IATF"
	RuleTypeOther = "OTHER"
)

type League struct {
	ID              primitive.ObjectID `bson:"_id" json:"_id"`
	LeagueID        int64              `bson:"league_id" json:"league_id"`
	LeagueName      string             `bson:"league_name" json:"league_name" validate:"required"`
	LeagueType      string             `bson:"league_type" json:"league_type" validate:"oneof=STANDARD DUO OTHER"`
	RuleType        string             `bson:"rule_type" json:"rule_type" validate:"oneof=WATL IATF OTHER"`
	GameType        string             `bson:"game_type" json:"game_type" validate:"required"`
	NumberOfMatches int                `bson:"number_of_matches" json:"number_of_matches"`
	KillshotAverage float64            `bson:"killshot_average" json:"killshot_average"`
	ThrowAverage    float64            `bson:"throw_average" json:"throw_average"`
	ScoreAverage    float64            `bson:"score_average" json:"score_average"`
}

func (l League) DocumentID() primitive.ObjectID {
	return l.ID
}

func (l League) SearchName() string {
	return l.LeagueName
}

type LeagueInput struct {
	LeagueID        *int64   `json:"league_id" validate:"required"`
	LeagueName      *string  `json:"league_name" validate:"required"`
	LeagueType      *string  `json:"league_type" validate:"required"`
	RuleType        *string  `json:"rule_type" validate:"required"`
	GameType        *string  `json:"game_type" validate:"required"`
	NumberOfMatches *int     `json:"number_of_matches" validate:"required"`
	KillshotAverage *float64 `json:"killshot_average" validate:"required"`
	ThrowAverage    *float64 `json:"throw_average" validate:"required"`
	ScoreAverage    *float64 `json:"score_average" validate:"required"`
}

func (in LeagueInput) Build(_ time.Time) League {
	return League{
		ID:              primitive.NewObjectID(),
		LeagueID:        valueOr(in.LeagueID, 0),
		LeagueName:      valueOr(in.LeagueName, ""),
		LeagueType:      valueOr(in.LeagueType, ""),
		RuleType:        valueOr(in.RuleType, ""),
		GameType:        valueOr(in.GameType, ""),
		NumberOfMatches: valueOr(in.NumberOfMatches, 0),
		KillshotAverage: valueOr(in.KillshotAverage, 0),
		ThrowAverage:    valueOr(in.ThrowAverage, 0),
		ScoreAverage:    valueOr(in.ScoreAverage, 0),
	}
}

func (in LeagueInput) ApplyTo(l *League) error {
	setIf(&l.LeagueID, in.LeagueID)
	setIf(&l.LeagueName, in.LeagueName)
	setIf(&l.LeagueType, in.LeagueType)
	setIf(&l.RuleType, in.RuleType)
	setIf(&l.GameType, in.GameType)
	setIf(&l.NumberOfMatches, in.NumberOfMatches)
	setIf(&l.KillshotAverage, in.KillshotAverage)
	setIf(&l.ThrowAverage, in.ThrowAverage)
	setIf(&l.ScoreAverage, in.ScoreAverage)
	return nil
}

type LeagueMember struct {
	ID             primitive.ObjectID `bson:"_id" json:"_id"`
	LeagueMemberID int64              `bson:"league_member_id" json:"league_member_id"`
	LeagueID       int64              `bson:"league_id" json:"league_id"`
	FirstName      string             `bson:"league_member_first_name" json:"league_member_first_name" validate:"required"`
	LastName       string             `bson:"league_member_last_name" json:"league_member_last_name" validate:"required"`
	Nickname       string             `bson:"league_member_nickname" json:"league_member_nickname" validate:"required"`
	GamesWon       int                `bson:"games_won_in_league" json:"games_won_in_league"`
	GamesLost      int                `bson:"games_lost_in_league" json:"games_lost_in_league"`
	GamesTied      int                `bson:"games_tied_in_league" json:"games_tied_in_league"`
	DateJoined     time.Time          `bson:"date_joined" json:"date_joined"`
}

func (m LeagueMember) DocumentID() primitive.ObjectID {
	return m.ID
}

func (m LeagueMember) SearchName() string {
	return strings.Join([]string{m.FirstName, m.LastName, m.Nickname}, " ")
}

type LeagueMemberInput struct {
	LeagueMemberID *int64     `json:"league_member_id" validate:"required"`
	LeagueID       *int64     `json:"league_id" validate:"required"`
	FirstName      *string    `json:"league_member_first_name" validate:"required"`
	LastName       *string    `json:"league_member_last_name" validate:"required"`
	Nickname       *string    `json:"league_member_nickname" validate:"required"`
	GamesWon       *int       `json:"games_won_in_league"`
	GamesLost      *int       `json:"games_lost_in_league"`
	GamesTied      *int       `json:"games_tied_in_league"`
	DateJoined     *time.Time `json:"date_joined"`
}

func (in LeagueMemberInput) Build(now time.Time) LeagueMember {
	return LeagueMember{
		ID:             primitive.NewObjectID(),
		LeagueMemberID: valueOr(in.LeagueMemberID, 0),
		LeagueID:       valueOr(in.LeagueID, 0),
		FirstName:      valueOr(in.FirstName, ""),
		LastName:       valueOr(in.LastName, ""),
		Nickname:       valueOr(in.Nickname, ""),
		GamesWon:       valueOr(in.GamesWon, 0),
		GamesLost:      valueOr(in.GamesLost, 0),
		GamesTied:      valueOr(in.GamesTied, 0),
		DateJoined:     valueOr(in.DateJoined, now),
	}
}

// ApplyTo leaves date_joined untouched, it is only set when the member is created
func (in LeagueMemberInput) ApplyTo(m *LeagueMember) error {
	setIf(&m.LeagueMemberID, in.LeagueMemberID)
	setIf(&m.LeagueID, in.LeagueID)
	setIf(&m.FirstName, in.FirstName)
	setIf(&m.LastName, in.LastName)
	setIf(&m.Nickname, in.Nickname)
	setIf(&m.GamesWon, in.GamesWon)
	setIf(&m.GamesLost, in.GamesLost)
	setIf(&m.GamesTied, in.GamesTied)
	return nil
}
