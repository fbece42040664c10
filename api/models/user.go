/* user.go
 * Contains the User schema. Users are players, admins or league captains, and carry their aggregate stats and an
 * embedded history of the games they have played
 * Authors: Zachary Bower
 */

package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserTypePlayer        = "player"
	UserTypeAdmin         = "admin"
	UserTypeLeagueCaptain = "league_captain"
)

type User struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	FirstName   string             `bson:"firstName" json:"firstName" validate:"required"`
	LastName    string             `bson:"lastName" json:"lastName" validate:"required"`
	Email       string             `bson:"email" json:"email" validate:"required"`
	PlayerID    *int64             `bson:"playerId,omitempty" json:"playerId,omitempty"`
	UserType    string             `bson:"userType" json:"userType" validate:"oneof=player admin league_captain"`
	PhoneNumber string             `bson:"phoneNumber,omitempty" json:"phoneNumber,omitempty"`

	// Aggregate stats
	Wins        int `bson:"wins" json:"wins"`
	Losses      int `bson:"losses" json:"losses"`
	Killshots   int `bson:"killshots" json:"killshots"`
	GamesPlayed int `bson:"gamesPlayed" json:"gamesPlayed"`

	Games []UserGame `bson:"games" json:"games" validate:"dive"`
}

// UserGame is one entry of a user's embedded game history
type UserGame struct {
	Date      time.Time `bson:"date" json:"date" validate:"required"`
	Opponent  string    `bson:"opponent" json:"opponent" validate:"required"`
	Score     int       `bson:"score" json:"score"`
	Win       bool      `bson:"win" json:"win"`
	Killshots int       `bson:"killshots" json:"killshots"`
}

func (u User) DocumentID() primitive.ObjectID {
	return u.ID
}

func (u User) SearchName() string {
	return u.FirstName + " " + u.LastName
}

// UserInput is the payload accepted when creating or updating a user
type UserInput struct {
	FirstName   *string         `json:"firstName" validate:"required"`
	LastName    *string         `json:"lastName" validate:"required"`
	Email       *string         `json:"email" validate:"required"`
	PlayerID    *int64          `json:"playerId"`
	UserType    *string         `json:"userType"`
	PhoneNumber *string         `json:"phoneNumber"`
	Wins        *int            `json:"wins"`
	Losses      *int            `json:"losses"`
	Killshots   *int            `json:"killshots"`
	GamesPlayed *int            `json:"gamesPlayed"`
	Games       []UserGameInput `json:"games" validate:"dive"`
}

// UserGameInput requires every field so a history entry can never be half filled
type UserGameInput struct {
	Date      *time.Time `json:"date" validate:"required"`
	Opponent  *string    `json:"opponent" validate:"required"`
	Score     *int       `json:"score" validate:"required"`
	Win       *bool      `json:"win" validate:"required"`
	Killshots *int       `json:"killshots" validate:"required"`
}

func (in UserInput) Build(_ time.Time) User {
	u := User{
		ID:          primitive.NewObjectID(),
		FirstName:   valueOr(in.FirstName, ""),
		LastName:    valueOr(in.LastName, ""),
		Email:       strings.TrimSpace(valueOr(in.Email, "")),
		PlayerID:    in.PlayerID,
		UserType:    valueOr(in.UserType, UserTypePlayer),
		PhoneNumber: valueOr(in.PhoneNumber, ""),
		Wins:        valueOr(in.Wins, 0),
		Losses:      valueOr(in.Losses, 0),
		Killshots:   valueOr(in.Killshots, 0),
		GamesPlayed: valueOr(in.GamesPlayed, 0),
		Games:       toUserGames(in.Games),
	}
	return u
}

// ApplyTo copies every non-null field of the payload onto u. The games history is replaced as a whole.
func (in UserInput) ApplyTo(u *User) error {
	setIf(&u.FirstName, in.FirstName)
	setIf(&u.LastName, in.LastName)
	if in.Email != nil {
		u.Email = strings.TrimSpace(*in.Email)
	}
	if in.PlayerID != nil {
		u.PlayerID = in.PlayerID
	}
	setIf(&u.UserType, in.UserType)
	setIf(&u.PhoneNumber, in.PhoneNumber)
	setIf(&u.Wins, in.Wins)
	setIf(&u.Losses, in.Losses)
	setIf(&u.Killshots, in.Killshots)
	setIf(&u.GamesPlayed, in.GamesPlayed)
	if in.Games != nil {
		u.Games = toUserGames(in.Games)
	}
	return nil
}

func toUserGames(in []UserGameInput) []UserGame {
	games := make([]UserGame, 0, len(in))
	for _, g := range in {
		games = append(games, UserGame{
			Date:      valueOr(g.Date, time.Time{}),
			Opponent:  valueOr(g.Opponent, ""),
			Score:     valueOr(g.Score, 0),
			Win:       valueOr(g.Win, false),
			Killshots: valueOr(g.Killshots, 0),
		})
	}
	return games
}
