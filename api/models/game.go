/* game.go
 * Contains the Game schema, a single match between two players
 * Authors: Zachary Bower
 */

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Game struct {
	ID            primitive.ObjectID `bson:"_id" json:"_id"`
	GameID        int64              `bson:"gameId" json:"gameId"`
	Player1ID     int64              `bson:"player1Id" json:"player1Id"`
	Player2ID     int64              `bson:"player2Id" json:"player2Id"`
	LeagueGame    bool               `bson:"leagueGame" json:"leagueGame"`
	GameType      string             `bson:"gameType" json:"gameType" validate:"required"`
	RuleType      string             `bson:"ruleType" json:"ruleType" validate:"required"`
	Rounds        int                `bson:"rounds" json:"rounds"`
	WinningScore  int                `bson:"winningScore" json:"winningScore"`
	Player1Score  int                `bson:"player1Score" json:"player1Score"`
	Player2Score  int                `bson:"player2Score" json:"player2Score"`
	Player1Sticks int                `bson:"player1Sticks" json:"player1Sticks"`
	Player2Sticks int                `bson:"player2Sticks" json:"player2Sticks"`
	Player1Drops  int                `bson:"player1Drops" json:"player1Drops"`
	Player2Drops  int                `bson:"player2Drops" json:"player2Drops"`
	SeasonName    string             `bson:"seasonName" json:"seasonName" validate:"required"`
	SeasonID      int64              `bson:"seasonId" json:"seasonId"`
	DateCreated   time.Time          `bson:"dateCreated" json:"dateCreated"`
	DateUpdated   time.Time          `bson:"dateUpdated" json:"dateUpdated"`
}

func (g Game) DocumentID() primitive.ObjectID {
	return g.ID
}

func (g *Game) Touch(now time.Time) {
	g.DateUpdated = now
}

// GameInput is the payload accepted when creating or updating a game. Every field is required on create.
type GameInput struct {
	GameID        *int64  `json:"gameId" validate:"required"`
	Player1ID     *int64  `json:"player1Id" validate:"required"`
	Player2ID     *int64  `json:"player2Id" validate:"required"`
	LeagueGame    *bool   `json:"leagueGame" validate:"required"`
	GameType      *string `json:"gameType" validate:"required"`
	RuleType      *string `json:"ruleType" validate:"required"`
	Rounds        *int    `json:"rounds" validate:"required"`
	WinningScore  *int    `json:"winningScore" validate:"required"`
	Player1Score  *int    `json:"player1Score" validate:"required"`
	Player2Score  *int    `json:"player2Score" validate:"required"`
	Player1Sticks *int    `json:"player1Sticks" validate:"required"`
	Player2Sticks *int    `json:"player2Sticks" validate:"required"`
	Player1Drops  *int    `json:"player1Drops" validate:"required"`
	Player2Drops  *int    `json:"player2Drops" validate:"required"`
	SeasonName    *string `json:"seasonName" validate:"required"`
	SeasonID      *int64  `json:"seasonId" validate:"required"`
}

func (in GameInput) Build(now time.Time) Game {
	return Game{
		ID:            primitive.NewObjectID(),
		GameID:        valueOr(in.GameID, 0),
		Player1ID:     valueOr(in.Player1ID, 0),
		Player2ID:     valueOr(in.Player2ID, 0),
		LeagueGame:    valueOr(in.LeagueGame, false),
		GameType:      valueOr(in.GameType, ""),
		RuleType:      valueOr(in.RuleType, ""),
		Rounds:        valueOr(in.Rounds, 0),
		WinningScore:  valueOr(in.WinningScore, 0),
		Player1Score:  valueOr(in.Player1Score, 0),
		Player2Score:  valueOr(in.Player2Score, 0),
		Player1Sticks: valueOr(in.Player1Sticks, 0),
		Player2Sticks: valueOr(in.Player2Sticks, 0),
		Player1Drops:  valueOr(in.Player1Drops, 0),
		Player2Drops:  valueOr(in.Player2Drops, 0),
		SeasonName:    valueOr(in.SeasonName, ""),
		SeasonID:      valueOr(in.SeasonID, 0),
		DateCreated:   now,
		DateUpdated:   now,
	}
}

func (in GameInput) ApplyTo(g *Game) error {
	setIf(&g.GameID, in.GameID)
	setIf(&g.Player1ID, in.Player1ID)
	setIf(&g.Player2ID, in.Player2ID)
	setIf(&g.LeagueGame, in.LeagueGame)
	setIf(&g.GameType, in.GameType)
	setIf(&g.RuleType, in.RuleType)
	setIf(&g.Rounds, in.Rounds)
	setIf(&g.WinningScore, in.WinningScore)
	setIf(&g.Player1Score, in.Player1Score)
	setIf(&g.Player2Score, in.Player2Score)
	setIf(&g.Player1Sticks, in.Player1Sticks)
	setIf(&g.Player2Sticks, in.Player2Sticks)
	setIf(&g.Player1Drops, in.Player1Drops)
	setIf(&g.Player2Drops, in.Player2Drops)
	setIf(&g.SeasonName, in.SeasonName)
	setIf(&g.SeasonID, in.SeasonID)
	return nil
}
