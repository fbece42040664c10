/* team.go
 * Contains the Team schema. Team members are embedded sub-documents with their own id so they can be removed
 * one at a time
 * Authors: Zachary Bower
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Team struct {
	ID          primitive.ObjectID `bson:"_id" json:"_id"`
	TeamName    string             `bson:"teamName" json:"teamName" validate:"required"`
	Members     []TeamMember       `bson:"members" json:"members" validate:"dive"`
	Leagues     []int64            `bson:"leagues" json:"leagues"` // league_id of every league the team plays in
	Wins        int                `bson:"wins" json:"wins"`
	Losses      int                `bson:"losses" json:"losses"`
	CaptainID   *int64             `bson:"captainId,omitempty" json:"captainId,omitempty"`
	Logo        []byte             `bson:"logo,omitempty" json:"logo,omitempty"`
	DateCreated time.Time          `bson:"dateCreated" json:"dateCreated"`
	DateUpdated time.Time          `bson:"dateUpdated" json:"dateUpdated"`
}

type TeamMember struct {
	ID       string `bson:"_id" json:"_id"`
	PlayerID int64  `bson:"playerId" json:"playerId"`
	Name     string `bson:"name" json:"name" validate:"required"`
}

func (t Team) DocumentID() primitive.ObjectID {
	return t.ID
}

func (t Team) SearchName() string {
	return t.TeamName
}

func (t *Team) Touch(now time.Time) {
	t.DateUpdated = now
}

// HasLeagues reports whether the team is still associated with at least one league
func (t Team) HasLeagues() bool {
	return len(t.Leagues) > 0
}

// MemberIndex returns the position of the member with the given sub-document id, or -1
func (t Team) MemberIndex(memberID string) int {
	for i, m := range t.Members {
		if m.ID == memberID {
			return i
		}
	}
	return -1
}

type TeamInput struct {
	TeamName  *string           `json:"teamName" validate:"required"`
	Members   []TeamMemberInput `json:"members" validate:"dive"`
	Leagues   []int64           `json:"leagues"`
	Wins      *int              `json:"wins"`
	Losses    *int              `json:"losses"`
	CaptainID *int64            `json:"captainId"`
	Logo      []byte            `json:"logo"`
}

type TeamMemberInput struct {
	PlayerID *int64  `json:"playerId" validate:"required"`
	Name     *string `json:"name" validate:"required"`
}

// NewMember creates the sub-document for a member, generating its id
func (in TeamMemberInput) NewMember() TeamMember {
	return TeamMember{
		ID:       uuid.NewString(),
		PlayerID: valueOr(in.PlayerID, 0),
		Name:     valueOr(in.Name, ""),
	}
}

func (in TeamInput) Build(now time.Time) Team {
	t := Team{
		ID:          primitive.NewObjectID(),
		TeamName:    valueOr(in.TeamName, ""),
		Members:     toTeamMembers(in.Members),
		Leagues:     in.Leagues,
		Wins:        valueOr(in.Wins, 0),
		Losses:      valueOr(in.Losses, 0),
		CaptainID:   in.CaptainID,
		Logo:        in.Logo,
		DateCreated: now,
		DateUpdated: now,
	}
	if t.Leagues == nil {
		t.Leagues = []int64{}
	}
	return t
}

func (in TeamInput) ApplyTo(t *Team) error {
	setIf(&t.TeamName, in.TeamName)
	if in.Members != nil {
		t.Members = toTeamMembers(in.Members)
	}
	if in.Leagues != nil {
		t.Leagues = in.Leagues
	}
	setIf(&t.Wins, in.Wins)
	setIf(&t.Losses, in.Losses)
	if in.CaptainID != nil {
		t.CaptainID = in.CaptainID
	}
	if in.Logo != nil {
		t.Logo = in.Logo
	}
	return nil
}

func toTeamMembers(in []TeamMemberInput) []TeamMember {
	members := make([]TeamMember, 0, len(in))
	for _, m := range in {
		members = append(members, m.NewMember())
	}
	return members
}
