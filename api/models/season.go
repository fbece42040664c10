/* season.go
 * Contains the Season schema. Unlike the other resources a season patch is a shallow merge: every top level key in
 * the payload overwrites the record, and an explicit null resets the field
 * Authors: Zachary Bower
 */

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Season struct {
	ID          primitive.ObjectID   `bson:"_id" json:"_id"`
	SeasonID    int64                `bson:"seasonId" json:"seasonId"`
	SeasonName  string               `bson:"seasonName" json:"seasonName" validate:"required"`
	StartDate   time.Time            `bson:"startDate" json:"startDate" validate:"required"`
	EndDate     time.Time            `bson:"endDate" json:"endDate" validate:"required"`
	Games       []primitive.ObjectID `bson:"games" json:"games"`
	DateCreated time.Time            `bson:"dateCreated" json:"dateCreated"`
	DateUpdated time.Time            `bson:"dateUpdated" json:"dateUpdated"`
}

func (s Season) DocumentID() primitive.ObjectID {
	return s.ID
}

func (s Season) SearchName() string {
	return s.SeasonName
}

func (s *Season) Touch(now time.Time) {
	s.DateUpdated = now
}

type SeasonInput struct {
	SeasonID   *int64               `json:"seasonId" validate:"required"`
	SeasonName *string              `json:"seasonName" validate:"required"`
	StartDate  *time.Time           `json:"startDate" validate:"required"`
	EndDate    *time.Time           `json:"endDate" validate:"required"`
	Games      []primitive.ObjectID `json:"games"`
}

func (in SeasonInput) Build(now time.Time) Season {
	s := Season{
		ID:          primitive.NewObjectID(),
		SeasonID:    valueOr(in.SeasonID, 0),
		SeasonName:  valueOr(in.SeasonName, ""),
		StartDate:   valueOr(in.StartDate, time.Time{}),
		EndDate:     valueOr(in.EndDate, time.Time{}),
		Games:       in.Games,
		DateCreated: now,
		DateUpdated: now,
	}
	if s.Games == nil {
		s.Games = []primitive.ObjectID{}
	}
	return s
}

// SeasonPatch holds the raw top level keys of a season update payload
type SeasonPatch map[string]json.RawMessage

var nullJSON = []byte("null")

// seasonFields maps the mergeable json keys to the record field they overwrite
var seasonFields = map[string]func(s *Season) any{
	"seasonId":    func(s *Season) any { return &s.SeasonID },
	"seasonName":  func(s *Season) any { return &s.SeasonName },
	"startDate":   func(s *Season) any { return &s.StartDate },
	"endDate":     func(s *Season) any { return &s.EndDate },
	"games":       func(s *Season) any { return &s.Games },
	"dateCreated": func(s *Season) any { return &s.DateCreated },
	"dateUpdated": func(s *Season) any { return &s.DateUpdated },
}

// ApplyTo merges the payload onto s. Unknown keys, including _id, are ignored.
// Preconditions: Receives the loaded season
// Postconditions: Every known key present in the payload has overwritten its field, or an error is returned if a
// value cannot be decoded into the field's type or seasonId is null
func (p SeasonPatch) ApplyTo(s *Season) error {
	for key, raw := range p {
		field, ok := seasonFields[key]
		if !ok {
			continue
		}

		isNull := bytes.Equal(bytes.TrimSpace(raw), nullJSON)
		if isNull && key == "seasonId" {
			// 0 is a valid season id, so a reset key would pass record validation
			return &ValidationError{Kind: "Season", Problems: []string{"seasonId: Path `seasonId` is required"}}
		}

		dst := field(s)
		reflect.ValueOf(dst).Elem().SetZero()
		if isNull {
			continue
		}
		if err := json.Unmarshal(raw, dst); err != nil {
			return &ValidationError{Kind: "Season", Problems: []string{fmt.Sprintf("%s: %v", key, err)}}
		}
	}
	return nil
}
