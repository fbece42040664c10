/* loader.go
 * Contains LoadByKey, which resolves an identifier taken from a request path into a stored record. Every resource
 * uses the same lookup, parameterized by its repository and the key it is addressed by
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"strconv"

	"axe-throwing-api/api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Key describes the field a resource is looked up by
type Key struct {
	Field   string
	Numeric bool
}

// ObjectIDKey addresses a record by its store generated id
var ObjectIDKey = Key{Field: "_id"}

// NumericKey addresses a record by a numeric business identifier such as gameId
func NumericKey(field string) Key {
	return Key{Field: field, Numeric: true}
}

// Parse converts a raw identifier into the value stored in the key's field. ok is false when raw can't be an
// identifier of this key's type.
func (k Key) Parse(raw string) (value any, ok bool) {
	if k.Numeric {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, false
		}
		return n, true
	}

	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return nil, false
	}
	return id, true
}

type LoadStatus int

const (
	Found LoadStatus = iota
	NotFound
	Failed
)

func (s LoadStatus) String() string {
	switch s {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	default:
		return "failed"
	}
}

// LoadResult is the outcome of LoadByKey. Record is only set when Status is Found, Err only when it is Failed.
type LoadResult[T any] struct {
	Status LoadStatus
	Record T
	Err    error
}

// LoadByKey looks up the record whose key field matches raw.
// Preconditions: Receives a context, the resource's repository, its lookup key and the raw path identifier
// Postconditions: Returns a Found result holding the record, NotFound when raw doesn't parse or matches nothing, or
// Failed with the persistence error
func LoadByKey[T models.Document](ctx context.Context, repo Repository[T], key Key, raw string) LoadResult[T] {
	value, ok := key.Parse(raw)
	if !ok {
		return LoadResult[T]{Status: NotFound}
	}

	var rec T
	var err error
	if id, isID := value.(primitive.ObjectID); isID {
		rec, err = repo.FindByID(ctx, id)
	} else {
		rec, err = repo.FindOne(ctx, bson.M{key.Field: value})
	}

	switch {
	case err == nil:
		return LoadResult[T]{Status: Found, Record: rec}
	case errors.Is(err, ErrNotFound):
		return LoadResult[T]{Status: NotFound}
	default:
		return LoadResult[T]{Status: Failed, Err: err}
	}
}
