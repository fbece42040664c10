/* collection.go
 * Contains the generic Collection type that implements the persistence operations shared by every resource:
 * find all, find by id, find one, insert, save, delete one and delete many
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"

	"axe-throwing-api/api/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
)

// Repository is the persistence port for one resource collection
type Repository[T models.Document] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (T, error)
	FindOne(ctx context.Context, filter bson.M) (T, error)
	Insert(ctx context.Context, doc T) error
	Save(ctx context.Context, doc T) error
	DeleteOne(ctx context.Context, id primitive.ObjectID) error
	DeleteMany(ctx context.Context, filter bson.M) (int64, error)
}

// Collection is the mongo backed Repository
type Collection[T models.Document] struct {
	coll *mongo.Collection
}

var _ Repository[models.Game] = (*Collection[models.Game])(nil)

func NewCollection[T models.Document](coll *mongo.Collection) *Collection[T] {
	return &Collection[T]{coll: coll}
}

// Name returns the name of the underlying mongo collection
func (c *Collection[T]) Name() string {
	return c.coll.Name()
}

// FindAll returns every document in the collection in the store's natural order
func (c *Collection[T]) FindAll(ctx context.Context) ([]T, error) {
	cursor, err := c.coll.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("error fetching %s from db: %w", c.coll.Name(), err)
	}

	results := []T{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of %s: %w", c.coll.Name(), err)
	}
	return results, nil
}

func (c *Collection[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	return c.FindOne(ctx, bson.M{"_id": id})
}

// FindOne returns the first document matching filter, or ErrNotFound
func (c *Collection[T]) FindOne(ctx context.Context, filter bson.M) (T, error) {
	var result T
	err := c.coll.FindOne(ctx, filter, options.FindOne()).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return result, ErrNotFound
		}
		return result, fmt.Errorf("error fetching from %s: %w", c.coll.Name(), err)
	}
	return result, nil
}

// Insert stores a new document. The document must already carry its id.
func (c *Collection[T]) Insert(ctx context.Context, doc T) error {
	if _, err := c.coll.InsertOne(ctx, doc); err != nil {
		return writeError(err)
	}
	return nil
}

// Save replaces the stored document that has the same id as doc
func (c *Collection[T]) Save(ctx context.Context, doc T) error {
	res, err := c.coll.ReplaceOne(ctx, bson.M{"_id": doc.DocumentID()}, doc)
	if err != nil {
		return writeError(err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *Collection[T]) DeleteOne(ctx context.Context, id primitive.ObjectID) error {
	res, err := c.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", c.coll.Name(), err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteMany removes every document matching filter and returns how many were deleted
func (c *Collection[T]) DeleteMany(ctx context.Context, filter bson.M) (int64, error) {
	res, err := c.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", c.coll.Name(), err)
	}
	return res.DeletedCount, nil
}

// EnsureUnique creates a unique index on field. Sparse indexes skip documents that don't have the field.
func (c *Collection[T]) EnsureUnique(ctx context.Context, field string, sparse bool) error {
	opts := options.Index().SetUnique(true).SetName(field + "_unique")
	if sparse {
		opts.SetSparse(true)
	}

	_, err := c.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: opts,
	})
	if err != nil {
		return fmt.Errorf("failed to create unique index on %s.%s: %w", c.coll.Name(), field, err)
	}
	return nil
}

func writeError(err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, err.Error())
	}
	return err
}
