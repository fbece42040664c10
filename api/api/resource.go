/* resource.go
 * Contains the generic Resource type. Every resource kind supports the same operations (list, load, create, patch,
 * delete and optionally bulk delete) over its own repository, schema and payload types
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"

	"axe-throwing-api/api/models"
	"axe-throwing-api/api/store"

	"github.com/go-playground/validator/v10"
	"github.com/itbasis/go-clock"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson"
)

// Resource implements the operations of one resource kind. T is the stored record, C the create payload and P the
// patch payload.
type Resource[T models.Document, C models.Creator[T], P models.Patcher[T]] struct {
	Kind string    // schema name used in validation messages, e.g. LeagueMember
	Name string    // name used in responses, e.g. League member
	Key  store.Key // field the resource is addressed by in paths

	// BulkField is the json body field holding the ids of a bulk delete. Empty when the resource has no bulk delete.
	BulkField string

	repo         store.Repository[T]
	validate     *validator.Validate
	clock        clock.Clock
	log          zerolog.Logger
	search       func(records []T, query string) []T
	beforeDelete func(rec T) error
}

func newResource[T models.Document, C models.Creator[T], P models.Patcher[T]](a *API, kind, name string, key store.Key, repo store.Repository[T]) *Resource[T, C, P] {
	return &Resource[T, C, P]{
		Kind:     kind,
		Name:     name,
		Key:      key,
		repo:     repo,
		validate: a.validate,
		clock:    a.clock,
		log:      a.log.With().Str("resource", kind).Logger(),
	}
}

func (r *Resource[T, C, P]) NotFoundMessage() string {
	return r.Name + " not found"
}

func (r *Resource[T, C, P]) DeletedMessage() string {
	return r.Name + " deleted"
}

// Searchable reports whether List filters by the query string
func (r *Resource[T, C, P]) Searchable() bool {
	return r.search != nil
}

// List returns every record of the resource.
// Preconditions: Receives a context and the search query, which may be empty
// Postconditions: Returns the records, filtered by name when the resource is searchable and query is set, or an
// error if reading the collection fails
func (r *Resource[T, C, P]) List(ctx context.Context, query string) ([]T, error) {
	records, err := r.repo.FindAll(ctx)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to list records")
		return nil, err
	}

	if r.search != nil {
		records = r.search(records, query)
	}
	return records, nil
}

// Load resolves the identifier taken from a request path
func (r *Resource[T, C, P]) Load(ctx context.Context, raw string) store.LoadResult[T] {
	result := store.LoadByKey(ctx, r.repo, r.Key, raw)
	if result.Status == store.Failed {
		r.log.Error().Err(result.Err).Str("id", raw).Msg("failed to load record")
	}
	return result
}

// Create validates the payload, builds the record and stores it.
// Preconditions: Receives a context and the decoded create payload
// Postconditions: Returns the stored record with its defaults applied. Every failure, including persistence
// failures, is returned as bad input
func (r *Resource[T, C, P]) Create(ctx context.Context, in C) (T, error) {
	var zero T
	if err := models.Validate(r.validate, r.Kind, in); err != nil {
		return zero, badInput(err)
	}

	rec := in.Build(now(r.clock))
	if err := models.Validate(r.validate, r.Kind, rec); err != nil {
		return zero, badInput(err)
	}

	if err := r.repo.Insert(ctx, rec); err != nil {
		r.log.Warn().Err(err).Msg("failed to insert record")
		return zero, badInput(err)
	}

	r.log.Info().Str("id", rec.DocumentID().Hex()).Msg("record created")
	return rec, nil
}

// Patch applies the payload to a loaded record and saves it.
// Preconditions: Receives a context, the record resolved by Load and the decoded patch payload
// Postconditions: Returns the saved record. dateUpdated is bumped for records that carry it. Returns
// store.ErrNotFound if the record disappeared since it was loaded, any other failure as bad input
func (r *Resource[T, C, P]) Patch(ctx context.Context, rec T, in P) (T, error) {
	if err := in.ApplyTo(&rec); err != nil {
		return rec, badInput(err)
	}
	if t, ok := any(&rec).(models.Touchable); ok {
		t.Touch(now(r.clock))
	}

	if err := models.Validate(r.validate, r.Kind, rec); err != nil {
		return rec, badInput(err)
	}

	if err := r.repo.Save(ctx, rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return rec, err
		}
		r.log.Warn().Err(err).Str("id", rec.DocumentID().Hex()).Msg("failed to save record")
		return rec, badInput(err)
	}
	return rec, nil
}

// Delete removes a loaded record, unless the resource's delete guard refuses it
func (r *Resource[T, C, P]) Delete(ctx context.Context, rec T) error {
	if r.beforeDelete != nil {
		if err := r.beforeDelete(rec); err != nil {
			return err
		}
	}

	if err := r.repo.DeleteOne(ctx, rec.DocumentID()); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			r.log.Error().Err(err).Str("id", rec.DocumentID().Hex()).Msg("failed to delete record")
		}
		return err
	}

	r.log.Info().Str("id", rec.DocumentID().Hex()).Msg("record deleted")
	return nil
}

// BulkDelete removes every record whose key is in ids. Ids that match nothing are skipped.
// Preconditions: Receives a context and the business ids to delete. The resource must have a numeric key
// Postconditions: Returns an acknowledged result with the number of deleted records, or an error if it occurs
func (r *Resource[T, C, P]) BulkDelete(ctx context.Context, ids []int64) (BulkDeleteResult, error) {
	if !r.Key.Numeric {
		return BulkDeleteResult{}, fmt.Errorf("%s can't be bulk deleted by %s", r.Name, r.Key.Field)
	}
	if len(ids) == 0 {
		return BulkDeleteResult{Acknowledged: true}, nil
	}

	n, err := r.repo.DeleteMany(ctx, bson.M{r.Key.Field: bson.M{"$in": ids}})
	if err != nil {
		r.log.Error().Err(err).Ints64("ids", ids).Msg("bulk delete failed")
		return BulkDeleteResult{}, err
	}

	r.log.Info().Int64("deleted", n).Msg("bulk delete")
	return BulkDeleteResult{Acknowledged: true, DeletedCount: n}, nil
}
