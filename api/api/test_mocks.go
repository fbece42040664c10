/* test_mocks.go
 * Contains an in-memory store for testing the API package and its consumers
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"axe-throwing-api/api/models"
	"axe-throwing-api/api/store"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemRepository implements store.Repository in memory. Records are copied through bson on the way in and out, so
// they come back exactly as the db would return them.
type MemRepository[T models.Document] struct {
	mu     sync.Mutex
	name   string
	unique []string
	docs   []T

	// Error injection for testing error paths
	FindAllError    error
	FindError       error
	InsertError     error
	SaveError       error
	DeleteError     error
	DeleteManyError error
}

// NewMemRepository creates an empty repository. unique lists the bson fields that must be unique, documents that
// don't have the field are not checked.
func NewMemRepository[T models.Document](name string, unique ...string) *MemRepository[T] {
	return &MemRepository[T]{name: name, unique: unique}
}

// Seed stores docs as they are, bypassing unique checks and error injection
func (r *MemRepository[T]) Seed(docs ...T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range docs {
		r.docs = append(r.docs, clone(d))
	}
}

// All returns a copy of every stored document
func (r *MemRepository[T]) All() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]T, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, clone(d))
	}
	return out
}

func (r *MemRepository[T]) FindAll(_ context.Context) ([]T, error) {
	if r.FindAllError != nil {
		return nil, r.FindAllError
	}
	return r.All(), nil
}

func (r *MemRepository[T]) FindByID(ctx context.Context, id primitive.ObjectID) (T, error) {
	return r.FindOne(ctx, bson.M{"_id": id})
}

func (r *MemRepository[T]) FindOne(_ context.Context, filter bson.M) (T, error) {
	var zero T
	if r.FindError != nil {
		return zero, r.FindError
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.docs {
		if matches(toM(d), filter) {
			return clone(d), nil
		}
	}
	return zero, store.ErrNotFound
}

func (r *MemRepository[T]) Insert(_ context.Context, doc T) error {
	if r.InsertError != nil {
		return r.InsertError
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.checkUnique(doc); err != nil {
		return err
	}
	r.docs = append(r.docs, clone(doc))
	return nil
}

func (r *MemRepository[T]) Save(_ context.Context, doc T) error {
	if r.SaveError != nil {
		return r.SaveError
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(doc.DocumentID())
	if i < 0 {
		return store.ErrNotFound
	}
	if err := r.checkUnique(doc); err != nil {
		return err
	}
	r.docs[i] = clone(doc)
	return nil
}

func (r *MemRepository[T]) DeleteOne(_ context.Context, id primitive.ObjectID) error {
	if r.DeleteError != nil {
		return r.DeleteError
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.indexOf(id)
	if i < 0 {
		return store.ErrNotFound
	}
	r.docs = append(r.docs[:i], r.docs[i+1:]...)
	return nil
}

func (r *MemRepository[T]) DeleteMany(_ context.Context, filter bson.M) (int64, error) {
	if r.DeleteManyError != nil {
		return 0, r.DeleteManyError
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.docs[:0]
	var deleted int64
	for _, d := range r.docs {
		if matches(toM(d), filter) {
			deleted++
			continue
		}
		kept = append(kept, d)
	}
	r.docs = kept
	return deleted, nil
}

func (r *MemRepository[T]) indexOf(id primitive.ObjectID) int {
	for i, d := range r.docs {
		if d.DocumentID() == id {
			return i
		}
	}
	return -1
}

func (r *MemRepository[T]) checkUnique(doc T) error {
	m := toM(doc)
	for _, field := range r.unique {
		value, ok := m[field]
		if !ok || value == nil {
			continue
		}
		for _, d := range r.docs {
			if d.DocumentID() == doc.DocumentID() {
				continue
			}
			if other, ok := toM(d)[field]; ok && equal(other, value) {
				return fmt.Errorf("%w: E11000 duplicate key error collection: %s index: %s_unique dup key: { %s: %v }",
					store.ErrDuplicateKey, r.name, field, field, value)
			}
		}
	}
	return nil
}

// matches supports the filters the API builds: equality on a field and $in
func matches(doc bson.M, filter bson.M) bool {
	for field, want := range filter {
		got, ok := doc[field]
		if !ok {
			return false
		}

		if op, isOp := want.(bson.M); isOp {
			in, ok := op["$in"]
			if !ok || !containsValue(in, got) {
				return false
			}
			continue
		}
		if !equal(got, want) {
			return false
		}
	}
	return true
}

func containsValue(list any, v any) bool {
	rv := reflect.ValueOf(list)
	if rv.Kind() != reflect.Slice {
		return false
	}
	for i := 0; i < rv.Len(); i++ {
		if equal(rv.Index(i).Interface(), v) {
			return true
		}
	}
	return false
}

// equal compares values by their printed form so int32 and int64 encodings of the same number match
func equal(a, b any) bool {
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func toM(v any) bson.M {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		panic(err)
	}
	return m
}

func clone[T any](v T) T {
	raw, err := bson.Marshal(v)
	if err != nil {
		panic(err)
	}
	var out T
	if err := bson.Unmarshal(raw, &out); err != nil {
		panic(err)
	}
	return out
}

// MockStore implements the store Interface in memory for testing
type MockStore struct {
	UserRepo         *MemRepository[models.User]
	GameRepo         *MemRepository[models.Game]
	LeagueRepo       *MemRepository[models.League]
	LeagueMemberRepo *MemRepository[models.LeagueMember]
	TeamRepo         *MemRepository[models.Team]
	SeasonRepo       *MemRepository[models.Season]

	PingError error
}

var _ store.Interface = (*MockStore)(nil)

// NewMockStore creates an empty MockStore with the same unique fields as the db indexes
func NewMockStore() *MockStore {
	return &MockStore{
		UserRepo:         NewMemRepository[models.User](store.UsersCollection, "email", "playerId"),
		GameRepo:         NewMemRepository[models.Game](store.GamesCollection, "gameId"),
		LeagueRepo:       NewMemRepository[models.League](store.LeaguesCollection, "league_id"),
		LeagueMemberRepo: NewMemRepository[models.LeagueMember](store.LeagueMembersCollection, "league_member_id"),
		TeamRepo:         NewMemRepository[models.Team](store.TeamsCollection),
		SeasonRepo:       NewMemRepository[models.Season](store.SeasonsCollection, "seasonId"),
	}
}

func (m *MockStore) Users() store.Repository[models.User] {
	return m.UserRepo
}

func (m *MockStore) Games() store.Repository[models.Game] {
	return m.GameRepo
}

func (m *MockStore) Leagues() store.Repository[models.League] {
	return m.LeagueRepo
}

func (m *MockStore) LeagueMembers() store.Repository[models.LeagueMember] {
	return m.LeagueMemberRepo
}

func (m *MockStore) Teams() store.Repository[models.Team] {
	return m.TeamRepo
}

func (m *MockStore) Seasons() store.Repository[models.Season] {
	return m.SeasonRepo
}

// Ping mock implementation
func (m *MockStore) Ping(_ context.Context) error {
	return m.PingError
}
