/* indexes.go
 * Contains the unique indexes that enforce the business identifiers of each collection
 * Authors: Zachary Bower
 */

package store

import "context"

// EnsureIndexes creates the unique indexes for every collection. Creating an index that already exists is a no-op.
// Preconditions: Receives receiver pointer for a connected Store
// Postconditions: Returns nil once every index exists, or the first error that occurs
func (s *Store) EnsureIndexes(ctx context.Context) error {
	steps := []func(context.Context) error{
		func(ctx context.Context) error { return s.Collections.Users.EnsureUnique(ctx, "email", false) },
		func(ctx context.Context) error { return s.Collections.Users.EnsureUnique(ctx, "playerId", true) },
		func(ctx context.Context) error { return s.Collections.Games.EnsureUnique(ctx, "gameId", false) },
		func(ctx context.Context) error { return s.Collections.Leagues.EnsureUnique(ctx, "league_id", false) },
		func(ctx context.Context) error {
			return s.Collections.LeagueMembers.EnsureUnique(ctx, "league_member_id", false)
		},
		func(ctx context.Context) error { return s.Collections.Seasons.EnsureUnique(ctx, "seasonId", false) },
	}

	for _, step := range steps {
		if err := step(ctx); err != nil {
			return err
		}
	}
	return nil
}
