/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"

	"axe-throwing-api/api/models"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	Users() Repository[models.User]
	Games() Repository[models.Game]
	Leagues() Repository[models.League]
	LeagueMembers() Repository[models.LeagueMember]
	Teams() Repository[models.Team]
	Seasons() Repository[models.Season]

	Ping(ctx context.Context) error
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

func (s *Store) Users() Repository[models.User] {
	return s.Collections.Users
}

func (s *Store) Games() Repository[models.Game] {
	return s.Collections.Games
}

func (s *Store) Leagues() Repository[models.League] {
	return s.Collections.Leagues
}

func (s *Store) LeagueMembers() Repository[models.LeagueMember] {
	return s.Collections.LeagueMembers
}

func (s *Store) Teams() Repository[models.Team] {
	return s.Collections.Teams
}

func (s *Store) Seasons() Repository[models.Season] {
	return s.Collections.Seasons
}
