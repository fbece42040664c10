/* teams.go
 * Contains the team delete guard and the team member sub-resource operations
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"axe-throwing-api/api/models"
	"axe-throwing-api/api/store"
)

// checkTeamLeagues refuses to delete a team that still plays in a league
func checkTeamLeagues(t models.Team) error {
	if t.HasLeagues() {
		return badInput(ErrTeamInLeague)
	}
	return nil
}

// ListTeamMembers returns the members of a loaded team, never nil
func (a *API) ListTeamMembers(team models.Team) []models.TeamMember {
	if team.Members == nil {
		return []models.TeamMember{}
	}
	return team.Members
}

// AddTeamMember appends a new member to a loaded team and saves it.
// Preconditions: Receives a context, the team resolved by Teams.Load and the member payload
// Postconditions: Returns the saved team including the new member and its generated id. Returns store.ErrNotFound
// if the team disappeared, any other failure as bad input
func (a *API) AddTeamMember(ctx context.Context, team models.Team, in models.TeamMemberInput) (models.Team, error) {
	if err := models.Validate(a.validate, "TeamMember", in); err != nil {
		return team, badInput(err)
	}

	member := in.NewMember()
	team.Members = append(slices.Clone(team.Members), member)
	team.Touch(now(a.clock))

	if err := a.Store.Teams().Save(ctx, team); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return team, err
		}
		return team, badInput(err)
	}

	a.log.Info().Str("team", team.ID.Hex()).Str("member", member.ID).Msg("team member added")
	return team, nil
}

// RemoveTeamMember removes the member with the given sub-document id from a loaded team and saves it.
// Preconditions: Receives a context, the team resolved by Teams.Load and the member's id
// Postconditions: Returns the saved team, store.ErrNotFound if the team has no such member, or the persistence
// error if saving fails
func (a *API) RemoveTeamMember(ctx context.Context, team models.Team, memberID string) (models.Team, error) {
	i := team.MemberIndex(memberID)
	if i < 0 {
		return team, fmt.Errorf("team member %s: %w", memberID, store.ErrNotFound)
	}

	team.Members = slices.Delete(slices.Clone(team.Members), i, i+1)
	team.Touch(now(a.clock))

	if err := a.Store.Teams().Save(ctx, team); err != nil {
		a.log.Error().Err(err).Str("team", team.ID.Hex()).Msg("failed to remove team member")
		return team, err
	}

	a.log.Info().Str("team", team.ID.Hex()).Str("member", memberID).Msg("team member removed")
	return team, nil
}
