/* search.go
 * Contains the fuzzy name search used by the list endpoints
 * Authors: Zachary Bower
 */

package logic

import (
	"sort"
	"strings"

	"axe-throwing-api/api/models"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// FilterByName returns the records whose name fuzzy matches query, best match first.
// Preconditions: Receives the records to search and the raw query string
// Postconditions: Returns records unchanged when query is blank, otherwise the matching records ranked by distance.
// Records that rank equally keep their original order
func FilterByName[T models.Named](records []T, query string) []T {
	query = strings.TrimSpace(query)
	if query == "" {
		return records
	}

	names := make([]string, len(records))
	for i, r := range records {
		names[i] = r.SearchName()
	}

	ranks := fuzzy.RankFindFold(query, names)
	sort.Stable(ranks)

	matches := make([]T, 0, len(ranks))
	for _, rank := range ranks {
		matches = append(matches, records[rank.OriginalIndex])
	}
	return matches
}
