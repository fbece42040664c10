/* params.go
 * Contains the parsing of bulk delete ids, which come either from the request body or an ids query parameter
 * Authors: Zachary Bower
 */

package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-andiamo/splitter"
)

// bulkIDs returns the ids of a bulk delete. The ids query parameter (?ids=1,2,3) takes precedence over the body
// field, e.g. {"gameIds": [1, 2, 3]}.
// Preconditions: Receives the request and the name of the body field holding the ids
// Postconditions: Returns the ids, empty when neither source supplies any, or an error if an id is not a number
func bulkIDs(r *http.Request, field string) ([]int64, error) {
	if raw := r.URL.Query().Get("ids"); raw != "" {
		return parseIDList(raw)
	}

	var body map[string]json.RawMessage
	if err := decodeJSON(r, &body); err != nil {
		return nil, err
	}

	raw, ok := body[field]
	if !ok {
		return []int64{}, nil
	}

	var ids []int64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("%s must be a list of numbers", field)
	}
	return ids, nil
}

// parseIDList parses a comma separated list of ids. Ids may be quoted and blank entries are skipped.
func parseIDList(raw string) ([]int64, error) {
	commaSplitter, err := splitter.NewSplitter(',', splitter.DoubleQuotes)
	if err != nil {
		return nil, err
	}

	parts, err := commaSplitter.Split(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid ids %q: %w", raw, err)
	}

	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.Trim(strings.TrimSpace(p), `"`)
		if p == "" {
			continue
		}

		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", p)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
