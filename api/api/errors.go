/* errors.go
 * Contains the error kinds returned by the API. Handlers map them to status codes: store.ErrNotFound is a missing
 * record, ErrBadInput marks a request the caller has to fix, anything else is an internal failure
 * Authors: Zachary Bower
 */

package api

import "errors"

var (
	ErrBadInput     = errors.New("bad input")
	ErrTeamInLeague = errors.New("Team is part of one or more leagues and cannot be deleted")
)

// InputError wraps an error caused by the request. Its message is the wrapped error's message.
type InputError struct {
	Err error
}

func (e *InputError) Error() string {
	return e.Err.Error()
}

func (e *InputError) Unwrap() []error {
	return []error{ErrBadInput, e.Err}
}

func badInput(err error) error {
	if err == nil || errors.Is(err, ErrBadInput) {
		return err
	}
	return &InputError{Err: err}
}
