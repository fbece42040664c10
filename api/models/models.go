/* models.go
 * Contains the interfaces shared by every resource schema, and the validator used to check records before they
 * are written to the db
 * Authors: Zachary Bower
 */

package models

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document is implemented by every record stored in a collection
type Document interface {
	DocumentID() primitive.ObjectID
}

// Creator builds a new record from a create payload. Only the fields the payload type declares are copied.
type Creator[T any] interface {
	Build(now time.Time) T
}

// Patcher overwrites the fields of a loaded record with the values supplied in a patch payload
type Patcher[T any] interface {
	ApplyTo(rec *T) error
}

// Touchable records carry a dateUpdated field that is bumped on every patch
type Touchable interface {
	Touch(now time.Time)
}

// Named records can be searched by name
type Named interface {
	SearchName() string
}

// NewValidator returns a validator that reports fields by their json name
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// ValidationError lists every problem found while validating a record of the given kind
type ValidationError struct {
	Kind     string
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation failed: %s", e.Kind, strings.Join(e.Problems, ", "))
}

// Validate checks v against its validate tags.
// Preconditions: Receives the validator, the resource kind used in messages and the struct to check
// Postconditions: Returns nil, a *ValidationError describing each failing field, or the validator's error if v is
// not a struct
func Validate(v *validator.Validate, kind string, rec any) error {
	err := v.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	problems := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		problems = append(problems, describe(fe))
	}
	return &ValidationError{Kind: kind, Problems: problems}
}

func describe(fe validator.FieldError) string {
	path := fe.Namespace()
	if i := strings.Index(path, "."); i >= 0 {
		path = path[i+1:]
	}

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s: Path `%s` is required", path, path)
	case "oneof":
		return fmt.Sprintf("%s: `%v` is not a valid enum value for path `%s`", path, fe.Value(), path)
	default:
		return fmt.Sprintf("%s: failed on the '%s' rule", path, fe.Tag())
	}
}

func valueOr[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

func setIf[T any](dst *T, p *T) {
	if p != nil {
		*dst = *p
	}
}
