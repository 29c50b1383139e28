package cache

import (
	"errors"
	"fmt"
)

// ErrInvalidQuery is the sentinel for caller validation failures.
// Handlers match it with errors.Is to answer 400 instead of an empty
// result set.
var ErrInvalidQuery = errors.New("invalid query")

// QueryError describes which query parameter was rejected and why.
type QueryError struct {
	Field  string
	Detail string
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%v: %s %s", ErrInvalidQuery, e.Field, e.Detail)
}

// Is makes errors.Is(err, ErrInvalidQuery) hold for every QueryError.
func (e *QueryError) Is(target error) bool {
	return target == ErrInvalidQuery
}
