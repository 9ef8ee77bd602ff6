package embedix

import (
	"errors"
	"fmt"

	"github.com/hupe1980/embedix/store"
	"github.com/hupe1980/embedix/vector"
)

var (
	// ErrInvalidID is returned when a record id is not positive; id 0 is
	// reserved as the absent-lookup sentinel.
	ErrInvalidID = errors.New("id must be positive")
)

// ParseError indicates a malformed weight token on an ingestion line.
//
// One bad line fails the whole compile run; callers needing partial tolerance
// must pre-filter the corpus.
type ParseError struct {
	Line  int
	Token string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid weight: %s", e.Token)
}

// SizeMismatchError indicates a vector's byte length disagrees with the
// index's fixed vector size. Re-exported so callers can match errors without
// importing the vector package.
type SizeMismatchError = vector.SizeMismatchError

// StoreError indicates a durable-storage open/read/write failure.
type StoreError = store.StoreError
