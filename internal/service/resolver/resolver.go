package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/domain/resource"
	"github.com/Mihails-Simvulidi/Power-Apps-CLI-Tools/internal/service/session"
)

// Outcome classifies a lookup.
type Outcome int

const (
	// Found means exactly one item matched.
	Found Outcome = iota + 1
	// NotFound means no item matched.
	NotFound
	// Ambiguous means more than one item matched.
	Ambiguous
)

var (
	// ErrNotFound is returned when nothing matches.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when more than one item matches.
	ErrAmbiguous = errors.New("more than one match")
)

// Result is the outcome of ExactlyOne. Item is set only when Outcome is Found,
// Count only when it is Ambiguous.
type Result[T any] struct {
	Outcome Outcome
	Item    T
	Count   int
}

// Err converts a failed outcome into ErrNotFound or ErrAmbiguous.
func (r Result[T]) Err() error {
	switch r.Outcome {
	case Found:
		return nil
	case NotFound:
		return ErrNotFound
	case Ambiguous:
		return fmt.Errorf("%w: %d records", ErrAmbiguous, r.Count)
	default:
		return fmt.Errorf("unknown outcome %d", r.Outcome)
	}
}

// ExactlyOne scans items and reports whether match selects exactly one.
func ExactlyOne[T any](items []T, match func(T) bool) Result[T] {
	var result Result[T]

	for _, item := range items {
		if !match(item) {
			continue
		}

		result.Count++

		if result.Count == 1 {
			result.Item = item
		}
	}

	switch result.Count {
	case 0:
		result.Outcome = NotFound
	case 1:
		result.Outcome = Found
		result.Count = 0
	default:
		var zero T

		result.Outcome = Ambiguous
		result.Item = zero
	}

	return result
}

// Resolve looks up the record of kind named name and returns it if it is unique.
// The platform's filter decides what matches, with its own collation rules, so
// every row it returns counts toward the result.
func Resolve(ctx context.Context, query session.QueryContext, kind resource.Kind, name string) (resource.Resource, error) {
	candidates, err := query.Find(ctx, kind, name)
	if err != nil {
		return resource.Resource{}, fmt.Errorf("find %s %q: %w", kind, name, err)
	}

	result := ExactlyOne(candidates, func(resource.Resource) bool { return true })

	if err = result.Err(); err != nil {
		return resource.Resource{}, fmt.Errorf("resolve %s %q: %w", kind, name, err)
	}

	return result.Item, nil
}
