package store

import (
	"context"
	"errors"

	"github.com/benmeehan/locality-agent/pkg/location"
)

// Persisted keys. Both are written together and removed together.
const (
	KeyLocation = "userLocation"
	KeySource   = "locationSource"
)

var ErrNotPersistable = errors.New("result source cannot be persisted")

// Store persists the last detected location between runs.
type Store interface {
	// Load returns the stored result. ok is false when nothing usable is stored.
	Load(ctx context.Context) (result location.Result, ok bool, err error)
	Save(ctx context.Context, result location.Result) error
	Clear(ctx context.Context) error
}

// decode turns the two raw key values into a result, rejecting partial or
// unknown records.
func decode(loc, source string) (location.Result, bool) {
	s := location.Source(source)
	if loc == "" || !s.Persistable() {
		return location.Result{}, false
	}
	return location.Result{Location: loc, Source: s}, true
}

func validate(result location.Result) error {
	if result.Location == "" || !result.Source.Persistable() {
		return ErrNotPersistable
	}
	return nil
}
