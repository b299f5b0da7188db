package places

import (
	"errors"
	"fmt"
	"math"

	"github.com/benmeehan/locality-agent/pkg/geo"
)

var (
	ErrEmptyRegistry  = errors.New("registry has no places")
	ErrDuplicatePlace = errors.New("duplicate place name")
	ErrUnknownDefault = errors.New("default place is not in the registry")
)

// Place is a named point in the registry.
type Place struct {
	Name       string `yaml:"name"`
	Coordinate `yaml:",inline"`
}

// Coordinate is re-exported so registry files can inline it.
type Coordinate = geo.Coordinate

// Match is the outcome of a nearest lookup.
type Match struct {
	Name       string
	DistanceKM float64
}

// Registry is an ordered, immutable set of places with a fallback default.
// Order matters: on equal distances the earlier place wins.
type Registry struct {
	places      []Place
	index       map[string]int
	defaultName string
}

// NewRegistry validates the places and returns a registry that owns a copy of them.
func NewRegistry(defaultName string, places []Place) (*Registry, error) {
	if len(places) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		places:      make([]Place, len(places)),
		index:       make(map[string]int, len(places)),
		defaultName: defaultName,
	}
	copy(r.places, places)

	for i, p := range r.places {
		if _, exists := r.index[p.Name]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicatePlace, p.Name)
		}
		r.index[p.Name] = i
	}

	if _, ok := r.index[defaultName]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDefault, defaultName)
	}

	return r, nil
}

// Nearest scans every place once and returns the closest one to c.
// The scan starts from the default at infinite distance and only moves on a
// strictly smaller distance, so NaN queries fall back to the default.
func (r *Registry) Nearest(c geo.Coordinate) Match {
	best := Match{Name: r.defaultName, DistanceKM: math.Inf(1)}

	for _, p := range r.places {
		d := geo.Haversine(c, p.Coordinate)
		if d < best.DistanceKM {
			best = Match{Name: p.Name, DistanceKM: d}
		}
	}

	return best
}

// Resolve returns the name of the place nearest to c.
func (r *Registry) Resolve(c geo.Coordinate) string {
	return r.Nearest(c).Name
}

// Lookup returns the place registered under name.
func (r *Registry) Lookup(name string) (Place, bool) {
	i, ok := r.index[name]
	if !ok {
		return Place{}, false
	}
	return r.places[i], true
}

// Contains reports whether name is a registered place.
func (r *Registry) Contains(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Default returns the fallback place name.
func (r *Registry) Default() string {
	return r.defaultName
}

// Places returns a copy of the registry in order.
func (r *Registry) Places() []Place {
	out := make([]Place, len(r.places))
	copy(out, r.places)
	return out
}

// Len returns the number of places.
func (r *Registry) Len() int {
	return len(r.places)
}
