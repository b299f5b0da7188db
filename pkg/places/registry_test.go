package places

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/benmeehan/locality-agent/pkg/file"
	"github.com/benmeehan/locality-agent/pkg/geo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_ResolvesKnownQueries(t *testing.T) {
	r := Builtin()

	cases := []struct {
		name     string
		query    geo.Coordinate
		expected string
	}{
		{"georgetown", geo.Coordinate{Latitude: 6.80, Longitude: -58.16}, "Georgetown, Guyana"},
		{"queens, nearest of the new york entries", geo.Coordinate{Latitude: 40.70, Longitude: -73.80}, "Jamaica, NY"},
		{"downtown toronto", geo.Coordinate{Latitude: 43.70, Longitude: -79.40}, "Toronto, ON"},
		{"port of spain", geo.Coordinate{Latitude: 10.65, Longitude: -61.50}, "Port of Spain, Trinidad and Tobago"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, r.Resolve(tc.query))
		})
	}
}

func TestBuiltin_EveryPlaceResolvesToItself(t *testing.T) {
	r := Builtin()

	for _, p := range r.Places() {
		m := r.Nearest(p.Coordinate)
		assert.Equal(t, p.Name, m.Name)
		assert.InDelta(t, 0, m.DistanceKM, 1e-9)
	}
}

func TestNearest_IsNoFartherThanAnyPlace(t *testing.T) {
	r := Builtin()

	for lat := -80.0; lat <= 80; lat += 20 {
		for lon := -170.0; lon <= 170; lon += 34 {
			q := geo.Coordinate{Latitude: lat, Longitude: lon}
			m := r.Nearest(q)
			require.True(t, r.Contains(m.Name))
			for _, p := range r.Places() {
				assert.LessOrEqual(t, m.DistanceKM, geo.Haversine(q, p.Coordinate))
			}
		}
	}
}

func TestNearest_OriginStillReturnsRegistryName(t *testing.T) {
	r := Builtin()

	m := r.Nearest(geo.Coordinate{})
	assert.True(t, r.Contains(m.Name))
	assert.False(t, math.IsInf(m.DistanceKM, 1))
}

func TestNearest_TieKeepsEarlierEntry(t *testing.T) {
	same := geo.Coordinate{Latitude: 5.8520, Longitude: -55.2038}
	r, err := NewRegistry("Home", []Place{
		{Name: "Home", Coordinate: geo.Coordinate{Latitude: 60, Longitude: 10}},
		{Name: "First", Coordinate: same},
		{Name: "Second", Coordinate: same},
	})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		assert.Equal(t, "First", r.Resolve(geo.Coordinate{Latitude: 5.9, Longitude: -55.1}))
	}
}

func TestNearest_NaNFallsBackToDefault(t *testing.T) {
	r := Builtin()

	m := r.Nearest(geo.Coordinate{Latitude: math.NaN(), Longitude: -58})
	assert.Equal(t, DefaultPlace, m.Name)
	assert.True(t, math.IsInf(m.DistanceKM, 1))
}

func TestNewRegistry_Errors(t *testing.T) {
	p := Place{Name: "Linden, Guyana", Coordinate: geo.Coordinate{Latitude: 6.0, Longitude: -58.3}}

	_, err := NewRegistry("Linden, Guyana", nil)
	assert.ErrorIs(t, err, ErrEmptyRegistry)

	_, err = NewRegistry("Linden, Guyana", []Place{p, p})
	assert.ErrorIs(t, err, ErrDuplicatePlace)

	_, err = NewRegistry("Atlantis", []Place{p})
	assert.ErrorIs(t, err, ErrUnknownDefault)
}

func TestRegistry_IsImmutable(t *testing.T) {
	r := Builtin()

	got := r.Places()
	got[0].Name = "Mutated"

	assert.Equal(t, DefaultPlace, r.Places()[0].Name)
	place, ok := r.Lookup(DefaultPlace)
	assert.True(t, ok)
	assert.InDelta(t, 6.8013, place.Latitude, 1e-9)
}

func TestLoadRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.yaml")
	content := `default: "Paramaribo, Suriname"
places:
  - name: "Paramaribo, Suriname"
    latitude: 5.8520
    longitude: -55.2038
  - name: "Nickerie, Suriname"
    latitude: 5.9500
    longitude: -56.9833
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	r, err := LoadRegistry(path, file.NewFileService())
	require.NoError(t, err)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, "Paramaribo, Suriname", r.Default())
	assert.Equal(t, "Nickerie, Suriname", r.Resolve(geo.Coordinate{Latitude: 5.95, Longitude: -56.9}))
}

func TestLoadRegistry_MissingDefaultUsesBuiltinName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.yaml")
	content := `places:
  - name: "Bartica, Guyana"
    latitude: 6.4060
    longitude: -58.6250
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	_, err := LoadRegistry(path, file.NewFileService())
	assert.ErrorIs(t, err, ErrUnknownDefault)
}
