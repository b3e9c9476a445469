package geo

import (
	"testing"

	"github.com/opendata-browser/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePoint(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  domain.Location
		ok    bool
	}{
		{
			name:  "wkt point string",
			input: "POINT (-113.49 53.55)",
			want:  domain.Location{Latitude: "53.55", Longitude: "-113.49"},
			ok:    true,
		},
		{
			name:  "geojson coordinates object",
			input: map[string]interface{}{"type": "Point", "coordinates": []interface{}{-113.5, 53.52}},
			want:  domain.Location{Latitude: "53.52", Longitude: "-113.5"},
			ok:    true,
		},
		{
			name:  "geojson point as json string",
			input: `{"type":"Point","coordinates":[-113.1,53.4]}`,
			want:  domain.Location{Latitude: "53.4", Longitude: "-113.1"},
			ok:    true,
		},
		{
			name:  "latitude longitude object",
			input: map[string]interface{}{"latitude": "53.5461", "longitude": "-113.4938"},
			want:  domain.Location{Latitude: "53.5461", Longitude: "-113.4938"},
			ok:    true,
		},
		{
			name:  "polygon is not a point",
			input: map[string]interface{}{"type": "Polygon", "coordinates": []interface{}{[]interface{}{[]interface{}{1.0, 2.0}}}},
			ok:    false,
		},
		{name: "malformed string", input: "somewhere downtown", ok: false},
		{name: "broken json", input: `{"type":"Point",`, ok: false},
		{name: "empty string", input: "   ", ok: false},
		{name: "nil", input: nil, ok: false},
		{name: "number", input: 42.0, ok: false},
		{name: "half object", input: map[string]interface{}{"latitude": "53.5"}, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.Location
			var ok bool
			assert.NotPanics(t, func() { got, ok = ParsePoint(tt.input) })
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestParseGeometry(t *testing.T) {
	t.Run("linestring json string", func(t *testing.T) {
		g, ok := ParseGeometry(`{"type":"LineString","coordinates":[[-113.6,53.5],[-113.4,53.6]]}`)
		require.True(t, ok)
		assert.Equal(t, "LineString", g.Type)
		assert.InDelta(t, -113.6, g.Bounds.MinLon, 1e-9)
		assert.InDelta(t, -113.4, g.Bounds.MaxLon, 1e-9)
		assert.InDelta(t, 53.5, g.Bounds.MinLat, 1e-9)
		assert.InDelta(t, 53.6, g.Bounds.MaxLat, 1e-9)
		assert.InDelta(t, 53.55, g.Center().Lat, 1e-9)
	})

	t.Run("feature wrapping polygon", func(t *testing.T) {
		input := map[string]interface{}{
			"type": "Feature",
			"geometry": map[string]interface{}{
				"type": "Polygon",
				"coordinates": []interface{}{[]interface{}{
					[]interface{}{-113.5, 53.5},
					[]interface{}{-113.4, 53.5},
					[]interface{}{-113.4, 53.6},
					[]interface{}{-113.5, 53.5},
				}},
			},
		}
		g, ok := ParseGeometry(input)
		require.True(t, ok)
		assert.Equal(t, "Polygon", g.Type)
		assert.NotEmpty(t, g.GeoJSON)
	})

	t.Run("invalid json string yields no geometry", func(t *testing.T) {
		g, ok := ParseGeometry(`{"type":"Polygon","coordinates":[[`)
		assert.False(t, ok)
		assert.Nil(t, g)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, ok := ParseGeometry(map[string]interface{}{"type": "Blob", "coordinates": []interface{}{1.0}})
		assert.False(t, ok)
	})

	t.Run("not an object", func(t *testing.T) {
		for _, in := range []interface{}{nil, "POINT (1 2)", 3.0, []interface{}{1.0, 2.0}} {
			_, ok := ParseGeometry(in)
			assert.False(t, ok)
		}
	})
}

func TestNormalize(t *testing.T) {
	s := Normalize("POINT (-113.49 53.55)")
	require.NotNil(t, s.Location)
	assert.Nil(t, s.Geometry)

	s = Normalize(`{"type":"MultiLineString","coordinates":[[[-113.6,53.5],[-113.4,53.6]]]}`)
	assert.Nil(t, s.Location)
	require.NotNil(t, s.Geometry)
	assert.Equal(t, "MultiLineString", s.Geometry.Type)

	assert.True(t, Normalize(nil).IsEmpty())
	assert.True(t, Normalize("garbage").IsEmpty())
}
