package closure

import (
	"testing"

	"github.com/opendata-browser/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRecord_Trail(t *testing.T) {
	row := domain.RawRow{
		"activity_type":  "Construction",
		"closure_type":   "Permanent",
		"details":        "  Path washout  ",
		"infrastructure": "Trail",
		"location_name":  "Mill Creek Ravine",
		"start_date":     "2024-05-01T00:00:00.000",
		"end_date":       "2024-09-30T00:00:00.000",
		"latitude":       "53.5123",
		"longitude":      "-113.4701",
		"geometry": map[string]interface{}{
			"type":        "LineString",
			"coordinates": []interface{}{[]interface{}{-113.48, 53.51}, []interface{}{-113.46, 53.52}},
		},
	}

	rec := NormalizeRecord(domain.DatasetTrail, row)

	assert.Equal(t, domain.DatasetTrail, rec.Kind)
	require.NotNil(t, rec.Trail)
	assert.Nil(t, rec.Traffic)
	assert.Equal(t, "Path washout", rec.LongText())
	assert.Equal(t, "path washout", rec.DedupeKey())
	assert.Equal(t, "Mill Creek Ravine", rec.LocationName)
	assert.Equal(t, domain.Location{Latitude: "53.5123", Longitude: "-113.4701"}, rec.Location)
	require.NotNil(t, rec.Geometry)
	assert.Equal(t, "LineString", rec.Geometry.Type)
	assert.True(t, rec.IsPermanent())
}

func TestNormalizeRecord_TrafficPointString(t *testing.T) {
	row := domain.RawRow{
		"description": "Lane closure on Jasper Ave",
		"point":       "POINT (-113.49 53.55)",
		"status":      "Current",
	}

	rec := NormalizeRecord(domain.DatasetTraffic, row)

	require.NotNil(t, rec.Traffic)
	assert.Equal(t, "Lane closure on Jasper Ave", rec.LongText())
	assert.Equal(t, "Current", rec.Traffic.Status)
	assert.Equal(t, "53.55", rec.Location.Latitude)
	assert.Equal(t, "-113.49", rec.Location.Longitude)
	assert.Nil(t, rec.Geometry)
	assert.True(t, rec.NeedsNeighbourhood())
}

func TestNormalizeRecord_MalformedInput(t *testing.T) {
	row := domain.RawRow{
		"description": 12.5,
		"geometry":    `{"type":"Polygon","coordinates":[[`,
		"point":       "nowhere",
		"latitude":    map[string]interface{}{"nested": true},
		"longitude":   nil,
		"location":    map[string]interface{}{"human_address": "{}"},
	}

	var rec domain.ClosureRecord
	assert.NotPanics(t, func() { rec = NormalizeRecord(domain.DatasetTraffic, row) })
	assert.Equal(t, "12.5", rec.LongText())
	assert.True(t, rec.Location.IsZero())
	assert.Nil(t, rec.Geometry)
	assert.False(t, rec.NeedsNeighbourhood())
}

func TestNormalizeRecord_LocationObject(t *testing.T) {
	row := domain.RawRow{
		"details":  "Stairs closed",
		"location": map[string]interface{}{"latitude": "53.52", "longitude": "-113.51"},
	}

	rec := NormalizeRecord(domain.DatasetTrail, row)
	assert.Equal(t, domain.Location{Latitude: "53.52", Longitude: "-113.51"}, rec.Location)
	assert.Empty(t, rec.LocationName)
}

func TestNormalizeRecords_KeepsOrder(t *testing.T) {
	rows := []domain.RawRow{{"details": "b"}, {"details": "a"}}
	recs := NormalizeRecords(domain.DatasetTrail, rows)
	require.Len(t, recs, 2)
	assert.Equal(t, "b", recs[0].LongText())
	assert.Equal(t, "a", recs[1].LongText())
}
