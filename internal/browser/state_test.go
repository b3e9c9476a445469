package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opendata-browser/internal/domain"
)

func trafficRecord(text string, loc domain.Location) domain.ClosureRecord {
	return domain.ClosureRecord{
		Kind:           domain.DatasetTraffic,
		Infrastructure: "Road",
		StartDate:      "2024-05-01",
		Location:       loc,
		Traffic:        &domain.TrafficDisruption{Description: text},
	}
}

func TestReduce_DatasetSelectedBumpsGeneration(t *testing.T) {
	s := NewState()
	assert.Equal(t, StatusIdle, s.Status)

	s = Reduce(s, DatasetSelected{Kind: domain.DatasetTraffic})
	assert.Equal(t, uint64(1), s.Generation)
	assert.Equal(t, StatusLoading, s.Status)
	assert.Equal(t, domain.DatasetTraffic, s.Kind)

	s = Reduce(s, DatasetSelected{Kind: "bogus"})
	assert.Equal(t, uint64(1), s.Generation, "invalid kinds are ignored")
}

func TestReduce_StaleResultsDiscarded(t *testing.T) {
	s := Reduce(NewState(), DatasetSelected{Kind: domain.DatasetTrail})
	s = Reduce(s, DatasetSelected{Kind: domain.DatasetTraffic})

	stale := []domain.ClosureRecord{{Kind: domain.DatasetTrail, Trail: &domain.TrailClosure{Details: "old"}}}
	s = Reduce(s, FetchSucceeded{Generation: 1, Records: stale})
	assert.Equal(t, StatusLoading, s.Status)
	assert.Empty(t, s.Records)

	fresh := []domain.ClosureRecord{trafficRecord("new", domain.Location{})}
	s = Reduce(s, FetchSucceeded{Generation: 2, Records: fresh})
	assert.Equal(t, StatusReady, s.Status)
	require.Len(t, s.Records, 1)

	s = Reduce(s, FetchFailed{Generation: 1})
	assert.Equal(t, StatusReady, s.Status, "late failure of an old cycle does not reset")
}

func TestReduce_FetchFailedRendersEmpty(t *testing.T) {
	s := Reduce(NewState(), DatasetSelected{Kind: domain.DatasetTrail})
	s = Reduce(s, FetchFailed{Generation: s.Generation})
	assert.Equal(t, StatusFailed, s.Status)
	assert.Empty(t, s.Cards())
}

func TestReduce_ViewMode(t *testing.T) {
	s := Reduce(NewState(), ViewModeSelected{View: ViewMap})
	assert.Equal(t, ViewMap, s.View)
	s = Reduce(s, ViewModeSelected{View: "grid"})
	assert.Equal(t, ViewMap, s.View)
}

func TestReduce_CardToggle(t *testing.T) {
	long := strings.Repeat("a", 300)
	s := Reduce(NewState(), DatasetSelected{Kind: domain.DatasetTraffic})
	s = Reduce(s, FetchSucceeded{Generation: s.Generation, Records: []domain.ClosureRecord{
		trafficRecord(long, domain.Location{}),
		trafficRecord("short", domain.Location{}),
	}})

	cards := s.Cards()
	require.Len(t, cards, 2)
	assert.Equal(t, []rune(long)[:220], []rune(strings.TrimSuffix(cards[0].DisplayText(), "…")))

	s = Reduce(s, CardToggled{Key: cards[0].Key})
	assert.Equal(t, long, s.Cards()[0].DisplayText())
	assert.False(t, s.Cards()[1].Expanded)

	s = Reduce(s, CardToggled{Key: cards[1].Key})
	assert.False(t, s.Cards()[1].Expanded, "short cards have no toggle")

	s = Reduce(s, CardToggled{Key: cards[0].Key})
	assert.False(t, s.Cards()[0].Expanded)
}

func TestReduce_ToggleSurvivesGeocode(t *testing.T) {
	loc := domain.Location{Latitude: "53.55", Longitude: "-113.49"}
	s := Reduce(NewState(), DatasetSelected{Kind: domain.DatasetTraffic})
	prev := s
	s = Reduce(s, FetchSucceeded{Generation: s.Generation, Records: []domain.ClosureRecord{
		trafficRecord(strings.Repeat("b", 250), loc),
	}})

	before := s.Cards()[0]
	assert.Equal(t, "Road – N/A", before.Title)
	s = Reduce(s, CardToggled{Key: before.Key})

	s = Reduce(s, GeocodeResolved{Generation: s.Generation, Names: map[string]string{loc.Key(): "Downtown"}})
	after := s.Cards()[0]
	assert.Equal(t, "Road – Downtown", after.Title)
	assert.NotEqual(t, before.Key, after.Key)
	assert.True(t, after.Expanded)

	assert.Empty(t, prev.Expanded, "earlier snapshots are not mutated")
}
