package opendata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/opendata-browser/internal/config"
	"github.com/opendata-browser/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestConfig(baseURL string) *config.OpenDataConfig {
	return &config.OpenDataConfig{
		ParksURL:              baseURL + "/parks.json",
		TrailClosuresURL:      baseURL + "/trails.json",
		TrafficDisruptionsURL: baseURL + "/traffic.json",
		NeighbourhoodsURL:     baseURL + "/neighbourhoods.json",
		AppToken:              "test_token",
		ParksLimit:            1000,
		TrailLimit:            500,
		TrafficStatuses:       []string{"Current", "REVISED"},
	}
}

func TestClient_FetchTrailClosures(t *testing.T) {
	logger := zap.NewNop()

	t.Run("sends limit and decodes rows", func(t *testing.T) {
		var gotQuery, gotToken string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotQuery = r.URL.Query().Get("$limit")
			gotToken = r.Header.Get("X-App-Token")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"details":"Path washout","infrastructure":"Trail"},{"details":"Bridge repair"}]`))
		}))
		defer server.Close()

		client := NewClient(newTestConfig(server.URL), 50, logger)
		rows, err := client.FetchTrailClosures(context.Background())
		require.NoError(t, err)
		assert.Len(t, rows, 2)
		assert.Equal(t, "Path washout", rows[0]["details"])
		assert.Equal(t, "500", gotQuery)
		assert.Equal(t, "test_token", gotToken)
	})

	t.Run("api error response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`{"message":"boom"}`))
		}))
		defer server.Close()

		client := NewClient(newTestConfig(server.URL), 50, logger)
		rows, err := client.FetchTrailClosures(context.Background())
		assert.Error(t, err)
		assert.Nil(t, rows)
		assert.Contains(t, err.Error(), "status 500")
	})

	t.Run("invalid json", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		client := NewClient(newTestConfig(server.URL), 50, logger)
		_, err := client.FetchTrailClosures(context.Background())
		assert.Error(t, err)
	})
}

func TestClient_FetchTrafficDisruptions(t *testing.T) {
	var gotWhere string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotWhere = r.URL.Query().Get("$where")
		w.Write([]byte(`[{"description":"Lane closure","point":"POINT (-113.49 53.55)"}]`))
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL), 50, zap.NewNop())
	rows, err := client.FetchTrafficDisruptions(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, "status in('Current','REVISED')", gotWhere)
}

func TestClient_FetchParksRaw(t *testing.T) {
	payload := `[{"id":"1","official_name":"Hawrelak Park"}]`
	var gotLimit string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("$limit")
		w.Write([]byte(payload))
	}))
	defer server.Close()

	client := NewClient(newTestConfig(server.URL), 50, zap.NewNop())

	body, err := client.FetchParksRaw(context.Background())
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
	assert.Equal(t, "1000", gotLimit)

	rows, err := client.FetchParks(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Hawrelak Park", rows[0]["official_name"])
}

func TestClient_LookupNeighbourhood(t *testing.T) {
	t.Run("returns first non-empty name", func(t *testing.T) {
		var gotWhere, gotLimit string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotWhere = r.URL.Query().Get("$where")
			gotLimit = r.URL.Query().Get("$limit")
			w.Write([]byte(`[{"name":"","neighbourhood_name":"Downtown"}]`))
		}))
		defer server.Close()

		client := NewClient(newTestConfig(server.URL), 50, zap.NewNop())
		name, err := client.LookupNeighbourhood(context.Background(), domain.Coordinate{Lat: 53.55, Lon: -113.49}, "the_geom")
		require.NoError(t, err)
		assert.Equal(t, "Downtown", name)
		assert.Equal(t, "within_circle(the_geom, 53.55, -113.49, 50)", gotWhere)
		assert.Equal(t, "1", gotLimit)
	})

	t.Run("empty result", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		client := NewClient(newTestConfig(server.URL), 50, zap.NewNop())
		name, err := client.LookupNeighbourhood(context.Background(), domain.Coordinate{Lat: 53.55, Lon: -113.49}, "the_geom")
		require.NoError(t, err)
		assert.Empty(t, name)
	})
}

func TestStatusFilter(t *testing.T) {
	assert.Equal(t, "", statusFilter(nil))
	assert.Equal(t, "status in('O''Brien')", statusFilter([]string{"O'Brien"}))
}
