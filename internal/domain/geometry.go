package domain

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/opendata-browser/internal/pkg/utils"
)

// Location - пара координат в том виде, в каком она пришла из датасета.
// Строки сохраняются дословно: из них строится ключ кеша районов "lat,lon".
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Key - ключ кеша районов
func (l Location) Key() string {
	return l.Latitude + "," + l.Longitude
}

func (l Location) IsZero() bool {
	return strings.TrimSpace(l.Latitude) == "" && strings.TrimSpace(l.Longitude) == ""
}

// Coordinate конвертирует строки в числа. Нечисловые, бесконечные и
// выходящие за диапазон значения считаются отсутствующими.
func (l Location) Coordinate() (Coordinate, bool) {
	lat, err := strconv.ParseFloat(strings.TrimSpace(l.Latitude), 64)
	if err != nil {
		return Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(l.Longitude), 64)
	if err != nil {
		return Coordinate{}, false
	}
	if !utils.ValidateCoordinates(lat, lon) {
		return Coordinate{}, false
	}
	return Coordinate{Lat: lat, Lon: lon}, true
}

type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Geometry - полигон/линия закрытия в GeoJSON с рамкой для auto-fit карты
type Geometry struct {
	Type    string          `json:"type"`
	GeoJSON json.RawMessage `json:"geojson"`
	Bounds  BoundingBox     `json:"bounds"`
}

// Center - центр рамки геометрии
func (g *Geometry) Center() Coordinate {
	return Coordinate{
		Lat: (g.Bounds.MinLat + g.Bounds.MaxLat) / 2,
		Lon: (g.Bounds.MinLon + g.Bounds.MaxLon) / 2,
	}
}
