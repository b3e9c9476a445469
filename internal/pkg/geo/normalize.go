// Package geo приводит разнородные кодировки координат из датасетов
// (строки "POINT (lon lat)", GeoJSON, объекты latitude/longitude)
// к одной паре координат или одной геометрии.
package geo

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/pkg/utils"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

const number = `([-+]?\d+(?:\.\d+)?(?:[eE][-+]?\d+)?)`

// pointPattern - два числовых токена подряд: первый долгота, второй широта
var pointPattern = regexp.MustCompile(number + `[\s,]+` + number)

// Shape - результат нормализации: точка, геометрия или ничего
type Shape struct {
	Location *domain.Location
	Geometry *domain.Geometry
}

func (s Shape) IsEmpty() bool {
	return s.Location == nil && s.Geometry == nil
}

// Normalize сначала пытается увидеть во входе точку, затем геометрию
func Normalize(v interface{}) Shape {
	if loc, ok := ParsePoint(v); ok {
		return Shape{Location: &loc}
	}
	if g, ok := ParseGeometry(v); ok {
		return Shape{Geometry: g}
	}
	return Shape{}
}

// ParsePoint никогда не паникует: любой вход даёт пару координат или false
func ParsePoint(v interface{}) (domain.Location, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return domain.Location{}, false
		}
		if looksLikeJSON(s) {
			var decoded interface{}
			if err := json.Unmarshal([]byte(s), &decoded); err == nil {
				return ParsePoint(decoded)
			}
		}
		m := pointPattern.FindStringSubmatch(s)
		if m == nil {
			return domain.Location{}, false
		}
		return domain.Location{Longitude: m[1], Latitude: m[2]}, true

	case map[string]interface{}:
		if coords, ok := t["coordinates"]; ok {
			return pairFromSlice(coords)
		}
		if inner, ok := t["geometry"]; ok && inner != nil {
			return ParsePoint(inner)
		}
		lat, latOK := scalarString(t["latitude"])
		lon, lonOK := scalarString(t["longitude"])
		if latOK && lonOK {
			return domain.Location{Latitude: lat, Longitude: lon}, true
		}
		return domain.Location{}, false

	case []interface{}:
		return pairFromSlice(t)

	case domain.RawRow:
		return ParsePoint(map[string]interface{}(t))
	}

	return domain.Location{}, false
}

// ParseGeometry декодирует GeoJSON-геометрию (или Feature с геометрией).
// Ошибка разбора означает отсутствие геометрии.
func ParseGeometry(v interface{}) (*domain.Geometry, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil, false
		}
		var decoded interface{}
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			return nil, false
		}
		if _, isString := decoded.(string); isString {
			return nil, false
		}
		return ParseGeometry(decoded)

	case map[string]interface{}:
		typ, _ := t["type"].(string)
		if strings.EqualFold(typ, "Feature") {
			return ParseGeometry(t["geometry"])
		}
		if typ == "" {
			return nil, false
		}
		// GeometryCollection не поддерживается: у неё нет плоских координат
		if _, ok := t["coordinates"]; !ok {
			return nil, false
		}
		raw, err := json.Marshal(t)
		if err != nil {
			return nil, false
		}
		return decodeGeometry(typ, raw)

	case domain.RawRow:
		return ParseGeometry(map[string]interface{}(t))
	}

	return nil, false
}

func decodeGeometry(typ string, raw []byte) (*domain.Geometry, bool) {
	var g geom.T
	if err := geojson.Unmarshal(raw, &g); err != nil || g == nil {
		return nil, false
	}
	flat := g.FlatCoords()
	if len(flat) == 0 {
		return nil, false
	}
	for _, f := range flat {
		if !utils.IsFinite(f) {
			return nil, false
		}
	}

	b := g.Bounds()
	return &domain.Geometry{
		Type:    typ,
		GeoJSON: json.RawMessage(raw),
		Bounds: domain.BoundingBox{
			MinLon: b.Min(0),
			MinLat: b.Min(1),
			MaxLon: b.Max(0),
			MaxLat: b.Max(1),
		},
	}, true
}

// pairFromSlice - [lon, lat]; вложенные массивы (полигоны) не являются точкой
func pairFromSlice(v interface{}) (domain.Location, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) < 2 {
		return domain.Location{}, false
	}
	lon, lonOK := scalarString(arr[0])
	lat, latOK := scalarString(arr[1])
	if !lonOK || !latOK {
		return domain.Location{}, false
	}
	return domain.Location{Latitude: lat, Longitude: lon}, true
}

func scalarString(v interface{}) (string, bool) {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(t)
		return s, s != ""
	case float64:
		if !utils.IsFinite(t) {
			return "", false
		}
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case json.Number:
		return t.String(), true
	case int:
		return strconv.Itoa(t), true
	}
	return "", false
}

func looksLikeJSON(s string) bool {
	return strings.HasPrefix(s, "{") || strings.HasPrefix(s, "[") || strings.HasPrefix(s, `"`)
}
