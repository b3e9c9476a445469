// Package closure превращает сырые строки датасетов закрытий троп и дорожных
// ограничений в единый вид, убирает дубли и строит карточки для отображения.
package closure

import (
	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/pkg/geo"
)

// fieldAliases - имена колонок в датасетах отличаются, берём первое непустое
type fieldAliases struct {
	activityType   []string
	closureType    []string
	longText       []string
	infrastructure []string
	locationName   []string
	startDate      []string
	endDate        []string
	duration       []string
	status         []string
}

var (
	coordinateFields = [][2]string{{"latitude", "longitude"}, {"lat", "lon"}, {"lat", "lng"}}
	pointFields      = []string{"point", "location", "geometry_point", "geom_point"}
	geometryFields   = []string{"geometry", "the_geom", "geometry_line", "geometry_polygon", "geometry_multiline", "shape"}
)

var aliasesByKind = map[domain.DatasetKind]fieldAliases{
	domain.DatasetTrail: {
		activityType:   []string{"activity_type", "activity"},
		closureType:    []string{"closure_type", "type"},
		longText:       []string{"details", "closure_details", "description"},
		infrastructure: []string{"infrastructure", "infrastructure_type", "asset_type"},
		locationName:   []string{"location_name", "location_description", "trail_name"},
		startDate:      []string{"start_date", "closure_start_date", "start"},
		endDate:        []string{"end_date", "closure_end_date", "finish_date"},
		duration:       []string{"duration", "expected_duration"},
	},
	domain.DatasetTraffic: {
		activityType:   []string{"activity_type", "activity", "disruption_type"},
		closureType:    []string{"closure_type", "closure", "impact"},
		longText:       []string{"description", "disruption_description", "details"},
		infrastructure: []string{"infrastructure", "infrastructure_type"},
		locationName:   []string{"location_name", "location_description"},
		startDate:      []string{"start_date", "starting_date", "start"},
		endDate:        []string{"end_date", "finish_date", "finishing_date"},
		duration:       []string{"duration", "expected_duration"},
		status:         []string{"status"},
	},
}

// NormalizeRecords нормализует все строки одного датасета, порядок сохраняется
func NormalizeRecords(kind domain.DatasetKind, rows []domain.RawRow) []domain.ClosureRecord {
	records := make([]domain.ClosureRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, NormalizeRecord(kind, row))
	}
	return records
}

// NormalizeRecord отображает сырую строку на ClosureRecord нужного варианта.
// Все поля необязательны; битая геометрия превращается в её отсутствие.
func NormalizeRecord(kind domain.DatasetKind, row domain.RawRow) domain.ClosureRecord {
	a := aliasesByKind[kind]

	rec := domain.ClosureRecord{
		Kind:           kind,
		ActivityType:   row.Text(a.activityType...),
		ClosureType:    row.Text(a.closureType...),
		Infrastructure: row.Text(a.infrastructure...),
		LocationName:   row.Text(a.locationName...),
		StartDate:      row.Text(a.startDate...),
		EndDate:        row.Text(a.endDate...),
		Duration:       row.Text(a.duration...),
	}

	switch kind {
	case domain.DatasetTrail:
		rec.Trail = &domain.TrailClosure{Details: row.Text(a.longText...)}
	case domain.DatasetTraffic:
		rec.Traffic = &domain.TrafficDisruption{
			Description: row.Text(a.longText...),
			Status:      row.Text(a.status...),
		}
	}

	rec.Location, rec.Geometry = locate(row)
	return rec
}

// locate: явные latitude/longitude важнее точки, встроенной в строку или геометрию
func locate(row domain.RawRow) (domain.Location, *domain.Geometry) {
	var loc domain.Location
	var g *domain.Geometry

	for _, pair := range coordinateFields {
		lat, latOK := row[pair[0]]
		lon, lonOK := row[pair[1]]
		if !latOK || !lonOK {
			continue
		}
		if l, ok := geo.ParsePoint(map[string]interface{}{"latitude": lat, "longitude": lon}); ok {
			loc = l
			break
		}
	}

	if loc.IsZero() {
		for _, f := range pointFields {
			if l, ok := geo.ParsePoint(row[f]); ok {
				loc = l
				break
			}
		}
	}

	for _, f := range geometryFields {
		shape := geo.Normalize(row[f])
		if shape.Geometry != nil {
			g = shape.Geometry
			break
		}
		if shape.Location != nil && loc.IsZero() {
			loc = *shape.Location
		}
	}

	return loc, g
}
