package domain

import "strings"

// DatasetKind - какой из двух датасетов закрытий выбран
type DatasetKind string

const (
	DatasetTrail   DatasetKind = "trail"
	DatasetTraffic DatasetKind = "traffic"
)

func ParseDatasetKind(s string) (DatasetKind, bool) {
	k := DatasetKind(strings.ToLower(strings.TrimSpace(s)))
	return k, k.Valid()
}

func (k DatasetKind) Valid() bool {
	return k == DatasetTrail || k == DatasetTraffic
}

// ClosureRecord - нормализованная строка датасета закрытий.
// Kind определяет, какой из вариантов (Trail или Traffic) заполнен.
type ClosureRecord struct {
	Kind           DatasetKind `json:"kind"`
	ActivityType   string      `json:"activity_type,omitempty"`
	ClosureType    string      `json:"closure_type,omitempty"`
	Infrastructure string      `json:"infrastructure,omitempty"`
	LocationName   string      `json:"location_name,omitempty"`
	StartDate      string      `json:"start_date,omitempty"`
	EndDate        string      `json:"end_date,omitempty"`
	Duration       string      `json:"duration,omitempty"`
	Location       Location    `json:"location"`
	Geometry       *Geometry   `json:"geometry,omitempty"`

	Trail   *TrailClosure      `json:"trail,omitempty"`
	Traffic *TrafficDisruption `json:"traffic,omitempty"`
}

type TrailClosure struct {
	Details string `json:"details,omitempty"`
}

type TrafficDisruption struct {
	Description string `json:"description,omitempty"`
	Status      string `json:"status,omitempty"`
}

// LongText - details для троп, description для дорожных ограничений
func (r ClosureRecord) LongText() string {
	switch r.Kind {
	case DatasetTrail:
		if r.Trail != nil {
			return r.Trail.Details
		}
	case DatasetTraffic:
		if r.Traffic != nil {
			return r.Traffic.Description
		}
	}
	return ""
}

// DedupeKey - нормализованный длинный текст; датасеты не отдают идентификаторов
func (r ClosureRecord) DedupeKey() string {
	return strings.ToLower(strings.TrimSpace(r.LongText()))
}

func (r ClosureRecord) IsPermanent() bool {
	return strings.EqualFold(strings.TrimSpace(r.ClosureType), "permanent")
}

// NeedsNeighbourhood - нет названия места, но есть пригодные координаты
func (r ClosureRecord) NeedsNeighbourhood() bool {
	if strings.TrimSpace(r.LocationName) != "" {
		return false
	}
	_, ok := r.Location.Coordinate()
	return ok
}
