package domain

// ClosureCard - строка для отображения в списке закрытий
type ClosureCard struct {
	Key          string      `json:"key"`
	Index        int         `json:"index"`
	Kind         DatasetKind `json:"kind"`
	Title        string      `json:"title"`
	ActivityType string      `json:"activity_type"`
	ClosureType  string      `json:"closure_type"`
	StartDate    string      `json:"start_date"`
	EndDate      string      `json:"end_date"`
	Text         string      `json:"text"`
	Summary      string      `json:"summary"`
	Truncated    bool        `json:"truncated"`
	Expanded     bool        `json:"expanded"`
	Permanent    bool        `json:"permanent"`
	Preview      MapPreview  `json:"preview"`
}

// DisplayText - полный текст для раскрытой карточки, иначе усечённый
func (c ClosureCard) DisplayText() string {
	if c.Expanded || !c.Truncated {
		return c.Text
	}
	return c.Summary
}

type PreviewKind string

const (
	PreviewMarker   PreviewKind = "marker"
	PreviewGeometry PreviewKind = "geometry"
	PreviewNone     PreviewKind = "none"
)

const NoLocationPlaceholder = "No location available"

// MapPreview - данные для маленькой неинтерактивной карты в карточке
type MapPreview struct {
	Kind        PreviewKind `json:"kind"`
	Center      *Coordinate `json:"center,omitempty"`
	Geometry    *Geometry   `json:"geometry,omitempty"`
	Placeholder string      `json:"placeholder,omitempty"`
}
