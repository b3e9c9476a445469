package dto

import "github.com/opendata-browser/internal/domain"

// Статусы загрузки датасета
const (
	StatusReady  = "ready"
	StatusFailed = "failed"
)

// ClosureListResponse - карточки закрытий выбранного датасета
type ClosureListResponse struct {
	Kind   domain.DatasetKind   `json:"kind"`
	Status string               `json:"status"`
	Cards  []domain.ClosureCard `json:"cards"`
	Total  int                  `json:"total"`
}

type EmbedResponse struct {
	Kind domain.DatasetKind `json:"kind"`
	URL  string             `json:"url"`
}

type ParkListResponse struct {
	Parks []domain.Park `json:"parks"`
	Total int           `json:"total"`
}

// ResolveResponse - название района для ключа "lat,lon"
type ResolveResponse struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

// SessionResponse - снимок состояния сессии браузера
type SessionResponse struct {
	ID         string               `json:"id"`
	Kind       domain.DatasetKind   `json:"kind"`
	View       string               `json:"view"`
	Status     string               `json:"status"`
	Generation uint64               `json:"generation"`
	EmbedURL   string               `json:"embed_url,omitempty"`
	Cards      []domain.ClosureCard `json:"cards"`
	Total      int                  `json:"total"`
}

type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}
