package opendata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/opendata-browser/internal/config"
	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/pkg/metrics"
	"go.uber.org/zap"
)

// maxErrorBody - сколько байт тела ошибки попадает в сообщение
const maxErrorBody = 512

var neighbourhoodNameFields = []string{"name", "neighbourhood_name", "descriptive_name", "neighbourhood"}

// Client - клиент SODA API городского портала открытых данных
type Client struct {
	httpClient   *http.Client
	cfg          config.OpenDataConfig
	radiusMeters int
	logger       *zap.Logger
}

// NewClient создает клиент портала. Таймаут 0 означает отсутствие таймаута.
func NewClient(cfg *config.OpenDataConfig, radiusMeters int, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		cfg:          *cfg,
		radiusMeters: radiusMeters,
		logger:       logger,
	}
}

// FetchTrailClosures возвращает закрытия троп, не более TrailLimit строк
func (c *Client) FetchTrailClosures(ctx context.Context) ([]domain.RawRow, error) {
	params := url.Values{}
	params.Set("$limit", strconv.Itoa(c.cfg.TrailLimit))
	return c.fetchRows(ctx, "trail_closures", c.cfg.TrailClosuresURL, params)
}

// FetchTrafficDisruptions возвращает только актуальные дорожные ограничения
func (c *Client) FetchTrafficDisruptions(ctx context.Context) ([]domain.RawRow, error) {
	params := url.Values{}
	if where := statusFilter(c.cfg.TrafficStatuses); where != "" {
		params.Set("$where", where)
	}
	return c.fetchRows(ctx, "traffic_disruptions", c.cfg.TrafficDisruptionsURL, params)
}

// FetchParks возвращает разобранный датасет парков
func (c *Client) FetchParks(ctx context.Context) ([]domain.RawRow, error) {
	body, err := c.FetchParksRaw(ctx)
	if err != nil {
		return nil, err
	}
	var rows []domain.RawRow
	if err := json.Unmarshal(body, &rows); err != nil {
		c.logger.Error("Failed to decode parks dataset", zap.Error(err))
		return nil, fmt.Errorf("failed to decode parks: %w", err)
	}
	return rows, nil
}

// FetchParksRaw возвращает тело ответа датасета парков без изменений
func (c *Client) FetchParksRaw(ctx context.Context) ([]byte, error) {
	params := url.Values{}
	params.Set("$limit", strconv.Itoa(c.cfg.ParksLimit))
	return c.get(ctx, "parks", c.cfg.ParksURL, params)
}

// LookupNeighbourhood ищет район, граница которого попадает в радиус вокруг точки
func (c *Client) LookupNeighbourhood(ctx context.Context, point domain.Coordinate, geometryColumn string) (string, error) {
	params := url.Values{}
	params.Set("$where", fmt.Sprintf("within_circle(%s, %s, %s, %d)",
		geometryColumn,
		strconv.FormatFloat(point.Lat, 'f', -1, 64),
		strconv.FormatFloat(point.Lon, 'f', -1, 64),
		c.radiusMeters,
	))
	params.Set("$limit", "1")

	rows, err := c.fetchRows(ctx, "neighbourhoods", c.cfg.NeighbourhoodsURL, params)
	if err != nil {
		return "", err
	}
	for _, row := range rows {
		if name := row.Text(neighbourhoodNameFields...); name != "" {
			return name, nil
		}
	}
	return "", nil
}

func (c *Client) fetchRows(ctx context.Context, dataset, endpoint string, params url.Values) ([]domain.RawRow, error) {
	body, err := c.get(ctx, dataset, endpoint, params)
	if err != nil {
		return nil, err
	}

	var rows []domain.RawRow
	if err := json.Unmarshal(body, &rows); err != nil {
		c.logger.Error("Failed to decode dataset",
			zap.String("dataset", dataset),
			zap.Error(err))
		return nil, fmt.Errorf("failed to decode %s: %w", dataset, err)
	}

	c.logger.Debug("Dataset fetched",
		zap.String("dataset", dataset),
		zap.Int("rows", len(rows)))

	return rows, nil
}

func (c *Client) get(ctx context.Context, dataset, endpoint string, params url.Values) (body []byte, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(dataset, start, err) }()

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid %s url: %w", dataset, err)
	}
	q := u.Query()
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.String("dataset", dataset), zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.AppToken != "" {
		req.Header.Set("X-App-Token", c.cfg.AppToken)
	}

	c.logger.Debug("Calling open data portal",
		zap.String("dataset", dataset),
		zap.String("url", u.String()))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.String("dataset", dataset), zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Error("Open data portal returned error",
			zap.String("dataset", dataset),
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(msg)))
		return nil, fmt.Errorf("open data API error: status %d, body: %s", resp.StatusCode, string(msg))
	}

	body, err = io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Error("Failed to read response", zap.String("dataset", dataset), zap.Error(err))
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

// statusFilter строит SoQL-условие status in('A','B')
func statusFilter(statuses []string) string {
	if len(statuses) == 0 {
		return ""
	}
	quoted := make([]string, len(statuses))
	for i, s := range statuses {
		quoted[i] = "'" + strings.ReplaceAll(s, "'", "''") + "'"
	}
	return fmt.Sprintf("status in(%s)", strings.Join(quoted, ","))
}
