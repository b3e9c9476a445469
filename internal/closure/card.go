package closure

import (
	"fmt"
	"strings"
	"time"

	"github.com/opendata-browser/internal/domain"
)

const (
	// SummaryLength - длинный текст длиннее этого числа символов усекается
	SummaryLength = 220
	Ellipsis      = "…"

	defaultInfrastructure = "Infrastructure"
	displayDateLayout     = "Jan 2, 2006"
)

var inputDateLayouts = []string{
	"2006-01-02T15:04:05.000",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// BuildCards строит карточки в порядке записей. names - разрешённые районы
// по ключу "lat,lon", expanded - раскрытые карточки по ключу карточки.
func BuildCards(records []domain.ClosureRecord, names map[string]string, expanded map[string]bool) []domain.ClosureCard {
	cards := make([]domain.ClosureCard, 0, len(records))
	for i, r := range records {
		card := BuildCard(r, i, names)
		card.Expanded = card.Truncated && expanded[card.Key]
		cards = append(cards, card)
	}
	return cards
}

func BuildCard(r domain.ClosureRecord, index int, names map[string]string) domain.ClosureCard {
	title := Title(r, names)
	start := FormatDate(r.StartDate)
	text := orNA(r.LongText())
	summary, truncated := Truncate(text, SummaryLength)

	return domain.ClosureCard{
		Key:          CardKey(title, start, index),
		Index:        index,
		Kind:         r.Kind,
		Title:        title,
		ActivityType: orNA(r.ActivityType),
		ClosureType:  orNA(r.ClosureType),
		StartDate:    start,
		EndDate:      EndDateDisplay(r),
		Text:         text,
		Summary:      summary,
		Truncated:    truncated,
		Permanent:    r.IsPermanent(),
		Preview:      Preview(r),
	}
}

// Title - "<инфраструктура> – <место или район>"
func Title(r domain.ClosureRecord, names map[string]string) string {
	infra := strings.TrimSpace(r.Infrastructure)
	if infra == "" {
		infra = defaultInfrastructure
	}

	place := strings.TrimSpace(r.LocationName)
	if place == "" {
		place = strings.TrimSpace(names[r.Location.Key()])
	}
	if place == "" {
		place = domain.NotAvailable
	}

	return infra + " – " + place
}

// EndDateDisplay: при наличии даты окончания показывается "N/A",
// иначе свободный текст duration.
func EndDateDisplay(r domain.ClosureRecord) string {
	if strings.TrimSpace(r.EndDate) != "" {
		return domain.NotAvailable
	}
	return orNA(r.Duration)
}

// CardKey - ключ состояния раскрытия карточки
func CardKey(title, startDate string, index int) string {
	return fmt.Sprintf("%s|%s|%d", title, startDate, index)
}

// Truncate усекает по символам, а не байтам
func Truncate(s string, limit int) (string, bool) {
	runes := []rune(s)
	if len(runes) <= limit {
		return s, false
	}
	return string(runes[:limit]) + Ellipsis, true
}

// FormatDate форматирует дату портала; нераспознанная строка возвращается как есть
func FormatDate(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.NotAvailable
	}
	for _, layout := range inputDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(displayDateLayout)
		}
	}
	return s
}

// Preview: геометрия с рамкой, иначе маркер, иначе заглушка
func Preview(r domain.ClosureRecord) domain.MapPreview {
	if r.Geometry != nil {
		center := r.Geometry.Center()
		return domain.MapPreview{
			Kind:     domain.PreviewGeometry,
			Center:   &center,
			Geometry: r.Geometry,
		}
	}
	if c, ok := r.Location.Coordinate(); ok {
		return domain.MapPreview{
			Kind:   domain.PreviewMarker,
			Center: &c,
		}
	}
	return domain.MapPreview{
		Kind:        domain.PreviewNone,
		Placeholder: domain.NoLocationPlaceholder,
	}
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.NotAvailable
	}
	return s
}
