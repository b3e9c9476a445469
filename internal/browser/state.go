// Package browser хранит состояние страницы закрытий: выбранный датасет,
// режим отображения, загруженные записи и раскрытые карточки.
// Переходы выполняет чистая функция Reduce.
package browser

import (
	"github.com/opendata-browser/internal/closure"
	"github.com/opendata-browser/internal/domain"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusReady   Status = "ready"
	StatusFailed  Status = "failed"
)

// ViewMode - встроенная карта или список карточек
type ViewMode string

const (
	ViewList ViewMode = "list"
	ViewMap  ViewMode = "map"
)

func ParseViewMode(s string) (ViewMode, bool) {
	switch v := ViewMode(s); v {
	case ViewList, ViewMap:
		return v, true
	}
	return "", false
}

// State - неизменяемый снимок; Reduce возвращает новую копию,
// карты Names и Expanded не разделяются между снимками после изменения.
type State struct {
	Kind       domain.DatasetKind
	View       ViewMode
	Generation uint64
	Status     Status
	Records    []domain.ClosureRecord
	Names      map[string]string
	Expanded   map[string]bool
}

func NewState() State {
	return State{
		Kind:     domain.DatasetTrail,
		View:     ViewList,
		Status:   StatusIdle,
		Names:    map[string]string{},
		Expanded: map[string]bool{},
	}
}

// Cards строит карточки из записей и разрешённых районов
func (s State) Cards() []domain.ClosureCard {
	return closure.BuildCards(s.Records, s.Names, s.Expanded)
}

type Event interface {
	event()
}

// DatasetSelected начинает новый цикл загрузки
type DatasetSelected struct {
	Kind domain.DatasetKind
}

type ViewModeSelected struct {
	View ViewMode
}

type FetchSucceeded struct {
	Generation uint64
	Records    []domain.ClosureRecord
}

type FetchFailed struct {
	Generation uint64
	Err        error
}

type GeocodeResolved struct {
	Generation uint64
	Names      map[string]string
}

// CardToggled раскрывает или сворачивает карточку по её ключу
type CardToggled struct {
	Key string
}

func (DatasetSelected) event()  {}
func (ViewModeSelected) event() {}
func (FetchSucceeded) event()   {}
func (FetchFailed) event()      {}
func (GeocodeResolved) event()  {}
func (CardToggled) event()      {}

// Reduce применяет событие к состоянию. Результаты загрузки с устаревшим
// поколением отбрасываются, чтобы медленный ответ не перезаписал новый выбор.
func Reduce(s State, e Event) State {
	switch ev := e.(type) {
	case DatasetSelected:
		if !ev.Kind.Valid() {
			return s
		}
		s.Kind = ev.Kind
		s.Generation++
		s.Status = StatusLoading
		s.Records = nil
		s.Names = map[string]string{}
		s.Expanded = map[string]bool{}

	case ViewModeSelected:
		if _, ok := ParseViewMode(string(ev.View)); ok {
			s.View = ev.View
		}

	case FetchSucceeded:
		if ev.Generation != s.Generation {
			return s
		}
		s.Status = StatusReady
		s.Records = ev.Records
		s.Expanded = map[string]bool{}

	case FetchFailed:
		if ev.Generation != s.Generation {
			return s
		}
		s.Status = StatusFailed
		s.Records = nil
		s.Expanded = map[string]bool{}

	case GeocodeResolved:
		if ev.Generation != s.Generation || s.Status != StatusReady {
			return s
		}
		before := s.Cards()
		names := make(map[string]string, len(s.Names)+len(ev.Names))
		for k, v := range s.Names {
			names[k] = v
		}
		for k, v := range ev.Names {
			names[k] = v
		}
		s.Names = names
		s.Expanded = migrateExpanded(before, s.Cards(), s.Expanded)

	case CardToggled:
		card, ok := findCard(s.Cards(), ev.Key)
		if !ok || !card.Truncated {
			return s
		}
		expanded := make(map[string]bool, len(s.Expanded)+1)
		for k, v := range s.Expanded {
			expanded[k] = v
		}
		if expanded[ev.Key] {
			delete(expanded, ev.Key)
		} else {
			expanded[ev.Key] = true
		}
		s.Expanded = expanded
	}

	return s
}

// migrateExpanded переносит раскрытие по позиции карточки: ключ содержит
// заголовок, который меняется, когда район становится известен.
func migrateExpanded(before, after []domain.ClosureCard, expanded map[string]bool) map[string]bool {
	out := make(map[string]bool, len(expanded))
	for i, card := range before {
		if !expanded[card.Key] || i >= len(after) {
			continue
		}
		out[after[i].Key] = true
	}
	return out
}

func findCard(cards []domain.ClosureCard, key string) (domain.ClosureCard, bool) {
	for _, c := range cards {
		if c.Key == key {
			return c, true
		}
	}
	return domain.ClosureCard{}, false
}
