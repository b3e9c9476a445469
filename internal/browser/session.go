package browser

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/pkg/errors"
)

// Loader - загрузка датасета и разрешение районов для его записей
type Loader interface {
	Load(ctx context.Context, kind domain.DatasetKind) ([]domain.ClosureRecord, error)
	ResolveNeighbourhoods(ctx context.Context, records []domain.ClosureRecord) map[string]string
}

// Session - состояние одной вкладки браузера под мьютексом
type Session struct {
	ID string

	mu     sync.Mutex
	state  State
	loader Loader
	logger *zap.Logger
	wg     sync.WaitGroup
}

func NewSession(id string, loader Loader, logger *zap.Logger) *Session {
	return &Session{
		ID:     id,
		state:  NewState(),
		loader: loader,
		logger: logger.With(zap.String("session_id", id)),
	}
}

// Dispatch применяет событие и возвращает новое состояние
func (s *Session) Dispatch(e Event) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = Reduce(s.state, e)
	return s.state
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// SelectDataset переключает датасет и запускает загрузку в фоне.
// Сетевой запрос предыдущей загрузки не прерывается, отбрасывается только
// его результат.
func (s *Session) SelectDataset(kind domain.DatasetKind) (State, error) {
	if !kind.Valid() {
		return s.State(), errors.ErrInvalidDatasetKind
	}

	state := s.Dispatch(DatasetSelected{Kind: kind})

	s.wg.Add(1)
	go func(gen uint64) {
		defer s.wg.Done()
		s.load(gen, kind)
	}(state.Generation)

	return state, nil
}

// SelectView меняет режим отображения
func (s *Session) SelectView(view ViewMode) (State, error) {
	if _, ok := ParseViewMode(string(view)); !ok {
		return s.State(), errors.ErrInvalidViewMode
	}
	return s.Dispatch(ViewModeSelected{View: view}), nil
}

// ToggleCard раскрывает усечённую карточку или сворачивает раскрытую
func (s *Session) ToggleCard(key string) State {
	return s.Dispatch(CardToggled{Key: key})
}

// Wait блокируется до завершения всех запущенных загрузок
func (s *Session) Wait() {
	s.wg.Wait()
}

func (s *Session) load(gen uint64, kind domain.DatasetKind) {
	ctx := context.Background()

	records, err := s.loader.Load(ctx, kind)
	if err != nil {
		s.logger.Warn("Dataset load failed",
			zap.String("kind", string(kind)),
			zap.Uint64("generation", gen),
			zap.Error(err))
		s.Dispatch(FetchFailed{Generation: gen, Err: err})
		return
	}

	state := s.Dispatch(FetchSucceeded{Generation: gen, Records: records})
	if state.Generation != gen {
		s.logger.Debug("Discarded stale dataset result",
			zap.String("kind", string(kind)),
			zap.Uint64("generation", gen))
		return
	}

	names := s.loader.ResolveNeighbourhoods(ctx, records)
	s.Dispatch(GeocodeResolved{Generation: gen, Names: names})
}
