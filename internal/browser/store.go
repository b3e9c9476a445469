package browser

import (
	"container/list"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/pkg/errors"
)

// Store - сессии по UUID, при переполнении вытесняется давно не использованная
type Store struct {
	mu       sync.Mutex
	sessions map[string]*list.Element
	order    *list.List
	max      int
	loader   Loader
	logger   *zap.Logger
}

func NewStore(maxSessions int, loader Loader, logger *zap.Logger) *Store {
	return &Store{
		sessions: make(map[string]*list.Element),
		order:    list.New(),
		max:      maxSessions,
		loader:   loader,
		logger:   logger,
	}
}

// Create заводит сессию и сразу начинает загрузку датасета троп
func (st *Store) Create() *Session {
	sess := NewSession(uuid.NewString(), st.loader, st.logger)

	st.mu.Lock()
	if st.max > 0 {
		for st.order.Len() >= st.max {
			oldest := st.order.Back()
			evicted := st.order.Remove(oldest).(*Session)
			delete(st.sessions, evicted.ID)
			st.logger.Debug("Session evicted", zap.String("session_id", evicted.ID))
		}
	}
	st.sessions[sess.ID] = st.order.PushFront(sess)
	st.mu.Unlock()

	_, _ = sess.SelectDataset(domain.DatasetTrail)
	return sess
}

func (st *Store) Get(id string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	el, ok := st.sessions[id]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	st.order.MoveToFront(el)
	return el.Value.(*Session), nil
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.order.Len()
}
