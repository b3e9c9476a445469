package warmup_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opendata-browser/internal/domain"
	"github.com/opendata-browser/internal/worker"
	"github.com/opendata-browser/internal/worker/warmup"
)

// MockDatasetLoader is a mock of DatasetLoader
type MockDatasetLoader struct {
	mock.Mock
}

func (m *MockDatasetLoader) Load(ctx context.Context, kind domain.DatasetKind) ([]domain.ClosureRecord, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ClosureRecord), args.Error(1)
}

func (m *MockDatasetLoader) ResolveNeighbourhoods(ctx context.Context, records []domain.ClosureRecord) map[string]string {
	args := m.Called(ctx, records)
	return args.Get(0).(map[string]string)
}

func TestWarmOnce_ResolvesBothDatasets(t *testing.T) {
	loader := new(MockDatasetLoader)
	trail := []domain.ClosureRecord{{Kind: domain.DatasetTrail}}
	traffic := []domain.ClosureRecord{{Kind: domain.DatasetTraffic}}

	loader.On("Load", mock.Anything, domain.DatasetTrail).Return(trail, nil).Once()
	loader.On("Load", mock.Anything, domain.DatasetTraffic).Return(traffic, nil).Once()
	loader.On("ResolveNeighbourhoods", mock.Anything, trail).Return(map[string]string{"53.5,-113.5": "Downtown"}).Once()
	loader.On("ResolveNeighbourhoods", mock.Anything, traffic).Return(map[string]string{"53.6,-113.4": domain.NotAvailable}).Once()

	w := warmup.NewNeighbourhoodWarmer(loader, time.Minute, zap.NewNop())
	w.WarmOnce(context.Background())

	loader.AssertExpectations(t)
}

func TestWarmOnce_SkipsFailedDataset(t *testing.T) {
	loader := new(MockDatasetLoader)
	traffic := []domain.ClosureRecord{{Kind: domain.DatasetTraffic}}

	loader.On("Load", mock.Anything, domain.DatasetTrail).Return(nil, errors.New("portal down")).Once()
	loader.On("Load", mock.Anything, domain.DatasetTraffic).Return(traffic, nil).Once()
	loader.On("ResolveNeighbourhoods", mock.Anything, traffic).Return(map[string]string{}).Once()

	w := warmup.NewNeighbourhoodWarmer(loader, time.Minute, zap.NewNop())
	w.WarmOnce(context.Background())

	loader.AssertExpectations(t)
	loader.AssertNumberOfCalls(t, "ResolveNeighbourhoods", 1)
}

func TestWarmer_RunsUntilStopped(t *testing.T) {
	var loads atomic.Int32
	loader := new(MockDatasetLoader)
	loader.On("Load", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { loads.Add(1) }).
		Return([]domain.ClosureRecord{}, nil)
	loader.On("ResolveNeighbourhoods", mock.Anything, mock.Anything).Return(map[string]string{})

	w := warmup.NewNeighbourhoodWarmer(loader, 10*time.Millisecond, zap.NewNop())
	manager := worker.NewManager(zap.NewNop())
	manager.Register(w)

	require.NoError(t, manager.Start(context.Background()))

	assert.Eventually(t, func() bool {
		return loads.Load() >= 2
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, manager.Stop())
	require.NoError(t, w.Stop(), "stop should be idempotent")
}
