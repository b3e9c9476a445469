package worker

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// BaseWorker - остановка и общие поля периодических воркеров
type BaseWorker struct {
	name     string
	interval time.Duration
	logger   *zap.Logger

	mu       sync.Mutex
	stopChan chan struct{}
	stopped  bool
}

// NewBaseWorker создает BaseWorker, запускаемый каждые interval
func NewBaseWorker(name string, interval time.Duration, logger *zap.Logger) *BaseWorker {
	return &BaseWorker{
		name:     name,
		interval: interval,
		logger:   logger.With(zap.String("worker", name)),
		stopChan: make(chan struct{}),
	}
}

func (w *BaseWorker) Name() string {
	return w.name
}

func (w *BaseWorker) Interval() time.Duration {
	return w.interval
}

// Stop идемпотентен
func (w *BaseWorker) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}

	w.logger.Info("Stopping worker")
	close(w.stopChan)
	w.stopped = true

	return nil
}

func (w *BaseWorker) StopChan() <-chan struct{} {
	return w.stopChan
}

func (w *BaseWorker) Logger() *zap.Logger {
	return w.logger
}

// Run вызывает tick сразу и затем каждые interval, пока воркер не остановлен
func (w *BaseWorker) Run(ctx context.Context, tick func(ctx context.Context)) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	tick(ctx)
	for {
		select {
		case <-w.stopChan:
			w.logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			w.logger.Info("Context cancelled")
			return ctx.Err()
		case <-ticker.C:
			tick(ctx)
		}
	}
}
