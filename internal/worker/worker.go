package worker

import "context"

// Worker - фоновая задача, которой управляет Manager
type Worker interface {
	// Start блокируется до остановки воркера или отмены ctx
	Start(ctx context.Context) error
	Stop() error
	Name() string
}
