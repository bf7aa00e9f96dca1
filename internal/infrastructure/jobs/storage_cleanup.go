package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"homeserve.backend/pkg/logger"
)

// blobDeleter is the slice of the storage backend the job needs
type blobDeleter interface {
	Delete(ctx context.Context, storagePath string) error
}

// StorageCleanupJob retries deletion of orphaned storage blobs. Paths are
// enqueued when a best-effort delete fails during request handling; the job
// sweeps the queue on an interval and re-queues paths that still fail.
type StorageCleanupJob struct {
	storage  blobDeleter
	interval time.Duration
	stop     chan struct{}

	mu      sync.Mutex
	pending []string
}

func NewStorageCleanupJob(storage blobDeleter, interval time.Duration) *StorageCleanupJob {
	if interval <= 0 {
		interval = time.Minute
	}
	return &StorageCleanupJob{
		storage:  storage,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Enqueue registers a storage path for retried deletion. Never blocks and
// never fails.
func (j *StorageCleanupJob) Enqueue(storagePath string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.pending = append(j.pending, storagePath)
}

func (j *StorageCleanupJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting storage cleanup job")

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "storage cleanup job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "storage cleanup job stopped")
			return
		case <-ticker.C:
			j.processPending(ctx)
		}
	}
}

func (j *StorageCleanupJob) Stop() {
	close(j.stop)
}

func (j *StorageCleanupJob) processPending(ctx context.Context) {
	j.mu.Lock()
	batch := j.pending
	j.pending = nil
	j.mu.Unlock()

	if len(batch) == 0 {
		return
	}

	logger.Info(ctx, "retrying orphaned blob deletions", zap.Int("count", len(batch)))

	var failed []string
	for _, path := range batch {
		if err := j.storage.Delete(ctx, path); err != nil {
			logger.Warn(ctx, "blob deletion failed, will retry",
				zap.String("path", path),
				zap.Error(err),
			)
			failed = append(failed, path)
		}
	}

	if len(failed) > 0 {
		j.mu.Lock()
		j.pending = append(failed, j.pending...)
		j.mu.Unlock()
	}
}
