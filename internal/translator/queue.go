package translator

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrQueueClosed = errors.New("job queue closed")

// LocalQueue runs jobs in-process. It is used when no broker is
// configured.
type LocalQueue struct {
	svc *Service
	log *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	sem    chan struct{}

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewLocalQueue(svc *Service, concurrency int, log *zap.Logger) *LocalQueue {
	if concurrency <= 0 {
		concurrency = 2
	}
	if log == nil {
		log = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &LocalQueue{
		svc:    svc,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
		sem:    make(chan struct{}, concurrency),
	}
}

func (q *LocalQueue) PublishJob(ctx context.Context, jobID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return ErrQueueClosed
	}
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		select {
		case q.sem <- struct{}{}:
		case <-q.ctx.Done():
			return
		}
		defer func() { <-q.sem }()

		if err := q.svc.RunJob(q.ctx, jobID); err != nil {
			q.log.Warn("local job failed", zap.String("job_id", jobID), zap.Error(err))
		}
	}()
	return nil
}

// Wait blocks until every published job has finished.
func (q *LocalQueue) Wait() {
	q.wg.Wait()
}

// Close stops accepting jobs, cancels running ones and waits for them.
func (q *LocalQueue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	q.cancel()
	q.wg.Wait()
	return nil
}
