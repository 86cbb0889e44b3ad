package translator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/suPer8Hu/devopstile/internal/common"
	"go.uber.org/zap"
)

// JobQueue hands job ids to whatever executes them.
type JobQueue interface {
	PublishJob(ctx context.Context, jobID string) error
}

type Service struct {
	repo  *Repo
	delay time.Duration
	log   *zap.Logger

	mu    sync.RWMutex
	table Table
}

func NewService(repo *Repo, table Table, delay time.Duration, log *zap.Logger) *Service {
	if table == nil {
		table = DefaultTable()
	}
	if delay < 0 {
		delay = 0
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{repo: repo, table: table.Clone(), delay: delay, log: log}
}

// Bootstrap seeds the snippet table with the built-in pairs and the
// optional overlay, then loads the merged table back from the database.
func Bootstrap(ctx context.Context, repo *Repo, overlay Table) (Table, error) {
	if err := repo.SeedSnippets(ctx, DefaultTable(), false); err != nil {
		return nil, fmt.Errorf("seed default snippets: %w", err)
	}
	if err := repo.SeedSnippets(ctx, overlay, true); err != nil {
		return nil, fmt.Errorf("seed snippet overlay: %w", err)
	}
	return repo.LoadTable(ctx)
}

func (s *Service) Table() Table {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Clone()
}

// Reload replaces the in-memory table with the database contents.
func (s *Service) Reload(ctx context.Context) error {
	t, err := s.repo.LoadTable(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()
	return nil
}

func (s *Service) lookup(code string, source, target Format) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.table.Translate(code, source, target)
}

// Translate waits the simulated processing delay and returns the lookup
// result. Only ctx cancellation can make it fail.
func (s *Service) Translate(ctx context.Context, code string, source, target Format) (string, error) {
	if err := sleep(ctx, s.delay); err != nil {
		return "", err
	}
	return s.lookup(code, source, target), nil
}

func (s *Service) CreateJob(ctx context.Context, code string, source, target Format, idempotencyKey *string) (*Job, bool, error) {
	id, err := common.NewULID()
	if err != nil {
		return nil, false, err
	}
	j := &Job{
		ID:             id,
		Source:         source,
		Target:         target,
		Code:           code,
		IdempotencyKey: idempotencyKey,
		Status:         JobQueued,
	}
	return s.repo.CreateJobOrGetExisting(ctx, j)
}

func (s *Service) GetJob(ctx context.Context, jobID string) (*Job, error) {
	return s.repo.GetJobByID(ctx, jobID)
}

var ErrJobNotRunnable = errors.New("job is not queued")

// RunJob executes a queued job: queued -> running, wait, -> succeeded.
func (s *Service) RunJob(ctx context.Context, jobID string) error {
	j, err := s.repo.GetJobByID(ctx, jobID)
	if err != nil {
		return err
	}

	running, err := nextStatus(ctx, j.Status, triggerStart)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrJobNotRunnable, err)
	}
	moved, err := s.repo.TransitionJob(ctx, j.ID, j.Status, running, nil)
	if err != nil {
		return err
	}
	if !moved {
		// another consumer picked it up
		return ErrJobNotRunnable
	}

	start := time.Now()
	out, err := s.Translate(ctx, j.Code, j.Source, j.Target)
	if err != nil {
		s.failJob(j.ID, running, err)
		return err
	}

	done, err := nextStatus(ctx, running, triggerSucceed)
	if err != nil {
		return err
	}
	if _, err := s.repo.TransitionJob(ctx, j.ID, running, done, map[string]any{
		"result": out,
		"error":  nil,
	}); err != nil {
		return err
	}

	s.log.Debug("translation job done",
		zap.String("job_id", j.ID),
		zap.String("pair", PairKey{Source: j.Source, Target: j.Target}.String()),
		zap.Duration("cost", time.Since(start)),
	)
	return nil
}

func (s *Service) failJob(id string, from JobStatus, cause error) {
	to, err := nextStatus(context.Background(), from, triggerFail)
	if err != nil {
		s.log.Error("job fail transition", zap.String("job_id", id), zap.Error(err))
		return
	}
	// the caller's ctx may be what failed
	cctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := s.repo.TransitionJob(cctx, id, from, to, map[string]any{
		"error":  cause.Error(),
		"result": nil,
	}); err != nil {
		s.log.Error("mark job failed", zap.String("job_id", id), zap.Error(err))
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
