package translator

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

// SeedSnippets inserts the pairs of t. With overwrite=false existing rows
// are kept untouched, so edits made in the database survive restarts.
func (r *Repo) SeedSnippets(ctx context.Context, t Table, overwrite bool) error {
	if len(t) == 0 {
		return nil
	}
	rows := make([]Snippet, 0, len(t))
	for _, k := range t.Pairs() {
		rows = append(rows, Snippet{Source: k.Source, Target: k.Target, Body: t[k]})
	}

	onConflict := clause.OnConflict{
		Columns:   []clause.Column{{Name: "source"}, {Name: "target"}},
		DoNothing: true,
	}
	if overwrite {
		onConflict = clause.OnConflict{
			Columns:   []clause.Column{{Name: "source"}, {Name: "target"}},
			DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
		}
	}
	return r.db.WithContext(ctx).Clauses(onConflict).Create(&rows).Error
}

func (r *Repo) LoadTable(ctx context.Context) (Table, error) {
	var rows []Snippet
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	t := make(Table, len(rows))
	for _, s := range rows {
		if !s.Source.Valid() || !s.Target.Valid() {
			continue
		}
		t[PairKey{Source: s.Source, Target: s.Target}] = s.Body
	}
	return t, nil
}

// Job CRUD
func (r *Repo) CreateJob(ctx context.Context, job *Job) error {
	return r.db.WithContext(ctx).Create(job).Error
}

func (r *Repo) GetJobByID(ctx context.Context, id string) (*Job, error) {
	var j Job
	if err := r.db.WithContext(ctx).First(&j, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

func (r *Repo) GetJobByIdempotencyKey(ctx context.Context, key string) (*Job, error) {
	var j Job
	if err := r.db.WithContext(ctx).
		Where("idempotency_key = ?", key).
		First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// CreateJobOrGetExisting creates the job, or returns the job already stored
// under the same idempotency key.
func (r *Repo) CreateJobOrGetExisting(ctx context.Context, job *Job) (*Job, bool, error) {
	if job.IdempotencyKey == nil || *job.IdempotencyKey == "" {
		job.IdempotencyKey = nil
		if err := r.CreateJob(ctx, job); err != nil {
			return nil, false, err
		}
		return job, true, nil
	}

	err := r.CreateJob(ctx, job)
	if err == nil {
		return job, true, nil
	}

	existing, getErr := r.GetJobByIdempotencyKey(ctx, *job.IdempotencyKey)
	if getErr == nil {
		return existing, false, nil
	}
	if errors.Is(getErr, gorm.ErrRecordNotFound) {
		return nil, false, err
	}
	return nil, false, getErr
}

// TransitionJob moves a job from one status to another. It reports false
// when the row was not in the expected status any more.
func (r *Repo) TransitionJob(ctx context.Context, id string, from, to JobStatus, fields map[string]any) (bool, error) {
	updates := map[string]any{"status": to}
	for k, v := range fields {
		updates[k] = v
	}
	res := r.db.WithContext(ctx).Model(&Job{}).
		Where("id = ? AND status = ?", id, from).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
