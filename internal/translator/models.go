package translator

import "time"

type Snippet struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	Source    Format    `gorm:"type:varchar(32);not null;index:uniq_snippet_pair,unique,priority:1" json:"source"`
	Target    Format    `gorm:"type:varchar(32);not null;index:uniq_snippet_pair,unique,priority:2" json:"target"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Snippet) TableName() string { return "translation_snippets" }

type JobStatus string

const (
	JobQueued    JobStatus = "queued"
	JobRunning   JobStatus = "running"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

type Job struct {
	ID string `gorm:"primaryKey;size:26" json:"id"` // ULID length

	Source Format `gorm:"type:varchar(32);not null" json:"source"`
	Target Format `gorm:"type:varchar(32);not null" json:"target"`
	Code   string `gorm:"type:text;not null" json:"-"`

	IdempotencyKey *string `gorm:"type:varchar(128);uniqueIndex" json:"-"`

	Status JobStatus `gorm:"type:varchar(16);index;not null" json:"status"`

	// Filled when succeeded
	Result *string `gorm:"type:text" json:"result"`

	// Filled when failed
	Error *string `gorm:"type:text" json:"error"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Job) TableName() string { return "translation_jobs" }

// Models lists every table this package owns, for AutoMigrate.
func Models() []any {
	return []any{&Snippet{}, &Job{}}
}
