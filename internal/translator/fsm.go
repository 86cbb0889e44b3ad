package translator

import (
	"context"
	"fmt"

	"github.com/qmuntal/stateless"
)

type jobTrigger string

const (
	triggerStart   jobTrigger = "start"
	triggerSucceed jobTrigger = "succeed"
	triggerFail    jobTrigger = "fail"
)

// newJobMachine builds the job lifecycle:
// queued -> running -> succeeded | failed, and queued -> failed.
func newJobMachine(from JobStatus) *stateless.StateMachine {
	sm := stateless.NewStateMachine(from)

	sm.Configure(JobQueued).
		Permit(triggerStart, JobRunning).
		Permit(triggerFail, JobFailed)

	sm.Configure(JobRunning).
		Permit(triggerSucceed, JobSucceeded).
		Permit(triggerFail, JobFailed)

	sm.Configure(JobSucceeded)
	sm.Configure(JobFailed)

	return sm
}

// nextStatus returns the status reached by firing trigger from status, or
// an error if the transition is not allowed.
func nextStatus(ctx context.Context, from JobStatus, trigger jobTrigger) (JobStatus, error) {
	sm := newJobMachine(from)
	if err := sm.FireCtx(ctx, trigger); err != nil {
		return from, fmt.Errorf("job %s: %w", from, err)
	}
	st, err := sm.State(ctx)
	if err != nil {
		return from, err
	}
	return st.(JobStatus), nil
}
