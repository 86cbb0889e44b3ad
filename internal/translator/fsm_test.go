package translator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStatus(t *testing.T) {
	ctx := context.Background()
	cases := []struct {
		from    JobStatus
		trigger jobTrigger
		want    JobStatus
	}{
		{JobQueued, triggerStart, JobRunning},
		{JobQueued, triggerFail, JobFailed},
		{JobRunning, triggerSucceed, JobSucceeded},
		{JobRunning, triggerFail, JobFailed},
	}
	for _, tc := range cases {
		got, err := nextStatus(ctx, tc.from, tc.trigger)
		require.NoError(t, err, "%s --%s-->", tc.from, tc.trigger)
		assert.Equal(t, tc.want, got)
	}
}

func TestNextStatus_Illegal(t *testing.T) {
	ctx := context.Background()
	for _, tc := range []struct {
		from    JobStatus
		trigger jobTrigger
	}{
		{JobQueued, triggerSucceed},
		{JobRunning, triggerStart},
		{JobSucceeded, triggerStart},
		{JobSucceeded, triggerFail},
		{JobFailed, triggerStart},
	} {
		got, err := nextStatus(ctx, tc.from, tc.trigger)
		assert.Error(t, err, "%s --%s-->", tc.from, tc.trigger)
		assert.Equal(t, tc.from, got)
	}
}
