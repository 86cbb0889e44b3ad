package rabbitmq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopology(t *testing.T) {
	topo := NewTopology("translation_jobs")
	assert.Equal(t, Topology{
		Main:  "translation_jobs",
		Retry: "translation_jobs.retry",
		DLQ:   "translation_jobs.dlq",
	}, topo)
	assert.Equal(t, "translation_jobs.dlq", deadLetterTo(topo.DLQ)["x-dead-letter-routing-key"])
}

func TestJobPublishing(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	msg, err := jobPublishing("01JOB", now)
	require.NoError(t, err)

	assert.Equal(t, "01JOB", msg.MessageId)
	assert.Equal(t, jobMessageType, msg.Type)
	assert.Equal(t, now, msg.Timestamp)
	assert.EqualValues(t, 2, msg.DeliveryMode)

	id, err := DecodeJob(msg.Body)
	require.NoError(t, err)
	assert.Equal(t, "01JOB", id)
}

func TestJobMessageRoundTrip(t *testing.T) {
	body, err := EncodeJob("01JOB")
	require.NoError(t, err)
	assert.JSONEq(t, `{"job_id":"01JOB"}`, string(body))

	id, err := DecodeJob(body)
	require.NoError(t, err)
	assert.Equal(t, "01JOB", id)
}

func TestDecodeJob_Rejects(t *testing.T) {
	_, err := DecodeJob([]byte(`{}`))
	assert.ErrorIs(t, err, errBadMessage)

	_, err = DecodeJob([]byte(`not json`))
	assert.ErrorIs(t, err, errBadMessage)
}
