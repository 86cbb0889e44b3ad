package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	publishTimeout = 5 * time.Second
	jobMessageType = "translation.job"
)

// JobMessage is the body of every translation job delivery.
type JobMessage struct {
	JobID string `json:"job_id"`
}

func EncodeJob(jobID string) ([]byte, error) {
	return json.Marshal(JobMessage{JobID: jobID})
}

// Topology names the queues that back one job queue. Rejected deliveries
// on Main dead-letter into DLQ; expired messages on Retry go back to Main.
type Topology struct {
	Main  string
	Retry string
	DLQ   string
}

func NewTopology(queue string) Topology {
	return Topology{Main: queue, Retry: queue + ".retry", DLQ: queue + ".dlq"}
}

func deadLetterTo(queue string) amqp.Table {
	return amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": queue,
	}
}

// Declare creates all three queues as durable. Publisher and worker both
// call it so they never disagree on arguments.
func (t Topology) Declare(ch *amqp.Channel) error {
	queues := []struct {
		name string
		args amqp.Table
	}{
		{t.DLQ, nil},
		{t.Retry, deadLetterTo(t.Main)},
		{t.Main, deadLetterTo(t.DLQ)},
	}
	for _, q := range queues {
		if _, err := ch.QueueDeclare(q.name, true, false, false, false, q.args); err != nil {
			return err
		}
	}
	return nil
}

// dial opens a connection and a channel and declares the topology. The
// connection is closed on any failure.
func dial(url string, topo Topology) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	if err := topo.Declare(ch); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// Publisher sends job ids to the main queue. It satisfies
// translator.JobQueue.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	topo Topology
}

func NewPublisher(url, queue string) (*Publisher, error) {
	topo := NewTopology(queue)
	conn, ch, err := dial(url, topo)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, topo: topo}, nil
}

func (p *Publisher) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func (p *Publisher) PublishJob(ctx context.Context, jobID string) error {
	msg, err := jobPublishing(jobID, time.Now())
	if err != nil {
		return err
	}

	cctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	// default exchange, routing key = queue
	return p.ch.PublishWithContext(cctx, "", p.topo.Main, false, false, msg)
}

func jobPublishing(jobID string, now time.Time) (amqp.Publishing, error) {
	body, err := EncodeJob(jobID)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    jobID,
		Type:         jobMessageType,
		Timestamp:    now,
		Body:         body,
	}, nil
}
