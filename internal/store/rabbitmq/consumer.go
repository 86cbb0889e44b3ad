package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

var errBadMessage = errors.New("bad job message")

// HandlerFunc processes one job id. A returned error nacks the delivery
// without requeue, so it lands in the DLQ.
type HandlerFunc func(ctx context.Context, jobID string) error

type Consumer struct {
	conn        *amqp.Connection
	ch          *amqp.Channel
	queue       string
	concurrency int
	log         *zap.Logger
}

func NewConsumer(url, queue string, concurrency int, log *zap.Logger) (*Consumer, error) {
	if concurrency <= 0 {
		concurrency = 2
	}
	if log == nil {
		log = zap.NewNop()
	}
	conn, ch, err := dial(url, NewTopology(queue))
	if err != nil {
		return nil, err
	}
	// strict concurrency control
	if err := ch.Qos(concurrency, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Consumer{conn: conn, ch: ch, queue: queue, concurrency: concurrency, log: log}, nil
}

func (c *Consumer) Close() error {
	_ = c.ch.Close()
	return c.conn.Close()
}

// DecodeJob parses a delivery body.
func DecodeJob(body []byte) (string, error) {
	var m JobMessage
	if err := json.Unmarshal(body, &m); err != nil {
		return "", errors.Join(errBadMessage, err)
	}
	if m.JobID == "" {
		return "", errBadMessage
	}
	return m.JobID, nil
}

// Run dispatches deliveries to a worker pool until ctx is done, then
// drains the pool.
func (c *Consumer) Run(ctx context.Context, handle HandlerFunc) error {
	msgs, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	c.log.Info("worker started", zap.String("queue", c.queue), zap.Int("concurrency", c.concurrency))

	jobs := make(chan amqp.Delivery, c.concurrency*2)

	var wg sync.WaitGroup
	wg.Add(c.concurrency)
	for i := 0; i < c.concurrency; i++ {
		go func(workerID int) {
			defer wg.Done()
			for d := range jobs {
				c.handle(ctx, workerID, d, handle)
			}
		}(i)
	}

	// dispatcher
	for {
		select {
		case <-ctx.Done():
			c.log.Info("worker shutting down")
			close(jobs)
			wg.Wait()
			return nil

		case d, ok := <-msgs:
			if !ok {
				close(jobs)
				wg.Wait()
				return errors.New("delivery channel closed")
			}
			jobs <- d
		}
	}
}

func (c *Consumer) handle(ctx context.Context, workerID int, d amqp.Delivery, handle HandlerFunc) {
	jobID, err := DecodeJob(d.Body)
	if err != nil {
		c.log.Warn("bad message", zap.Int("worker", workerID), zap.Error(err))
		_ = d.Nack(false, false)
		return
	}

	start := time.Now()
	if err := handle(ctx, jobID); err != nil {
		c.log.Warn("job failed",
			zap.Int("worker", workerID),
			zap.String("job_id", jobID),
			zap.Duration("cost", time.Since(start)),
			zap.Error(err),
		)
		_ = d.Nack(false, false)
		return
	}

	if err := d.Ack(false); err != nil {
		c.log.Warn("ack failed", zap.Int("worker", workerID), zap.String("job_id", jobID), zap.Error(err))
	}
}
