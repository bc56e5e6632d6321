package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"event-registration/internal/worker"
)

// Queue 接收已提交報名後的通知工作
type Queue interface {
	Enqueue(ctx context.Context, c Confirmation) error
}

// PoolQueue 交給行程內 worker pool 非同步寄送
type PoolQueue struct {
	pool    worker.Pool
	deliver func(ctx context.Context, c Confirmation)
}

func NewPoolQueue(pool worker.Pool, deliver func(ctx context.Context, c Confirmation)) *PoolQueue {
	return &PoolQueue{pool: pool, deliver: deliver}
}

func (q *PoolQueue) Enqueue(_ context.Context, c Confirmation) error {
	return q.pool.Submit(func(ctx context.Context) {
		q.deliver(ctx, c)
	})
}

type Publisher interface {
	Publish(ctx context.Context, message []byte) error
}

type Subscriber interface {
	Consume(ctx context.Context, handler func(context.Context, []byte) error) error
}

// AMQPQueue 將通知以 JSON 發佈到 RabbitMQ
type AMQPQueue struct {
	pub Publisher
}

func NewAMQPQueue(pub Publisher) *AMQPQueue { return &AMQPQueue{pub: pub} }

func (q *AMQPQueue) Enqueue(ctx context.Context, c Confirmation) error {
	body, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal confirmation: %w", err)
	}
	return q.pub.Publish(ctx, body)
}

// Consume 從 RabbitMQ 取出通知並寄送
func Consume(ctx context.Context, sub Subscriber, deliver func(ctx context.Context, c Confirmation)) error {
	return sub.Consume(ctx, func(ctx context.Context, body []byte) error {
		var c Confirmation
		if err := json.Unmarshal(body, &c); err != nil {
			return fmt.Errorf("decode confirmation: %w", err)
		}
		deliver(ctx, c)
		return nil
	})
}
