package rabbit

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeCloser struct{ closed bool }

func (f *fakeCloser) Close() error { f.closed = true; return nil }

type fakeChannel struct {
	declareErr error
	publishErr error
	published  []amqp.Publishing
	keys       []string
	deliveries chan amqp.Delivery
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, _, _, _, _ bool, _ amqp.Table) (amqp.Queue, error) {
	return amqp.Queue{Name: name}, f.declareErr
}

func (f *fakeChannel) PublishWithContext(_ context.Context, _, key string, _, _ bool, msg amqp.Publishing) error {
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return f.publishErr
}

func (f *fakeChannel) Consume(string, string, bool, bool, bool, bool, amqp.Table) (<-chan amqp.Delivery, error) {
	return f.deliveries, nil
}

func (f *fakeChannel) Close() error { f.closed = true; return nil }

// ackRecorder 實作 amqp.Acknowledger
type ackRecorder struct {
	mu     sync.Mutex
	acked  int
	nacked int
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acked++
	return nil
}

func (a *ackRecorder) Nack(uint64, bool, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacked++
	return nil
}

func (a *ackRecorder) Reject(uint64, bool) error { return nil }

func (a *ackRecorder) counts() (int, int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acked, a.nacked
}

func stubDial(t *testing.T, conn io.Closer, ch channel, err error) {
	orig := dial
	dial = func(string) (io.Closer, channel, error) { return conn, ch, err }
	t.Cleanup(func() { dial = orig })
}

func TestNewRabbit(t *testing.T) {
	t.Run("dial error", func(t *testing.T) {
		stubDial(t, nil, nil, errors.New("refused"))
		_, err := NewRabbit("amqp://x", "q", zerolog.Nop())
		require.ErrorContains(t, err, "refused")
	})

	t.Run("declare error closes", func(t *testing.T) {
		conn := &fakeCloser{}
		ch := &fakeChannel{declareErr: errors.New("denied")}
		stubDial(t, conn, ch, nil)
		_, err := NewRabbit("amqp://x", "q", zerolog.Nop())
		require.ErrorContains(t, err, "declare queue q")
		require.True(t, conn.closed)
		require.True(t, ch.closed)
	})

	t.Run("publish", func(t *testing.T) {
		conn := &fakeCloser{}
		ch := &fakeChannel{}
		stubDial(t, conn, ch, nil)
		c, err := NewRabbit("amqp://x", "emails", zerolog.Nop())
		require.NoError(t, err)

		require.NoError(t, c.Publish(context.Background(), []byte(`{"a":1}`)))
		require.Equal(t, []string{"emails"}, ch.keys)
		require.Equal(t, "application/json", ch.published[0].ContentType)

		ch.publishErr = errors.New("closed")
		require.Error(t, c.Publish(context.Background(), nil))

		c.Close()
		require.True(t, conn.closed)
	})
}

func TestConsume(t *testing.T) {
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery, 2)}
	stubDial(t, &fakeCloser{}, ch, nil)
	c, err := NewRabbit("amqp://x", "emails", zerolog.Nop())
	require.NoError(t, err)

	acks := &ackRecorder{}
	ch.deliveries <- amqp.Delivery{Acknowledger: acks, Body: []byte("ok")}
	ch.deliveries <- amqp.Delivery{Acknowledger: acks, Body: []byte("bad")}
	close(ch.deliveries)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, c.Consume(ctx, func(_ context.Context, body []byte) error {
		if string(body) == "bad" {
			return errors.New("bad body")
		}
		return nil
	}))

	require.Eventually(t, func() bool {
		a, n := acks.counts()
		return a == 1 && n == 1
	}, time.Second, 10*time.Millisecond)
}
