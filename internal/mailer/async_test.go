package mailer_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interna-hq/interna-api/internal/mailer"
	"github.com/interna-hq/interna-api/internal/mocks"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAsyncMailerDeliversQueuedSends(t *testing.T) {
	inner := &mocks.MockMailer{}
	m := mailer.NewAsyncMailer(inner, mailer.AsyncConfig{QueueSize: 8, WorkerCount: 2}, testLogger())

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, m.SendVerificationCode(ctx, "sara@example.com", "123456"))
	}

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	m.Stop(stopCtx)

	assert.Len(t, inner.Sent, 5)
	for _, sent := range inner.Sent {
		assert.Equal(t, "sara@example.com", sent.To)
		assert.Equal(t, "123456", sent.Code)
	}
}

func TestAsyncMailerNeverDropsOnFullQueue(t *testing.T) {
	// The worker is held on a gate so the queue backs up; excess sends must
	// fall back to inline delivery instead of being dropped.
	gate := make(chan struct{})
	var mu sync.Mutex
	var delivered []mocks.SentMail
	inner := &mocks.MockMailer{
		SendFn: func(ctx context.Context, to, code string) error {
			<-gate
			mu.Lock()
			defer mu.Unlock()
			delivered = append(delivered, mocks.SentMail{To: to, Code: code})
			return nil
		},
	}

	m := mailer.NewAsyncMailer(inner, mailer.AsyncConfig{QueueSize: 1, WorkerCount: 1}, testLogger())
	ctx := context.Background()

	// The worker picks up the first job and blocks; the second fills the
	// queue.
	require.NoError(t, m.SendVerificationCode(ctx, "a@example.com", "111111"))
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, m.SendVerificationCode(ctx, "b@example.com", "222222"))

	// The third finds the queue full and delivers inline, blocking until
	// the gate opens.
	done := make(chan struct{})
	go func() {
		_ = m.SendVerificationCode(ctx, "c@example.com", "333333")
		close(done)
	}()

	close(gate)
	<-done

	stopCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	m.Stop(stopCtx)

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, delivered, 3)
}

func TestAsyncMailerStopHonorsDeadline(t *testing.T) {
	inner := &mocks.MockMailer{
		SendFn: func(ctx context.Context, to, code string) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(10 * time.Second):
				return nil
			}
		},
	}

	m := mailer.NewAsyncMailer(inner, mailer.AsyncConfig{QueueSize: 4, WorkerCount: 1}, testLogger())
	require.NoError(t, m.SendVerificationCode(context.Background(), "sara@example.com", "123456"))

	stopCtx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	m.Stop(stopCtx)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestLogMailer(t *testing.T) {
	m := mailer.NewLogMailer(testLogger())
	assert.NoError(t, m.SendVerificationCode(context.Background(), "sara@example.com", "123456"))
}
