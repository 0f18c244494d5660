package mailer

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// sendTimeout bounds a single delivery attempt so a stalled SMTP
// conversation cannot pin a worker.
const sendTimeout = 30 * time.Second

// deliveryJob is one queued verification email.
type deliveryJob struct {
	to   string
	code string
}

// AsyncMailer decouples code delivery from the request path: sends are
// queued and handled by a small worker pool, so a slow SMTP server does not
// hold up signup responses. It implements Mailer by delegating to an inner
// Mailer from the workers.
type AsyncMailer struct {
	inner   Mailer
	queue   chan deliveryJob
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *slog.Logger
	started bool
	mu      sync.Mutex
}

// AsyncConfig holds configuration options for the async mailer.
type AsyncConfig struct {
	// QueueSize is the number of pending deliveries held before senders
	// fall back to delivering inline. Zero or negative defaults to 64.
	QueueSize int

	// WorkerCount determines how many concurrent delivery workers to start.
	// Zero or negative defaults to 2.
	WorkerCount int
}

// NewAsyncMailer creates an async mailer around the given delivery backend.
// Call Start before use and Stop during shutdown.
func NewAsyncMailer(inner Mailer, cfg AsyncConfig, log *slog.Logger) *AsyncMailer {
	if inner == nil {
		panic("inner mailer cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 64
	}
	workerCount := cfg.WorkerCount
	if workerCount <= 0 {
		workerCount = 2
	}

	ctx, cancel := context.WithCancel(context.Background())

	m := &AsyncMailer{
		inner:  inner,
		queue:  make(chan deliveryJob, queueSize),
		ctx:    ctx,
		cancel: cancel,
		logger: log.With(slog.String("component", "async_mailer")),
	}
	m.startWorkers(workerCount)
	return m
}

func (m *AsyncMailer) startWorkers(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.started = true

	for i := 0; i < count; i++ {
		m.wg.Add(1)
		go m.worker(i)
	}
	m.logger.Debug("delivery workers started", "worker_count", count)
}

func (m *AsyncMailer) worker(id int) {
	defer m.wg.Done()

	for {
		select {
		case <-m.ctx.Done():
			return
		case job, ok := <-m.queue:
			if !ok {
				return
			}
			m.deliver(job)
		}
	}
}

func (m *AsyncMailer) deliver(job deliveryJob) {
	ctx, cancel := context.WithTimeout(m.ctx, sendTimeout)
	defer cancel()

	if err := m.inner.SendVerificationCode(ctx, job.to, job.code); err != nil {
		// The challenge stays armed; the user recovers through resend.
		m.logger.Error("failed to deliver verification code", "error", err)
	}
}

// SendVerificationCode queues the delivery. When the queue is full the send
// happens inline so the code is never silently dropped.
func (m *AsyncMailer) SendVerificationCode(ctx context.Context, to, code string) error {
	select {
	case m.queue <- deliveryJob{to: to, code: code}:
		return nil
	default:
		m.logger.Warn("delivery queue full, sending inline")
		return m.inner.SendVerificationCode(ctx, to, code)
	}
}

// Stop drains in-flight deliveries and shuts the workers down. Queued but
// unstarted jobs are abandoned once the context deadline passes.
func (m *AsyncMailer) Stop(ctx context.Context) {
	close(m.queue)

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		m.logger.Warn("shutdown deadline reached with deliveries pending")
	}
	m.cancel()
}

var _ Mailer = (*AsyncMailer)(nil)
