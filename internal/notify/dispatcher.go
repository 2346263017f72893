package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/ghlaw/taskdesk/internal/domain"
)

// Notifier is the interface handlers use to trigger task notifications.
// Both methods return immediately; delivery happens on dispatcher workers.
type Notifier interface {
	// TaskCreated enqueues a new-task notification for the assignee.
	TaskCreated(task *domain.Task)

	// TaskUpdated enqueues a task-update notification for the assignee.
	TaskUpdated(task *domain.Task)
}

// DispatcherConfig holds configuration for the notification dispatcher.
type DispatcherConfig struct {
	// WorkerCount determines how many concurrent workers deliver messages
	WorkerCount int

	// QueueSize determines the buffer size for the in-memory message queue.
	// When the queue is full new messages are dropped with a logged warning;
	// enqueueing never blocks a request.
	QueueSize int

	// SendTimeout bounds a single delivery attempt.
	// If zero, defaults to 30 seconds.
	SendTimeout time.Duration
}

// DefaultDispatcherConfig returns a DispatcherConfig with reasonable defaults.
func DefaultDispatcherConfig() DispatcherConfig {
	return DispatcherConfig{
		WorkerCount: 2,
		QueueSize:   100,
		SendTimeout: 30 * time.Second,
	}
}

// Dispatcher delivers notification messages on a small worker pool,
// detached from the request path. There are no retries and no ordering
// guarantee between messages; a failed delivery is logged and dropped.
type Dispatcher struct {
	sender   Sender
	composer *Composer
	msgChan  chan *Message
	wg       sync.WaitGroup
	config   DispatcherConfig
	logger   *slog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
}

// NewDispatcher creates a Dispatcher delivering through the given sender.
func NewDispatcher(sender Sender, composer *Composer, config DispatcherConfig, logger *slog.Logger) *Dispatcher {
	if config.SendTimeout == 0 {
		config.SendTimeout = 30 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Dispatcher{
		sender:   sender,
		composer: composer,
		msgChan:  make(chan *Message, config.QueueSize),
		config:   config,
		logger:   logger.With(slog.String("component", "notify_dispatcher")),
	}
}

// Ensure Dispatcher implements Notifier interface
var _ Notifier = (*Dispatcher)(nil)

// Start launches the worker pool.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true

	for i := 0; i < d.config.WorkerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop closes the queue and waits for in-flight deliveries to finish.
// Messages already enqueued are still delivered; new enqueues are dropped.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.msgChan)
	d.mu.Unlock()

	d.wg.Wait()
}

// TaskCreated implements Notifier.TaskCreated.
func (d *Dispatcher) TaskCreated(task *domain.Task) {
	d.enqueue(d.composer.TaskCreated(task), "task_created", task.Reference)
}

// TaskUpdated implements Notifier.TaskUpdated.
func (d *Dispatcher) TaskUpdated(task *domain.Task) {
	d.enqueue(d.composer.TaskUpdated(task), "task_updated", task.Reference)
}

// enqueue hands a message to the worker pool without ever blocking the
// caller. A full queue or a stopped dispatcher drops the message.
func (d *Dispatcher) enqueue(msg *Message, event, reference string) {
	if msg.To == "" {
		d.logger.Debug("notification skipped: no recipient",
			slog.String("event", event),
			slog.String("reference", reference))
		return
	}

	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		d.logger.Warn("notification dropped: dispatcher stopped",
			slog.String("event", event),
			slog.String("reference", reference))
		return
	}

	select {
	case d.msgChan <- msg:
		d.mu.Unlock()
	default:
		d.mu.Unlock()
		d.logger.Warn("notification dropped: queue full",
			slog.String("event", event),
			slog.String("reference", reference),
			slog.String("to", msg.To))
	}
}

// worker consumes messages until the queue is closed. Workers carry no
// request context: a client disconnect never cancels an enqueued delivery.
func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	log := d.logger.With(slog.Int("worker", id))

	for msg := range d.msgChan {
		start := time.Now()
		err := d.sendWithTimeout(msg)
		if err != nil {
			log.Error("failed to send notification",
				slog.String("error", err.Error()),
				slog.String("to", msg.To),
				slog.String("subject", msg.Subject),
				slog.Duration("elapsed", time.Since(start)))
			continue
		}

		log.Info("notification sent",
			slog.String("to", msg.To),
			slog.String("subject", msg.Subject),
			slog.Duration("elapsed", time.Since(start)))
	}
}

// sendWithTimeout bounds a delivery attempt. The SMTP dial itself does not
// take a context, so the timeout is enforced from the outside; a hung send
// leaks its goroutine rather than blocking the worker forever.
func (d *Dispatcher) sendWithTimeout(msg *Message) error {
	done := make(chan error, 1)
	go func() {
		done <- d.sender.Send(msg)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(d.config.SendTimeout):
		return errSendTimeout
	}
}

var errSendTimeout = &timeoutError{}

type timeoutError struct{}

func (*timeoutError) Error() string { return "notification send timed out" }
func (*timeoutError) Timeout() bool { return true }
