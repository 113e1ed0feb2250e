package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/Dijital-human/yusu-admin/internal"
)

// Notice kinds delivered to the webhook.
const (
	KindUserBlocked   = "USER_BLOCKED"
	KindUserUnblocked = "USER_UNBLOCKED"
)

// Notice is one user-facing message about a blocking action.
type Notice struct {
	UserID       int64      `json:"user_id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	Kind         string     `json:"kind"`
	Reason       string     `json:"reason"`
	BlockType    string     `json:"block_type,omitempty"`
	Severity     string     `json:"severity,omitempty"`
	BlockedUntil *time.Time `json:"blocked_until,omitempty"`
}

// Sender is the narrow surface the blocking service depends on. Delivery
// is fire-and-forget: a dropped or failed notice never reaches the caller.
type Sender interface {
	Send(notice Notice)
}

type worker struct {
	id         int
	workerPool chan chan Notice
	jobChannel chan Notice
	logger     *slog.Logger
}

func newWorker(id int, workerPool chan chan Notice, logger *slog.Logger) *worker {
	return &worker{
		id:         id,
		workerPool: workerPool,
		jobChannel: make(chan Notice),
		logger:     logger,
	}
}

func (w *worker) start(ctx context.Context, wg *sync.WaitGroup, deliver func(Notice)) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		for {
			w.workerPool <- w.jobChannel

			select {
			case notice := <-w.jobChannel:
				w.logger.Debug("worker delivering notice", "worker_id", w.id, "user_id", notice.UserID)
				deliver(notice)
			case <-ctx.Done():
				w.logger.Debug("worker shutting down", "worker_id", w.id)
				return
			}
		}
	}()
}

// Dispatcher posts notices to an external webhook through a bounded worker
// pool so a slow endpoint cannot stall the blocking service.
type Dispatcher struct {
	webhookURL     string
	apiKey         string
	requestTimeout time.Duration
	logger         *slog.Logger

	jobQueue   chan Notice
	workerPool chan chan Notice
	maxWorkers int
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	once       sync.Once
}

func NewDispatcher(cfg internal.NotificationConfig, logger *slog.Logger) *Dispatcher {
	ctx, cancel := context.WithCancel(context.Background())

	maxWorkers := cfg.MaxWorkers
	if maxWorkers <= 0 {
		maxWorkers = 4
	}
	queueSize := cfg.JobQueueSize
	if queueSize <= 0 {
		queueSize = 100
	}
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	d := &Dispatcher{
		webhookURL:     cfg.WebhookURL,
		apiKey:         cfg.APIKey,
		requestTimeout: timeout,
		logger:         logger,

		maxWorkers: maxWorkers,
		jobQueue:   make(chan Notice, queueSize),
		workerPool: make(chan chan Notice, maxWorkers),
		ctx:        ctx,
		cancel:     cancel,
	}

	d.startWorkerPool()

	return d
}

func (d *Dispatcher) startWorkerPool() {
	d.once.Do(func() {
		for i := 0; i < d.maxWorkers; i++ {
			w := newWorker(i, d.workerPool, d.logger)
			w.start(d.ctx, &d.wg, d.deliver)
		}

		d.wg.Add(1)
		go d.dispatch()

		d.logger.Info("notification worker pool started",
			"max_workers", d.maxWorkers,
			"queue_size", cap(d.jobQueue))
	})
}

func (d *Dispatcher) dispatch() {
	defer d.wg.Done()

	for {
		select {
		case notice := <-d.jobQueue:
			select {
			case jobChannel := <-d.workerPool:
				select {
				case jobChannel <- notice:
				case <-d.ctx.Done():
					return
				}
			case <-d.ctx.Done():
				return
			}
		case <-d.ctx.Done():
			return
		}
	}
}

// Send enqueues a notice without blocking. A full queue drops the notice
// with a warning; blocking actions never wait on notification delivery.
func (d *Dispatcher) Send(notice Notice) {
	select {
	case d.jobQueue <- notice:
		d.logger.Debug("notice queued", "user_id", notice.UserID, "kind", notice.Kind)
	default:
		d.logger.Warn("notification queue full, dropping notice",
			"user_id", notice.UserID,
			"kind", notice.Kind,
			"queue_capacity", cap(d.jobQueue))
	}
}

func (d *Dispatcher) Shutdown() {
	d.logger.Info("shutting down notification dispatcher")
	d.cancel()
	d.wg.Wait()
	d.logger.Info("notification dispatcher shutdown complete")
}

func (d *Dispatcher) deliver(notice Notice) {
	if d.webhookURL == "" {
		d.logger.Debug("no webhook configured, dropping notice", "user_id", notice.UserID)
		return
	}

	payload, err := json.Marshal(notice)
	if err != nil {
		d.logger.Error("failed to marshal notice", "error", err, "user_id", notice.UserID)
		return
	}

	ctx, cancel := context.WithTimeout(d.ctx, d.requestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewBuffer(payload))
	if err != nil {
		d.logger.Error("failed to create webhook request", "error", err, "user_id", notice.UserID)
		return
	}
	req.Header.Set("Content-Type", "application/json")
	if d.apiKey != "" {
		req.Header.Set("X-API-Key", d.apiKey)
	}

	client := &http.Client{Timeout: d.requestTimeout}
	resp, err := client.Do(req)
	if err != nil {
		d.logger.Error("webhook delivery failed", "error", err, "user_id", notice.UserID)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		d.logger.Info("notice delivered", "user_id", notice.UserID, "kind", notice.Kind, "status_code", resp.StatusCode)
	} else {
		d.logger.Warn("webhook returned error status",
			"user_id", notice.UserID,
			"kind", notice.Kind,
			"status_code", resp.StatusCode)
	}
}
