package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"rewards_admin/internal/models"
)

// Sink persists admin log entries.
type Sink interface {
	Insert(ctx context.Context, entry *models.AdminLog) error
}

// GormSink writes entries to the admin_logs table.
type GormSink struct {
	DB *gorm.DB
}

func (s GormSink) Insert(ctx context.Context, entry *models.AdminLog) error {
	return s.DB.WithContext(ctx).Create(entry).Error
}

// Config holds tuning for the Recorder.
type Config struct {
	BufferSize  int
	WorkerCount int
}

func DefaultConfig() Config {
	return Config{BufferSize: 1024, WorkerCount: 2}
}

// Recorder writes admin log entries asynchronously so a slow insert never
// delays the mutation it describes. Entries are best-effort: when the
// buffer is full the entry is dropped and counted, not blocked on.
type Recorder struct {
	sink    Sink
	logger  *zap.Logger
	events  chan *models.AdminLog
	wg      sync.WaitGroup
	mu      sync.Mutex
	started bool
	closed  bool
	dropped int64
	workers int
}

func NewRecorder(sink Sink, logger *zap.Logger, cfg Config) *Recorder {
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = DefaultConfig().BufferSize
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = DefaultConfig().WorkerCount
	}
	return &Recorder{
		sink:    sink,
		logger:  logger,
		events:  make(chan *models.AdminLog, cfg.BufferSize),
		workers: cfg.WorkerCount,
	}
}

// Start launches the background workers.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return fmt.Errorf("audit recorder already started")
	}
	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker()
	}
	r.started = true
	r.logger.Info("started audit recorder", zap.Int("workers", r.workers))
	return nil
}

// Stop drains pending entries, waiting up to timeout.
func (r *Recorder) Stop(timeout time.Duration) error {
	r.mu.Lock()
	if !r.started || r.closed {
		r.mu.Unlock()
		return fmt.Errorf("audit recorder not running")
	}
	r.closed = true
	r.mu.Unlock()

	close(r.events)

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("audit recorder stopped", zap.Int64("dropped", r.dropped))
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("audit recorder stop timeout after %v", timeout)
	}
}

// Record enqueues one entry. oldData and newData are marshaled to JSON;
// values that fail to marshal are stored as null rather than failing the
// caller's request.
func (r *Recorder) Record(actorID, action, entity, entityID, description, ip string, oldData, newData interface{}) {
	entry := &models.AdminLog{
		UserID:      actorID,
		Action:      action,
		Entity:      entity,
		EntityID:    entityID,
		OldData:     r.marshal(oldData),
		NewData:     r.marshal(newData),
		Description: description,
		IP:          ip,
		CreatedAt:   time.Now(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	select {
	case r.events <- entry:
	default:
		r.dropped++
		r.logger.Warn("audit buffer full, dropping entry",
			zap.String("action", action),
			zap.String("entity", entity))
	}
}

func (r *Recorder) worker() {
	defer r.wg.Done()
	for entry := range r.events {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := r.sink.Insert(ctx, entry); err != nil {
			r.logger.Error("failed to persist admin log entry",
				zap.String("action", entry.Action),
				zap.String("entity", entry.Entity),
				zap.Error(err))
		}
		cancel()
	}
}

func (r *Recorder) marshal(v interface{}) datatypes.JSON {
	if v == nil {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		r.logger.Warn("failed to marshal audit payload", zap.Error(err))
		return nil
	}
	return datatypes.JSON(b)
}
