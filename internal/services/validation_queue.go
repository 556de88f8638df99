package services

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/config"
	"github.com/alenachankunju/hackoholic-config-tool-sub000/internal/logger"
)

// ValidationQueueKey is the Redis list backing the revalidation queue
const ValidationQueueKey = "validation:queue"

// RevalidationJob asks the workers to recompute one profile's summary
type RevalidationJob struct {
	ProfileID  string    `json:"profile_id"`
	Reason     string    `json:"reason"`
	EnqueuedAt time.Time `json:"enqueued_at"`
}

// ValidationQueue moves summary recomputation off the request path. Mapping
// and schema mutations enqueue the profile; a worker pool drains the queue,
// recomputes the summary and refreshes the cache.
type ValidationQueue struct {
	redis   *redis.Client
	logger  *logger.Logger
	errors  *ErrorHandler
	workers int

	handler func(ctx context.Context, job RevalidationJob) error

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	processed uint64
	failed    uint64
	startedAt time.Time
}

// NewValidationQueue creates a new revalidation queue
func NewValidationQueue(redis *redis.Client, logger *logger.Logger, cfg *config.Config, errors *ErrorHandler) *ValidationQueue {
	workers := cfg.Validation.QueueWorkers
	if workers <= 0 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &ValidationQueue{
		redis:   redis,
		logger:  logger,
		errors:  errors,
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// SetHandler installs the job handler. Must be called before Start; set by
// the mapping service after construction to break the dependency cycle
// between queue and service.
func (q *ValidationQueue) SetHandler(handler func(ctx context.Context, job RevalidationJob) error) {
	q.handler = handler
}

// Start launches the worker pool
func (q *ValidationQueue) Start() {
	q.startedAt = time.Now()
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker(i)
	}
	q.logger.WithField("workers", q.workers).Info("Validation queue started")
}

// Stop drains the workers and waits for in-flight jobs
func (q *ValidationQueue) Stop() {
	q.cancel()
	q.wg.Wait()
	q.logger.Info("Validation queue stopped")
}

// Enqueue schedules a profile for summary recomputation
func (q *ValidationQueue) Enqueue(ctx context.Context, profileID, reason string) error {
	job := RevalidationJob{
		ProfileID:  profileID,
		Reason:     reason,
		EnqueuedAt: time.Now(),
	}

	data, err := json.Marshal(job)
	if err != nil {
		return err
	}

	if err := q.redis.LPush(ctx, ValidationQueueKey, data).Err(); err != nil {
		q.logger.WithProfile(profileID).WithError(err).Error("Failed to enqueue revalidation job")
		return err
	}

	q.logger.WithProfile(profileID).WithField("reason", reason).Debug("Revalidation job enqueued")
	return nil
}

// Stats reports queue depth and worker counters
func (q *ValidationQueue) Stats(ctx context.Context) (QueueStats, error) {
	pending, err := q.redis.LLen(ctx, ValidationQueueKey).Result()
	if err != nil {
		return QueueStats{}, err
	}
	return QueueStats{
		Pending:   pending,
		Processed: atomic.LoadUint64(&q.processed),
		Failed:    atomic.LoadUint64(&q.failed),
		StartedAt: q.startedAt,
	}, nil
}

func (q *ValidationQueue) worker(workerID int) {
	defer q.wg.Done()

	for {
		select {
		case <-q.ctx.Done():
			return
		default:
		}

		result, err := q.redis.BRPop(q.ctx, time.Second, ValidationQueueKey).Result()
		if err != nil {
			if err == redis.Nil || q.ctx.Err() != nil {
				continue
			}
			q.logger.WithError(err).WithField("worker", workerID).Warn("Queue read failed")
			time.Sleep(time.Second)
			continue
		}

		// BRPop returns [key, value]
		if len(result) < 2 {
			continue
		}

		var job RevalidationJob
		if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
			q.logger.WithError(err).WithField("worker", workerID).Warn("Dropping undecodable job")
			atomic.AddUint64(&q.failed, 1)
			continue
		}

		q.processJob(workerID, job)
	}
}

func (q *ValidationQueue) processJob(workerID int, job RevalidationJob) {
	if q.handler == nil {
		q.logger.WithField("worker", workerID).Warn("No handler installed; job dropped")
		atomic.AddUint64(&q.failed, 1)
		return
	}

	ctx, cancel := context.WithTimeout(q.ctx, 30*time.Second)
	defer cancel()

	// A panicking handler must not take the worker goroutine down with it.
	err := q.errors.SafeExecute("revalidation_job", func() error {
		return q.handler(ctx, job)
	})
	if err != nil {
		atomic.AddUint64(&q.failed, 1)
		q.logger.WithProfile(job.ProfileID).
			WithError(err).
			WithField("worker", workerID).
			Error("Revalidation job failed")
		return
	}

	atomic.AddUint64(&q.processed, 1)
	q.logger.WithProfile(job.ProfileID).
		WithField("worker", workerID).
		WithField("queued_for_ms", time.Since(job.EnqueuedAt).Milliseconds()).
		Debug("Revalidation job completed")
}
