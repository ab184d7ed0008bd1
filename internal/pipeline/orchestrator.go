package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dgallion1/exitsurvey/internal/analysis"
	"github.com/dgallion1/exitsurvey/internal/config"
	"github.com/dgallion1/exitsurvey/internal/metrics"
	"github.com/dgallion1/exitsurvey/internal/survey"
)

var (
	// ErrQueueFull is returned by Submit when no queue slot is free.
	ErrQueueFull = errors.New("job queue is full")

	// ErrStopped is returned by Submit after Stop.
	ErrStopped = errors.New("pipeline stopped")
)

// Orchestrator runs analysis jobs on a fixed pool of workers fed by a
// bounded queue.
type Orchestrator struct {
	jobs     *JobStore
	queue    chan *Job
	analyzer *analysis.Analyzer
	stats    *AnalysisStats
	log      *zap.Logger
	cfg      config.Config

	mu      sync.Mutex
	stopped bool

	cancel  context.CancelFunc
	workers sync.WaitGroup
	wg      sync.WaitGroup
}

// NewOrchestrator creates the pipeline. Call Start to launch workers.
func NewOrchestrator(cfg config.Config, analyzer *analysis.Analyzer, log *zap.Logger) *Orchestrator {
	return &Orchestrator{
		jobs:     NewJobStore(cfg.JobTTL),
		queue:    make(chan *Job, cfg.MaxQueueSize),
		analyzer: analyzer,
		stats:    NewAnalysisStats(cfg.StatsWindow),
		log:      log,
		cfg:      cfg,
	}
}

// Start launches worker goroutines.
func (o *Orchestrator) Start(ctx context.Context) {
	workerCtx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	for i := range o.cfg.WorkerCount {
		o.workers.Add(1)
		go func() {
			defer o.workers.Done()
			w := NewWorker(o.analyzer, o.stats, o.log.With(zap.Int("worker", i)))
			for {
				select {
				case <-workerCtx.Done():
					return
				case job, ok := <-o.queue:
					if !ok {
						return
					}
					metrics.QueueDepth.Set(float64(len(o.queue)))
					w.Process(workerCtx, job)
				}
			}
		}()
	}

	// Start job store cleanup.
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		ticker := time.NewTicker(5 * time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-workerCtx.Done():
				return
			case <-ticker.C:
				o.jobs.Cleanup()
			}
		}
	}()
}

// Stop closes the queue and waits for the workers to finish what is already
// queued. Jobs the workers never reach, because Start was not called or its
// context ended first, are failed in the "shutdown" phase so none stays
// queued.
func (o *Orchestrator) Stop() {
	o.mu.Lock()
	if o.stopped {
		o.mu.Unlock()
		return
	}
	o.stopped = true
	close(o.queue)
	o.mu.Unlock()

	o.workers.Wait()
	if o.cancel != nil {
		o.cancel()
	}
	o.wg.Wait()

	for job := range o.queue {
		job.Fail("shutdown", ErrStopped)
		metrics.JobsCompleted.WithLabelValues(string(StatusFailed)).Inc()
	}
	metrics.QueueDepth.Set(0)
}

// Submit queues a new job for processing.
func (o *Orchestrator) Submit(job *Job) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return ErrStopped
	}

	o.jobs.Put(job)
	select {
	case o.queue <- job:
		metrics.JobsSubmitted.Inc()
		metrics.QueueDepth.Set(float64(len(o.queue)))
		return nil
	default:
		metrics.JobsRejected.Inc()
		job.Fail("queue_full", fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize))
		return fmt.Errorf("%w (%d)", ErrQueueFull, o.cfg.MaxQueueSize)
	}
}

// GetJob returns a job by ID.
func (o *Orchestrator) GetJob(id string) *Job {
	return o.jobs.Get(id)
}

// QueueDepth returns current queue depth.
func (o *Orchestrator) QueueDepth() int {
	return len(o.queue)
}

// AnalyzeNow runs one file through the shared analyzer in the caller's
// goroutine, bypassing the queue.
func (o *Orchestrator) AnalyzeNow(ctx context.Context, filename string, r io.Reader) (*survey.Sheet, analysis.Result, error) {
	start := time.Now()
	sheet, res, err := AnalyzeFile(ctx, o.analyzer, filename, r)
	if err != nil {
		return sheet, res, err
	}
	o.stats.Record(time.Since(start), len(sheet.Rows))
	return sheet, res, nil
}

// Stats returns latency figures for recent analyses.
func (o *Orchestrator) Stats() StatsSnapshot {
	return o.stats.Snapshot()
}
