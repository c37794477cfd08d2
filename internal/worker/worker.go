package worker

import (
	"context"
	"log"
	"os"
	"sync"
	"time"

	"github.com/ytget/tg-video-bot/internal/extractor"
	"github.com/ytget/tg-video-bot/internal/model"
	"github.com/ytget/tg-video-bot/internal/queue"
)

// Delivery receives every finished job, succeeded or failed
type Delivery interface {
	Deliver(ctx context.Context, job *model.Job)
}

// Worker processes the queue sequentially. Exactly one job is Running at any
// instant; a failed job is terminal and never blocks the next one.
type Worker struct {
	queue       *queue.Queue
	extractor   extractor.Extractor
	delivery    Delivery
	downloadDir string
	timeout     time.Duration // per-download deadline, 0 disables it

	mu      sync.Mutex
	current *model.Job
}

// New creates a worker over the given queue and collaborators
func New(q *queue.Queue, ext extractor.Extractor, delivery Delivery, downloadDir string, timeout time.Duration) *Worker {
	return &Worker{
		queue:       q,
		extractor:   ext,
		delivery:    delivery,
		downloadDir: downloadDir,
		timeout:     timeout,
	}
}

// Run consumes the queue until ctx is done. It is the queue's only consumer.
func (w *Worker) Run(ctx context.Context) {
	for {
		if !w.queue.Wait(ctx) {
			return
		}
		job, ok := w.queue.DequeueNext()
		if !ok {
			continue
		}
		w.process(ctx, job)
	}
}

// Current returns a copy of the job being processed, or nil when idle. The
// live job keeps being written by the worker, so it is never handed out.
func (w *Worker) Current() *model.Job {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current == nil {
		return nil
	}
	snapshot := *w.current
	return &snapshot
}

// setCurrent stores a snapshot of the job, taken under the mutex
func (w *Worker) setCurrent(job *model.Job) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if job == nil {
		w.current = nil
		return
	}
	snapshot := *job
	w.current = &snapshot
}

func (w *Worker) process(ctx context.Context, job *model.Job) {
	job.Status = model.JobStatusRunning
	job.StartedAt = time.Now()
	w.setCurrent(job)
	defer w.setCurrent(nil)
	log.Printf("[%d] job %s: downloading %s (format %s)", job.ChatID, job.ID, job.URL, job.FormatID)

	dctx := ctx
	if w.timeout > 0 {
		var cancel context.CancelFunc
		dctx, cancel = context.WithTimeout(ctx, w.timeout)
		defer cancel()
	}

	path, err := w.extractor.Download(dctx, job.URL, job.FormatID, w.downloadDir)
	if err != nil {
		job.Status = model.JobStatusFailed
		job.LastError = err.Error()
		log.Printf("[%d] job %s failed: %v", job.ChatID, job.ID, err)
	} else {
		job.Status = model.JobStatusSucceeded
		job.OutputPath = path
		if info, statErr := os.Stat(path); statErr == nil {
			job.FileSize = info.Size()
		}
		log.Printf("[%d] job %s downloaded to %s (%d bytes)", job.ChatID, job.ID, path, job.FileSize)
	}
	job.FinishedAt = time.Now()

	w.delivery.Deliver(ctx, job)
}
