package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ytget/tg-video-bot/internal/extractor"
	"github.com/ytget/tg-video-bot/internal/model"
	"github.com/ytget/tg-video-bot/internal/queue"
)

// fakeExtractor records download invocations and tracks overlap
type fakeExtractor struct {
	mu         sync.Mutex
	calls      []string // URLs in invocation order
	running    int32
	maxRunning int32
	delay      time.Duration
	failURLs   map[string]bool
	path       string
}

func (f *fakeExtractor) Probe(ctx context.Context, url string) (*extractor.ProbeResult, error) {
	return nil, errors.New("not used in worker tests")
}

func (f *fakeExtractor) Download(ctx context.Context, url, formatID, destDir string) (string, error) {
	now := atomic.AddInt32(&f.running, 1)
	defer atomic.AddInt32(&f.running, -1)
	for {
		max := atomic.LoadInt32(&f.maxRunning)
		if now <= max || atomic.CompareAndSwapInt32(&f.maxRunning, max, now) {
			break
		}
	}

	if f.delay > 0 {
		time.Sleep(f.delay)
	}

	f.mu.Lock()
	f.calls = append(f.calls, url)
	f.mu.Unlock()

	if f.failURLs[url] {
		return "", &extractor.DownloadError{URL: url, FormatID: formatID, Err: errors.New("exit status 1")}
	}
	if f.path != "" {
		return f.path, nil
	}
	return destDir + "/video.mp4", nil
}

// fakeDelivery collects finished jobs
type fakeDelivery struct {
	mu   sync.Mutex
	jobs []*model.Job
	done chan struct{} // receives one tick per delivered job
}

func newFakeDelivery(capacity int) *fakeDelivery {
	return &fakeDelivery{done: make(chan struct{}, capacity)}
}

func (f *fakeDelivery) Deliver(ctx context.Context, job *model.Job) {
	f.mu.Lock()
	f.jobs = append(f.jobs, job)
	f.mu.Unlock()
	f.done <- struct{}{}
}

func (f *fakeDelivery) delivered() []*model.Job {
	f.mu.Lock()
	defer f.mu.Unlock()
	jobs := make([]*model.Job, len(f.jobs))
	copy(jobs, f.jobs)
	return jobs
}

func waitFor(t *testing.T, delivery *fakeDelivery, count int) {
	t.Helper()
	for i := 0; i < count; i++ {
		select {
		case <-delivery.done:
		case <-time.After(5 * time.Second):
			t.Fatalf("Timed out waiting for delivery %d of %d", i+1, count)
		}
	}
}

func TestWorker_ProcessesJobsInOrder(t *testing.T) {
	q := queue.New()
	ext := &fakeExtractor{delay: 5 * time.Millisecond}
	delivery := newFakeDelivery(10)
	w := New(q, ext, delivery, "/tmp", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	const jobs = 5
	for i := 0; i < jobs; i++ {
		q.Enqueue(&model.Job{
			ID:     fmt.Sprintf("job-%d", i),
			ChatID: 100,
			URL:    fmt.Sprintf("https://example.com/video%d", i),
			Status: model.JobStatusPending,
		})
	}

	waitFor(t, delivery, jobs)

	// Strict FIFO processing.
	for i, url := range ext.calls {
		expected := fmt.Sprintf("https://example.com/video%d", i)
		if url != expected {
			t.Errorf("Call %d: expected %s, got %s", i, expected, url)
		}
	}

	// Never more than one download at once.
	if ext.maxRunning != 1 {
		t.Errorf("Expected at most 1 concurrent download, observed %d", ext.maxRunning)
	}

	for _, job := range delivery.delivered() {
		if job.Status != model.JobStatusSucceeded {
			t.Errorf("Job %s: expected Succeeded, got %s", job.ID, job.Status)
		}
		if job.OutputPath == "" {
			t.Errorf("Job %s: expected output path to be recorded", job.ID)
		}
		if job.FinishedAt.IsZero() {
			t.Errorf("Job %s: expected FinishedAt to be set", job.ID)
		}
	}
}

func TestWorker_FailureDoesNotBlockQueue(t *testing.T) {
	q := queue.New()
	ext := &fakeExtractor{failURLs: map[string]bool{"https://example.com/bad": true}}
	delivery := newFakeDelivery(10)
	w := New(q, ext, delivery, "/tmp", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	q.Enqueue(&model.Job{ID: "job-1", URL: "https://example.com/bad", Status: model.JobStatusPending})
	q.Enqueue(&model.Job{ID: "job-2", URL: "https://example.com/good", Status: model.JobStatusPending})

	waitFor(t, delivery, 2)

	jobs := delivery.delivered()
	if len(jobs) != 2 {
		t.Fatalf("Expected 2 delivered jobs, got %d", len(jobs))
	}

	if jobs[0].Status != model.JobStatusFailed {
		t.Errorf("Expected first job Failed, got %s", jobs[0].Status)
	}
	if jobs[0].LastError == "" {
		t.Error("Expected failed job to carry the diagnostic")
	}

	if jobs[1].Status != model.JobStatusSucceeded {
		t.Errorf("Expected second job Succeeded after a failure, got %s", jobs[1].Status)
	}
}

func TestWorker_CurrentTracksRunningJob(t *testing.T) {
	q := queue.New()
	ext := &fakeExtractor{delay: 100 * time.Millisecond}
	delivery := newFakeDelivery(1)
	w := New(q, ext, delivery, "/tmp", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if w.Current() != nil {
		t.Error("Expected no current job while idle")
	}

	q.Enqueue(&model.Job{ID: "job-1", URL: "https://example.com/v", Status: model.JobStatusPending})

	// Observe the Running state mid-download.
	deadline := time.Now().Add(2 * time.Second)
	var sawRunning bool
	for time.Now().Before(deadline) {
		if current := w.Current(); current != nil {
			if current.Status != model.JobStatusRunning {
				t.Errorf("Expected current job to be Running, got %s", current.Status)
			}
			sawRunning = true
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if !sawRunning {
		t.Fatal("Never observed a current job")
	}

	waitFor(t, delivery, 1)

	// Idle again after delivery.
	deadline = time.Now().Add(time.Second)
	for time.Now().Before(deadline) && w.Current() != nil {
		time.Sleep(5 * time.Millisecond)
	}
	if w.Current() != nil {
		t.Error("Expected current job to clear after processing")
	}
}

func TestWorker_CurrentReturnsCopy(t *testing.T) {
	q := queue.New()
	ext := &fakeExtractor{delay: 100 * time.Millisecond}
	delivery := newFakeDelivery(1)
	w := New(q, ext, delivery, "/tmp", 0)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	job := &model.Job{ID: "job-1", URL: "https://example.com/v", Status: model.JobStatusPending}
	q.Enqueue(job)

	deadline := time.Now().Add(2 * time.Second)
	var current *model.Job
	for time.Now().Before(deadline) {
		if current = w.Current(); current != nil {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	if current == nil {
		t.Fatal("Never observed a current job")
	}
	if current == job {
		t.Fatal("Expected a detached copy, got the live job")
	}

	// Writes through the copy must not reach the job being processed.
	current.Status = model.JobStatusFailed
	current.LastError = "scribbled"

	waitFor(t, delivery, 1)

	if job.Status != model.JobStatusSucceeded {
		t.Errorf("Expected job to finish Succeeded, got %s", job.Status)
	}
	if job.LastError != "" {
		t.Errorf("Expected no error on the job, got %q", job.LastError)
	}
}

func TestWorker_StopsOnContextCancel(t *testing.T) {
	q := queue.New()
	ext := &fakeExtractor{}
	delivery := newFakeDelivery(1)
	w := New(q, ext, delivery, "/tmp", 0)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Worker did not stop on context cancellation")
	}
}
