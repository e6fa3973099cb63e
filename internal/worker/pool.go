// Package worker runs generation jobs concurrently.
package worker

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/engine"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/logger"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/lottie"
	"github.com/kuznetsovgm/bodymovin-test-sub001/internal/system"
)

// Generator produces one document per request.
type Generator interface {
	Generate(req engine.Request) (*lottie.Document, error)
}

type Job struct {
	ID      string
	Request engine.Request
}

// Result is the outcome of one job. Exactly one of Document and Err is set.
type Result struct {
	ID       string
	Success  bool
	Document *lottie.Document
	Err      error
	Duration time.Duration
}

// Pool runs jobs with bounded concurrency.
type Pool struct {
	gen     Generator
	workers int
	log     *logger.Logger
}

// NewPool creates a pool; workers <= 0 uses the CPU count.
func NewPool(gen Generator, workers int, log *logger.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pool{gen: gen, workers: workers, log: logger.OrNop(log).With("component", "WorkerPool")}
}

// Run executes every job and returns the results in job order. A failing job
// does not stop the others; jobs not started before ctx is done fail with the
// context error.
func (p *Pool) Run(ctx context.Context, jobs []Job) []Result {
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			results[i] = p.runOne(gctx, job)
			return nil
		})
	}
	_ = g.Wait()
	return results
}

func (p *Pool) runOne(ctx context.Context, job Job) (res Result) {
	start := time.Now()
	res.ID = job.ID
	defer func() {
		res.Duration = time.Since(start)
		if r := recover(); r != nil {
			res.Success, res.Document = false, nil
			res.Err = fmt.Errorf("job %s panicked: %v", job.ID, r)
		}
		if res.Err != nil {
			p.log.Warn("job failed", "id", job.ID, "error", res.Err, "took", res.Duration)
		} else {
			p.log.Debug("job done", "id", job.ID, "took", res.Duration)
		}
	}()

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	req := job.Request
	if req.ID == "" {
		req.ID = job.ID
	}
	doc, err := p.gen.Generate(req)
	if err != nil {
		res.Err = err
		return res
	}
	res.Success = true
	res.Document = doc
	return res
}

// Report summarizes one pool run.
type Report struct {
	Build    string
	Jobs     int
	Failed   int
	Total    time.Duration
	Slowest  time.Duration
	Memory   system.MemoryStats
	MemoryOK bool
}

// Summarize builds the report of a run that took total.
func Summarize(build string, results []Result, total time.Duration) Report {
	r := Report{Build: build, Jobs: len(results), Total: total}
	for _, res := range results {
		if !res.Success {
			r.Failed++
		}
		if res.Duration > r.Slowest {
			r.Slowest = res.Duration
		}
	}
	if m, err := system.ReadMemoryStats(); err == nil {
		r.Memory, r.MemoryOK = m, true
	}
	return r
}

// Throughput is jobs per second.
func (r Report) Throughput() float64 {
	if r.Total <= 0 {
		return 0
	}
	return float64(r.Jobs) / r.Total.Seconds()
}

func (r Report) String() string {
	mem := "n/a"
	if r.MemoryOK {
		mem = r.Memory.String()
	}
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Jobs: %d (failed %d)\n"+
			"Total Time: %.2fs\n"+
			"Slowest Job: %.3fs\n"+
			"Throughput: %.2f docs/s\n"+
			"Memory: %s\n"+
			"----------------------------\n",
		r.Build, r.Jobs, r.Failed, r.Total.Seconds(), r.Slowest.Seconds(), r.Throughput(), mem,
	)
}

// WriteBenchmark appends a one-line summary, as kept in benchmark.log.
func (r Report) WriteBenchmark(w io.Writer, now time.Time) error {
	_, err := fmt.Fprintf(w, "[%s] Build: %s | Jobs: %d | Failed: %d | Total: %.2fs | Throughput: %.2f\n",
		now.Format("2006-01-02 15:04:05"), r.Build, r.Jobs, r.Failed, r.Total.Seconds(), r.Throughput())
	return err
}
