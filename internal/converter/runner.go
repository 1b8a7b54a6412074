package converter

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"recast/internal/config"
)

// Runner owns one batch run. Its configuration is read-only for the lifetime
// of the run.
type Runner struct {
	cfg    config.Config
	enc    Encoder
	dirs   *Materializer
	events chan<- Event

	claimMu sync.Mutex
	claims  map[string]string // destination path -> owning source
}

// NewRunner prepares a run. events may be nil; when set, the caller must keep
// draining it until Run returns.
func NewRunner(cfg config.Config, enc Encoder, events chan<- Event) *Runner {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &Runner{
		cfg:    cfg,
		enc:    enc,
		dirs:   &Materializer{},
		events: events,
	}
}

// Run discovers, processes and reports in one step.
func Run(ctx context.Context, cfg config.Config, enc Encoder, events chan<- Event) (RunReport, error) {
	return NewRunner(cfg, enc, events).Run(ctx)
}

// Run processes every discovered file. Job failures only show up in the
// report; the returned error is reserved for discovery failures and context
// cancellation.
func (r *Runner) Run(ctx context.Context) (RunReport, error) {
	paths, err := Discover(r.cfg.SourceRoot, r.cfg.DestRoot)
	if err != nil {
		return RunReport{}, err
	}
	if len(paths) == 0 {
		r.emit(Event{Kind: EventNoInputFiles, Source: r.cfg.SourceRoot})
		return RunReport{State: StateNoInputFiles}, nil
	}
	r.emit(Event{Kind: EventDiscovered, Source: r.cfg.SourceRoot, Count: len(paths)})
	r.claimAll(paths)

	results := make([][]JobOutcome, len(paths))
	var g errgroup.Group
	g.SetLimit(r.cfg.Concurrency)
	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// A slot may free up only after cancellation.
			if ctx.Err() != nil {
				return nil
			}
			results[i] = r.ProcessFile(ctx, path)
			return nil
		})
	}
	_ = g.Wait()

	report := RunReport{State: StateCompleted}
	for _, outcomes := range results {
		if outcomes == nil {
			continue
		}
		report.Files++
		for _, o := range outcomes {
			report.Jobs++
			if !o.OK() {
				report.Failed++
				report.Failures = append(report.Failures, o)
				continue
			}
			report.BytesWritten += o.Bytes
		}
	}

	return report, ctx.Err()
}

func (r *Runner) emit(ev Event) {
	if r.events != nil {
		r.events <- ev
	}
}

// claimAll reserves destinations in discovery order, so when two sources
// derive the same output path the first one wins regardless of scheduling.
func (r *Runner) claimAll(paths []string) {
	for _, path := range paths {
		res, err := Resolve(r.cfg.SourceRoot, r.cfg.DestRoot, path, r.cfg.KeepExtension)
		if err != nil {
			continue
		}
		for _, job := range PlanJobs(res, r.cfg.Formats, r.cfg.CompressQuality) {
			r.claim(job.Dest, path)
		}
	}
}

// claim records src as the writer of dest. It returns the existing owner
// and false when another source already holds dest.
func (r *Runner) claim(dest, src string) (string, bool) {
	r.claimMu.Lock()
	defer r.claimMu.Unlock()
	if r.claims == nil {
		r.claims = make(map[string]string)
	}
	if owner, ok := r.claims[dest]; ok && owner != src {
		return owner, false
	}
	r.claims[dest] = src
	return src, true
}
