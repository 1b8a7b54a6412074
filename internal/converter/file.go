package converter

import (
	"context"
	"fmt"
	"sync"

	"recast/internal/config"
)

// ProcessFile runs every job for one source image and returns one outcome per
// job. It never returns early on a job failure.
func (r *Runner) ProcessFile(ctx context.Context, srcPath string) []JobOutcome {
	outcomes := r.processFile(ctx, srcPath)

	failed := 0
	for _, o := range outcomes {
		if !o.OK() {
			failed++
		}
	}
	r.emit(Event{Kind: EventFileDone, Source: srcPath, Count: len(outcomes), Failed: failed})
	return outcomes
}

func (r *Runner) processFile(ctx context.Context, srcPath string) []JobOutcome {
	res, err := Resolve(r.cfg.SourceRoot, r.cfg.DestRoot, srcPath, r.cfg.KeepExtension)
	if err != nil {
		// Nothing can be planned without paths; still account for every job.
		return r.failAll(placeholderJobs(srcPath, r.cfg.Formats, r.cfg.CompressQuality), err)
	}
	jobs := PlanJobs(res, r.cfg.Formats, r.cfg.CompressQuality)

	created, err := r.dirs.Ensure(res.DestDir)
	if err != nil {
		r.emit(Event{Kind: EventDirFailed, Source: srcPath, Dest: res.DestDir, Err: err})
		return r.failAll(jobs, err)
	}
	if created {
		r.emit(Event{Kind: EventDirCreated, Source: srcPath, Dest: res.DestDir})
	}

	outcomes := make([]JobOutcome, len(jobs))
	seen := make(map[string]int, len(jobs))
	var wg sync.WaitGroup
	for i, job := range jobs {
		if first, dup := seen[job.Dest]; dup {
			outcomes[i] = failedOutcome(job, fmt.Errorf("%w: %s (%s job %d)", ErrDestinationConflict, job.Dest, jobs[first].Kind, first))
			r.emitOutcome(outcomes[i], job.Quality)
			continue
		}
		seen[job.Dest] = i
		if owner, ok := r.claim(job.Dest, srcPath); !ok {
			outcomes[i] = failedOutcome(job, fmt.Errorf("%w: %s (written from %s)", ErrDestinationConflict, job.Dest, owner))
			r.emitOutcome(outcomes[i], job.Quality)
			continue
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = runJob(ctx, r.enc, job)
			r.emitOutcome(outcomes[i], job.Quality)
		}()
	}
	wg.Wait()

	return outcomes
}

func (r *Runner) failAll(jobs []Job, err error) []JobOutcome {
	outcomes := make([]JobOutcome, len(jobs))
	for i, job := range jobs {
		outcomes[i] = failedOutcome(job, err)
		r.emitOutcome(outcomes[i], job.Quality)
	}
	return outcomes
}

func (r *Runner) emitOutcome(o JobOutcome, quality int) {
	ev := Event{
		Job:     o.Kind,
		Source:  o.Source,
		Dest:    o.Dest,
		Format:  o.Format,
		Quality: quality,
		Err:     o.Err,
	}
	switch {
	case !o.OK():
		ev.Kind = EventJobFailed
	case o.Kind == JobCompress:
		ev.Kind = EventCompressed
	default:
		ev.Kind = EventConverted
	}
	r.emit(ev)
}

// placeholderJobs mirrors PlanJobs for a source whose paths cannot be
// derived, so the job count stays formats+1 per file.
func placeholderJobs(srcPath string, formats []config.Format, compressQuality int) []Job {
	jobs := make([]Job, 0, len(formats)+1)
	for _, f := range formats {
		jobs = append(jobs, Job{Kind: JobConvert, Source: srcPath, Format: f.Type, Quality: f.Quality})
	}
	return append(jobs, Job{Kind: JobCompress, Source: srcPath, Quality: compressQuality})
}
