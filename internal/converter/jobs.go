package converter

import (
	"context"
	"fmt"
	"os"

	"recast/internal/config"
)

// PlanJobs lists the jobs for one resolved source: one conversion per target
// format, then the compression job.
func PlanJobs(res Resolved, formats []config.Format, compressQuality int) []Job {
	jobs := make([]Job, 0, len(formats)+1)
	for _, f := range formats {
		jobs = append(jobs, Job{
			Kind:    JobConvert,
			Source:  res.Source,
			Dest:    res.OutputPath(f.Type),
			Format:  f.Type,
			Quality: f.Quality,
		})
	}
	return append(jobs, Job{
		Kind:    JobCompress,
		Source:  res.Source,
		Dest:    res.CompressPath(),
		Format:  res.Extension,
		Quality: compressQuality,
	})
}

func runJob(ctx context.Context, enc Encoder, job Job) (out JobOutcome) {
	out = JobOutcome{
		Kind:   job.Kind,
		Source: job.Source,
		Dest:   job.Dest,
		Format: job.Format,
	}
	defer func() {
		if r := recover(); r != nil {
			out.Err = fmt.Errorf("%w: encoder panic: %v", ErrEncode, r)
		}
	}()

	var err error
	switch job.Kind {
	case JobConvert:
		err = enc.Encode(ctx, job.Source, job.Dest, job.Format, job.Quality)
	case JobCompress:
		err = enc.Reencode(ctx, job.Source, job.Dest, job.Quality)
	default:
		err = fmt.Errorf("unknown job kind %d", job.Kind)
	}
	if err != nil {
		out.Err = classify(err)
		return out
	}

	if info, statErr := os.Stat(job.Dest); statErr == nil {
		out.Bytes = info.Size()
	}
	return out
}

func failedOutcome(job Job, err error) JobOutcome {
	return JobOutcome{
		Kind:   job.Kind,
		Source: job.Source,
		Dest:   job.Dest,
		Format: job.Format,
		Err:    err,
	}
}
