package converter

import "recast/internal/config"

// FilePlan is what a run would do for one discovered file.
type FilePlan struct {
	Source   string
	Resolved Resolved
	Jobs     []Job
	Err      error
}

// Plan discovers the source tree and derives every destination without
// touching the destination tree or invoking the encoder.
func Plan(cfg config.Config) ([]FilePlan, error) {
	paths, err := Discover(cfg.SourceRoot, cfg.DestRoot)
	if err != nil {
		return nil, err
	}

	plans := make([]FilePlan, 0, len(paths))
	for _, path := range paths {
		res, err := Resolve(cfg.SourceRoot, cfg.DestRoot, path, cfg.KeepExtension)
		if err != nil {
			plans = append(plans, FilePlan{Source: path, Err: err})
			continue
		}
		plans = append(plans, FilePlan{
			Source:   path,
			Resolved: res,
			Jobs:     PlanJobs(res, cfg.Formats, cfg.CompressQuality),
		})
	}
	return plans, nil
}
