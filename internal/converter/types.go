package converter

import "context"

// Encoder performs the actual pixel work. Encode converts input into format;
// Reencode writes input back out in its own format at a new quality.
type Encoder interface {
	Encode(ctx context.Context, input, output, format string, quality int) error
	Reencode(ctx context.Context, input, output string, quality int) error
}

type State int

const (
	StateCompleted State = iota
	StateNoInputFiles
)

func (s State) String() string {
	switch s {
	case StateCompleted:
		return "completed"
	case StateNoInputFiles:
		return "no input files"
	default:
		return "unknown"
	}
}

type JobKind int

const (
	JobConvert JobKind = iota
	JobCompress
)

func (k JobKind) String() string {
	if k == JobCompress {
		return "compress"
	}
	return "convert"
}

// Job is one (source file, output) pair. For compression jobs Format is the
// source's own extension.
type Job struct {
	Kind    JobKind
	Source  string
	Dest    string
	Format  string
	Quality int
}

type JobOutcome struct {
	Kind   JobKind
	Source string
	Dest   string
	Format string
	Err    error
	Bytes  int64
}

func (o JobOutcome) OK() bool {
	return o.Err == nil
}

// RunReport summarizes a run. Failures keeps discovery order.
type RunReport struct {
	State        State
	Files        int
	Jobs         int
	Failed       int
	BytesWritten int64
	Failures     []JobOutcome
}

type EventKind int

const (
	EventDiscovered EventKind = iota
	EventDirCreated
	EventDirFailed
	EventConverted
	EventCompressed
	EventJobFailed
	EventFileDone
	EventNoInputFiles
)

// Event is what a run reports to its log sink. Only the fields relevant to
// Kind are set: Count for Discovered, Dest for directory events, the job
// fields for job events.
type Event struct {
	Kind    EventKind
	Job     JobKind
	Source  string
	Dest    string
	Format  string
	Quality int
	Count   int
	Failed  int
	Err     error
}
