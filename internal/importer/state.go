package importer

import (
	"log/slog"

	"mediashelf/internal/logging"
)

// State is a step of the import pipeline.
type State string

const (
	StateIdle        State = "idle"
	StateFetching    State = "fetching"
	StateExtracting  State = "extracting"
	StateResolving   State = "resolving"
	StateNormalizing State = "normalizing"
	StateDone        State = "done"
	StateFailed      State = "failed"
)

// run tracks the states one import passes through.
type run struct {
	logger *slog.Logger
	state  State
	trace  []string
}

func newRun(logger *slog.Logger) *run {
	r := &run{logger: logger}
	r.enter(StateIdle)
	return r
}

func (r *run) enter(state State) {
	r.state = state
	r.trace = append(r.trace, string(state))
	r.logger.Debug("import state", logging.String("state", string(state)))
}

// fail moves to Failed and returns err with the trace attached.
func (r *run) fail(err *ImportError) *ImportError {
	r.enter(StateFailed)
	err.Trace = r.Trace()
	logging.WarnWithContext(r.logger, "import failed", "import_failed",
		logging.String("kind", string(err.Kind)),
		logging.Error(err.Err),
		logging.String(logging.FieldErrorHint, hintFor(err.Kind)),
	)
	return err
}

// Trace returns a copy of the visited states.
func (r *run) Trace() []string {
	return append([]string(nil), r.trace...)
}

func hintFor(kind ErrorKind) string {
	switch kind {
	case KindInvalidCategory:
		return "use one of book, movie, music"
	case KindInvalidID:
		return "pass the numeric id from the subject url"
	case KindNotFound:
		return "check the id exists on the source site"
	default:
		return "check network access and the douban cookie"
	}
}
