package runner

import "fmt"

// Phase is the lifecycle phase of one command execution.
type Phase int

const (
	NotStarted Phase = iota
	Running
	Completed
	Failed
)

// State is the caller-visible execution state. Once a state is terminal it
// never changes; a new execution starts from a fresh State value.
type State struct {
	Phase    Phase
	ExitCode int    // valid when Phase == Completed
	Err      string // set when Phase == Failed
}

// Terminal reports whether the execution has finished.
func (s State) Terminal() bool {
	return s.Phase == Completed || s.Phase == Failed
}

// Apply folds an engine event into the state, enforcing the legal
// transitions: NotStarted→Running, NotStarted→Failed, Running→Completed,
// Running→Failed. Events arriving after a terminal state are ignored.
func (s State) Apply(ev Event) State {
	if s.Terminal() {
		return s
	}
	switch ev := ev.(type) {
	case StartedEvent:
		if s.Phase == NotStarted {
			s.Phase = Running
		}
	case ExitEvent:
		if s.Phase == Running {
			s.Phase = Completed
			s.ExitCode = ev.Code
		}
	case FailEvent:
		s.Phase = Failed
		s.Err = ev.Msg
	}
	return s
}

// Describe renders the state for the output view's header line.
func (s State) Describe() string {
	switch s.Phase {
	case NotStarted:
		return "starting"
	case Running:
		return "running"
	case Completed:
		if s.ExitCode == 0 {
			return "exit 0"
		}
		return fmt.Sprintf("exit %d", s.ExitCode)
	case Failed:
		return "failed: " + s.Err
	}
	return "unknown"
}
