package pipeline

// State identifies where a run is in its strictly sequential lifecycle.
// States are never revisited; any failure moves the run to StateFailed.
type State int

const (
	StateIdle State = iota
	StatePass1Running
	StatePass1Done
	StatePass2Running
	StatePass2Done
	StateEmitted
	StateTerminal
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePass1Running:
		return "pass1-running"
	case StatePass1Done:
		return "pass1-done"
	case StatePass2Running:
		return "pass2-running"
	case StatePass2Done:
		return "pass2-done"
	case StateEmitted:
		return "emitted"
	case StateTerminal:
		return "terminal"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
