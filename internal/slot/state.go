package slot

import "github.com/Faultbox/orbitview/internal/asset"

// Phase tags the variant held by State.
type Phase int

const (
	Loading Phase = iota
	Ready
	Failed
)

func (p Phase) String() string {
	switch p {
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is the load state of a slot: Loading, Ready(Scene) or Failed(Err).
// Scene is set only when Ready, Err only when Failed.
type State struct {
	Phase Phase
	Scene *asset.Scene
	Err   error
}

// LoadingState returns the initial state.
func LoadingState() State {
	return State{Phase: Loading}
}

// ReadyState wraps a loaded scene.
func ReadyState(s *asset.Scene) State {
	return State{Phase: Ready, Scene: s}
}

// FailedState wraps a load error.
func FailedState(err error) State {
	return State{Phase: Failed, Err: err}
}

// Settled reports whether the state is final.
func (s State) Settled() bool {
	return s.Phase != Loading
}
