package environment

import "github.com/gridlearn/gridlearn/timestep"

// DefaultLoopWindow is the number of recently visited states a
// LoopDetector remembers when no window is given
const DefaultLoopWindow int = 4

// LoopDetector implements the Ender interface to end episodes when the
// agent oscillates between two states.
//
// The detector remembers the last window visited states, the current
// state included. Once the window is full, a transition is flagged
// when its next state equals the state two entries back, that is when
// the agent immediately steps back to where it just came from. Cycles
// longer than two states are not detected. Wall hits leave the agent
// where it was, so they are neither recorded nor flagged.
type LoopDetector struct {
	window  int
	visited []int
}

// NewLoopDetector returns a new LoopDetector remembering window states.
// Windows smaller than 2 fall back to DefaultLoopWindow.
func NewLoopDetector(window int) *LoopDetector {
	if window < 2 {
		window = DefaultLoopWindow
	}
	return &LoopDetector{window: window, visited: make([]int, 0, window)}
}

// Reset forgets all visited states and seeds the window with the first
// state of the new episode
func (l *LoopDetector) Reset(first timestep.TimeStep) {
	l.visited = l.visited[:0]
	l.visited = append(l.visited, first.State)
}

// End checks the transition into t for an oscillation, then records
// t's state in the window. Wall hits are skipped. If a cycle is
// detected, t is marked as the last timestep with EndType
// timestep.CycleDetected.
func (l *LoopDetector) End(t *timestep.TimeStep) bool {
	if t.Event == timestep.WallHit {
		return false
	}

	detected := false
	if n := len(l.visited); n >= l.window {
		detected = l.visited[n-2] == t.State
		l.visited = append(l.visited[:0], l.visited[1:]...)
	}
	l.visited = append(l.visited, t.State)

	if detected {
		t.SetEnd(timestep.CycleDetected)
	}
	return detected
}

// Window returns the states currently remembered, oldest first
func (l *LoopDetector) Window() []int {
	out := make([]int, len(l.visited))
	copy(out, l.visited)
	return out
}
