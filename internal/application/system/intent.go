package system

// Intent is one tick of movement input for a platform movement controller
type Intent struct {
	Horizontal   float64 // Drive axis, clamped to [-1, 1]
	JumpPressed  bool
	JumpReleased bool
}

const maxLatchedEdges = 4

// IntentLatch bridges frame-rate input sampling and fixed-rate ticks.
// The drive axis is level-triggered (latest sample wins); jump edges are
// queued and handed out one per tick so none is lost between ticks.
type IntentLatch struct {
	horizontal float64
	edges      []bool // true = press, false = release
}

// Sample records one frame of input
func (l *IntentLatch) Sample(in Intent) {
	l.horizontal = in.Horizontal
	if in.JumpPressed {
		l.push(true)
	}
	if in.JumpReleased {
		l.push(false)
	}
}

// Consume returns the intent for one fixed tick, delivering at most one edge
func (l *IntentLatch) Consume() Intent {
	out := Intent{Horizontal: l.horizontal}
	if len(l.edges) == 0 {
		return out
	}
	if l.edges[0] {
		out.JumpPressed = true
	} else {
		out.JumpReleased = true
	}
	l.edges = l.edges[1:]
	return out
}

// Pending returns the number of undelivered jump edges
func (l *IntentLatch) Pending() int {
	return len(l.edges)
}

// Reset drops all latched input
func (l *IntentLatch) Reset() {
	l.horizontal = 0
	l.edges = l.edges[:0]
}

func (l *IntentLatch) push(press bool) {
	if len(l.edges) == maxLatchedEdges {
		l.edges = l.edges[1:]
	}
	l.edges = append(l.edges, press)
}
