package primitive

// Phase is the shared composite lifecycle. Opening and Closing are
// synchronous bookkeeping steps around the open/closed render boundary;
// no intermediate render happens inside them.
type Phase int

const (
	PhaseClosed Phase = iota
	PhaseOpening
	PhaseOpen
	PhaseClosing
)

func (p Phase) String() string {
	switch p {
	case PhaseClosed:
		return "closed"
	case PhaseOpening:
		return "opening"
	case PhaseOpen:
		return "open"
	case PhaseClosing:
		return "closing"
	}
	return "unknown"
}
