package linker

// ScanState tracks what a single line has produced so far. Held values carry
// from the pre scan into the post scan of the same line and are dropped when
// the line ends.
type ScanState int

const (
	Scanning ScanState = iota
	NameHeld
	LabelHeld
	Committed
)

func (s ScanState) String() string {
	switch s {
	case Scanning:
		return "scanning"
	case NameHeld:
		return "name_held"
	case LabelHeld:
		return "label_held"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// HoldName is the transition taken when a name is claimed for the line.
func (s ScanState) HoldName() ScanState {
	switch s {
	case Scanning, NameHeld:
		return NameHeld
	default:
		return Committed
	}
}

// HoldLabel is the transition taken when a label is claimed for the line.
func (s ScanState) HoldLabel() ScanState {
	switch s {
	case Scanning, LabelHeld:
		return LabelHeld
	default:
		return Committed
	}
}

// lineScan is the per-line held state.
type lineScan struct {
	state ScanState
	name  string
	label string
}

// A second name or label on the same line replaces the held one; the first
// stays claimed in its pool.
func (l *lineScan) holdName(name string) {
	l.name = name
	l.state = l.state.HoldName()
}

func (l *lineScan) holdLabel(label string) {
	l.label = label
	l.state = l.state.HoldLabel()
}

// commit writes the pair into m once both halves are held and resets the line.
func (l *lineScan) commit(m *Mapping) bool {
	if l.state != Committed {
		return false
	}
	m.Set(l.label, l.name)
	*l = lineScan{}
	return true
}
