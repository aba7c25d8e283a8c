package canopy

// Result is the tri-state outcome a node reports on every tick.
type Result int

const (
	// Running means the node has not finished yet and wants to be ticked again.
	Running Result = iota
	// Success means the node finished and achieved its goal.
	Success
	// Failure means the node finished without achieving its goal.
	Failure
)

// Terminal reports whether r ends a node's life (anything but Running).
func (r Result) Terminal() bool {
	return r != Running
}

func (r Result) String() string {
	switch r {
	case Running:
		return "RUNNING"
	case Success:
		return "SUCCESS"
	case Failure:
		return "FAILURE"
	default:
		return "UNKNOWN"
	}
}

// MarshalText implements encoding.TextMarshaler so results serialize as
// their canonical names in JSON snapshots.
func (r Result) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}
