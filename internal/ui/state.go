package ui

// ViewType represents the current view state
type ViewType uint8

const (
	LOADING_VIEW ViewType = iota
	TRIAGE_VIEW
	EXHAUSTED_VIEW
	QUITTING
)

func (v ViewType) String() string {
	switch v {
	case LOADING_VIEW:
		return "loading view"
	case TRIAGE_VIEW:
		return "triage view"
	case EXHAUSTED_VIEW:
		return "exhausted view"
	case QUITTING:
		return "quit"
	}
	return "unknown"
}
