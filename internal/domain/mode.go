package domain

// Mode tells whether a component talks to its real backend or runs on the demo fallback.
type Mode string

const (
	ModeLive Mode = "live"
	ModeDemo Mode = "demo"
)
