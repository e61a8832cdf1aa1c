package input

// InputMode mirrors the session status for parser context
// Kept in sync by the frontend via SetMode()
type InputMode uint8

const (
	ModeMenu   InputMode = iota // Title and game over screens
	ModeAnswer                  // Playing, keys edit the answer field
)
