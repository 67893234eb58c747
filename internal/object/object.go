// Package object defines the entities of a round: falling boxes, the player's
// bird and the warning board that announces the next drop.
package object

// Intent is the horizontal direction the player asks for this frame.
type Intent int

const (
	IntentNone Intent = iota
	IntentLeft
	IntentRight
)

// String returns a short name for logs.
func (i Intent) String() string {
	switch i {
	case IntentLeft:
		return "left"
	case IntentRight:
		return "right"
	default:
		return "none"
	}
}

// IntentFromDir converts -1/0/1 into an Intent.
func IntentFromDir(dir int) Intent {
	switch {
	case dir < 0:
		return IntentLeft
	case dir > 0:
		return IntentRight
	default:
		return IntentNone
	}
}

// Rect is an axis-aligned rectangle in play-field coordinates.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}
