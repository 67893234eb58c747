package loop

// Screen is the phase of a terminal session.
type Screen int

const (
	ScreenStart    Screen = iota // Title
	ScreenPlaying                // A round is running
	ScreenOver                   // Round won or lost, waiting for restart
	ScreenShutdown               // Host is going down
)

func (s Screen) String() string {
	switch s {
	case ScreenStart:
		return "start"
	case ScreenPlaying:
		return "playing"
	case ScreenOver:
		return "over"
	case ScreenShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}
