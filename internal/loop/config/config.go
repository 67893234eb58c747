// Package config centralizes the tunables of the terminal frontend.
package config

import "time"

// View is the part of the play-field shown, in play-field units.
const (
	ViewWidth  = 400
	ViewHeight = 600
	ViewTop    = -40 // Play-field y at the top edge before any scrolling
)

// Largest area the canvas uses; bigger terminals get a centred, bordered field.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Frame pacing
const (
	TargetFPS       = 60
	TargetFrameTime = time.Second / TargetFPS
)

// MenuDelayTicks is how long restart input is ignored after a round ends.
const MenuDelayTicks = 60

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// ShutdownDisplayTime is how long the shutdown notice stays up before the session ends.
const ShutdownDisplayTime = 3 * time.Second
