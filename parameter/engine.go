package parameter

import "time"

// Frame Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta caps dt fed to the simulation after a stall (window drag, debugger, suspend)
	MaxFrameDelta = 250 * time.Millisecond
)
