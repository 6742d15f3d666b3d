package parameter

import "time"

// Window & Frame Timing
const (
	// WindowWidth is the default drawing surface width in world units (pixels for the window backend)
	WindowWidth = 1600

	// WindowHeight is the default drawing surface height in world units
	WindowHeight = 1000

	// WindowTitle is the window caption
	WindowTitle = "Gravity"

	// FrameRate is the frame cap; one physics step runs per frame
	FrameRate = 60

	// MaxFrameRate bounds configured frame rates so the frame interval stays positive
	MaxFrameRate = 1000

	// FrameUpdateInterval is the terminal backend frame interval at FrameRate (~60 FPS)
	FrameUpdateInterval = time.Second / FrameRate
)

// Terminal Backend
const (
	// EventQueueSize is the buffered capacity of the terminal event forwarding channel
	EventQueueSize = 256
)
