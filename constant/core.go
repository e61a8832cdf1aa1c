package constant

import "time"

// Session Timing
const (
	// AdvanceInterval moves every falling equation by its speed
	AdvanceInterval = 50 * time.Millisecond

	// SpawnInterval adds one equation while below MaxConcurrentEquations
	SpawnInterval = 2000 * time.Millisecond

	// CountdownInterval decrements the level timer by one second
	CountdownInterval = 1000 * time.Millisecond

	// AnimatorInterval drives each impact animator (~30 FPS)
	AnimatorInterval = time.Second / 30

	// MatchDisplayDelay keeps a matched equation on screen before removal
	MatchDisplayDelay = 1000 * time.Millisecond
)

// Event Loop
const (
	// LoopInterval is the resolution of the scheduler driver
	LoopInterval = 5 * time.Millisecond

	// LoopMailboxSize is the capacity of the posted-closure channel
	LoopMailboxSize = 256

	// FrameInterval is the frontend redraw rate, aligned to the animators
	FrameInterval = AnimatorInterval
)
