package constant

import "time"

// Terminal Frontend
const (
	// TerminalFrameInterval is the redraw period (~30 FPS)
	TerminalFrameInterval = 33 * time.Millisecond

	// Terminals report presses only; a held key repeats, so release is inferred from silence
	// KeyHoldInitial covers the OS delay before the first repeat
	KeyHoldInitial = 550 * time.Millisecond
	// KeyHoldRepeat covers the gap between repeats
	KeyHoldRepeat = 120 * time.Millisecond

	// LookStep is the pointer-equivalent delta of one arrow press
	LookStep = 60.0

	// VolumeStep is the change per volume key press
	VolumeStep = 0.1

	// JumpscareBlinkFrames alternates the flash every N redraws
	JumpscareBlinkFrames = 3
)
