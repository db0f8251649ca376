// Package viz is the interactive terminal driver for a wave session.
//
// The live view steps the session on a fixed tick and draws the field
// with half-block characters, two lattice rows per terminal line:
//
//   - [Model]: live view over one session
//   - [Canvas]: half-block colour canvas sampled from a rendered frame
//   - [RunInteractive]: preset picker that opens a live view
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the initial impulse
//	+/-   - More or fewer steps per tick
//	G     - Toggle GIF recording
//	T     - Cycle colour themes
//	?     - Show help overlay
//	Click - Inject an impulse at the clicked cell
//
// All session calls happen on the Bubble Tea update loop, so the session
// never sees concurrent access.
package viz
