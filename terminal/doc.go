// Package terminal renders the game as a top-down radar in a tcell screen.
//
// Features:
//   - Start, victory and settings screens with a jumpscare flash on capture
//   - Keyboard movement with synthesized key releases (terminals report presses only)
//   - Mouse click as interact
//
// Snapshots are read from the frame driver; input is forwarded on its channels.
package terminal
