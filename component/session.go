package component

import (
	"time"

	"github.com/google/uuid"
)

// Phase is the top-level game state
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseCaught
	PhaseWon
)

var phaseNames = [...]string{"idle", "playing", "caught", "won"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// Session is the live game session
// Generation increments on every start so late async results can be matched to their session
type Session struct {
	ID         uuid.UUID
	Generation uint64

	Phase     Phase
	Collected int
	Max       int

	Message       string
	MessageExpiry time.Duration // Game time; zero when no message
	Jumpscare     bool
}

// Aggression is collected/max in [0,1]
func (s *Session) Aggression() float64 {
	if s.Max <= 0 {
		return 0
	}
	return float64(s.Collected) / float64(s.Max)
}
