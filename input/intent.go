package input

import "strings"

// IntentType discriminates discrete presentation-layer actions
type IntentType uint8

const (
	IntentNone IntentType = iota
	IntentStart
	IntentRestart
	IntentOpenSettings
	IntentCloseSettings
	IntentMusicVolume
	IntentEffectsVolume
	IntentQuit
)

var intentNames = map[string]IntentType{
	"start":          IntentStart,
	"restart":        IntentRestart,
	"settings_open":  IntentOpenSettings,
	"settings_close": IntentCloseSettings,
	"music_volume":   IntentMusicVolume,
	"effects_volume": IntentEffectsVolume,
}

// Intent is a discrete user action
// Value carries the volume in [0,1] for volume intents
type Intent struct {
	Type  IntentType
	Value float64
}

// ParseIntent maps a wire name to an intent; unknown names yield IntentNone
// Quit is deliberately not reachable from the wire
func ParseIntent(name string, value float64) Intent {
	return Intent{Type: intentNames[strings.ToLower(strings.TrimSpace(name))], Value: value}
}
