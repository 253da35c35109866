package terminal

import (
	"math"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/input"
	"github.com/lixenwraith/tubby-terrors/vmath"
)

// ActionKind discriminates translated key presses
type ActionKind uint8

const (
	ActionNone ActionKind = iota
	ActionMove
	ActionInteract
	ActionLook
	ActionIntent
	ActionQuit
)

// Action is one key press translated for the game
type Action struct {
	Kind   ActionKind
	Code   input.KeyCode
	Sprint bool
	DX, DY float64
	Intent input.Intent
}

var moveKeys = map[rune]input.KeyCode{
	'w': input.KeyW,
	'a': input.KeyA,
	's': input.KeyS,
	'd': input.KeyD,
}

// Translate maps a terminal key to an action; snap supplies toggle and volume context
func Translate(ev *tcell.EventKey, snap *engine.Snapshot) Action {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Action{Kind: ActionQuit}
	case tcell.KeyEnter:
		if snap != nil && snap.Phase == component.PhaseWon.String() {
			return intent(input.IntentRestart, 0)
		}
		return intent(input.IntentStart, 0)
	case tcell.KeyLeft:
		return Action{Kind: ActionLook, DX: -constant.LookStep}
	case tcell.KeyRight:
		return Action{Kind: ActionLook, DX: constant.LookStep}
	case tcell.KeyUp:
		return Action{Kind: ActionLook, DY: -constant.LookStep}
	case tcell.KeyDown:
		return Action{Kind: ActionLook, DY: constant.LookStep}
	case tcell.KeyRune:
	default:
		return Action{}
	}

	r := ev.Rune()
	if code, ok := moveKeys[unicode.ToLower(r)]; ok {
		return Action{Kind: ActionMove, Code: code, Sprint: unicode.IsUpper(r)}
	}

	switch r {
	case 'e', 'E', ' ':
		return Action{Kind: ActionInteract, Code: input.KeyE}
	case 'q', 'Q':
		return Action{Kind: ActionQuit}
	case 'o', 'O':
		if snap != nil && snap.Settings.Open {
			return intent(input.IntentCloseSettings, 0)
		}
		return intent(input.IntentOpenSettings, 0)
	case '[', ']':
		return volume(input.IntentMusicVolume, r == ']', snapMusic(snap))
	case '-', '=':
		return volume(input.IntentEffectsVolume, r == '=', snapEffects(snap))
	}
	return Action{}
}

func intent(t input.IntentType, v float64) Action {
	return Action{Kind: ActionIntent, Intent: input.Intent{Type: t, Value: v}}
}

func volume(t input.IntentType, up bool, current float64) Action {
	step := -constant.VolumeStep
	if up {
		step = constant.VolumeStep
	}
	// Snap to the step grid so repeated presses land on exact tenths
	v := vmath.Clamp(math.Round((current+step)/constant.VolumeStep)*constant.VolumeStep, 0, 1)
	return intent(t, v)
}

func snapMusic(snap *engine.Snapshot) float64 {
	if snap == nil {
		return constant.DefaultMusicVolume
	}
	return snap.Settings.MusicVolume
}

func snapEffects(snap *engine.Snapshot) float64 {
	if snap == nil {
		return constant.DefaultEffectsVolume
	}
	return snap.Settings.EffectsVolume
}
