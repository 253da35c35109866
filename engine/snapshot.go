package engine

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
)

// Snapshot is an immutable copy of presentation state for one frame
type Snapshot struct {
	Frame     int64        `json:"frame"`
	Phase     string       `json:"phase"`
	SessionID string       `json:"session_id,omitempty"`
	Collected int          `json:"collected"`
	Max       int          `json:"max"`
	Message   string       `json:"message,omitempty"`
	Lore      string       `json:"lore"`
	Jumpscare bool         `json:"jumpscare"`
	Bound     float64      `json:"bound"`
	Settings  SettingsView `json:"settings"`
	Avatar    AvatarView   `json:"avatar"`
	Pursuer   PursuerView  `json:"pursuer"`
	Pickups   []PickupView `json:"pickups"`
}

type SettingsView struct {
	MusicVolume   float64 `json:"music_volume"`
	EffectsVolume float64 `json:"effects_volume"`
	Open          bool    `json:"open"`
}

type AvatarView struct {
	Position  mgl64.Vec3 `json:"position"`
	Yaw       float64    `json:"yaw"`
	Pitch     float64    `json:"pitch"`
	Moving    bool       `json:"moving"`
	Sprinting bool       `json:"sprinting"`
}

type PursuerView struct {
	Position  mgl64.Vec3 `json:"position"`
	Facing    float64    `json:"facing"`
	Mode      string     `json:"mode"`
	Proximity float64    `json:"proximity"`
	AnimPhase float64    `json:"anim_phase"`
	LimbSwing float64    `json:"limb_swing"`
}

type PickupView struct {
	ID         string     `json:"id"`
	Position   mgl64.Vec3 `json:"position"`
	Collected  bool       `json:"collected"`
	CanCollect bool       `json:"can_collect"`
}

func newSnapshot(w *World) *Snapshot {
	snap := &Snapshot{
		Frame:     w.FrameNumber,
		Phase:     w.Session.Phase.String(),
		Collected: w.Session.Collected,
		Max:       w.Session.Max,
		Message:   w.Session.Message,
		Lore:      w.Lore,
		Jumpscare: w.Session.Jumpscare,
		Bound:     constant.WorldBound,
		Settings: SettingsView{
			MusicVolume:   w.Settings.MusicVolume,
			EffectsVolume: w.Settings.EffectsVolume,
			Open:          w.Settings.Open,
		},
		Avatar: AvatarView{
			Position:  w.Avatar.Position,
			Yaw:       w.Avatar.Yaw,
			Pitch:     w.Avatar.Pitch,
			Moving:    w.Avatar.Moving,
			Sprinting: w.Avatar.Sprinting,
		},
		Pursuer: PursuerView{
			Position:  w.Pursuer.Position,
			Facing:    w.Pursuer.Facing,
			Mode:      w.Pursuer.Mode.String(),
			Proximity: w.Pursuer.Proximity,
			AnimPhase: w.Pursuer.AnimPhase,
			LimbSwing: w.Pursuer.LimbSwing,
		},
		Pickups: make([]PickupView, len(w.Pickups)),
	}
	if w.Session.Phase != component.PhaseIdle {
		snap.SessionID = w.Session.ID.String()
	}

	playing := w.Playing()
	for i, p := range w.Pickups {
		snap.Pickups[i] = PickupView{
			ID:         p.ID,
			Position:   p.Position,
			Collected:  p.Collected,
			CanCollect: playing && !p.Collected && p.InRange,
		}
	}
	return snap
}
