package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tubby-terrors/component"
	"github.com/lixenwraith/tubby-terrors/constant"
	"github.com/lixenwraith/tubby-terrors/engine"
	"github.com/lixenwraith/tubby-terrors/vmath"
)

const (
	hudRow     = 0
	radarTop   = 2
	footerRows = 3
	title      = "TUBBY TERRORS"
)

// Compass arrows clockwise from screen-up (world -Z)
var headingArrows = [8]rune{'↑', '↗', '→', '↘', '↓', '↙', '←', '↖'}

// Renderer draws snapshots onto a tcell screen
type Renderer struct {
	screen tcell.Screen
	frames int
	base   tcell.Style
}

// NewRenderer creates a renderer for screen
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{
		screen: screen,
		base:   tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText),
	}
}

// Draw renders one frame
func (r *Renderer) Draw(snap *engine.Snapshot) {
	r.frames++
	r.screen.Fill(' ', r.base)

	if snap == nil {
		r.screen.Show()
		return
	}

	switch {
	case snap.Jumpscare:
		r.drawJumpscare()
	case snap.Phase == component.PhaseIdle.String():
		r.drawStartScreen(snap)
	case snap.Phase == component.PhaseWon.String():
		r.drawVictoryScreen(snap)
	default:
		r.drawHUD(snap)
		r.drawRadar(snap)
		r.drawFooter(snap)
	}

	if snap.Settings.Open {
		r.drawSettings(snap)
	}
	r.screen.Show()
}

// drawHUD draws the count and pursuer mode on the top row
func (r *Renderer) drawHUD(snap *engine.Snapshot) {
	w, _ := r.screen.Size()
	r.text(1, hudRow, r.base.Foreground(RgbTitle).Bold(true), title)

	count := fmt.Sprintf("custard %d/%d", snap.Collected, snap.Max)
	r.text(len(title)+3, hudRow, r.base.Foreground(RgbPickup), count)

	mode := strings.ToUpper(snap.Pursuer.Mode)
	modeStyle := r.base.Foreground(RgbModePatrol)
	if snap.Pursuer.Mode == component.ModeChase.String() {
		modeStyle = r.base.Foreground(RgbModeChase).Bold(true)
	}
	r.text(w-len(mode)-2, hudRow, modeStyle, mode)
}

// radarRect fits a square world into the screen; cells are roughly twice as tall as wide
func (r *Renderer) radarRect() (x0, y0, cols, rows int) {
	w, h := r.screen.Size()
	rows = h - radarTop - footerRows - 2
	cols = rows * 2
	if cols > w-4 {
		cols = w - 4
		rows = cols / 2
	}
	if rows < 3 || cols < 6 {
		return 0, 0, 0, 0
	}
	x0 = (w - cols) / 2
	y0 = radarTop + 1
	return x0, y0, cols, rows
}

// project maps a world X/Z position to a radar cell; world -Z is up
func project(x, z, bound float64, x0, y0, cols, rows int) (int, int) {
	u := (vmath.Clamp(x, -bound, bound) + bound) / (2 * bound)
	v := (vmath.Clamp(z, -bound, bound) + bound) / (2 * bound)
	cx := x0 + int(math.Round(u*float64(cols-1)))
	cy := y0 + int(math.Round(v*float64(rows-1)))
	return cx, cy
}

// drawRadar draws the top-down map of the play area
func (r *Renderer) drawRadar(snap *engine.Snapshot) {
	x0, y0, cols, rows := r.radarRect()
	if cols == 0 {
		r.text(1, radarTop, r.base, "terminal too small")
		return
	}

	ground := r.base.Background(RgbGround)
	for y := y0; y < y0+rows; y++ {
		for x := x0; x < x0+cols; x++ {
			r.screen.SetContent(x, y, ' ', nil, ground)
		}
	}
	r.box(x0-1, y0-1, cols+2, rows+2, r.base.Foreground(RgbBorder))

	bound := snap.Bound
	if bound <= 0 {
		bound = constant.WorldBound
	}

	for _, p := range snap.Pickups {
		if p.Collected {
			continue
		}
		style := ground.Foreground(RgbPickup)
		if p.CanCollect {
			style = ground.Foreground(RgbPickupNear).Bold(true)
		}
		cx, cy := project(p.Position[0], p.Position[2], bound, x0, y0, cols, rows)
		r.screen.SetContent(cx, cy, '●', nil, style)
	}

	px, py := project(snap.Pursuer.Position[0], snap.Pursuer.Position[2], bound, x0, y0, cols, rows)
	r.screen.SetContent(px, py, 'T', nil, ground.Foreground(ProximityColor(snap.Pursuer.Proximity)).Bold(true))

	ax, ay := project(snap.Avatar.Position[0], snap.Avatar.Position[2], bound, x0, y0, cols, rows)
	r.screen.SetContent(ax, ay, HeadingArrow(snap.Avatar.Yaw), nil, ground.Foreground(RgbAvatar).Bold(true))
}

// HeadingArrow returns the radar glyph for a camera yaw
func HeadingArrow(yaw float64) rune {
	fwd := vmath.ForwardXZ(yaw)
	// Clockwise from screen-up: screen-up is world -Z, screen-right is world +X
	angle := math.Atan2(fwd[0], -fwd[2])
	idx := int(math.Round(angle/(math.Pi/4))) % 8
	if idx < 0 {
		idx += 8
	}
	return headingArrows[idx]
}

// drawFooter draws the transient message and key help
func (r *Renderer) drawFooter(snap *engine.Snapshot) {
	_, h := r.screen.Size()
	if snap.Message != "" {
		r.centered(h-3, r.base.Foreground(RgbMessage).Italic(true), snap.Message)
	}
	if snap.Phase == component.PhasePlaying.String() && anyCollectable(snap) {
		r.centered(h-2, r.base.Foreground(RgbPickupNear), "[E] take the custard")
	}
	r.centered(h-1, r.base.Foreground(RgbDimText), "wasd move  WASD sprint  e interact  arrows look  o settings  q quit")
}

func anyCollectable(snap *engine.Snapshot) bool {
	for _, p := range snap.Pickups {
		if p.CanCollect {
			return true
		}
	}
	return false
}

// drawStartScreen shows the title, intro lore and the start prompt
func (r *Renderer) drawStartScreen(snap *engine.Snapshot) {
	w, h := r.screen.Size()
	y := h/2 - 4
	r.centered(y, r.base.Foreground(RgbTitle).Bold(true), title)
	y += 2

	for _, line := range wrap(snap.Lore, min(w-4, 60)) {
		r.centered(y, r.base.Italic(true), line)
		y++
	}
	y++
	r.centered(y, r.base.Foreground(RgbPickup).Bold(true), "Press Enter to begin")
	r.centered(h-1, r.base.Foreground(RgbDimText), "o settings  q quit")
}

// drawVictoryScreen shows the win banner over the last message
func (r *Renderer) drawVictoryScreen(snap *engine.Snapshot) {
	_, h := r.screen.Size()
	r.centered(h/2-2, r.base.Foreground(RgbVictory).Bold(true), "YOU SURVIVED")
	r.centered(h/2, r.base, fmt.Sprintf("All %d custards collected.", snap.Max))
	if snap.Message != "" {
		r.centered(h/2+1, r.base.Foreground(RgbMessage).Italic(true), snap.Message)
	}
	r.centered(h/2+3, r.base.Foreground(RgbPickup).Bold(true), "Press Enter to play again")
}

// drawJumpscare floods the screen with a blinking red frame
func (r *Renderer) drawJumpscare() {
	_, h := r.screen.Size()
	bg := RgbFlashRed
	if (r.frames/constant.JumpscareBlinkFrames)%2 == 1 {
		bg = RgbFlashDark
	}
	style := tcell.StyleDefault.Background(bg).Foreground(tcell.ColorWhite)
	r.screen.Fill(' ', style)
	r.centered(h/2, style.Bold(true), "IT FOUND YOU")
}

// drawSettings overlays the volume panel
func (r *Renderer) drawSettings(snap *engine.Snapshot) {
	w, h := r.screen.Size()
	const bw, bh = 34, 6
	x, y := (w-bw)/2, (h-bh)/2
	panel := r.base.Background(tcell.NewRGBColor(30, 30, 40))
	for yy := y; yy < y+bh; yy++ {
		for xx := x; xx < x+bw; xx++ {
			r.screen.SetContent(xx, yy, ' ', nil, panel)
		}
	}
	r.box(x, y, bw, bh, panel.Foreground(RgbBorder))
	r.text(x+2, y, panel.Bold(true), " Settings ")
	r.text(x+2, y+2, panel, fmt.Sprintf("Music   %s %3.0f%%  [ ]", bar(snap.Settings.MusicVolume, 10), snap.Settings.MusicVolume*100))
	r.text(x+2, y+3, panel, fmt.Sprintf("Effects %s %3.0f%%  - =", bar(snap.Settings.EffectsVolume, 10), snap.Settings.EffectsVolume*100))
}

func bar(v float64, width int) string {
	n := int(math.Round(vmath.Clamp(v, 0, 1) * float64(width)))
	return strings.Repeat("█", n) + strings.Repeat("░", width-n)
}

func (r *Renderer) text(x, y int, style tcell.Style, s string) {
	for _, ch := range s {
		r.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}

func (r *Renderer) centered(y int, style tcell.Style, s string) {
	w, _ := r.screen.Size()
	r.text((w-len([]rune(s)))/2, y, style, s)
}

func (r *Renderer) box(x, y, w, h int, style tcell.Style) {
	for i := 1; i < w-1; i++ {
		r.screen.SetContent(x+i, y, '─', nil, style)
		r.screen.SetContent(x+i, y+h-1, '─', nil, style)
	}
	for j := 1; j < h-1; j++ {
		r.screen.SetContent(x, y+j, '│', nil, style)
		r.screen.SetContent(x+w-1, y+j, '│', nil, style)
	}
	r.screen.SetContent(x, y, '┌', nil, style)
	r.screen.SetContent(x+w-1, y, '┐', nil, style)
	r.screen.SetContent(x, y+h-1, '└', nil, style)
	r.screen.SetContent(x+w-1, y+h-1, '┘', nil, style)
}

// wrap breaks s into lines of at most width runes on word boundaries
func wrap(s string, width int) []string {
	if width < 1 {
		return nil
	}
	var lines []string
	var cur []rune
	for _, word := range strings.Fields(s) {
		wr := []rune(word)
		if len(cur) > 0 && len(cur)+1+len(wr) > width {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, wr...)
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
