package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tubby-terrors/vmath"
)

// RGB palette
var (
	RgbBackground = tcell.NewRGBColor(10, 10, 14)
	RgbGround     = tcell.NewRGBColor(24, 30, 22)
	RgbBorder     = tcell.NewRGBColor(90, 90, 100)
	RgbText       = tcell.NewRGBColor(200, 200, 200)
	RgbDimText    = tcell.NewRGBColor(120, 120, 130)
	RgbTitle      = tcell.NewRGBColor(220, 40, 40)
	RgbAvatar     = tcell.NewRGBColor(255, 255, 255)
	RgbPickup     = tcell.NewRGBColor(255, 215, 0)
	RgbPickupNear = tcell.NewRGBColor(255, 255, 180)
	RgbMessage    = tcell.NewRGBColor(255, 120, 120)
	RgbVictory    = tcell.NewRGBColor(120, 220, 120)
	RgbFlashRed   = tcell.NewRGBColor(180, 0, 0)
	RgbFlashDark  = tcell.NewRGBColor(40, 0, 0)
	RgbModePatrol = tcell.NewRGBColor(135, 206, 250)
	RgbModeChase  = tcell.NewRGBColor(255, 60, 60)
)

// ProximityColor fades the pursuer glyph from dull purple to bright red as it closes in
// p is 0.0 (far or patrolling) to 1.0 (touching)
func ProximityColor(p float64) tcell.Color {
	p = vmath.Clamp(p, 0, 1)
	r := int32(110 + (255-110)*p)
	g := int32(70 - 70*p)
	b := int32(140 - 140*p)
	return tcell.NewRGBColor(r, g, b)
}
