package component

// Settings are the in-memory player audio preferences
type Settings struct {
	MusicVolume   float64
	EffectsVolume float64
	Open          bool
}
