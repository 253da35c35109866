package narrative

import "fmt"

// Fallback text used when the provider fails or answers with nothing
const (
	ReactionErrorText = "The silence is deafening."
	ReactionEmptyText = "He is closer now..."
	LoreErrorText     = "Collect them all. Survive the night."
	LoreEmptyText     = "The forest remembers. The hunger never fades. Don't look back."
)

// Sampling for reactions; lore uses the provider defaults
const (
	reactionTemperature = 0.9
	reactionTopP        = 0.8
)

const lorePrompt = "Generate a creepy 3-sentence intro for a horror game where a mutated purple creature " +
	"hunts you in a foggy forest for stealing its custards."

func reactionPrompt(collected, max int) string {
	return fmt.Sprintf("You are a psychological horror narrator. The player just found their %d custard out of %d "+
		"in a dark, twisted Teletubby-like wasteland. Provide a short, cryptic, and terrifying message "+
		"(under 15 words) that makes them feel watched.", collected, max)
}
