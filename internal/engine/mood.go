package engine

import (
	"strings"

	"github.com/23sarma/Life-os/internal/model"
)

// moodWords is checked in order; the first list with any substring match wins.
var moodWords = []struct {
	mood  model.Mood
	words []string
}{
	{model.MoodHappy, []string{"happy", "great", "good", "awesome", "excellent"}},
	{model.MoodSad, []string{"sad", "bad", "terrible", "awful", "down"}},
	{model.MoodStressed, []string{"stress", "tired", "overwhelmed", "busy"}},
}

// DetectMood infers a mood from text. Neutral when nothing matches.
func DetectMood(input string) model.Mood {
	lower := strings.ToLower(input)
	for _, m := range moodWords {
		if containsAny(lower, m.words) {
			return m.mood
		}
	}
	return model.MoodNeutral
}
