package journal

import (
	"fmt"
	"strings"
	"time"
)

// Mood is an ordinal emotional-state code in [MoodDepressed, MoodExcited].
type Mood int

const (
	MoodDepressed Mood = iota
	MoodSad
	MoodNeutral
	MoodHappy
	MoodExcited
)

var moodLabels = [...]string{"Depressed", "Sad", "Neutral", "Happy", "Excited"}

// ParseMood validates a raw mood code.
func ParseMood(v int) (Mood, error) {
	if v < int(MoodDepressed) || v > int(MoodExcited) {
		return 0, fmt.Errorf("%w: mood %d outside [%d,%d]", ErrValidation, v, MoodDepressed, MoodExcited)
	}
	return Mood(v), nil
}

// Label returns the display label, or "Unknown" for codes written by older
// clients that never validated the slider value.
func (m Mood) Label() string {
	if m < MoodDepressed || m > MoodExcited {
		return "Unknown"
	}
	return moodLabels[m]
}

func (m Mood) String() string { return m.Label() }

// MoodLabels returns the labels indexed by mood code.
func MoodLabels() []string {
	out := make([]string, len(moodLabels))
	copy(out, moodLabels[:])
	return out
}

const (
	MinRating Rating = 0
	MaxRating Rating = 10
)

// Rating is a subjective day rating in [MinRating, MaxRating].
type Rating int

// ParseRating validates a raw day rating.
func ParseRating(v int) (Rating, error) {
	if v < int(MinRating) || v > int(MaxRating) {
		return 0, fmt.Errorf("%w: rating %d outside [%d,%d]", ErrValidation, v, MinRating, MaxRating)
	}
	return Rating(v), nil
}

// Entry is one journal record. Entries are values; nothing in this package
// mutates an entry after NewEntry returns it.
type Entry struct {
	Text      string    `json:"text"`
	Mood      Mood      `json:"mood"`
	Rating    Rating    `json:"rating"`
	CreatedAt time.Time `json:"date"`
}

// NewEntry validates the raw inputs and stamps the entry with now.
// The stored text is trimmed of surrounding whitespace, and invalid UTF-8
// sequences become U+FFFD so the entry equals what a reload decodes.
func NewEntry(text string, mood, rating int, now time.Time) (Entry, error) {
	text = strings.TrimSpace(strings.ToValidUTF8(text, "\uFFFD"))
	if text == "" {
		return Entry{}, fmt.Errorf("%w: text is empty", ErrValidation)
	}
	m, err := ParseMood(mood)
	if err != nil {
		return Entry{}, err
	}
	r, err := ParseRating(rating)
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Text:      text,
		Mood:      m,
		Rating:    r,
		CreatedAt: now.UTC().Truncate(time.Millisecond),
	}, nil
}
