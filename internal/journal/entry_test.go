package journal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseMood(t *testing.T) {
	for v := 0; v <= 4; v++ {
		m, err := ParseMood(v)
		require.NoError(t, err)
		require.Equal(t, Mood(v), m)
	}
	for _, v := range []int{-1, 5, 7, 100} {
		_, err := ParseMood(v)
		require.ErrorIs(t, err, ErrValidation, "mood %d", v)
	}
}

func TestParseRating(t *testing.T) {
	for v := 0; v <= 10; v++ {
		r, err := ParseRating(v)
		require.NoError(t, err)
		require.Equal(t, Rating(v), r)
	}
	for _, v := range []int{-1, 11} {
		_, err := ParseRating(v)
		require.ErrorIs(t, err, ErrValidation, "rating %d", v)
	}
}

func TestMoodLabels(t *testing.T) {
	require.Equal(t, []string{"Depressed", "Sad", "Neutral", "Happy", "Excited"}, MoodLabels())
	require.Equal(t, "Neutral", MoodNeutral.Label())
	require.Equal(t, "Excited", MoodExcited.String())
	require.Equal(t, "Unknown", Mood(5).Label())
	require.Equal(t, "Unknown", Mood(-2).Label())

	// callers get a copy
	labels := MoodLabels()
	labels[0] = "changed"
	require.Equal(t, "Depressed", MoodDepressed.Label())
}

func TestNewEntry_StampsUTCMillis(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2025, 1, 2, 12, 30, 15, 987654321, loc)

	e, err := NewEntry("note", 1, 3, now)
	require.NoError(t, err)
	require.Equal(t, time.UTC, e.CreatedAt.Location())
	require.True(t, e.CreatedAt.Equal(time.Date(2025, 1, 2, 10, 30, 15, 987000000, time.UTC)))
}
