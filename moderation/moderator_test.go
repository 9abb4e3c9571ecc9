package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// Dictionary words are chosen so they never sit inside ordinary words
// ("he" would hit "The").
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	mod, err := NewModerator([]string{"badger", "snake", "mushroom"}, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "word inside a sentence keeps the spacing",
			input:    "Meet me at the badger bar near the station",
			expected: "Meet me at the ****** bar near the station",
			words:    []string{"badger"},
		},
		{
			name:     "every occurrence is reported",
			input:    "snake tour, snake soup, snake farm",
			expected: "***** tour, ***** soup, ***** farm",
			words:    []string{"snake", "snake", "snake"},
		},
		{
			// "B.4.d.g.€r" spans runes 9 to 18, the trailing "!" folds to "i"
			name:     "leet and punctuation inside the word",
			input:    "Look at B.4.d.g.€r !",
			expected: "Look at ********** !",
			words:    []string{"badger"},
		},
		{
			name:     "spelled out in capitals",
			input:    "S-N-A-K-E in the M.U.S.H.R.O.O.M hostel",
			expected: "********* in the *************** hostel",
			words:    []string{"snake", "mushroom"},
		},
		{
			name:     "accents around a match are untouched",
			input:    "Un été à Séoul avec un badger",
			expected: "Un été à Séoul avec un ******",
			words:    []string{"badger"},
		},
		{
			name:     "trailing punctuation stays",
			input:    "Our guide is a mushroom!",
			expected: "Our guide is a ********!",
			words:    []string{"mushroom"},
		},
		{
			name:     "clean message",
			input:    "Coffee at the Louvre tomorrow?",
			expected: "Coffee at the Louvre tomorrow?",
			words:    nil,
		},
		{
			name:     "empty message",
			input:    "",
			expected: "",
			words:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			content, words := mod.Censor(tt.input)
			req.Equal(tt.expected, content)
			req.Equal(tt.words, words)
		})
	}
}

func TestModerator_CornerCases(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given real noise and not Leet Speak associated
	dictionary := []string{"...", ",,,", "", "badger"}

	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)

	// Then the sentence is censored
	input := "The badger is safe"
	expected := "The ****** is safe"
	content, words := mod.Censor(input)
	req.Equal(expected, content)
	req.Equal([]string{"badger"}, words)

	// Then real noise is uncensored
	input = "Hello ..."
	expected = "Hello ..."
	content, words = mod.Censor(input)
	req.Equal(expected, content)
	req.Nil(words)
}

func TestModerator_PerLanguage(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given "con" is only forbidden in French
	mod, err := NewMultilingualModerator(map[string][]string{
		"fr": {"con"},
		"en": {"badger"},
	}, replacementChar, log)
	req.NoError(err)

	// When an English sentence uses it as a prefix
	english := "The conference about wildlife protection starts tomorrow morning in the main hall"
	content, words := mod.Censor(english)

	// Then it is left untouched
	req.Equal(english, content)
	req.Nil(words)

	// And a language without dictionary falls back to every dictionary
	content, words = mod.Censor("Voy a la playa con mis amigos")
	req.Equal("Voy a la playa *** mis amigos", content)
	req.Equal([]string{"con"}, words)
}

func TestModerator_EmptyDictionary(t *testing.T) {
	req := require.New(t)
	mod, err := NewModerator(nil, replacementChar, logs.GetLoggerFromLevel(slog.LevelDebug))
	req.NoError(err)

	content, words := mod.Censor("anything goes")
	req.Equal("anything goes", content)
	req.Nil(words)
}
