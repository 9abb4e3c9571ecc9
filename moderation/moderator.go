package moderation

import (
	"log/slog"
	"unicode"

	"github.com/abadojack/whatlanggo"
	goahocorasick "github.com/anknown/ahocorasick"
)

// Moderator masks forbidden words in chat content.
// With per-language dictionaries, a message whose language is reliably
// detected is only checked against that language, since a word can be an
// insult in one language and harmless in another. Anything else is checked
// against the union of all dictionaries.
type Moderator struct {
	all          *goahocorasick.Machine
	byLanguage   map[string]*goahocorasick.Machine
	censoredChar rune
	log          *slog.Logger
}

// NewModerator builds a single dictionary moderator.
func NewModerator(censoredWords []string, censoredChar rune, log *slog.Logger) (*Moderator, error) {
	all, err := buildMachine(censoredWords)
	if err != nil {
		return nil, err
	}
	return &Moderator{all: all, byLanguage: map[string]*goahocorasick.Machine{}, censoredChar: censoredChar, log: log}, nil
}

// NewMultilingualModerator takes dictionaries keyed by ISO 639-1 code.
func NewMultilingualModerator(dictionaries map[string][]string, censoredChar rune, log *slog.Logger) (*Moderator, error) {
	var union []string
	for _, words := range dictionaries {
		union = append(union, words...)
	}
	m, err := NewModerator(union, censoredChar, log)
	if err != nil {
		return nil, err
	}
	for lang, words := range dictionaries {
		machine, err := buildMachine(words)
		if err != nil {
			return nil, err
		}
		m.byLanguage[lang] = machine
	}
	return m, nil
}

func buildMachine(words []string) (*goahocorasick.Machine, error) {
	patterns := make([][]rune, 0, len(words))
	for _, word := range words {
		// a word made of noise only would match nothing, or everything
		if p, _ := fold([]rune(word)); len(p) > 0 {
			patterns = append(patterns, p)
		}
	}
	if len(patterns) == 0 {
		return nil, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	return m, nil
}

// Language returns the ISO 639-1 code of content when the detection is reliable.
func Language(content string) (string, bool) {
	info := whatlanggo.Detect(content)
	if !info.IsReliable() {
		return "", false
	}
	return info.Lang.Iso6391(), true
}

// pick returns the automaton content is checked against, nil when there is
// nothing to look for.
func (m *Moderator) pick(content string) *goahocorasick.Machine {
	if lang, ok := Language(content); ok {
		if machine, found := m.byLanguage[lang]; found {
			return machine
		}
	}
	return m.all
}

// Censor masks every forbidden word of original, rune for rune, so the
// message keeps its length and spacing. Matched words are returned in their
// folded form, once per occurrence.
func (m *Moderator) Censor(original string) (string, []string) {
	machine := m.pick(original)
	if machine == nil {
		return original, nil
	}

	runes := []rune(original)
	folded, positions := fold(runes)
	if len(folded) == 0 {
		return original, nil
	}
	hits := machine.MultiPatternSearch(folded, false)
	if len(hits) == 0 {
		return original, nil
	}

	found := make([]string, 0, len(hits))
	for _, hit := range hits {
		end := hit.Pos + len(hit.Word)
		if hit.Pos < 0 || end > len(positions) {
			continue
		}
		for i := positions[hit.Pos]; i <= positions[end-1]; i++ {
			runes[i] = m.censoredChar
		}
		found = append(found, string(hit.Word))
	}
	m.log.Debug("Content censored", "words", len(found))
	return string(runes), found
}

// fold lowercases input, maps leet characters back to letters and drops
// punctuation, spaces and symbols. positions[i] is the index in input of
// the i-th folded rune.
func fold(input []rune) (folded []rune, positions []int) {
	folded = make([]rune, 0, len(input))
	positions = make([]int, 0, len(input))
	for i, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		folded = append(folded, unicode.ToLower(clean))
		positions = append(positions, i)
	}
	return folded, positions
}

func simplifyRune(r rune) rune {
	switch r {
	case '4', '@':
		return 'a'
	case '3', '€':
		return 'e'
	case '1', '!', '|':
		return 'i'
	case '0':
		return 'o'
	case '5', '$':
		return 's'
	default:
		return r
	}
}

func isNoise(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r)
}
