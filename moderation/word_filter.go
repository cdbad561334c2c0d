package moderation

import (
	"log/slog"
	"unicode"

	goahocorasick "github.com/anknown/ahocorasick"
)

// WordFilter finds banned words in user content with an Aho-Corasick automaton.
// Matching is case-insensitive, ignores punctuation and spacing, and folds
// common leet speak substitutions, so "B.4.d.g.3r" matches "badger".
type WordFilter struct {
	matcher      *goahocorasick.Machine
	originals    map[string]string
	censoredChar rune
	log          *slog.Logger
}

type textMapping struct {
	normalized []rune
	origIdx    []int
}

// NewWordFilter builds the automaton from the normalized dictionary.
// Entries made only of noise are ignored.
func NewWordFilter(bannedWords []string, censoredChar rune, log *slog.Logger) (*WordFilter, error) {
	originals := make(map[string]string, len(bannedWords))
	patterns := make([][]rune, 0, len(bannedWords))
	for _, word := range bannedWords {
		normalized := normalizeRunes([]rune(word))
		if len(normalized) == 0 {
			log.Debug("Ignoring empty banned word", "word", word)
			continue
		}
		if _, ok := originals[string(normalized)]; ok {
			continue
		}
		originals[string(normalized)] = word
		patterns = append(patterns, normalized)
	}

	filter := &WordFilter{originals: originals, censoredChar: censoredChar, log: log}
	if len(patterns) == 0 {
		return filter, nil
	}
	m := new(goahocorasick.Machine)
	if err := m.Build(patterns); err != nil {
		return nil, err
	}
	filter.matcher = m
	log.Debug("Word filter ready", "words", len(patterns))
	return filter, nil
}

// Censor replaces every banned occurrence with the censored char, keeping the
// original spacing, and returns the dictionary words found in order.
func (f *WordFilter) Censor(original string) (string, []string) {
	if f.matcher == nil {
		return original, nil
	}
	mapping := normalize(original)
	if len(mapping.normalized) == 0 {
		return original, nil
	}

	spans := f.matcher.MultiPatternSearch(mapping.normalized, false)
	if len(spans) == 0 {
		return original, nil
	}

	origRunes := []rune(original)
	var words []string
	for _, span := range spans {
		normStart := span.Pos
		normEnd := normStart + len(span.Word)
		if normStart < 0 || normEnd > len(mapping.origIdx) {
			continue
		}
		for i := mapping.origIdx[normStart]; i <= mapping.origIdx[normEnd-1]; i++ {
			origRunes[i] = f.censoredChar
		}
		words = append(words, f.originals[string(span.Word)])
	}
	return string(origRunes), words
}

// Contains reports whether the text holds at least one banned word.
func (f *WordFilter) Contains(text string) bool {
	_, words := f.Censor(text)
	return len(words) > 0
}

// normalize transforms the input into its searchable form and tracks the
// original rune position of every kept rune.
func normalize(input string) textMapping {
	origRunes := []rune(input)
	norm := make([]rune, 0, len(origRunes))
	origIdx := make([]int, 0, len(origRunes))
	for i, r := range origRunes {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		norm = append(norm, unicode.ToLower(clean))
		origIdx = append(origIdx, i)
	}
	return textMapping{normalized: norm, origIdx: origIdx}
}

func normalizeRunes(input []rune) []rune {
	out := make([]rune, 0, len(input))
	for _, r := range input {
		clean := simplifyRune(r)
		if isNoise(clean) {
			continue
		}
		out = append(out, unicode.ToLower(clean))
	}
	return out
}

// simplifyRune maps common leet speak characters back to letters.
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
