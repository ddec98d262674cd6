package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/wortschatz/pkg/wortschatz/stoplist"
)

// Tokenizer extracts distinct vocabulary candidates from raw text
type Tokenizer struct {
	stops *stoplist.Manager
}

// NewTokenizer creates a new tokenizer with the given stopword list
func NewTokenizer(stopwords []string) *Tokenizer {
	return &Tokenizer{stops: stoplist.NewManager(stopwords)}
}

// NewGermanTokenizer creates a tokenizer using the German article and glyph stoplist.
func NewGermanTokenizer() *Tokenizer {
	return &Tokenizer{stops: stoplist.German()}
}

// WithStoplist creates a tokenizer backed by an existing stoplist manager.
func WithStoplist(m *stoplist.Manager) *Tokenizer {
	if m == nil {
		m = stoplist.NewManager(nil)
	}
	return &Tokenizer{stops: m}
}

var german = NewGermanTokenizer()

// ExtractTokens runs the default German tokenizer over text.
func ExtractTokens(text string) []string {
	return german.Tokenize(text)
}

// Tokenize strips punctuation and symbols, splits on spaces, drops stopwords
// and removes duplicates while keeping first-occurrence order.
//
// Stripped characters are deleted, not replaced by a space, so "Hallo,Welt"
// becomes the single token "HalloWelt". Only ' ' separates tokens; tabs and
// newlines stay inside them. Stopwords match case-insensitively, duplicates
// match exactly ("Haus" and "haus" are both kept).
//
// Text is composed to NFC on both sides of stripping: deleting a glyph can
// leave a base letter next to a combining mark, and the second pass composes
// them so every emitted token is NFC.
func (t *Tokenizer) Tokenize(text string) []string {
	cleaned := norm.NFC.String(stripSymbols(norm.NFC.String(text)))

	tokens := make([]string, 0)
	seen := make(map[string]struct{})
	for _, word := range strings.Split(cleaned, " ") {
		if word == "" || t.stops.IsStop(word) {
			continue
		}
		if _, dup := seen[word]; dup {
			continue
		}
		seen[word] = struct{}{}
		tokens = append(tokens, word)
	}
	return tokens
}

// stripSymbols deletes every rune in Unicode categories P and S.
func stripSymbols(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

// AddStopword adds a word to the stopword list
func (t *Tokenizer) AddStopword(word string) {
	t.stops.Add(word, stoplist.KindCustom)
}

// RemoveStopword removes a word from the stopword list
func (t *Tokenizer) RemoveStopword(word string) {
	t.stops.Remove(word)
}

// Stoplist exposes the underlying stopword set.
func (t *Tokenizer) Stoplist() *stoplist.Manager {
	return t.stops
}
