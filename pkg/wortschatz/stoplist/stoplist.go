package stoplist

import (
	"sort"
	"strings"
)

// Kind records where a stopword came from
type Kind int

const (
	KindCustom  Kind = iota // added by configuration or caller
	KindArticle             // German definite, indefinite or negating article
	KindGlyph               // punctuation literal
)

var germanArticles = []string{
	"der", "die", "das", "den", "dem", "des",
	"ein", "eine", "einen", "einem", "eines", "einer",
	"kein", "keine", "keinen", "keinem", "keines", "keiner",
}

// Glyph literals are normally gone after symbol stripping; they stay listed
// so a stoplist applied to unstripped input still drops them.
var glyphs = []string{
	".", ",", ";", ":", "!", "?", "-", "(", ")", "[", "]", "{", "}",
	"'", `"`, "...", "/", `\`, "&", "@", "*", "_", "~",
}

// Manager holds a case-insensitive stopword set
type Manager struct {
	stops map[string]Kind
}

// NewManager creates a manager seeded with custom stopwords
func NewManager(initialStops []string) *Manager {
	m := &Manager{stops: make(map[string]Kind, len(initialStops))}
	for _, s := range initialStops {
		m.Add(s, KindCustom)
	}
	return m
}

// German returns the default stoplist: all article forms plus glyph literals.
func German() *Manager {
	m := &Manager{stops: make(map[string]Kind, len(germanArticles)+len(glyphs))}
	for _, a := range germanArticles {
		m.Add(a, KindArticle)
	}
	for _, g := range glyphs {
		m.Add(g, KindGlyph)
	}
	return m
}

// Articles returns a copy of the German article forms.
func Articles() []string {
	return append([]string(nil), germanArticles...)
}

// Glyphs returns a copy of the punctuation literals.
func Glyphs() []string {
	return append([]string(nil), glyphs...)
}

// IsStop checks if a token is a stopword, ignoring case
func (m *Manager) IsStop(token string) bool {
	_, ok := m.stops[strings.ToLower(token)]
	return ok
}

// KindOf returns the kind of a stopword and whether it is listed.
func (m *Manager) KindOf(token string) (Kind, bool) {
	k, ok := m.stops[strings.ToLower(token)]
	return k, ok
}

// Add adds a token to the stoplist
func (m *Manager) Add(token string, kind Kind) {
	if token == "" {
		return
	}
	m.stops[strings.ToLower(token)] = kind
}

// Remove removes a token from the stoplist
func (m *Manager) Remove(token string) {
	delete(m.stops, strings.ToLower(token))
}

// All returns all stopwords in sorted order
func (m *Manager) All() []string {
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Len returns the number of stopwords
func (m *Manager) Len() int {
	return len(m.stops)
}
