// Package lexical defines the enrichment contract: the lexical entry shape the
// enrichment service must return and the parser that turns its reply into
// entries.
package lexical

import "strings"

// JSON field names of an entry, in schema order.
const (
	FieldDe           = "de"
	FieldDePlural     = "de_plural"
	FieldDePrateritum = "de_praterium"
	FieldDePartizip2  = "de_partizip_2"
	FieldEn           = "en"
	FieldRu           = "ru"
)

// Fields returns every entry field name in schema order.
func Fields() []string {
	return []string{FieldDe, FieldDePlural, FieldDePrateritum, FieldDePartizip2, FieldEn, FieldRu}
}

// Entry is one enriched vocabulary record.
//
// De holds the canonical form (with article for nouns, "sich" and preposition
// for verbs where they apply). DePlural is set for nouns only; DePrateritum and
// DePartizip2 for verbs only. En and Ru may be empty when the service omitted them.
type Entry struct {
	De           string  `json:"de"`
	DePlural     *string `json:"de_plural"`
	DePrateritum *string `json:"de_praterium"`
	DePartizip2  *string `json:"de_partizip_2"`
	En           string  `json:"en,omitempty"`
	Ru           string  `json:"ru,omitempty"`
}

// IsNoun reports whether the entry carries a plural form.
func (e Entry) IsNoun() bool {
	return e.DePlural != nil && *e.DePlural != ""
}

// IsVerb reports whether the entry carries past forms.
func (e Entry) IsVerb() bool {
	return (e.DePrateritum != nil && *e.DePrateritum != "") ||
		(e.DePartizip2 != nil && *e.DePartizip2 != "")
}

// Headline renders the canonical form with its grammatical variants:
// "das Wochenende (die Wochenenden)" or "sein (war | ist gewesen)".
func (e Entry) Headline() string {
	var b strings.Builder
	b.WriteString(e.De)
	if e.IsNoun() {
		b.WriteString(" (")
		b.WriteString(*e.DePlural)
		b.WriteString(")")
	}
	if e.DePrateritum != nil && *e.DePrateritum != "" {
		b.WriteString(" (")
		b.WriteString(*e.DePrateritum)
		b.WriteString(" | ")
		b.WriteString(deref(e.DePartizip2))
		b.WriteString(")")
	}
	return b.String()
}

// Ptr returns a pointer to s; convenient for building nullable fields.
func Ptr(s string) *string {
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Dedup keeps the first entry for every canonical form.
func Dedup(entries []Entry) []Entry {
	out := make([]Entry, 0, len(entries))
	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.De]; ok {
			continue
		}
		seen[e.De] = struct{}{}
		out = append(out, e)
	}
	return out
}
