// Package prompt builds the instruction payload sent to the enrichment service.
package prompt

import (
	"fmt"
	"strings"
)

// Rules are the transformation rules the enrichment service must follow.
var Rules = []string{
	"Convert every word to its infinitive (canonical dictionary) form.",
	"If the word is a noun, prepend the correct definite article and give the plural form.",
	"If the word is a verb, give the Präteritum (simple past) and the Partizip II (past participle).",
	`If the verb is reflexive, prefix the canonical form with the pronoun "sich". Example: "ich interessiere mich" becomes "sich interessieren".`,
	"If the verb is habitually used with a specific preposition, include that preposition in the canonical form.",
	"Remove duplicate entries from the output.",
	"Give an English and a Russian translation for every entry.",
}

const schemaBlock = `Respond with a JSON array. Every element is an object with exactly these fields:
  "de"            string, the canonical form (with article for nouns), never null
  "de_plural"     string or null, the plural form; null unless the word is a noun
  "de_praterium"  string or null, the Präteritum form; null unless the word is a verb
  "de_partizip_2" string or null, the Partizip II form; null unless the word is a verb
  "en"            string, the English translation
  "ru"            string, the Russian translation

Example:
[
  {"de": "endlich", "de_plural": null, "de_praterium": null, "de_partizip_2": null, "en": "finally", "ru": "наконец"},
  {"de": "sein", "de_plural": null, "de_praterium": "war", "de_partizip_2": "ist gewesen", "en": "to be", "ru": "быть"},
  {"de": "das Wochenende", "de_plural": "die Wochenenden", "de_praterium": null, "de_partizip_2": null, "en": "weekend", "ru": "выходные"}
]

Important: provide only JSON. No comments, no explanations, no Markdown. The output is parsed by a program.`

// DefaultTemplate is the full instruction; %s receives the rule list, the
// schema block and the input text, in that order.
const DefaultTemplate = `You are given a text in German. Process it following these rules:

%s

%s

Text to process: %s
`

// Builder renders enrichment requests
type Builder struct {
	// Template overrides DefaultTemplate. It must contain exactly three %s verbs.
	Template string
}

// Build returns the instruction payload for text.
func (b Builder) Build(text string) string {
	tpl := b.Template
	if tpl == "" {
		tpl = DefaultTemplate
	}
	return fmt.Sprintf(tpl, ruleList(), schemaBlock, text)
}

// BuildEnrichmentRequest renders the default instruction payload for text.
func BuildEnrichmentRequest(text string) string {
	return Builder{}.Build(text)
}

func ruleList() string {
	var b strings.Builder
	for i, r := range Rules {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "* %s", r)
	}
	return b.String()
}
