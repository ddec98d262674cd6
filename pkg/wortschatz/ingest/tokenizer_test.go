package ingest

import (
	"strings"
	"testing"

	"github.com/cognicore/wortschatz/pkg/wortschatz/stoplist"
)

var samples = []string{
	"",
	" ",
	"Der Hund lief. Der Hund bellte!",
	"Ich interessiere mich für die Geschichte des Hauses.",
	"Das Haus, das haus und DAS HAUS.",
	"Hallo,Welt! Wie geht's?",
	"Straße – Fuß… Größe « Bücher » 100€ + 5%",
	"Er hat keinen Hund, aber eine Katze und einen Vogel.",
	"tab\tgetrennt\nzeile ... --- ( ) [ ]",
	"Am Wochenende war ich endlich zu Hause",
	"ein Ein EIN eines Eines",
	"u!\u0308ber \u00fcber",
	"Hu\u0308tte H\u00fctte Hu,\u0308tte",
	"!\u0308 \u0308 a\u0301\u0308",
	"\xff\xfe Hund \xc3 Katze",
}

func TestExtractTokensExample(t *testing.T) {
	got := ExtractTokens("Der Hund lief. Der Hund bellte!")
	want := []string{"Hund", "lief", "bellte"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("ExtractTokens = %q, want %q", got, want)
	}
}

func TestExtractTokensEmptyInput(t *testing.T) {
	tokens := ExtractTokens("")
	if tokens == nil {
		t.Fatal("Empty input should produce an empty, non-nil slice")
	}
	if len(tokens) != 0 {
		t.Errorf("Empty input should produce empty output, got %q", tokens)
	}
}

func TestExtractTokensNoStopwords(t *testing.T) {
	stops := stoplist.German()
	for _, in := range samples {
		for _, tok := range ExtractTokens(in) {
			if stops.IsStop(tok) {
				t.Errorf("input %q: stopword %q leaked into output", in, tok)
			}
			if tok == "" {
				t.Errorf("input %q: empty token in output", in)
			}
		}
	}
}

func TestExtractTokensNoDuplicates(t *testing.T) {
	for _, in := range samples {
		seen := make(map[string]bool)
		for _, tok := range ExtractTokens(in) {
			if seen[tok] {
				t.Errorf("input %q: duplicate token %q", in, tok)
			}
			seen[tok] = true
		}
	}
}

func TestExtractTokensFixedPoint(t *testing.T) {
	for _, in := range samples {
		first := ExtractTokens(in)
		second := ExtractTokens(strings.Join(first, " "))
		if strings.Join(first, "|") != strings.Join(second, "|") {
			t.Errorf("input %q: not a fixed point: %q then %q", in, first, second)
		}
	}
}

func TestTokenizerComposesAcrossStrippedGlyph(t *testing.T) {
	got := ExtractTokens("u!\u0308ber \u00fcber")
	if len(got) != 1 || got[0] != "\u00fcber" {
		t.Errorf("got %q, want [über] in precomposed form", got)
	}
}

// FuzzExtractTokens checks the rules that hold for every input: no stopwords,
// no empty tokens, no duplicates, and re-tokenizing the joined output is a
// no-op.
func FuzzExtractTokens(f *testing.F) {
	for _, in := range samples {
		f.Add(in)
	}
	stops := stoplist.German()

	f.Fuzz(func(t *testing.T, in string) {
		first := ExtractTokens(in)
		seen := make(map[string]bool, len(first))
		for _, tok := range first {
			if tok == "" {
				t.Fatalf("input %q: empty token", in)
			}
			if stops.IsStop(tok) {
				t.Fatalf("input %q: stopword %q in output", in, tok)
			}
			if seen[tok] {
				t.Fatalf("input %q: duplicate token %q", in, tok)
			}
			seen[tok] = true
		}
		second := ExtractTokens(strings.Join(first, " "))
		if strings.Join(first, "|") != strings.Join(second, "|") {
			t.Fatalf("input %q: not a fixed point: %q then %q", in, first, second)
		}
	})
}

func TestTokenizerCaseSensitiveDedup(t *testing.T) {
	got := ExtractTokens("Das Haus, das haus und DAS HAUS.")
	want := []string{"Haus", "haus", "und", "HAUS"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTokenizerJoinsAcrossPunctuation(t *testing.T) {
	got := ExtractTokens("Hallo,Welt")
	if len(got) != 1 || got[0] != "HalloWelt" {
		t.Errorf("got %q, want [HalloWelt]", got)
	}
}

func TestTokenizerSplitsOnSpaceOnly(t *testing.T) {
	got := ExtractTokens("eins\tzwei\ndrei vier")
	want := []string{"eins\tzwei\ndrei", "vier"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTokenizerStripsSymbols(t *testing.T) {
	got := ExtractTokens("Preis: 100€ + 5% «Bücher»")
	want := []string{"Preis", "100", "5", "Bücher"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTokenizerUmlautForms(t *testing.T) {
	decomposed := "Hu\u0308tte"
	precomposed := "H\u00fctte"

	got := ExtractTokens(decomposed + " " + precomposed + " Straße")
	want := []string{precomposed, "Straße"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestAddRemoveStopword(t *testing.T) {
	tokenizer := NewTokenizer([]string{"und"})

	tokens := tokenizer.Tokenize("Katze und Hund")
	if len(tokens) != 2 || tokens[0] != "Katze" {
		t.Errorf("Should filter 'und', got %q", tokens)
	}

	tokenizer.RemoveStopword("und")
	tokens = tokenizer.Tokenize("Katze und Hund")
	if len(tokens) != 3 {
		t.Errorf("'und' should not be filtered after removal, got %q", tokens)
	}

	tokenizer.AddStopword("Hund")
	tokens = tokenizer.Tokenize("Katze und hund")
	if len(tokens) != 2 {
		t.Errorf("'hund' should be filtered after adding 'Hund', got %q", tokens)
	}
}

func TestCustomTokenizerKeepsArticles(t *testing.T) {
	tokens := NewTokenizer(nil).Tokenize("der Hund")
	if len(tokens) != 2 {
		t.Errorf("custom tokenizer without stopwords should keep articles, got %q", tokens)
	}
}

func TestWithStoplistNil(t *testing.T) {
	tokens := WithStoplist(nil).Tokenize("der Hund")
	if len(tokens) != 2 {
		t.Errorf("nil stoplist should behave as empty, got %q", tokens)
	}
}
