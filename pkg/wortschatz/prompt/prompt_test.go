package prompt

import (
	"strings"
	"testing"

	"github.com/cognicore/wortschatz/pkg/wortschatz/lexical"
)

func TestBuildContainsInputText(t *testing.T) {
	inputs := []string{
		"",
		"Der Hund lief. Der Hund bellte!",
		"100% sicher, %s und %d bleiben wörtlich",
		"Zeile eins\nZeile zwei",
	}
	for _, in := range inputs {
		out := BuildEnrichmentRequest(in)
		if !strings.Contains(out, in) {
			t.Errorf("payload does not contain input %q", in)
		}
		if !strings.HasSuffix(strings.TrimRight(out, "\n"), "Text to process: "+in) {
			t.Errorf("input %q should close the payload", in)
		}
	}
}

func TestBuildContainsSchemaFields(t *testing.T) {
	out := BuildEnrichmentRequest("Hallo")
	for _, f := range lexical.Fields() {
		if !strings.Contains(out, `"`+f+`"`) {
			t.Errorf("payload missing field %q", f)
		}
	}
}

func TestBuildContainsRules(t *testing.T) {
	out := BuildEnrichmentRequest("Hallo")
	for _, r := range Rules {
		if !strings.Contains(out, r) {
			t.Errorf("payload missing rule %q", r)
		}
	}
	for _, must := range []string{"sich", "preposition", "English", "Russian", "only JSON"} {
		if !strings.Contains(out, must) {
			t.Errorf("payload missing %q", must)
		}
	}
}

func TestBuilderCustomTemplate(t *testing.T) {
	b := Builder{Template: "RULES\n%s\nSCHEMA\n%s\nINPUT %s"}
	out := b.Build("Katze")
	if !strings.HasPrefix(out, "RULES\n* ") {
		t.Errorf("custom template not applied: %q", out[:20])
	}
	if !strings.HasSuffix(out, "INPUT Katze") {
		t.Errorf("custom template should end with input, got %q", out)
	}
}

func TestRuleCount(t *testing.T) {
	if len(Rules) != 7 {
		t.Errorf("expected 7 rules, got %d", len(Rules))
	}
}
