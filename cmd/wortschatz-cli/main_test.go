package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cognicore/wortschatz/pkg/wortschatz"
)

type cannedCompleter string

func (c cannedCompleter) Complete(context.Context, string) (string, error) {
	return string(c), nil
}

func newService(t *testing.T, reply string) *wortschatz.Service {
	t.Helper()
	svc, err := wortschatz.New(wortschatz.Options{Completer: cannedCompleter(reply)})
	if err != nil {
		t.Fatalf("wortschatz.New: %v", err)
	}
	return svc
}

func TestProcessRendersEntries(t *testing.T) {
	svc := newService(t, `[
		{"de":"das Wochenende","de_plural":"die Wochenenden","de_praterium":null,"de_partizip_2":null,"en":"weekend","ru":"выходные"},
		{"de":"sein","de_plural":null,"de_praterium":"war","de_partizip_2":"ist gewesen","en":"to be","ru":"быть"}
	]`)
	var out bytes.Buffer

	if err := process(context.Background(), &out, svc, svc.NewSession(), modeEnrich, "Am Wochenende war ich da"); err != nil {
		t.Fatalf("process: %v", err)
	}

	want := "das Wochenende (die Wochenenden)\n  ru: выходные\n  en: weekend\n" +
		"sein (war | ist gewesen)\n  ru: быть\n  en: to be\n"
	if out.String() != want {
		t.Fatalf("unexpected output:\n%s", out.String())
	}
}

func TestProcessReportsError(t *testing.T) {
	svc := newService(t, "not json")
	var out bytes.Buffer

	err := process(context.Background(), &out, svc, svc.NewSession(), modeEnrich, "x")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(out.String(), "Error: Invalid JSON in response") {
		t.Fatalf("unexpected output: %s", out.String())
	}
}

func TestProcessTokensMode(t *testing.T) {
	svc := newService(t, "[]")
	var out bytes.Buffer

	if err := process(context.Background(), &out, svc, svc.NewSession(), modeTokens, "Der Hund lief. Der Hund bellte!"); err != nil {
		t.Fatalf("process: %v", err)
	}
	if out.String() != "Hund\nlief\nbellte\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestProcessRequestMode(t *testing.T) {
	svc := newService(t, "[]")
	var out bytes.Buffer

	if err := process(context.Background(), &out, svc, svc.NewSession(), modeRequest, "Katze"); err != nil {
		t.Fatalf("process: %v", err)
	}
	if !strings.Contains(out.String(), "Text to process: Katze") {
		t.Fatalf("payload missing input: %s", out.String())
	}
}

func TestRenderEmpty(t *testing.T) {
	var out bytes.Buffer
	render(&out, nil)
	if out.String() != "No words found.\n" {
		t.Fatalf("unexpected output: %q", out.String())
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()

	htmlPath := filepath.Join(dir, "page.html")
	if err := os.WriteFile(htmlPath, []byte("<p>Der Hund</p><p>bellte</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := readInput(htmlPath)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if got != "Der Hund bellte" {
		t.Errorf("html input = %q", got)
	}

	txtPath := filepath.Join(dir, "text.txt")
	if err := os.WriteFile(txtPath, []byte("<p>bleibt</p>"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err = readInput(txtPath)
	if err != nil {
		t.Fatalf("readInput: %v", err)
	}
	if got != "<p>bleibt</p>" {
		t.Errorf("text input = %q", got)
	}

	if _, err := readInput(filepath.Join(dir, "missing.txt")); err == nil {
		t.Error("expected error for missing file")
	}
}
