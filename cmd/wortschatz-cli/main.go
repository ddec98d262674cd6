package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"github.com/cognicore/wortschatz/internal/logging"
	"github.com/cognicore/wortschatz/pkg/wortschatz"
	"github.com/cognicore/wortschatz/pkg/wortschatz/config"
	"github.com/cognicore/wortschatz/pkg/wortschatz/ingest"
	"github.com/cognicore/wortschatz/pkg/wortschatz/lexical"
	"github.com/cognicore/wortschatz/pkg/wortschatz/session"
)

func main() {
	var (
		configPath  = flag.String("config", "", "Config YAML (optional; env vars and defaults otherwise)")
		text        = flag.String("text", "", "One-shot text (non-interactive mode)")
		file        = flag.String("file", "", "Read text from a file; .html/.htm files are reduced to visible text")
		tokensOnly  = flag.Bool("tokens", false, "Print extracted tokens instead of enriching")
		showRequest = flag.Bool("request", false, "Print the enrichment request payload instead of sending it")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("load .env: %v", err)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	logger, err := logging.New(cfg.Log)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	svc, err := wortschatz.FromConfig(cfg, logger)
	if err != nil {
		log.Fatalf("build service: %v", err)
	}

	mode := modeEnrich
	switch {
	case *tokensOnly:
		mode = modeTokens
	case *showRequest:
		mode = modeRequest
	}

	ctx := context.Background()
	sess := svc.NewSession()

	// One-shot mode
	if *text != "" || *file != "" {
		input := *text
		if *file != "" {
			input, err = readInput(*file)
			if err != nil {
				log.Fatal(err)
			}
		}
		if err := process(ctx, os.Stdout, svc, sess, mode, input); err != nil {
			os.Exit(1)
		}
		return
	}

	// Interactive mode
	fmt.Println("===========================================")
	fmt.Println("  Wortschatz")
	fmt.Println("  German vocabulary with forms and translations")
	fmt.Println("===========================================")
	fmt.Println()
	fmt.Println("Paste or write your text, one submission per line (Ctrl+D to exit):")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		_ = process(ctx, os.Stdout, svc, sess, mode, line)
	}

	fmt.Println("\nTschüss!")
}

type outputMode int

const (
	modeEnrich outputMode = iota
	modeTokens
	modeRequest
)

// process handles one submission and returns a non-nil error when the
// session ended in failure.
func process(ctx context.Context, w io.Writer, svc *wortschatz.Service, sess *session.Controller, mode outputMode, input string) error {
	switch mode {
	case modeTokens:
		for _, tok := range svc.Tokens(input) {
			fmt.Fprintln(w, tok)
		}
		return nil
	case modeRequest:
		fmt.Fprintln(w, svc.Request(input))
		return nil
	}

	sess.Submit(ctx, input)
	sess.Wait()

	if msg := sess.Error(); msg != "" {
		fmt.Fprintln(w, "Error:", msg)
		return errors.New(msg)
	}
	render(w, sess.Entries())
	return nil
}

func render(w io.Writer, entries []lexical.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No words found.")
		return
	}
	for _, e := range entries {
		fmt.Fprintln(w, e.Headline())
		if e.Ru != "" {
			fmt.Fprintln(w, "  ru:", e.Ru)
		}
		if e.En != "" {
			fmt.Fprintln(w, "  en:", e.En)
		}
	}
}

func readInput(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ingest.PlainText(string(data))
	default:
		return string(data), nil
	}
}
