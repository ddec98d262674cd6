package wortschatz

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/cognicore/wortschatz/internal/llm"
	"github.com/cognicore/wortschatz/pkg/wortschatz/config"
	"github.com/cognicore/wortschatz/pkg/wortschatz/ingest"
	"github.com/cognicore/wortschatz/pkg/wortschatz/internalerr"
	"github.com/cognicore/wortschatz/pkg/wortschatz/lexical"
	"github.com/cognicore/wortschatz/pkg/wortschatz/prompt"
	"github.com/cognicore/wortschatz/pkg/wortschatz/session"
)

// Completer is the enrichment service: it answers an instruction payload with
// raw text that should parse as a lexical entry list.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Service composes the request formatter, the enrichment service and the
// reply parser. It implements session.Enricher.
type Service struct {
	completer Completer
	builder   prompt.Builder
	parser    *lexical.Parser
	tokenizer *ingest.Tokenizer
	prefilter bool
	log       *zap.Logger
}

// Options configures a Service
type Options struct {
	Completer Completer
	Prompt    prompt.Builder
	Tokenizer *ingest.Tokenizer // defaults to the German tokenizer
	// PrefilterTokens sends the extracted tokens instead of the raw text.
	PrefilterTokens bool
	Logger          *zap.Logger
}

// New creates a Service with the given dependencies
func New(opts Options) (*Service, error) {
	if opts.Completer == nil {
		return nil, fmt.Errorf("%w: completer required", internalerr.ErrInvalidInput)
	}
	parser, err := lexical.NewParser()
	if err != nil {
		return nil, err
	}
	tok := opts.Tokenizer
	if tok == nil {
		tok = ingest.NewGermanTokenizer()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		completer: opts.Completer,
		builder:   opts.Prompt,
		parser:    parser,
		tokenizer: tok,
		prefilter: opts.PrefilterTokens,
		log:       log,
	}, nil
}

// FromConfig builds a Service whose enrichment service is the configured LLM.
func FromConfig(cfg *config.Config, log *zap.Logger) (*Service, error) {
	tok, err := cfg.Tokenizer.BuildTokenizer()
	if err != nil {
		return nil, err
	}
	client := &llm.Client{
		Provider:   llm.Provider(cfg.LLM.Provider),
		BaseURL:    cfg.LLM.BaseURL,
		APIKey:     cfg.LLM.APIKey,
		Model:      cfg.LLM.Model,
		HTTPClient: &http.Client{Timeout: cfg.LLM.Timeout},
	}
	return New(Options{
		Completer:       client,
		Tokenizer:       tok,
		PrefilterTokens: cfg.Tokenizer.Prefilter,
		Logger:          log,
	})
}

// Tokens extracts the distinct vocabulary candidates of text.
func (s *Service) Tokens(text string) []string {
	return s.tokenizer.Tokenize(text)
}

// Request returns the exact payload Enrich would send for text.
func (s *Service) Request(text string) string {
	if s.prefilter {
		text = strings.Join(s.tokenizer.Tokenize(text), " ")
	}
	return s.builder.Build(text)
}

// Enrich sends text to the enrichment service and parses the reply.
// Errors wrap lexical.ErrEmptyResponse, lexical.ErrMalformedResponse or the
// transport's own error.
func (s *Service) Enrich(ctx context.Context, text string) ([]lexical.Entry, error) {
	payload := s.Request(text)

	raw, err := s.completer.Complete(ctx, payload)
	if err != nil {
		return nil, fmt.Errorf("enrich: %w", err)
	}

	entries, err := s.parser.Parse(raw)
	if err != nil {
		if errors.Is(err, lexical.ErrMalformedResponse) {
			s.log.Debug("malformed enrichment reply", zap.String("raw", raw), zap.Error(err))
		}
		return nil, err
	}
	s.log.Debug("enrichment parsed", zap.Int("entries", len(entries)))
	return entries, nil
}

// NewSession creates a session controller backed by s.
func (s *Service) NewSession() *session.Controller {
	return session.NewController(s, s.log)
}
