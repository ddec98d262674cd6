package lexical

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonschema"
)

// Sentinel errors for enrichment replies
var (
	ErrEmptyResponse     = errors.New("enrichment returned no text")
	ErrMalformedResponse = errors.New("enrichment reply is not a valid entry list")
)

// SchemaJSON is the JSON Schema every enrichment reply must satisfy.
const SchemaJSON = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["de"],
    "properties": {
      "de": {"type": "string", "minLength": 1},
      "de_plural": {"type": ["string", "null"]},
      "de_praterium": {"type": ["string", "null"]},
      "de_partizip_2": {"type": ["string", "null"]},
      "en": {"type": ["string", "null"]},
      "ru": {"type": ["string", "null"]}
    }
  }
}`

// Parser validates and decodes enrichment replies
type Parser struct {
	schema *jsonschema.Schema
}

// NewParser compiles the entry schema.
func NewParser() (*Parser, error) {
	schema, err := jsonschema.NewCompiler().Compile([]byte(SchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile entry schema: %w", err)
	}
	return &Parser{schema: schema}, nil
}

var defaultParser = mustParser()

func mustParser() *Parser {
	p, err := NewParser()
	if err != nil {
		panic(err)
	}
	return p
}

// Parse decodes raw with the package-level parser.
func Parse(raw string) ([]Entry, error) {
	return defaultParser.Parse(raw)
}

// Parse turns an enrichment reply into entries.
//
// Blank replies yield ErrEmptyResponse. Replies that are not JSON, or JSON that
// does not match SchemaJSON, yield an error wrapping ErrMalformedResponse. One
// surrounding Markdown code fence is tolerated; any other prose is not.
// Duplicate canonical forms are collapsed to their first occurrence.
func (p *Parser) Parse(raw string) ([]Entry, error) {
	body := stripFence(strings.TrimSpace(raw))
	if body == "" {
		return nil, ErrEmptyResponse
	}

	var doc any
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result := p.schema.Validate(doc); !result.IsValid() {
		return nil, fmt.Errorf("%w: reply does not match entry schema", ErrMalformedResponse)
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return Dedup(entries), nil
}

// stripFence removes a single ```lang ... ``` wrapper.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.IndexByte(s, '\n')
	if nl < 0 {
		return s
	}
	inner := strings.TrimSpace(s[nl+1:])
	if !strings.HasSuffix(inner, "```") {
		return s
	}
	return strings.TrimSpace(strings.TrimSuffix(inner, "```"))
}
