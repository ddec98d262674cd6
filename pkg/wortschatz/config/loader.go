package config

import (
	"fmt"

	"github.com/cognicore/wortschatz/pkg/wortschatz/ingest"
)

// BuildTokenizer constructs the tokenizer described by the configuration.
// Without a stoplist path the German article/glyph stoplist is used; with one,
// the file's terms replace it.
func (c TokenizerConfig) BuildTokenizer() (*ingest.Tokenizer, error) {
	if c.StoplistPath == "" {
		return ingest.NewGermanTokenizer(), nil
	}
	stoplist, err := LoadStoplist(c.StoplistPath)
	if err != nil {
		return nil, fmt.Errorf("load stoplist: %w", err)
	}
	return ingest.NewTokenizer(stoplist.Terms), nil
}
