package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/cognicore/wortschatz/pkg/wortschatz/internalerr"
)

// Config is the root application configuration.
type Config struct {
	LLM       LLMConfig       `yaml:"llm"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
}

// LLMConfig configures the enrichment service transport.
type LLMConfig struct {
	Provider string        `yaml:"provider" env:"WORTSCHATZ_LLM_PROVIDER" env-default:"gemini"`
	BaseURL  string        `yaml:"base_url" env:"WORTSCHATZ_LLM_BASE_URL"`
	Model    string        `yaml:"model"    env:"WORTSCHATZ_LLM_MODEL"    env-default:"gemini-3-flash-preview"`
	APIKey   string        `yaml:"api_key"  env:"WORTSCHATZ_LLM_API_KEY"`
	Timeout  time.Duration `yaml:"timeout"  env:"WORTSCHATZ_LLM_TIMEOUT"  env-default:"60s"`
}

// TokenizerConfig configures token extraction.
type TokenizerConfig struct {
	StoplistPath string `yaml:"stoplist_path" env:"WORTSCHATZ_STOPLIST_PATH"`
	Prefilter    bool   `yaml:"prefilter"     env:"WORTSCHATZ_PREFILTER" env-default:"false"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"WORTSCHATZ_SERVER_ADDR"             env-default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"WORTSCHATZ_SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"WORTSCHATZ_LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"WORTSCHATZ_LOG_FORMAT" env-default:"console"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. An empty path loads ENV + defaults only;
// a non-empty path must exist.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// Validate checks the loaded configuration. Load calls it automatically.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "gemini":
	case "openai":
		if c.LLM.BaseURL == "" {
			return fmt.Errorf("%w: llm.base_url is required for provider openai", internalerr.ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: llm.provider must be gemini or openai (got %q)", internalerr.ErrInvalidConfig, c.LLM.Provider)
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("%w: llm.model is required", internalerr.ErrInvalidConfig)
	}
	if c.LLM.Timeout <= 0 {
		return fmt.Errorf("%w: llm.timeout must be > 0 (got %s)", internalerr.ErrInvalidConfig, c.LLM.Timeout)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log.format must be json or console (got %q)", internalerr.ErrInvalidConfig, c.Log.Format)
	}
	return nil
}
