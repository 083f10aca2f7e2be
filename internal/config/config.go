// internal/config/config.go
package config

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"

	"github.com/dangerclosesec/clausecheck/clauses/parser"
	"github.com/dangerclosesec/clausecheck/internal/domain"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

type Config struct {
	Input struct {
		Dir string `yaml:"dir" validate:"required"`
		// Pattern is a glob relative to Dir. When empty the numbered files
		// 1<ext>, 2<ext>, ... are read until the first one is missing.
		Pattern   string `yaml:"pattern"`
		Extension string `yaml:"extension" validate:"required,startswith=."`
	} `yaml:"input"`
	Parser struct {
		Grammar   string           `yaml:"grammar" validate:"oneof=standard flat"`
		Recover   bool             `yaml:"recover"`
		Operators []OperatorConfig `yaml:"operators" validate:"dive"`
	} `yaml:"parser"`
	Output struct {
		Path   string `yaml:"path"`
		Format string `yaml:"format" validate:"oneof=text json"`
	} `yaml:"output"`
	Log struct {
		Level  string `yaml:"level" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" validate:"oneof=text json"`
	} `yaml:"log"`
	Workers int `yaml:"workers" validate:"min=1,max=256"`
}

// OperatorConfig declares an extra operator for the grammar
type OperatorConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Type     string `yaml:"type" validate:"oneof=xfx xfy yfx fy fx"`
	Priority int    `yaml:"priority" validate:"min=1,max=999"`
}

// Load builds the configuration from CLAUSECHECK_* environment variables
func Load() *Config {
	cfg := &Config{}

	// Input configuration
	cfg.Input.Dir = getEnv("CLAUSECHECK_DIR", ".")
	cfg.Input.Pattern = getEnv("CLAUSECHECK_PATTERN", "")
	cfg.Input.Extension = getEnv("CLAUSECHECK_EXT", ".txt")

	// Parser configuration
	cfg.Parser.Grammar = getEnv("CLAUSECHECK_GRAMMAR", "standard")
	cfg.Parser.Recover = getEnvBool("CLAUSECHECK_RECOVER", false)

	// Output configuration
	cfg.Output.Path = getEnv("CLAUSECHECK_OUTPUT", "")
	cfg.Output.Format = getEnv("CLAUSECHECK_FORMAT", "text")

	// Logging configuration
	cfg.Log.Level = getEnv("CLAUSECHECK_LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("CLAUSECHECK_LOG_FORMAT", "text")

	cfg.Workers = getEnvInt("CLAUSECHECK_WORKERS", runtime.NumCPU())

	return cfg
}

// LoadFile loads the environment defaults and overlays a YAML file
func LoadFile(path string) (*Config, error) {
	cfg := Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrInvalidConfig, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the struct tags
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	return nil
}

// Grammar builds the operator table named by the configuration, including
// any extra operators
func (c *Config) Grammar() (*parser.Grammar, error) {
	g, err := parser.GrammarByName(c.Parser.Grammar)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	for _, op := range c.Parser.Operators {
		err := g.Define(parser.Operator{
			Name:     op.Name,
			Type:     parser.OperatorType(op.Type),
			Priority: op.Priority,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
		}
	}
	return g, nil
}

// ParserOptions turns the parser section into parser options
func (c *Config) ParserOptions() ([]parser.Option, error) {
	g, err := c.Grammar()
	if err != nil {
		return nil, err
	}
	return []parser.Option{
		parser.WithGrammar(g),
		parser.WithRecovery(c.Parser.Recover),
	}, nil
}

// LogLevel maps the configured level name onto slog
func (c *Config) LogLevel() slog.Level {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
