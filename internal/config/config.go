// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/jonathan/review-writer/internal/imaging"
	"github.com/jonathan/review-writer/internal/llm"
	"gopkg.in/yaml.v3"
)

// DefaultPort is the HTTP port of the API server.
const DefaultPort = 8080

// Config holds the service configuration. It is read from a JSON or YAML
// file, then overlaid by environment variables.
type Config struct {
	// Text generation
	LLMProvider     string `json:"llm_provider,omitempty" yaml:"llm_provider,omitempty"`         // gemini or openai
	DraftModel      string `json:"draft_model,omitempty" yaml:"draft_model,omitempty"`           // Overrides the drafting model
	SpellcheckModel string `json:"spellcheck_model,omitempty" yaml:"spellcheck_model,omitempty"` // Overrides the spellcheck model
	GeminiAPIKey    string `json:"gemini_api_key,omitempty" yaml:"gemini_api_key,omitempty"`
	OpenAIAPIKey    string `json:"openai_api_key,omitempty" yaml:"openai_api_key,omitempty"`
	OpenAIBaseURL   string `json:"openai_base_url,omitempty" yaml:"openai_base_url,omitempty"` // OpenAI-compatible gateway

	// Image rendering
	ImageModel       string `json:"image_model,omitempty" yaml:"image_model,omitempty"`
	ImageAPIKey      string `json:"image_api_key,omitempty" yaml:"image_api_key,omitempty"` // Falls back to openai_api_key
	ImageBaseURL     string `json:"image_base_url,omitempty" yaml:"image_base_url,omitempty"`
	ImageConcurrency int    `json:"image_concurrency,omitempty" yaml:"image_concurrency,omitempty"`

	// Behavior
	UseBrowser bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"` // Headless browser fallback for script-rendered storefronts
	Port       int  `json:"port,omitempty" yaml:"port,omitempty"`
	Verbose    bool `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LLMProvider:      string(llm.ProviderGemini),
		ImageModel:       imaging.DefaultModel,
		ImageConcurrency: imaging.DefaultConcurrency,
		Port:             DefaultPort,
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overlays non-empty environment variables onto the config.
func (c *Config) ApplyEnv() error {
	strVars := map[string]*string{
		"LLM_PROVIDER":     &c.LLMProvider,
		"DRAFT_MODEL":      &c.DraftModel,
		"SPELLCHECK_MODEL": &c.SpellcheckModel,
		"GEMINI_API_KEY":   &c.GeminiAPIKey,
		"OPENAI_API_KEY":   &c.OpenAIAPIKey,
		"OPENAI_BASE_URL":  &c.OpenAIBaseURL,
		"IMAGE_MODEL":      &c.ImageModel,
		"IMAGE_API_KEY":    &c.ImageAPIKey,
		"IMAGE_BASE_URL":   &c.ImageBaseURL,
	}
	for name, field := range strVars {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: PORT must be a number, got %q", v)
		}
		c.Port = port
	}
	if v := os.Getenv("USE_BROWSER"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: USE_BROWSER must be a boolean, got %q", v)
		}
		c.UseBrowser = b
	}
	return nil
}

// Validate checks that the configuration has valid values.
// Missing image credentials are not an error; rendering is skipped instead.
func (c *Config) Validate() error {
	switch llm.Provider(c.LLMProvider) {
	case "", llm.ProviderGemini, llm.ProviderOpenAI:
	default:
		return fmt.Errorf("config error: unknown llm_provider %q (want gemini or openai)", c.LLMProvider)
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.ImageConcurrency < 0 {
		return fmt.Errorf("config error: 'image_concurrency' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	fill := func(field *string, def string) {
		if *field == "" {
			*field = def
		}
	}
	fill(&result.LLMProvider, defaults.LLMProvider)
	fill(&result.DraftModel, defaults.DraftModel)
	fill(&result.SpellcheckModel, defaults.SpellcheckModel)
	fill(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	fill(&result.OpenAIAPIKey, defaults.OpenAIAPIKey)
	fill(&result.OpenAIBaseURL, defaults.OpenAIBaseURL)
	fill(&result.ImageModel, defaults.ImageModel)
	fill(&result.ImageAPIKey, defaults.ImageAPIKey)
	fill(&result.ImageBaseURL, defaults.ImageBaseURL)

	if result.ImageConcurrency == 0 {
		result.ImageConcurrency = defaults.ImageConcurrency
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Provider returns the configured text provider.
func (c *Config) Provider() llm.Provider {
	if c.LLMProvider == "" {
		return llm.ProviderGemini
	}
	return llm.Provider(c.LLMProvider)
}

// LLMConfig builds the model configuration for the text provider.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.ConfigForProvider(c.Provider())
	if c.Provider() == llm.ProviderOpenAI {
		cfg.BaseURL = c.OpenAIBaseURL
	}
	if c.DraftModel != "" {
		cfg = cfg.WithModel(llm.TierAdvanced, c.DraftModel)
	}
	if c.SpellcheckModel != "" {
		cfg = cfg.WithModel(llm.TierLite, c.SpellcheckModel)
	}
	return cfg
}

// LLMAPIKey returns the key of the configured text provider.
func (c *Config) LLMAPIKey() string {
	if c.Provider() == llm.ProviderOpenAI {
		return c.OpenAIAPIKey
	}
	return c.GeminiAPIKey
}

// ImageKey returns the image service key, falling back to the OpenAI key.
func (c *Config) ImageKey() string {
	if c.ImageAPIKey != "" {
		return c.ImageAPIKey
	}
	return c.OpenAIAPIKey
}

// ImagesEnabled reports whether image credentials are available.
func (c *Config) ImagesEnabled() bool {
	return c.ImageKey() != ""
}
