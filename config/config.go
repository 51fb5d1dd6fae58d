// Package config loads run configuration from the environment.
//
// .env files are loaded before environment lookups, in priority order:
//
//  1. ENV_FILE (if set, only this file is loaded)
//  2. .env.local
//  3. .env
//
// Variables already present in the process environment always win. Fields
// are bound to variables with the `env` struct tag.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"

	PromptModeLLM           = "llm"
	PromptModeCombinatorial = "combinatorial"

	DefaultGroqBaseURL    = "https://api.groq.com/openai/v1"
	DefaultGroqModel      = "llama-3.3-70b-versatile"
	DefaultOpenAIModel    = "gpt-4o-mini"
	DefaultMaxTokens      = 1024
	DefaultTemperature    = 0.7
	DefaultImageCount     = 3
	DefaultImageBaseURL   = "https://image.pollinations.ai"
	DefaultLinkedInAPIURL = "https://api.linkedin.com/v2"

	MinTemperature = 0.7
	MaxTemperature = 0.8
)

// Config is everything a run needs.
type Config struct {
	LLM      LLMConfig
	Images   ImageConfig
	LinkedIn LinkedInConfig
	Logging  LoggingConfig

	// ContentFile optionally points to a YAML file overriding Content.
	ContentFile string `env:"CONTENT_FILE"`
	Content     Content
}

type LLMConfig struct {
	Provider    string  `env:"LLM_PROVIDER"`
	APIKey      string  `env:"GROQ_API_KEY"`
	BaseURL     string  `env:"LLM_BASE_URL"`
	Model       string  `env:"LLM_MODEL"`
	MaxTokens   int     `env:"LLM_MAX_TOKENS"`
	Temperature float64 `env:"LLM_TEMPERATURE"`
}

type ImageConfig struct {
	Enabled    bool   `env:"IMAGES_ENABLED"`
	Count      int    `env:"IMAGE_COUNT"`
	PromptMode string `env:"IMAGE_PROMPT_MODE"`
	BaseURL    string `env:"IMAGE_BASE_URL"`
	// Dir is where rendered images are written for the duration of a run.
	Dir string `env:"IMAGE_DIR"`
}

// Active reports whether the image stages should run at all.
func (c ImageConfig) Active() bool {
	return c.Enabled && c.Count > 0
}

type LinkedInConfig struct {
	AccessToken string `env:"LINKEDIN_ACCESS_TOKEN"`
	PersonID    string `env:"LINKEDIN_PERSON_ID"`
	APIURL      string `env:"LINKEDIN_API_URL"`
}

// AuthorURN is the member URN posts and uploads are owned by.
func (c LinkedInConfig) AuthorURN() string {
	return "urn:li:person:" + c.PersonID
}

type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL"`
	Format string `env:"LOG_FORMAT"`
}

// Content holds the editorial inputs that can be overridden from CONTENT_FILE.
type Content struct {
	Topics   []string `yaml:"topics"`
	Persona  string   `yaml:"persona"`
	Audience string   `yaml:"audience"`
}

// ValidationError names a configuration field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Defaults returns a Config with every optional field populated.
func Defaults() Config {
	return Config{
		LLM: LLMConfig{
			Provider:    ProviderGroq,
			MaxTokens:   DefaultMaxTokens,
			Temperature: DefaultTemperature,
		},
		Images: ImageConfig{
			Enabled:    true,
			Count:      DefaultImageCount,
			PromptMode: PromptModeLLM,
			BaseURL:    DefaultImageBaseURL,
			Dir:        ".",
		},
		LinkedIn: LinkedInConfig{APIURL: DefaultLinkedInAPIURL},
		Logging:  LoggingConfig{Level: "info", Format: "console"},
	}
}

// Load reads .env files and the process environment, merges CONTENT_FILE and
// validates the result. It performs no network activity.
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("load environment files: %w", err)
	}

	cfg := Defaults()
	if err := applyEnv(reflect.ValueOf(&cfg).Elem()); err != nil {
		return nil, err
	}
	applyProviderDefaults(&cfg.LLM)

	if cfg.ContentFile != "" {
		content, err := LoadContent(cfg.ContentFile)
		if err != nil {
			return nil, err
		}
		cfg.Content = content
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadContent parses a YAML content file.
func LoadContent(path string) (Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Content{}, fmt.Errorf("read content file %s: %w", path, err)
	}
	var content Content
	if err := yaml.Unmarshal(data, &content); err != nil {
		return Content{}, fmt.Errorf("parse content file %s: %w", path, err)
	}
	return content, nil
}

// Validate reports every missing credential and out-of-range setting at once.
func (c *Config) Validate() error {
	var errs []error
	required := []struct{ field, value string }{
		{"GROQ_API_KEY", c.LLM.APIKey},
		{"LINKEDIN_ACCESS_TOKEN", c.LinkedIn.AccessToken},
		{"LINKEDIN_PERSON_ID", c.LinkedIn.PersonID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, &ValidationError{Field: r.field, Message: "is required"})
		}
	}

	switch c.LLM.Provider {
	case ProviderGroq, ProviderOpenAI, ProviderMock:
	default:
		errs = append(errs, &ValidationError{Field: "LLM_PROVIDER", Message: "must be one of: groq, openai, mock"})
	}
	if c.LLM.Temperature < MinTemperature || c.LLM.Temperature > MaxTemperature {
		errs = append(errs, &ValidationError{
			Field:   "LLM_TEMPERATURE",
			Message: fmt.Sprintf("must be between %.1f and %.1f", MinTemperature, MaxTemperature),
		})
	}
	if c.LLM.MaxTokens <= 0 {
		errs = append(errs, &ValidationError{Field: "LLM_MAX_TOKENS", Message: "must be positive"})
	}
	if c.Images.Count < 0 {
		errs = append(errs, &ValidationError{Field: "IMAGE_COUNT", Message: "must not be negative"})
	}
	switch c.Images.PromptMode {
	case PromptModeLLM, PromptModeCombinatorial:
	default:
		errs = append(errs, &ValidationError{Field: "IMAGE_PROMPT_MODE", Message: "must be one of: llm, combinatorial"})
	}
	return errors.Join(errs...)
}

func applyProviderDefaults(c *LLMConfig) {
	if c.Model == "" {
		switch c.Provider {
		case ProviderOpenAI:
			c.Model = DefaultOpenAIModel
		default:
			c.Model = DefaultGroqModel
		}
	}
	if c.BaseURL == "" && c.Provider == ProviderGroq {
		c.BaseURL = DefaultGroqBaseURL
	}
}

func loadEnvFiles() error {
	if envFile := os.Getenv("ENV_FILE"); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}
	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func applyEnv(v reflect.Value) error {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() {
			continue
		}
		if field.Kind() == reflect.Struct {
			if err := applyEnv(field); err != nil {
				return err
			}
			continue
		}

		name := t.Field(i).Tag.Get("env")
		if name == "" {
			continue
		}
		val, ok := os.LookupEnv(name)
		if !ok || strings.TrimSpace(val) == "" {
			continue
		}
		if err := setField(field, strings.TrimSpace(val)); err != nil {
			return &ValidationError{Field: name, Message: err.Error()}
		}
	}
	return nil
}

func setField(field reflect.Value, val string) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(val)
	case reflect.Int:
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid integer %q", val)
		}
		field.SetInt(int64(n))
	case reflect.Float64:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return fmt.Errorf("invalid number %q", val)
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("invalid boolean %q", val)
		}
		field.SetBool(b)
	}
	return nil
}
