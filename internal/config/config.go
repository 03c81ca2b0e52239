// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for codey.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/brettapps789/codey/internal/model"
	"github.com/brettapps789/codey/internal/util"
)

// =============================================================================
// CONFIG STRUCTURES
// =============================================================================

// Config represents the complete codey configuration.
type Config struct {
	// Provider selects the model backend: gemini, openai or ollama.
	Provider string `toml:"provider" json:"provider" env:"CODEY_PROVIDER"`

	// Model is the model ID used for new conversations.
	Model string `toml:"model" json:"model" env:"CODEY_MODEL"`

	// SystemPrompt is sent ahead of every conversation when set.
	SystemPrompt string `toml:"system_prompt,omitempty" json:"system_prompt,omitempty" env:"CODEY_SYSTEM_PROMPT"`

	Gemini  GeminiConfig  `toml:"gemini" json:"gemini"`
	OpenAI  OpenAIConfig  `toml:"openai" json:"openai"`
	Ollama  OllamaConfig  `toml:"ollama" json:"ollama"`
	Request RequestConfig `toml:"request" json:"request"`
	UI      UIConfig      `toml:"ui" json:"ui"`
	Log     LogConfig     `toml:"log" json:"log"`
}

// GeminiConfig contains Google Gemini API settings.
type GeminiConfig struct {
	APIKey  string `toml:"api_key,omitempty" json:"api_key,omitempty" env:"GEMINI_API_KEY"`
	BaseURL string `toml:"base_url,omitempty" json:"base_url,omitempty" env:"GEMINI_BASE_URL"`
}

// OpenAIConfig contains settings for any OpenAI-compatible endpoint.
type OpenAIConfig struct {
	APIKey  string `toml:"api_key,omitempty" json:"api_key,omitempty" env:"OPENAI_API_KEY"`
	BaseURL string `toml:"base_url,omitempty" json:"base_url,omitempty" env:"OPENAI_BASE_URL"`
}

// OllamaConfig contains local Ollama settings.
type OllamaConfig struct {
	URL string `toml:"url" json:"url" env:"CODEY_OLLAMA_URL"`
}

// RequestConfig bounds remote calls.
type RequestConfig struct {
	// Timeout for one round trip. Zero means no limit beyond the transport's.
	Timeout time.Duration `toml:"timeout" json:"timeout" env:"CODEY_REQUEST_TIMEOUT"`

	// RateLimit is the maximum sends per second across all conversations.
	// Zero disables limiting.
	RateLimit float64 `toml:"rate_limit" json:"rate_limit" env:"CODEY_RATE_LIMIT"`
	Burst     int     `toml:"burst" json:"burst" env:"CODEY_RATE_BURST"`
}

// UIConfig contains terminal UI settings.
type UIConfig struct {
	// Theme is auto, dark or light. It picks the markdown style.
	Theme string `toml:"theme" json:"theme" env:"CODEY_THEME"`

	// Notifications sends a desktop notification when a reply lands in a
	// conversation that is not on screen.
	Notifications bool `toml:"notifications" json:"notifications" env:"CODEY_NOTIFICATIONS"`

	SidebarWidth int    `toml:"sidebar_width" json:"sidebar_width"`
	ExportDir    string `toml:"export_dir,omitempty" json:"export_dir,omitempty" env:"CODEY_EXPORT_DIR"`
}

// LogConfig contains diagnostic logging settings.
type LogConfig struct {
	Level  string `toml:"level" json:"level" env:"CODEY_LOG_LEVEL"`
	File   string `toml:"file,omitempty" json:"file,omitempty" env:"CODEY_LOG_FILE"`
	Format string `toml:"format" json:"format" env:"CODEY_LOG_FORMAT"`
}

// =============================================================================
// DEFAULT CONFIGURATION
// =============================================================================

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Provider: model.ProviderGemini,
		Model:    model.DefaultModel(model.ProviderGemini),
		Ollama: OllamaConfig{
			URL: "http://127.0.0.1:11434",
		},
		Request: RequestConfig{
			Burst: 1,
		},
		UI: UIConfig{
			Theme:         "auto",
			Notifications: true,
			SidebarWidth:  28,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// =============================================================================
// CONFIG PATH HELPERS
// =============================================================================

// ConfigDir returns the codey configuration directory path.
func ConfigDir() (string, error) {
	if dir := os.Getenv("CODEY_HOME"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".codey"), nil
}

// ConfigPathTOML returns the path to the TOML config file.
func ConfigPathTOML() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ConfigPathJSON returns the path to the JSON config file.
func ConfigPathJSON() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// ActivePath returns the config file Load would read, or the TOML path if
// neither file exists yet.
func ActivePath() (string, error) {
	tomlPath, err := ConfigPathTOML()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(tomlPath); err == nil {
		return tomlPath, nil
	}
	jsonPath, err := ConfigPathJSON()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(jsonPath); err == nil {
		return jsonPath, nil
	}
	return tomlPath, nil
}

// =============================================================================
// LOAD FUNCTIONS
// =============================================================================

// Load reads the config file from the config directory (TOML first, then
// JSON), applies environment overrides, fills defaults and validates.
// A missing file is not an error.
func Load() (*Config, error) {
	path, err := ActivePath()
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		cfg := Default()
		return finish(cfg)
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file. The format follows
// the extension; anything but .json is read as TOML.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	var err error
	if strings.HasSuffix(strings.ToLower(path), ".json") {
		err = LoadJSON(cfg, path)
	} else {
		err = LoadTOML(cfg, path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}

	return finish(cfg)
}

// LoadTOML decodes a TOML file over cfg.
func LoadTOML(cfg *Config, path string) error {
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	return nil
}

// LoadJSON decodes a JSON file over cfg.
func LoadJSON(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read JSON file: %w", err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode JSON file: %w", err)
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// =============================================================================
// SAVE FUNCTIONS
// =============================================================================

// Save writes cfg to the default TOML path.
func Save(cfg *Config) error {
	path, err := ConfigPathTOML()
	if err != nil {
		return err
	}
	return SaveTOML(cfg, path)
}

// SaveTOML writes cfg as TOML. The file may hold API keys, so it is created
// 0600.
func SaveTOML(cfg *Config, path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return util.AtomicWriteFile(path, buf.Bytes(), 0600)
}

// =============================================================================
// DEFAULTS AND CREDENTIALS
// =============================================================================

// SetDefaults fills any zero-value field that has a default.
func (c *Config) SetDefaults() {
	defaults := Default()

	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = defaults.Provider
	}
	if c.Model == "" {
		c.Model = model.DefaultModel(c.Provider)
	}
	if c.Ollama.URL == "" {
		c.Ollama.URL = defaults.Ollama.URL
	}
	if c.Request.Burst == 0 {
		c.Request.Burst = defaults.Request.Burst
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.SidebarWidth == 0 {
		c.UI.SidebarWidth = defaults.UI.SidebarWidth
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = defaults.Log.Format
	}
}

// Credential returns the API key for the selected provider. Ollama needs
// none and always returns "".
func (c *Config) Credential() string {
	switch c.Provider {
	case model.ProviderGemini:
		return c.Gemini.APIKey
	case model.ProviderOpenAI:
		return c.OpenAI.APIKey
	default:
		return ""
	}
}

// HasCredential reports whether the selected provider can be used.
func (c *Config) HasCredential() bool {
	if c.Provider == model.ProviderOllama {
		return true
	}
	return strings.TrimSpace(c.Credential()) != ""
}

// CredentialEnvVar names the variable that supplies the selected provider's
// key.
func (c *Config) CredentialEnvVar() string {
	switch c.Provider {
	case model.ProviderOpenAI:
		return "OPENAI_API_KEY"
	case model.ProviderGemini:
		return "GEMINI_API_KEY"
	default:
		return "API_KEY"
	}
}

// Clone creates a deep copy of the configuration. Config holds no pointers
// or slices, so a value copy is enough.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateErrors is a collection of validation errors.
type ValidateErrors []ValidationError

func (e ValidateErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate checks every field and returns all problems at once. A missing
// credential is not a validation error; see HasCredential.
func (c *Config) Validate() error {
	var errs ValidateErrors

	if !model.IsKnownProvider(c.Provider) {
		errs = append(errs, ValidationError{
			Field:   "provider",
			Message: fmt.Sprintf("unknown provider '%s', must be one of: gemini, openai, ollama", c.Provider),
		})
	}
	if strings.TrimSpace(c.Model) == "" {
		errs = append(errs, ValidationError{Field: "model", Message: "must not be empty"})
	}

	if err := validateURL(c.Ollama.URL, true); err != "" {
		errs = append(errs, ValidationError{Field: "ollama.url", Message: err})
	}
	if err := validateURL(c.OpenAI.BaseURL, false); err != "" {
		errs = append(errs, ValidationError{Field: "openai.base_url", Message: err})
	}
	if err := validateURL(c.Gemini.BaseURL, false); err != "" {
		errs = append(errs, ValidationError{Field: "gemini.base_url", Message: err})
	}

	if c.Request.Timeout < 0 {
		errs = append(errs, ValidationError{Field: "request.timeout", Message: "must not be negative"})
	}
	if c.Request.RateLimit < 0 {
		errs = append(errs, ValidationError{Field: "request.rate_limit", Message: "must not be negative"})
	}
	if c.Request.Burst < 0 {
		errs = append(errs, ValidationError{Field: "request.burst", Message: "must not be negative"})
	}

	switch strings.ToLower(c.UI.Theme) {
	case "auto", "dark", "light":
	default:
		errs = append(errs, ValidationError{
			Field:   "ui.theme",
			Message: fmt.Sprintf("invalid theme '%s', must be one of: auto, dark, light", c.UI.Theme),
		})
	}
	if c.UI.SidebarWidth < 16 || c.UI.SidebarWidth > 60 {
		errs = append(errs, ValidationError{
			Field:   "ui.sidebar_width",
			Message: fmt.Sprintf("must be between 16 and 60, got %d", c.UI.SidebarWidth),
		})
	}

	if _, err := zerolog.ParseLevel(strings.ToLower(c.Log.Level)); err != nil {
		errs = append(errs, ValidationError{
			Field:   "log.level",
			Message: fmt.Sprintf("invalid level '%s'", c.Log.Level),
		})
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		errs = append(errs, ValidationError{
			Field:   "log.format",
			Message: fmt.Sprintf("invalid format '%s', must be one of: json, console", c.Log.Format),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// validateURL returns a message describing what is wrong with raw, or "".
func validateURL(raw string, required bool) string {
	if raw == "" {
		if required {
			return "must not be empty"
		}
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Sprintf("invalid URL: %v", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Sprintf("URL scheme must be http or https, got '%s'", u.Scheme)
	}
	if u.Host == "" {
		return "URL must include a host"
	}
	return ""
}
