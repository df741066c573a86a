// Package config loads and saves the application configuration from
// ~/.lettersmith/config.yaml. Values not present in the file fall back to
// defaults, so a missing config is a valid first-run state.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/lettersmith/lettersmith/internal/credential"
)

const fileName = "config.yaml"

// Config is the on-disk configuration.
type Config struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`

	// API keys may also arrive via environment; file values win.
	OpenAIAPIKey  string `yaml:"openai_api_key,omitempty"`
	OpenAIBaseURL string `yaml:"openai_base_url,omitempty"`
	GeminiAPIKey  string `yaml:"gemini_api_key,omitempty"`

	// ProfileDir holds the user-maintained skillset and criteria files.
	ProfileDir string `yaml:"profile_dir"`
	OutputDir  string `yaml:"output_dir"`

	MaxSkills int `yaml:"max_skills"`
	MaxStyles int `yaml:"max_styles"`

	StartingSoonDays      int `yaml:"starting_soon_days"`
	RecentlyCompletedDays int `yaml:"recently_completed_days"`
}

func Default() Config {
	home, _ := os.UserHomeDir()
	return Config{
		Provider:              "openai",
		Model:                 "",
		ProfileDir:            filepath.Join(home, ".lettersmith", "profile"),
		OutputDir:             filepath.Join(home, ".lettersmith", "letters"),
		MaxSkills:             8,
		MaxStyles:             5,
		StartingSoonDays:      7,
		RecentlyCompletedDays: 30,
	}
}

// Dir returns the application data directory.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".lettersmith")
}

// Load reads the config file from dir, layering it over defaults. A missing
// file returns defaults without error.
func Load(dir string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filepath.Join(dir, fileName)) // #nosec G304
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.decryptKeys(); err != nil {
		return cfg, err
	}
	cfg.applyEnv()
	return cfg, nil
}

// Save writes the config to dir, creating it if needed. API keys are
// encrypted at rest.
func (c Config) Save(dir string) error {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := c.encryptKeys(); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, fileName), data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) decryptKeys() error {
	mgr, err := credential.NewManager()
	if err != nil {
		return fmt.Errorf("failed to init credential manager: %w", err)
	}
	if c.OpenAIAPIKey, err = mgr.Decrypt(c.OpenAIAPIKey); err != nil {
		return fmt.Errorf("failed to decrypt openai key: %w", err)
	}
	if c.GeminiAPIKey, err = mgr.Decrypt(c.GeminiAPIKey); err != nil {
		return fmt.Errorf("failed to decrypt gemini key: %w", err)
	}
	return nil
}

func (c *Config) encryptKeys() error {
	mgr, err := credential.NewManager()
	if err != nil {
		return fmt.Errorf("failed to init credential manager: %w", err)
	}
	if !credential.IsEncrypted(c.OpenAIAPIKey) {
		if c.OpenAIAPIKey, err = mgr.Encrypt(c.OpenAIAPIKey); err != nil {
			return fmt.Errorf("failed to encrypt openai key: %w", err)
		}
	}
	if !credential.IsEncrypted(c.GeminiAPIKey) {
		if c.GeminiAPIKey, err = mgr.Encrypt(c.GeminiAPIKey); err != nil {
			return fmt.Errorf("failed to encrypt gemini key: %w", err)
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	if c.OpenAIAPIKey == "" {
		c.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
}

// Set assigns a value by key name as used in the YAML file. Unknown keys
// are an error so typos surface immediately.
func (c *Config) Set(key, value string) error {
	switch key {
	case "provider":
		c.Provider = value
	case "model":
		c.Model = value
	case "openai_api_key":
		c.OpenAIAPIKey = value
	case "openai_base_url":
		c.OpenAIBaseURL = value
	case "gemini_api_key":
		c.GeminiAPIKey = value
	case "profile_dir":
		c.ProfileDir = value
	case "output_dir":
		c.OutputDir = value
	case "max_skills", "max_styles", "starting_soon_days", "recently_completed_days":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("%s must be a non-negative integer, got %q", key, value)
		}
		switch key {
		case "max_skills":
			c.MaxSkills = n
		case "max_styles":
			c.MaxStyles = n
		case "starting_soon_days":
			c.StartingSoonDays = n
		case "recently_completed_days":
			c.RecentlyCompletedDays = n
		}
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Get returns a value by key name, or an error for unknown keys.
func (c Config) Get(key string) (string, error) {
	switch key {
	case "provider":
		return c.Provider, nil
	case "model":
		return c.Model, nil
	case "openai_api_key":
		return credential.MaskSecret(c.OpenAIAPIKey), nil
	case "openai_base_url":
		return c.OpenAIBaseURL, nil
	case "gemini_api_key":
		return credential.MaskSecret(c.GeminiAPIKey), nil
	case "profile_dir":
		return c.ProfileDir, nil
	case "output_dir":
		return c.OutputDir, nil
	case "max_skills":
		return strconv.Itoa(c.MaxSkills), nil
	case "max_styles":
		return strconv.Itoa(c.MaxStyles), nil
	case "starting_soon_days":
		return strconv.Itoa(c.StartingSoonDays), nil
	case "recently_completed_days":
		return strconv.Itoa(c.RecentlyCompletedDays), nil
	}
	return "", fmt.Errorf("unknown config key: %s", key)
}
