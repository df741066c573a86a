package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lettersmith/lettersmith/internal/credential"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	tmpDir, _ := os.MkdirTemp("", "config-test-*")
	defer os.RemoveAll(tmpDir)

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Provider != "openai" {
		t.Errorf("Expected default provider openai, got %s", cfg.Provider)
	}
	if cfg.MaxSkills != 8 || cfg.MaxStyles != 5 {
		t.Errorf("Expected default limits 8/5, got %d/%d", cfg.MaxSkills, cfg.MaxStyles)
	}
	if cfg.StartingSoonDays != 7 || cfg.RecentlyCompletedDays != 30 {
		t.Errorf("Expected default windows 7/30, got %d/%d", cfg.StartingSoonDays, cfg.RecentlyCompletedDays)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tmpDir, _ := os.MkdirTemp("", "config-test-*")
	defer os.RemoveAll(tmpDir)

	cfg := Default()
	cfg.Provider = "ollama"
	cfg.Model = "llama3.2"
	cfg.MaxSkills = 12
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Provider != "ollama" || loaded.Model != "llama3.2" || loaded.MaxSkills != 12 {
		t.Errorf("Round trip lost values: %+v", loaded)
	}
}

func TestSaveEncryptsKeysAtRest(t *testing.T) {
	tmpDir, _ := os.MkdirTemp("", "config-test-*")
	defer os.RemoveAll(tmpDir)

	cfg := Default()
	cfg.OpenAIAPIKey = "sk-plaintext-secret-value"
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(tmpDir, "config.yaml"))
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}
	if strings.Contains(string(raw), "sk-plaintext-secret-value") {
		t.Error("API key stored in plaintext")
	}
	if !strings.Contains(string(raw), credential.EncryptedPrefix) {
		t.Errorf("Expected encrypted key marker in file:\n%s", raw)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.OpenAIAPIKey != "sk-plaintext-secret-value" {
		t.Errorf("Expected decrypted key after load, got %q", loaded.OpenAIAPIKey)
	}
}

func TestSetAndGet(t *testing.T) {
	cfg := Default()

	if err := cfg.Set("provider", "gemini"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cfg.Provider != "gemini" {
		t.Errorf("Expected gemini, got %s", cfg.Provider)
	}

	if err := cfg.Set("max_skills", "10"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if got, _ := cfg.Get("max_skills"); got != "10" {
		t.Errorf("Expected 10, got %s", got)
	}

	if err := cfg.Set("max_skills", "nope"); err == nil {
		t.Error("Expected error for non-integer value")
	}
	if err := cfg.Set("bogus_key", "x"); err == nil {
		t.Error("Expected error for unknown key")
	}
	if _, err := cfg.Get("bogus_key"); err == nil {
		t.Error("Expected error for unknown key")
	}
}

func TestGetMasksSecrets(t *testing.T) {
	cfg := Default()
	cfg.OpenAIAPIKey = "sk-verysecretkey12345"

	got, err := cfg.Get("openai_api_key")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got == cfg.OpenAIAPIKey {
		t.Error("API key must be masked")
	}
	if got == "" {
		t.Error("Masked key must still indicate presence")
	}
}
