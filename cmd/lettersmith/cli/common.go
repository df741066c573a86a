package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lettersmith/lettersmith/internal/config"
	"github.com/lettersmith/lettersmith/internal/memory"
	"github.com/lettersmith/lettersmith/internal/observe"
	"github.com/lettersmith/lettersmith/internal/provider"
	"github.com/lettersmith/lettersmith/internal/records"
	"github.com/lettersmith/lettersmith/internal/temporal"
)

func getObserver() *observe.Observer {
	if ciMode {
		return observe.NewJSON(os.Stdout, verbose)
	}
	return observe.New(os.Stdout, verbose)
}

func getConfig() config.Config {
	cfg, err := config.Load(config.Dir())
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if providerType != "" {
		cfg.Provider = providerType
	}
	if modelName != "" {
		cfg.Model = modelName
	}
	return cfg
}

func getMemory() *memory.Store {
	store, err := memory.Load(filepath.Join(config.Dir(), "memory.json"))
	if err != nil {
		fmt.Printf("Failed to load memory: %v\n", err)
		os.Exit(1)
	}
	return store
}

func getRecords() *records.Log {
	log, err := records.Open(filepath.Join(config.Dir(), "records.db"))
	if err != nil {
		fmt.Printf("Failed to open records: %v\n", err)
		os.Exit(1)
	}
	return log
}

func getTemporal(store *memory.Store, cfg config.Config) *temporal.Manager {
	tm := temporal.NewManager(store)
	if cfg.StartingSoonDays > 0 {
		tm.StartingSoonWindow = time.Duration(cfg.StartingSoonDays) * 24 * time.Hour
	}
	if cfg.RecentlyCompletedDays > 0 {
		tm.RecentlyCompletedWindow = time.Duration(cfg.RecentlyCompletedDays) * 24 * time.Hour
	}
	return tm
}

func getProvider(cfg config.Config) (provider.Provider, error) {
	switch cfg.Provider {
	case "openai":
		return provider.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.Model)
	case "ollama":
		return provider.NewOllamaProvider(cfg.Model)
	case "gemini":
		return provider.NewGeminiProvider(cfg.GeminiAPIKey, cfg.Model)
	case "stub":
		// Deterministic provider for end-to-end tests.
		return provider.NewStubProvider(), nil
	}
	return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
}

func readFileArg(path string) string {
	data, err := os.ReadFile(path) // #nosec G304
	if err != nil {
		fmt.Printf("Failed to read %s: %v\n", path, err)
		os.Exit(1)
	}
	return string(data)
}
