package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
)

// Config represents the tagsum configuration.
type Config struct {
	Provider      string  `json:"provider"`
	Model         string  `json:"model"`
	FallbackModel string  `json:"fallbackModel,omitempty"`
	MaxTokens     int     `json:"maxTokens"`
	Temperature   float64 `json:"temperature"`
	ContextBudget int     `json:"contextBudget"`
	RepoBase      string  `json:"repoBase"`
	OutDir        string  `json:"outDir"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:      "openai",
		Model:         "gpt-4-turbo",
		FallbackModel: "gpt-3.5-turbo",
		MaxTokens:     4000,
		Temperature:   0.3,
		ContextBudget: 115000,
		RepoBase:      "./repositories",
		OutDir:        ".",
	}
}

// ConfigDir returns the platform-appropriate config directory for tagsum.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "tagsum"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "tagsum"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "tagsum"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "tagsum"), nil
	default:
		return filepath.Join(home, ".config", "tagsum"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadDotenv loads a .env file from the working directory into the process
// environment, so API keys can live next to the tool instead of the shell
// profile. A missing file is not an error.
func LoadDotenv() {
	_ = godotenv.Load()
}

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	mergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

func mergeFile(dst *Config, src Config) {
	if src.Provider != "" {
		dst.Provider = src.Provider
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.FallbackModel != "" {
		dst.FallbackModel = src.FallbackModel
	}
	if src.MaxTokens > 0 {
		dst.MaxTokens = src.MaxTokens
	}
	if src.Temperature > 0 {
		dst.Temperature = src.Temperature
	}
	if src.ContextBudget > 0 {
		dst.ContextBudget = src.ContextBudget
	}
	if src.RepoBase != "" {
		dst.RepoBase = src.RepoBase
	}
	if src.OutDir != "" {
		dst.OutDir = src.OutDir
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("TAGSUM_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	if v := os.Getenv("TAGSUM_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("TAGSUM_REPO_BASE"); v != "" {
		cfg.RepoBase = v
	}
	if v := os.Getenv("TAGSUM_OUT_DIR"); v != "" {
		cfg.OutDir = v
	}
	if v := os.Getenv("TAGSUM_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["repoBase"]; ok && v != "" {
		cfg.RepoBase = v
	}
	if v, ok := overrides["outDir"]; ok && v != "" {
		cfg.OutDir = v
	}
	if v, ok := overrides["maxTokens"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxTokens = n
		}
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "provider":
		cfg.Provider = value
	case "model":
		cfg.Model = value
	case "fallbackModel":
		cfg.FallbackModel = value
	case "repoBase":
		cfg.RepoBase = value
	case "outDir":
		cfg.OutDir = value
	case "maxTokens":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxTokens must be an integer: %w", err)
		}
		cfg.MaxTokens = n
	case "contextBudget":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("contextBudget must be an integer: %w", err)
		}
		cfg.ContextBudget = n
	case "temperature":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("temperature must be a number: %w", err)
		}
		cfg.Temperature = f
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
