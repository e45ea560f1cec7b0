// Package config loads workspace configuration from environment
// variables, the same small env-var-plus-default pattern the teacher
// uses for its encryption/retention settings (internal/config/config.go),
// generalized to Julie's indexing knobs.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the settings one Julie workspace process runs with.
type Config struct {
	WorkspaceRoot  string
	DataDir        string // holds julie.db, the HNSW graph, id_mapping.bin
	ModelDir       string // holds model.onnx + tokenizer.json for the embedder
	IgnorePatterns []string
	WatchDebounce  time.Duration
	LogLevel       string // from JULIE_LOG; logging.FromEnv reads that variable itself, not this field
}

// LoadConfig loads configuration from environment variables, defaulting
// anything unset or malformed rather than failing -- a bad env var
// should never stop the indexer from starting (same tolerance as
// internal/logging.FromEnv).
func LoadConfig() *Config {
	cfg := &Config{
		WorkspaceRoot:  envOr("JULIE_WORKSPACE", "."),
		DataDir:        envOr("JULIE_DATA_DIR", ".julie"),
		ModelDir:       envOr("JULIE_MODEL_DIR", ".julie/models"),
		IgnorePatterns: defaultIgnorePatterns,
		WatchDebounce:  300 * time.Millisecond,
		LogLevel:       os.Getenv("JULIE_LOG"),
	}

	if ms := os.Getenv("JULIE_WATCH_DEBOUNCE_MS"); ms != "" {
		if n, err := strconv.Atoi(ms); err == nil && n > 0 {
			cfg.WatchDebounce = time.Duration(n) * time.Millisecond
		}
	}

	if extra := os.Getenv("JULIE_IGNORE"); extra != "" {
		cfg.IgnorePatterns = append(append([]string{}, defaultIgnorePatterns...), splitComma(extra)...)
	}

	return cfg
}

var defaultIgnorePatterns = []string{
	".git/", "node_modules/", "vendor/", ".julie/", "dist/", "build/", "target/",
	"*.min.js", "*.lock",
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitComma(s string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(s); i++ {
		if i == len(s) || s[i] == ',' {
			if i > start {
				out = append(out, s[start:i])
			}
			start = i + 1
		}
	}
	return out
}
