package config

import (
	"os"
	"testing"
	"time"
)

func clearConfigEnvVars() {
	envVars := []string{
		"JULIE_WORKSPACE", "JULIE_DATA_DIR", "JULIE_MODEL_DIR",
		"JULIE_WATCH_DEBOUNCE_MS", "JULIE_IGNORE", "JULIE_LOG",
	}
	for _, envVar := range envVars {
		os.Unsetenv(envVar)
	}
}

func TestLoadConfig_DefaultValues(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	cfg := LoadConfig()

	if cfg.WorkspaceRoot != "." {
		t.Errorf("Expected WorkspaceRoot '.', got '%s'", cfg.WorkspaceRoot)
	}
	if cfg.DataDir != ".julie" {
		t.Errorf("Expected DataDir '.julie', got '%s'", cfg.DataDir)
	}
	if cfg.ModelDir != ".julie/models" {
		t.Errorf("Expected ModelDir '.julie/models', got '%s'", cfg.ModelDir)
	}
	if cfg.WatchDebounce != 300*time.Millisecond {
		t.Errorf("Expected WatchDebounce 300ms, got %v", cfg.WatchDebounce)
	}
	if len(cfg.IgnorePatterns) == 0 {
		t.Error("Expected non-empty default ignore patterns")
	}
	if cfg.LogLevel != "" {
		t.Errorf("Expected empty LogLevel, got '%s'", cfg.LogLevel)
	}
}

func TestLoadConfig_EnvironmentVariables(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("JULIE_WORKSPACE", "/repo")
	os.Setenv("JULIE_DATA_DIR", "/var/julie")
	os.Setenv("JULIE_MODEL_DIR", "/opt/models")
	os.Setenv("JULIE_WATCH_DEBOUNCE_MS", "500")
	os.Setenv("JULIE_LOG", "debug")

	cfg := LoadConfig()

	if cfg.WorkspaceRoot != "/repo" {
		t.Errorf("Expected WorkspaceRoot '/repo', got '%s'", cfg.WorkspaceRoot)
	}
	if cfg.DataDir != "/var/julie" {
		t.Errorf("Expected DataDir '/var/julie', got '%s'", cfg.DataDir)
	}
	if cfg.ModelDir != "/opt/models" {
		t.Errorf("Expected ModelDir '/opt/models', got '%s'", cfg.ModelDir)
	}
	if cfg.WatchDebounce != 500*time.Millisecond {
		t.Errorf("Expected WatchDebounce 500ms, got %v", cfg.WatchDebounce)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got '%s'", cfg.LogLevel)
	}
}

func TestLoadConfig_InvalidDebounceFallsBackToDefault(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("JULIE_WATCH_DEBOUNCE_MS", "not-a-number")

	cfg := LoadConfig()
	if cfg.WatchDebounce != 300*time.Millisecond {
		t.Errorf("Expected WatchDebounce 300ms (default for invalid input), got %v", cfg.WatchDebounce)
	}
}

func TestLoadConfig_NegativeDebounceFallsBackToDefault(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("JULIE_WATCH_DEBOUNCE_MS", "-50")

	cfg := LoadConfig()
	if cfg.WatchDebounce != 300*time.Millisecond {
		t.Errorf("Expected WatchDebounce 300ms (default for non-positive input), got %v", cfg.WatchDebounce)
	}
}

func TestLoadConfig_EmptyStringValuesFallBackToDefaults(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("JULIE_WORKSPACE", "")
	os.Setenv("JULIE_DATA_DIR", "")

	cfg := LoadConfig()

	if cfg.WorkspaceRoot != "." {
		t.Errorf("Expected WorkspaceRoot '.' (default for empty), got '%s'", cfg.WorkspaceRoot)
	}
	if cfg.DataDir != ".julie" {
		t.Errorf("Expected DataDir '.julie' (default for empty), got '%s'", cfg.DataDir)
	}
}

func TestLoadConfig_ExtraIgnorePatternsAppendToDefaults(t *testing.T) {
	clearConfigEnvVars()
	defer clearConfigEnvVars()

	os.Setenv("JULIE_IGNORE", "*.generated.go,testdata/")

	cfg := LoadConfig()
	found := make(map[string]bool, len(cfg.IgnorePatterns))
	for _, p := range cfg.IgnorePatterns {
		found[p] = true
	}
	if !found["*.generated.go"] || !found["testdata/"] {
		t.Errorf("expected extra ignore patterns present in %v", cfg.IgnorePatterns)
	}
	if !found[".git/"] {
		t.Error("expected default patterns to remain alongside extras")
	}
}
