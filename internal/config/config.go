package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"provmark/internal/domain"
)

const (
	DefaultHTTPAddr = ":8080"
	DefaultLogLevel = "info"
)

// LoadEnv reads a .env file from the working directory when one exists.
// Variables already set in the environment win.
func LoadEnv() {
	_ = godotenv.Load()
}

// DatasetPath returns the dataset file from PROVMARK_DATASET
func DatasetPath() string {
	return os.Getenv("PROVMARK_DATASET")
}

// StorePath returns the SQLite cache file from PROVMARK_STORE. Empty means
// the store picks a location derived from the dataset path.
func StorePath() string {
	return os.Getenv("PROVMARK_STORE")
}

// VocabPath returns the vocabulary YAML file from PROVMARK_VOCAB
func VocabPath() string {
	return os.Getenv("PROVMARK_VOCAB")
}

// MarkPolicy returns the row mark policy from PROVMARK_MARK_POLICY,
// falling back to exclusive.
func MarkPolicy() (domain.MarkPolicy, error) {
	return domain.ParseMarkPolicy(os.Getenv("PROVMARK_MARK_POLICY"))
}

// HTTPAddr returns the API listen address from PROVMARK_HTTP_ADDR,
// falling back to DefaultHTTPAddr.
func HTTPAddr() string {
	if env := os.Getenv("PROVMARK_HTTP_ADDR"); env != "" {
		return env
	}
	return DefaultHTTPAddr
}

// LogLevel returns PROVMARK_LOG_LEVEL, falling back to DefaultLogLevel
func LogLevel() string {
	if env := os.Getenv("PROVMARK_LOG_LEVEL"); env != "" {
		return env
	}
	return DefaultLogLevel
}

// LogFile returns where the TUI writes its log: PROVMARK_LOG_FILE, or
// provmark.log under $XDG_STATE_HOME.
func LogFile() string {
	if env := os.Getenv("PROVMARK_LOG_FILE"); env != "" {
		return env
	}
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, _ := os.UserHomeDir()
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "provmark", "provmark.log")
}
