package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "NER_BACKEND", "MAX_CONCURRENT", "REQUEST_TIMEOUT", "CHUNK_SIZE", "CHUNK_MODE", "RAW_DATA_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if cfg.NERBackend != "prose" {
		t.Errorf("NERBackend = %q, want %q", cfg.NERBackend, "prose")
	}
	if cfg.MaxConcurrent != 4 {
		t.Errorf("MaxConcurrent = %d, want 4", cfg.MaxConcurrent)
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v, want 90s", cfg.RequestTimeout)
	}
	if cfg.ChunkMode != "transcript" || cfg.ChunkSize != 900 {
		t.Errorf("Chunk = %s/%d, want transcript/900", cfg.ChunkMode, cfg.ChunkSize)
	}
	if cfg.RawDataDir != "data/raw" {
		t.Errorf("RawDataDir = %q, want %q", cfg.RawDataDir, "data/raw")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("NER_BACKEND", "gazetteer")
	t.Setenv("MAX_CONCURRENT", "16")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg := Load()
	if cfg.Port != "9090" || cfg.NERBackend != "gazetteer" {
		t.Errorf("Port/NERBackend = %q/%q, want 9090/gazetteer", cfg.Port, cfg.NERBackend)
	}
	if cfg.MaxConcurrent != 16 {
		t.Errorf("MaxConcurrent = %d, want 16", cfg.MaxConcurrent)
	}
	if cfg.RequestTimeout != 5*time.Second {
		t.Errorf("RequestTimeout = %v, want 5s", cfg.RequestTimeout)
	}
	if cfg.ChunkSize != 900 {
		t.Errorf("ChunkSize = %d, want default 900 on parse failure", cfg.ChunkSize)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_MODE=quiet\nPORT=7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// Register restores, then unset so the .env values are not shadowed.
	for _, key := range []string{"LOG_MODE", "PORT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	if err := LoadDotEnv(); err != nil {
		t.Fatalf("LoadDotEnv() error = %v", err)
	}
	if got := LogMode(); got != "quiet" {
		t.Errorf("LogMode() = %q, want %q", got, "quiet")
	}

	cfg := Load()
	if cfg.LogMode != "quiet" || cfg.Port != "7070" {
		t.Errorf("LogMode/Port = %q/%q, want quiet/7070", cfg.LogMode, cfg.Port)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadDotEnv(); err != nil {
		t.Errorf("LoadDotEnv() without a .env file error = %v, want nil", err)
	}
}
