package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/darianmavgo/mksql/converters/common"
)

func TestExportAndLoad(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "config.hcl")

	// Test Export
	defaultCfg := DefaultConfig()
	defaultCfg.Dialect = "mysql"
	defaultCfg.BatchSize = 250
	defaultCfg.OutputDir = "/var/backups"
	err = Export(configPath, defaultCfg)
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	// Test Load
	loadedCfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if *loadedCfg != *defaultCfg {
		t.Errorf("loaded %+v, want %+v", *loadedCfg, *defaultCfg)
	}
}

func TestLoadDefaults(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "config_test_empty")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	configPath := filepath.Join(tempDir, "empty.hcl")
	err = os.WriteFile(configPath, []byte(""), 0644)
	if err != nil {
		t.Fatalf("failed to write empty config: %v", err)
	}

	loadedCfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loadedCfg.BatchSize != 500 {
		t.Errorf("expected default BatchSize 500, got %d", loadedCfg.BatchSize)
	}
	if loadedCfg.Dialect != "postgres" {
		t.Errorf("expected default dialect postgres, got %q", loadedCfg.Dialect)
	}
	if loadedCfg.SampleRows != 10 || loadedCfg.PreviewRows != 5 {
		t.Errorf("expected sample/preview rows 10/5, got %d/%d", loadedCfg.SampleRows, loadedCfg.PreviewRows)
	}
}

func TestLoadPartial(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "partial.hcl")
	content := "dialect = \"mysql\"\nsample_rows = 25\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Dialect != "mysql" || cfg.SampleRows != 25 || cfg.BatchSize != 500 {
		t.Errorf("unexpected config %+v", *cfg)
	}
}

func TestLoadRejectsUnknownDialect(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "bad.hcl")
	if err := os.WriteFile(configPath, []byte(`dialect = "oracle"`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := Load(configPath)
	if !errors.Is(err, common.ErrUnsupportedDialect) {
		t.Errorf("expected ErrUnsupportedDialect, got %v", err)
	}
}

func TestLoadRejectsUnknownAttribute(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "typo.hcl")
	if err := os.WriteFile(configPath, []byte(`batchsize = 10`), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(configPath); err == nil {
		t.Error("expected an error for an unknown attribute")
	}
}
