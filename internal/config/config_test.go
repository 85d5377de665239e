package config

import (
	"path/filepath"
	"testing"
)

func TestNew_EnvOverrides(t *testing.T) {
	workDir := t.TempDir()
	homeDir := t.TempDir()
	t.Setenv("VMFORGE_DIR", workDir)
	t.Setenv("VMFORGE_HOME", homeDir)

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() returned an error: %v", err)
	}

	if cfg.WorkDir() != workDir {
		t.Errorf("WorkDir() = %q, want %q", cfg.WorkDir(), workDir)
	}
	if got, want := cfg.GetAppDir(), filepath.Join(homeDir, ".vmforge"); got != want {
		t.Errorf("GetAppDir() = %q, want %q", got, want)
	}
	if got, want := cfg.CatalogPath(), filepath.Join(homeDir, ".vmforge", "catalog.yaml"); got != want {
		t.Errorf("CatalogPath() = %q, want %q", got, want)
	}
}

func TestNew_DefaultsToCwd(t *testing.T) {
	t.Setenv("VMFORGE_DIR", "")
	t.Setenv("VMFORGE_HOME", t.TempDir())

	cfg, err := New()
	if err != nil {
		t.Fatalf("New() returned an error: %v", err)
	}
	if cfg.WorkDir() == "" {
		t.Error("WorkDir() should default to the current working directory")
	}
}

func TestSetters(t *testing.T) {
	cfg := &Config{}
	cfg.SetWorkDir("/tmp/work")
	cfg.SetHomeDir("/tmp/home")

	if cfg.WorkDir() != "/tmp/work" {
		t.Errorf("WorkDir() = %q, want %q", cfg.WorkDir(), "/tmp/work")
	}
	if got, want := cfg.GetAppDir(), filepath.Join("/tmp/home", ".vmforge"); got != want {
		t.Errorf("GetAppDir() = %q, want %q", got, want)
	}
}
