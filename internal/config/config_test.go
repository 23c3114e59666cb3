package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg == nil {
		t.Fatal("DefaultConfig returned nil")
	}

	if cfg.MaxDepth != -1 {
		t.Errorf("MaxDepth = %d, expected -1", cfg.MaxDepth)
	}
	if cfg.PollInterval != "2s" {
		t.Errorf("PollInterval = %q, expected %q", cfg.PollInterval, "2s")
	}
	if cfg.ShowHidden {
		t.Error("ShowHidden should default to false")
	}

	// Check default exclusions include common patterns
	expectedExclusions := []string{"node_modules", ".venv", "__pycache__", ".git"}
	for _, pattern := range expectedExclusions {
		found := false
		for _, exc := range cfg.Exclude {
			if exc == pattern {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("Expected exclusion %q not found in defaults", pattern)
		}
	}
}

func TestLoadMissingConfig(t *testing.T) {
	tempDir := t.TempDir()

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", origHome)

	// Load config - should return defaults when file missing
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed for missing config: %v", err)
	}
	if cfg.MaxDepth != -1 {
		t.Errorf("Expected default max depth, got %d", cfg.MaxDepth)
	}
}

func TestLoadValidConfig(t *testing.T) {
	tempDir := t.TempDir()

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", origHome)

	configDir := filepath.Join(tempDir, ".fskit")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}

	configContent := `
exclude:
  - custom_exclude
max_depth: 4
show_hidden: true
poll_interval: 500ms
snapshot_dir: /custom/snapshots
`
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.MaxDepth != 4 {
		t.Errorf("MaxDepth = %d, expected 4", cfg.MaxDepth)
	}
	if !cfg.ShowHidden {
		t.Error("ShowHidden = false, expected true")
	}
	if cfg.PollInterval != "500ms" {
		t.Errorf("PollInterval = %q, expected %q", cfg.PollInterval, "500ms")
	}
	if cfg.SnapshotDir != "/custom/snapshots" {
		t.Errorf("SnapshotDir = %q, expected %q", cfg.SnapshotDir, "/custom/snapshots")
	}
	if len(cfg.Exclude) != 1 || cfg.Exclude[0] != "custom_exclude" {
		t.Errorf("Exclude = %v, expected [custom_exclude]", cfg.Exclude)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", origHome)

	configDir := filepath.Join(tempDir, ".fskit")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("Failed to create config dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte("::not yaml::"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tempDir := t.TempDir()

	origHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	defer os.Setenv("HOME", origHome)

	cfg := DefaultConfig()
	cfg.MaxDepth = 7
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.MaxDepth != 7 {
		t.Errorf("MaxDepth after round trip = %d, expected 7", loaded.MaxDepth)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got := ExpandPath("~/code")
	if !strings.HasPrefix(got, home) {
		t.Errorf("ExpandPath(~/code) = %q, expected prefix %q", got, home)
	}
	if got := ExpandPath("/absolute"); got != "/absolute" {
		t.Errorf("ExpandPath(/absolute) = %q", got)
	}
}
