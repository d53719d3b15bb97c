package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	if err := Load(t.TempDir()); err != nil {
		t.Fatalf("expected missing config file to be tolerated: %v", err)
	}

	if got := GetString("logLevel"); got != "info" {
		t.Errorf("expected default logLevel info, got %q", got)
	}
	if got := GetString("storage.type"); got != "memory" {
		t.Errorf("expected default storage memory, got %q", got)
	}
	if got := GetFloat("controller.lookahead"); got != 2.0 {
		t.Errorf("expected default lookahead 2.0, got %f", got)
	}
	if got := GetInt("sensors.lidar.numRays"); got != 360 {
		t.Errorf("expected default 360 rays, got %d", got)
	}
	if GetBool("influx.enabled") {
		t.Error("expected influx disabled by default")
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"storage": {"type": "sqlite"},
		"controller": {"lookahead": 3.5},
		"sensors": {"lidar": {"numRays": 90}}
	}`
	if err := os.WriteFile(filepath.Join(dir, "fieldsim.cfg.json"), []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Load(dir); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if got := GetString("logLevel"); got != "debug" {
		t.Errorf("expected logLevel debug, got %q", got)
	}
	if got := GetString("storage.type"); got != "sqlite" {
		t.Errorf("expected storage sqlite, got %q", got)
	}
	if got := GetFloat("controller.lookahead"); got != 3.5 {
		t.Errorf("expected lookahead 3.5, got %f", got)
	}
	if got := GetInt("sensors.lidar.numRays"); got != 90 {
		t.Errorf("expected 90 rays, got %d", got)
	}

	// Keys absent from the file keep their defaults.
	if got := GetString("db.host"); got != "localhost" {
		t.Errorf("expected default db host, got %q", got)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "fieldsim.cfg.json"), []byte(`{broken`), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Load(dir); err == nil {
		t.Error("expected error for malformed config file")
	}
}
