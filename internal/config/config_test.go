package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAppliesDefaultsWhenFileMissing(t *testing.T) {
	if err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if C.Country != "US" {
		t.Errorf("Country = %q, want US", C.Country)
	}
	if C.Workers != 8 {
		t.Errorf("Workers = %d, want 8", C.Workers)
	}
	if C.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", C.Server.Port)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := []byte("country: CA\nregion: QC\nbuffer_meters: 50\nstrict: true\n")
	if err := os.WriteFile(path, body, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if C.Country != "CA" || C.Region != "QC" {
		t.Errorf("Country/Region = %q/%q, want CA/QC", C.Country, C.Region)
	}
	if C.BufferMeters != 50 {
		t.Errorf("BufferMeters = %v, want 50", C.BufferMeters)
	}
	if !C.Strict {
		t.Errorf("Strict = false, want true")
	}
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("POSTGRES_DSN", "postgres://envhost:5432/conflate")
	if err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if C.Postgres.DSN != "postgres://envhost:5432/conflate" {
		t.Errorf("Postgres.DSN = %q, want env override", C.Postgres.DSN)
	}
}
