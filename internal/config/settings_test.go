package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	settings, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if settings.AmountPerSlide != 2 || settings.SkipFactor != 1 {
		t.Errorf("defaults = amount %d, skip %d", settings.AmountPerSlide, settings.SkipFactor)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workflow_config.json")

	settings := DefaultSettings()
	settings.Prefix = "Batch7_"
	settings.SkipFactor = 3
	if err := settings.Save(path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Prefix != "Batch7_" || loaded.SkipFactor != 3 {
		t.Errorf("loaded prefix %q, skip %d", loaded.Prefix, loaded.SkipFactor)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed JSON")
	}
}

func TestAutoPrefix(t *testing.T) {
	tests := []struct {
		folder string
		want   string
	}{
		{"/data/KPC12-1", "KPC12-1_"},
		{"/data/KPC12-1/", "KPC12-1_"},
		{"/data/already_", "already_"},
		{"", "KPC12-1_"}, // unusable folder keeps the configured prefix
	}

	for _, tt := range tests {
		t.Run(tt.folder, func(t *testing.T) {
			settings := DefaultSettings()
			settings.SlideFolder = tt.folder
			if got := settings.AutoPrefix(); got != tt.want {
				t.Errorf("AutoPrefix() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestToNamingConfig(t *testing.T) {
	settings := DefaultSettings()
	cfg := settings.ToNamingConfig()

	if cfg.AmountPerSlide != settings.AmountPerSlide ||
		cfg.SkipFactor != settings.SkipFactor ||
		cfg.Prefix != settings.Prefix ||
		cfg.Extension != settings.Extension ||
		cfg.PadWidth != settings.PadWidth ||
		cfg.Separator != settings.Separator {
		t.Errorf("ToNamingConfig() = %+v does not mirror settings", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default naming config invalid: %v", err)
	}
}
