package review

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/handiism/slide-renamer/internal/config"
	"github.com/handiism/slide-renamer/internal/label"
	"github.com/handiism/slide-renamer/internal/model"
)

func testSettings(dir string) *config.Settings {
	settings := config.DefaultSettings()
	settings.SlideFolder = dir
	settings.BatchSize = 2
	return settings
}

func writeSlide(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func writeSidecar(t *testing.T, dir, name string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadBatch_NumbersSlides(t *testing.T) {
	dir := t.TempDir()
	writeSlide(t, dir, "a.ndpi")
	writeSlide(t, dir, "b.ndpi")
	writeSlide(t, dir, "c.ndpi")

	m := NewManager(testSettings(dir), label.SidecarSource{}, nil)
	if err := m.LoadBatch(context.Background(), false); err != nil {
		t.Fatalf("LoadBatch() error = %v", err)
	}

	rows := m.Rows()
	want := []string{"001_002", "004_005", "007_008"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Identifier != w {
			t.Errorf("row %d identifier = %q, want %q", i, rows[i].Identifier, w)
		}
		if rows[i].Explicit {
			t.Errorf("row %d should be automatic", i)
		}
	}
	if rows[0].NewFilename != "KPC12-1_001_002.ndpi" {
		t.Errorf("row 0 filename = %q", rows[0].NewFilename)
	}
}

func TestLoadBatch_WithExtraction(t *testing.T) {
	dir := t.TempDir()
	writeSlide(t, dir, "a.ndpi")
	writeSlide(t, dir, "broken.ndpi")
	writeSidecar(t, dir, "a.label.png")
	// broken.ndpi has no imagery and must be quarantined.

	var warnings int
	m := NewManager(testSettings(dir), label.SidecarSource{}, func(e ProgressEvent) {
		if e.Level == LevelWarning {
			warnings++
		}
	})
	if err := m.LoadBatch(context.Background(), true); err != nil {
		t.Fatalf("LoadBatch() error = %v", err)
	}

	rows := m.Rows()
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 (quarantined slide excluded)", len(rows))
	}
	if rows[0].SlideName != "a.ndpi" {
		t.Errorf("row 0 = %q", rows[0].SlideName)
	}
	if rows[0].LabelPath == "" {
		t.Error("row 0 should have a label image")
	}
	if warnings != 1 {
		t.Errorf("got %d warnings, want 1", warnings)
	}
	if _, err := os.Stat(filepath.Join(dir, "cannot_open", "broken.ndpi")); err != nil {
		t.Errorf("broken.ndpi was not quarantined: %v", err)
	}
}

func TestEdit_PropagatesForward(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ndpi", "b.ndpi", "c.ndpi"} {
		writeSlide(t, dir, name)
	}

	m := NewManager(testSettings(dir), label.SidecarSource{}, nil)
	if err := m.LoadBatch(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if err := m.Edit(1, "031_032"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}

	rows := m.Rows()
	want := []string{"001_002", "031_032", "034_035"}
	for i, w := range want {
		if rows[i].Identifier != w {
			t.Errorf("row %d identifier = %q, want %q", i, rows[i].Identifier, w)
		}
	}
	if !rows[1].Explicit {
		t.Error("edited row should be marked explicit")
	}
	if rows[0].Explicit || rows[2].Explicit {
		t.Error("other rows should stay automatic")
	}
}

func TestEdit_BeforeLoad(t *testing.T) {
	m := NewManager(testSettings(t.TempDir()), label.SidecarSource{}, nil)
	if err := m.Edit(0, "001_002"); !errors.Is(err, model.ErrEmptyBatch) {
		t.Errorf("Edit() error = %v, want ErrEmptyBatch", err)
	}
}

func TestReconfigure_KeepsExplicitEdits(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ndpi", "b.ndpi", "c.ndpi"} {
		writeSlide(t, dir, name)
	}

	settings := testSettings(dir)
	m := NewManager(settings, label.SidecarSource{}, nil)
	if err := m.LoadBatch(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if err := m.Edit(1, "031_032"); err != nil {
		t.Fatal(err)
	}

	cfg := settings.ToNamingConfig()
	cfg.SkipFactor = 0
	if err := m.Reconfigure(cfg); err != nil {
		t.Fatalf("Reconfigure() error = %v", err)
	}

	rows := m.Rows()
	want := []string{"001_002", "031_032", "033_034"}
	for i, w := range want {
		if rows[i].Identifier != w {
			t.Errorf("row %d identifier = %q, want %q", i, rows[i].Identifier, w)
		}
	}
}

func TestCommit(t *testing.T) {
	dir := t.TempDir()
	writeSlide(t, dir, "a.ndpi")
	writeSlide(t, dir, "b.ndpi")

	m := NewManager(testSettings(dir), label.SidecarSource{}, nil)
	if err := m.LoadBatch(context.Background(), false); err != nil {
		t.Fatal(err)
	}

	results, err := m.Commit(context.Background())
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	for _, r := range results {
		if r.Err != nil {
			t.Errorf("%s: %v", filepath.Base(r.Action.SlideSource), r.Err)
		}
	}
	for _, name := range []string{"KPC12-1_001_002.ndpi", "KPC12-1_004_005.ndpi"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s was not created: %v", name, err)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "renaming_log.csv")); err != nil {
		t.Errorf("audit log missing: %v", err)
	}
}

func TestSessionRoundTrip(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.ndpi", "b.ndpi", "c.ndpi"} {
		writeSlide(t, dir, name)
	}
	sessionPath := filepath.Join(t.TempDir(), "session.json")

	first := NewManager(testSettings(dir), label.SidecarSource{}, nil)
	if err := first.LoadBatch(context.Background(), false); err != nil {
		t.Fatal(err)
	}
	if err := first.Edit(1, "031_032"); err != nil {
		t.Fatal(err)
	}
	if err := first.SaveSession(sessionPath); err != nil {
		t.Fatalf("SaveSession() error = %v", err)
	}

	second := NewManager(testSettings(dir), label.SidecarSource{}, nil)
	if err := second.RestoreSession(sessionPath); err != nil {
		t.Fatalf("RestoreSession() error = %v", err)
	}

	rows := second.Rows()
	want := []string{"001_002", "031_032", "034_035"}
	for i, w := range want {
		if rows[i].Identifier != w {
			t.Errorf("row %d identifier = %q, want %q", i, rows[i].Identifier, w)
		}
	}
	if !rows[1].Explicit {
		t.Error("restored row 1 should stay explicit")
	}
}

func TestPreview_DoesNotMoveFiles(t *testing.T) {
	dir := t.TempDir()
	writeSlide(t, dir, "a.ndpi")

	m := NewManager(testSettings(dir), label.SidecarSource{}, nil)
	if err := m.LoadBatch(context.Background(), false); err != nil {
		t.Fatal(err)
	}

	plan, err := m.Preview()
	if err != nil {
		t.Fatalf("Preview() error = %v", err)
	}
	if len(plan.Actions) != 1 {
		t.Fatalf("got %d actions, want 1", len(plan.Actions))
	}
	if _, err := os.Stat(filepath.Join(dir, "a.ndpi")); err != nil {
		t.Error("Preview() must not move files")
	}
}
