package scan

import (
	"os"
	"path/filepath"
	"testing"
)

func write(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
}

func testScanner() *Scanner {
	return NewScanner([]string{".svs", ".ndpi", ".scn"}, []string{".", "T"})
}

func TestScan_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "b.ndpi"))
	write(t, filepath.Join(dir, "a.svs"))
	write(t, filepath.Join(dir, "c.SCN")) // extension match is case-insensitive
	write(t, filepath.Join(dir, "notes.txt"))
	write(t, filepath.Join(dir, ".hidden.ndpi"))
	write(t, filepath.Join(dir, "T_test.ndpi"))

	descs, err := testScanner().Scan(dir, "")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}

	want := []string{"a.svs", "b.ndpi", "c.SCN"}
	if len(descs) != len(want) {
		t.Fatalf("Scan() returned %d files, want %d", len(descs), len(want))
	}
	for i, d := range descs {
		if filepath.Base(d.SlidePath) != want[i] {
			t.Errorf("descs[%d] = %q, want %q", i, filepath.Base(d.SlidePath), want[i])
		}
	}
}

func TestScan_PairsLabels(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.ndpi"))
	write(t, filepath.Join(dir, "b.ndpi"))
	write(t, filepath.Join(dir, "label_image", "a.jpg"))

	descs, err := testScanner().Scan(dir, "label_image")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(descs) != 2 {
		t.Fatalf("Scan() returned %d files, want 2", len(descs))
	}

	if descs[0].LabelPath != filepath.Join(dir, "label_image", "a.jpg") {
		t.Errorf("a.ndpi label = %q", descs[0].LabelPath)
	}
	if descs[1].LabelPath != "" {
		t.Errorf("b.ndpi should have no label, got %q", descs[1].LabelPath)
	}
}

func TestScan_SkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	write(t, filepath.Join(dir, "a.ndpi"))
	if err := os.MkdirAll(filepath.Join(dir, "sub.ndpi"), 0755); err != nil {
		t.Fatal(err)
	}

	descs, err := testScanner().Scan(dir, "")
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(descs) != 1 {
		t.Errorf("Scan() returned %d entries, want 1", len(descs))
	}
}

func TestScan_MissingFolder(t *testing.T) {
	if _, err := testScanner().Scan(filepath.Join(t.TempDir(), "nope"), ""); err == nil {
		t.Error("Scan() should fail for a missing folder")
	}
}
