package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"normal-slide.ndpi", "normal-slide.ndpi"},
		{"slide:with:colons.ndpi", "slide_with_colons.ndpi"},
		{"slide<with>brackets.ndpi", "slide_with_brackets.ndpi"},
		{"slide/with\\slashes.ndpi", "slide_with_slashes.ndpi"},
		{"slide?with*wildcards.ndpi", "slide_with_wildcards.ndpi"},
		{"trailing dots...", "trailing dots"},
		{"multiple   spaces", "multiple spaces"},
		{"trailing spaces   ", "trailing spaces"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoveFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.ndpi")
	dst := filepath.Join(dir, "out", "renamed.ndpi")
	if err := os.WriteFile(src, []byte("slide bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := MoveFile(src, dst); err != nil {
		t.Fatalf("MoveFile() error = %v", err)
	}

	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Error("source file should be gone after move")
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("destination missing: %v", err)
	}
	if string(data) != "slide bytes" {
		t.Errorf("destination content = %q", data)
	}
}

func TestCopyFile(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.jpg")
	dst := filepath.Join(dir, "dst.jpg")
	if err := os.WriteFile(src, []byte("label"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("CopyFile() error = %v", err)
	}
	if _, err := os.Stat(src); err != nil {
		t.Error("source must survive a copy")
	}
	data, _ := os.ReadFile(dst)
	if string(data) != "label" {
		t.Errorf("copied content = %q", data)
	}
}
