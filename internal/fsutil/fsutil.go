// Package fsutil provides file system utilities for the slide renamer.
//
// This package contains functions for:
//   - Moving files (rename with copy fallback across devices)
//   - File copying
//   - Filename sanitization
//   - Directory creation
package fsutil

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// CopyFile copies a file from source to destination.
//
// The destination file is created with mode 0644 if it doesn't exist,
// or truncated if it does. The source file must exist and be readable.
func CopyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destFile.Close()

	_, err = io.Copy(destFile, sourceFile)
	return err
}

// MoveFile moves a file to a new path, creating the destination directory
// if needed.
//
// A plain rename is attempted first; when the destination is on another
// device the file is copied and the source removed.
//
// Example:
//
//	err := fsutil.MoveFile("/slides/a.ndpi", "/slides/cannot_open/a.ndpi")
func MoveFile(src, dst string) error {
	if err := EnsureDir(filepath.Dir(dst)); err != nil {
		return err
	}
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := CopyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// EnsureDir creates a directory and all parent directories if they don't
// exist. Directories are created with mode 0755.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// SanitizeFileName removes or replaces characters that are invalid in
// file/folder names.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed (Windows limitation)
//   - Multiple whitespace → single space
//   - Trailing whitespace → removed
//
// Example:
//
//	SanitizeFileName("Batch: 1/2") // Returns "Batch_ 1_2"
func SanitizeFileName(name string) string {
	// Replace invalid path/file characters with underscore
	invalidChars := regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	name = invalidChars.ReplaceAllString(name, "_")

	// Remove trailing dots (Windows doesn't allow filenames ending with dots)
	name = regexp.MustCompile(`\.+$`).ReplaceAllString(name, "")

	// Replace multiple whitespace with single space for cleaner names
	name = regexp.MustCompile(`\s+`).ReplaceAllString(name, " ")

	// Remove trailing whitespace
	name = strings.TrimRight(name, " ")

	return name
}
