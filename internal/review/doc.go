// Package review drives a batch rename from scan to commit.
//
// The Manager is the single entry point the CLI and the TUI share: it
// scans the slide folder, extracts label images, numbers the batch,
// applies identifier edits and executes the final renames, reporting
// progress through a callback.
package review
