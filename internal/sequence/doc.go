// Package sequence implements the identifier sequence engine: the logic
// that auto-numbers an ordered batch of slides and re-propagates numbers
// after a reviewer's edit.
//
// # Formatter
//
// Formatter renders identifier numbers as padded, separated strings and
// parses the two input styles reviewers use (separated or concatenated):
//
//	f := sequence.Formatter{Separator: "_", PadWidth: 3}
//	f.Format([]int{1, 2})         // "001_002"
//	f.Parse("031 032", 2)         // [31 32]
//
// # Engine
//
// Initialize numbers the whole batch from the configuration's start value,
// honoring the amount per slide and skip factor. ApplyEdit records a human
// edit as an explicit boundary and renumbers the Auto entries after it,
// halting at the next explicit boundary. Reconfigure swaps the naming
// parameters mid-session without disturbing explicit entries.
//
// With amount per slide 2 and skip factor 1, three slides number as
// 001_002, 004_005, 007_008. Editing the middle entry to 031_032 turns the
// third into 034_035 and leaves the first untouched.
package sequence
