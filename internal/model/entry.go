package model

import (
	"fmt"
	"strings"
)

// Status indicates who owns an entry's identifier.
//
// Auto entries are machine-numbered and may be rewritten whenever the
// sequence engine propagates values across the batch. Explicit entries were
// set by a human reviewer and act as propagation boundaries: the engine
// never overwrites them.
type Status int

const (
	// StatusAuto marks an identifier the engine generated and may rewrite.
	StatusAuto Status = iota

	// StatusExplicit marks an identifier a reviewer typed in. It is a fixed
	// boundary; only another direct edit can change it.
	StatusExplicit
)

// String returns "auto" or "explicit".
func (s Status) String() string {
	switch s {
	case StatusExplicit:
		return "explicit"
	default:
		return "auto"
	}
}

// SourceDescriptor identifies one slide file discovered during the
// directory scan, together with its extracted label image when one exists.
type SourceDescriptor struct {
	// SlidePath is the absolute path to the original slide file.
	SlidePath string

	// LabelPath is the path to the paired label image, or "" when the
	// slide has no extracted label.
	LabelPath string
}

// Entry is one row of the work list: a single slide file awaiting review.
//
// The Index is fixed at creation and defines the canonical batch order.
// Identifier and Status mutate throughout the review session; the new
// filename is never stored, it is recomputed from the identifier and the
// naming configuration every time it is read so it cannot drift.
//
// Example:
//
//	entry.Identifier = []int{1, 2}
//	entry.NewFilename(cfg) // "KPC12-1_001_002.ndpi"
type Entry struct {
	// Index is the 0-based position in the batch, fixed at creation.
	Index int

	// SlidePath is the original slide file. Read-only after creation.
	SlidePath string

	// LabelPath is the paired label image, "" when absent. Read-only.
	LabelPath string

	// Identifier is the sequence of non-negative numbers naming this
	// entry, one per configured slot. Nil until the engine initializes
	// the batch.
	Identifier []int

	// Status records whether the identifier is machine-generated or
	// human-set.
	Status Status
}

// IdentifierString renders the identifier using the naming configuration's
// separator and pad width. Returns "" when the identifier is unset.
func (e *Entry) IdentifierString(cfg *NamingConfig) string {
	if len(e.Identifier) == 0 {
		return ""
	}
	parts := make([]string, len(e.Identifier))
	for i, n := range e.Identifier {
		parts[i] = fmt.Sprintf("%0*d", cfg.PadWidth, n)
	}
	return strings.Join(parts, cfg.Separator)
}

// NewFilename computes the target filename for this entry:
// prefix + identifier string + extension.
//
// The result is derived on every call from the current identifier and
// configuration; nothing is cached. Returns "" while the identifier is
// unset.
func (e *Entry) NewFilename(cfg *NamingConfig) string {
	id := e.IdentifierString(cfg)
	if id == "" {
		return ""
	}
	return cfg.Prefix + id + cfg.Extension
}
