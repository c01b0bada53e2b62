package model

import (
	"errors"
	"fmt"
)

// Errors returned by work-list operations. All are recoverable conditions
// reported back to the caller; none leaves the list partially mutated.
var (
	// ErrEmptyBatch is returned when a work list is built from zero
	// source descriptors.
	ErrEmptyBatch = errors.New("empty batch: no slide files")

	// ErrOutOfRange is returned for an entry index outside [0, N).
	ErrOutOfRange = errors.New("entry index out of range")

	// ErrArityMismatch is returned when an identifier's length does not
	// match the configured amount per slide.
	ErrArityMismatch = errors.New("identifier length does not match amount per slide")

	// ErrInvalidValue is returned for a negative identifier number or an
	// out-of-range configuration value.
	ErrInvalidValue = errors.New("invalid value")

	// ErrArityChangeConflict is returned by reconfiguration when an
	// explicit entry's stored identifier no longer matches the new amount
	// per slide. The conflict is surfaced, never auto-fixed.
	ErrArityChangeConflict = errors.New("explicit identifier conflicts with new amount per slide")
)

// WorkList is the ordered collection of entries for one review batch,
// one entry per slide file.
//
// The list is built once per batch from the directory scan; entries are
// never added or removed mid-session. Identifiers and statuses mutate as
// the sequence engine initializes and propagates values and as reviewers
// apply edits.
//
// Example:
//
//	list, err := model.NewWorkList(descs, cfg.AmountPerSlide)
//	if err != nil {
//	    return err // model.ErrEmptyBatch
//	}
type WorkList struct {
	entries []*Entry
	arity   int
}

// NewWorkList builds a work list from an ordered sequence of source
// descriptors. Entry indexes follow descriptor order, statuses start as
// Auto and identifiers start unset.
//
// The arity is the identifier length the list enforces on writes; the
// sequence engine updates it through SetArity on reconfiguration.
//
// Returns ErrEmptyBatch when descs is empty.
func NewWorkList(descs []SourceDescriptor, arity int) (*WorkList, error) {
	if len(descs) == 0 {
		return nil, ErrEmptyBatch
	}
	entries := make([]*Entry, len(descs))
	for i, d := range descs {
		entries[i] = &Entry{
			Index:     i,
			SlidePath: d.SlidePath,
			LabelPath: d.LabelPath,
			Status:    StatusAuto,
		}
	}
	return &WorkList{entries: entries, arity: arity}, nil
}

// Len returns the number of entries.
func (l *WorkList) Len() int {
	return len(l.entries)
}

// Arity returns the identifier length the list currently enforces.
func (l *WorkList) Arity() int {
	return l.arity
}

// SetArity changes the enforced identifier length. Used by the sequence
// engine after a successful reconfiguration check.
func (l *WorkList) SetArity(arity int) {
	l.arity = arity
}

// Get returns the entry at index i.
//
// Returns ErrOutOfRange when i is not in [0, Len()).
func (l *WorkList) Get(i int) (*Entry, error) {
	if i < 0 || i >= len(l.entries) {
		return nil, fmt.Errorf("%w: %d of %d", ErrOutOfRange, i, len(l.entries))
	}
	return l.entries[i], nil
}

// SetIdentifier writes an identifier to the entry at index i, optionally
// marking it explicit.
//
// The write is all-or-nothing: the numbers are validated for arity
// (ErrArityMismatch) and non-negativity (ErrInvalidValue) before the entry
// is touched. The slice is copied so later caller mutations cannot alias
// the stored identifier.
func (l *WorkList) SetIdentifier(i int, numbers []int, markExplicit bool) error {
	entry, err := l.Get(i)
	if err != nil {
		return err
	}
	if len(numbers) != l.arity {
		return fmt.Errorf("%w: got %d numbers, want %d", ErrArityMismatch, len(numbers), l.arity)
	}
	for _, n := range numbers {
		if n < 0 {
			return fmt.Errorf("%w: negative number %d", ErrInvalidValue, n)
		}
	}
	entry.Identifier = append([]int(nil), numbers...)
	if markExplicit {
		entry.Status = StatusExplicit
	}
	return nil
}

// EntriesFrom returns the suffix of the list starting at index i. The
// sequence engine iterates this view during forward propagation.
//
// An index at or past the end returns an empty slice; a negative index
// returns the whole list.
func (l *WorkList) EntriesFrom(i int) []*Entry {
	if i < 0 {
		i = 0
	}
	if i >= len(l.entries) {
		return nil
	}
	return l.entries[i:]
}

// Entries returns all entries in index order.
func (l *WorkList) Entries() []*Entry {
	return l.entries
}
