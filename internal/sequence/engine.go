package sequence

import (
	"fmt"

	"github.com/handiism/slide-renamer/internal/model"
)

// Initialize numbers the whole batch.
//
// The first entry receives [start, start+1, ..., start+k-1] where k is the
// configured amount per slide; each subsequent entry starts at
// NextStart(previous entry's last number, skip factor). Every entry is
// written with status Auto, including entries a reviewer had previously
// marked explicit. This is the only pass that touches every entry
// unconditionally.
func Initialize(list *model.WorkList, cfg *model.NamingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	list.SetArity(cfg.AmountPerSlide)

	current := cfg.Start
	for _, entry := range list.Entries() {
		numbers := consecutive(current, cfg.AmountPerSlide)
		if err := list.SetIdentifier(entry.Index, numbers, false); err != nil {
			return err
		}
		entry.Status = model.StatusAuto
		current = NextStart(numbers[len(numbers)-1], cfg.SkipFactor)
	}
	return nil
}

// ApplyEdit records a reviewer's identifier edit and propagates the
// sequence forward.
//
// The edit is atomic: rawText is parsed first and a *ParseError is
// returned without touching the work list. On success the edited entry is
// written with status Explicit, then every following Auto entry is
// renumbered by chaining NextStart from its immediate predecessor.
// Propagation halts at the first Explicit entry it meets; a hand-edited
// identifier is never recomputed from a different anchor.
//
// Edits are commutative for non-overlapping boundary segments: editing
// entry A and then entry B (A < B) leaves the Auto entries between them in
// the same state regardless of application order.
func ApplyEdit(list *model.WorkList, cfg *model.NamingConfig, index int, rawText string) error {
	numbers, err := NewFormatter(cfg).Parse(rawText, cfg.AmountPerSlide)
	if err != nil {
		return err
	}
	if err := list.SetIdentifier(index, numbers, true); err != nil {
		return err
	}

	last := numbers[len(numbers)-1]
	for _, entry := range list.EntriesFrom(index + 1) {
		if entry.Status == model.StatusExplicit {
			break
		}
		next := consecutive(NextStart(last, cfg.SkipFactor), cfg.AmountPerSlide)
		if err := list.SetIdentifier(entry.Index, next, false); err != nil {
			return err
		}
		last = next[len(next)-1]
	}
	return nil
}

// Reconfigure applies a new naming configuration mid-session.
//
// Explicit entries are preserved untouched. When none exist the whole list
// is re-initialized from the new configuration's start; otherwise the Auto
// entries following the first Explicit boundary are renumbered, each run
// chained from its nearest preceding Explicit anchor. Auto entries before
// the first boundary keep their values.
//
// Fails with model.ErrArityChangeConflict, before any write, if an
// Explicit entry's stored identifier length no longer matches the new
// amount per slide. The conflict is surfaced rather than auto-fixed.
func Reconfigure(list *model.WorkList, cfg *model.NamingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	firstExplicit := -1
	for _, entry := range list.Entries() {
		if entry.Status != model.StatusExplicit {
			continue
		}
		if len(entry.Identifier) != cfg.AmountPerSlide {
			return fmt.Errorf("%w: entry %d has %d numbers, new amount per slide is %d",
				model.ErrArityChangeConflict, entry.Index, len(entry.Identifier), cfg.AmountPerSlide)
		}
		if firstExplicit < 0 {
			firstExplicit = entry.Index
		}
	}

	if firstExplicit < 0 {
		return Initialize(list, cfg)
	}

	list.SetArity(cfg.AmountPerSlide)
	anchor, err := list.Get(firstExplicit)
	if err != nil {
		return err
	}
	last := anchor.Identifier[len(anchor.Identifier)-1]
	for _, entry := range list.EntriesFrom(firstExplicit + 1) {
		if entry.Status == model.StatusExplicit {
			last = entry.Identifier[len(entry.Identifier)-1]
			continue
		}
		next := consecutive(NextStart(last, cfg.SkipFactor), cfg.AmountPerSlide)
		if err := list.SetIdentifier(entry.Index, next, false); err != nil {
			return err
		}
		last = next[len(next)-1]
	}
	return nil
}

// consecutive returns [start, start+1, ..., start+count-1].
func consecutive(start, count int) []int {
	numbers := make([]int, count)
	for i := range numbers {
		numbers[i] = start + i
	}
	return numbers
}
