// Package model defines the core data structures of the slide renaming
// workflow.
//
// # Work list
//
// WorkList is the ordered batch of entries under review, one per slide
// file discovered on disk:
//
//	list, err := model.NewWorkList(descs, cfg.AmountPerSlide)
//	entry, _ := list.Get(0)
//
// # Entries
//
// Each Entry pairs a slide file (and optional label image) with its
// numeric identifier and a Status of Auto or Explicit. Target filenames
// are always derived at read time:
//
//	entry.NewFilename(cfg) // prefix + identifier + extension
//
// # Configuration
//
// NamingConfig carries the sequence parameters (amount per slide, skip
// factor, prefix, extension, pad width, separator); ExtractConfig carries
// the label extraction parameters (crop preset, rotation, batch size).
// Both are immutable snapshots owned by the caller.
package model
