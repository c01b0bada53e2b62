// Package session saves review progress to disk and restores it later.
//
// A session records the folders, the naming parameters and every entry's
// identifier. On restore the automatic identifiers are recomputed by the
// sequence engine rather than trusted from the file, so a session saved
// with one tool version stays consistent with the propagation rules of the
// version that loads it; only the explicit, hand-edited identifiers are
// replayed verbatim.
package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/handiism/slide-renamer/internal/model"
	"github.com/handiism/slide-renamer/internal/sequence"
)

// EntryState is one entry's saved identifier.
type EntryState struct {
	SlidePath  string `json:"slide_path"`
	LabelPath  string `json:"label_path,omitempty"`
	Identifier []int  `json:"identifier,omitempty"`
	Explicit   bool   `json:"explicit"`
}

// NamingState is the saved identifier sequence configuration.
type NamingState struct {
	AmountPerSlide int    `json:"amount_per_slide"`
	SkipFactor     int    `json:"skip_factor"`
	Start          int    `json:"start"`
	Prefix         string `json:"prefix"`
	Extension      string `json:"extension"`
	PadWidth       int    `json:"pad_width"`
	Separator      string `json:"separator"`
}

// Session is a saved review in progress.
type Session struct {
	ID           string       `json:"id"`
	CreatedAt    time.Time    `json:"created_at"`
	SlideFolder  string       `json:"slide_folder"`
	OutputFolder string       `json:"output_folder,omitempty"`
	Naming       NamingState  `json:"naming"`
	Entries      []EntryState `json:"entries"`
}

// New creates an empty session for the given folders and configuration.
func New(slideFolder, outputFolder string, cfg *model.NamingConfig) *Session {
	return &Session{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now(),
		SlideFolder:  slideFolder,
		OutputFolder: outputFolder,
		Naming: NamingState{
			AmountPerSlide: cfg.AmountPerSlide,
			SkipFactor:     cfg.SkipFactor,
			Start:          cfg.Start,
			Prefix:         cfg.Prefix,
			Extension:      cfg.Extension,
			PadWidth:       cfg.PadWidth,
			Separator:      cfg.Separator,
		},
	}
}

// NamingConfig rebuilds the configuration the session was saved with.
func (s *Session) NamingConfig() *model.NamingConfig {
	return &model.NamingConfig{
		AmountPerSlide: s.Naming.AmountPerSlide,
		SkipFactor:     s.Naming.SkipFactor,
		Start:          s.Naming.Start,
		Prefix:         s.Naming.Prefix,
		Extension:      s.Naming.Extension,
		PadWidth:       s.Naming.PadWidth,
		Separator:      s.Naming.Separator,
	}
}

// Capture snapshots the work list's current identifiers into the session,
// replacing any previously captured entries.
func (s *Session) Capture(list *model.WorkList) {
	entries := list.Entries()
	s.Entries = make([]EntryState, 0, len(entries))
	for _, entry := range entries {
		s.Entries = append(s.Entries, EntryState{
			SlidePath:  entry.SlidePath,
			LabelPath:  entry.LabelPath,
			Identifier: append([]int(nil), entry.Identifier...),
			Explicit:   entry.Status == model.StatusExplicit,
		})
	}
}

// Restore re-numbers the work list from the session.
//
// The list is first populated by the sequence engine, then every saved
// explicit identifier is replayed onto the entry with the matching slide
// path, and the automatic entries downstream are re-propagated. Saved
// entries whose slides are no longer in the list are skipped; slides new
// to the list simply keep their automatic identifiers.
func (s *Session) Restore(list *model.WorkList) error {
	cfg := s.NamingConfig()
	if err := sequence.Initialize(list, cfg); err != nil {
		return err
	}

	explicit := make(map[string][]int, len(s.Entries))
	for _, state := range s.Entries {
		if state.Explicit {
			explicit[state.SlidePath] = state.Identifier
		}
	}

	for i, entry := range list.Entries() {
		numbers, ok := explicit[entry.SlidePath]
		if !ok {
			continue
		}
		if err := list.SetIdentifier(i, numbers, true); err != nil {
			return err
		}
	}

	// Re-derive the automatic entries from the replayed anchors.
	return sequence.Reconfigure(list, cfg)
}

// Save writes the session as JSON.
func (s *Session) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Load reads a session from a JSON file.
func Load(path string) (*Session, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	session := &Session{}
	if err := json.Unmarshal(data, session); err != nil {
		return nil, err
	}
	return session, nil
}
