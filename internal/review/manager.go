package review

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/handiism/slide-renamer/internal/config"
	"github.com/handiism/slide-renamer/internal/label"
	"github.com/handiism/slide-renamer/internal/model"
	"github.com/handiism/slide-renamer/internal/rename"
	"github.com/handiism/slide-renamer/internal/scan"
	"github.com/handiism/slide-renamer/internal/sequence"
	"github.com/handiism/slide-renamer/internal/session"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a progress update from the manager.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Row is one entry projected for display.
type Row struct {
	Index       int
	SlideName   string
	LabelPath   string
	Identifier  string
	NewFilename string
	Explicit    bool
}

// Manager coordinates a batch review: scanning the slide folder,
// extracting label images, numbering the batch, applying identifier edits
// and finally committing the renames.
type Manager struct {
	settings  *config.Settings
	scanner   *scan.Scanner
	extractor *label.Extractor
	planner   *rename.Planner
	executor  *rename.Executor

	list   *model.WorkList
	naming *model.NamingConfig

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewManager creates a review Manager. The source supplies label imagery
// during extraction; onProgress may be nil.
func NewManager(settings *config.Settings, source label.Source, onProgress func(ProgressEvent)) *Manager {
	return &Manager{
		settings:  settings,
		scanner:   scan.NewScanner(settings.SupportedExtensions, settings.SkipPrefixes),
		extractor: label.NewExtractor(source, settings.ToExtractConfig()),
		planner: &rename.Planner{
			OutputDir:       settings.OutputFolder,
			DuplicateSuffix: settings.DuplicateSuffix,
		},
		executor:   rename.NewExecutor(settings.LogFilename),
		naming:     settings.ToNamingConfig(),
		onProgress: onProgress,
	}
}

// LoadBatch scans the slide folder and numbers the batch.
//
// With extract set, label images are produced first; slides that get
// quarantined during extraction are excluded from the batch so the review
// only shows workable files.
func (m *Manager) LoadBatch(ctx context.Context, extract bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	folder := m.settings.SlideFolder
	descs, err := m.scanner.Scan(folder, m.settings.LabelFolder)
	if err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Found %d slide files in %s", len(descs), folder), Level: LevelInfo})

	if extract {
		descs, err = m.extractLabels(ctx, folder, descs)
		if err != nil {
			return err
		}
	}

	list, err := model.NewWorkList(descs, m.naming.AmountPerSlide)
	if err != nil {
		return err
	}
	if err := sequence.Initialize(list, m.naming); err != nil {
		return err
	}

	m.list = list
	m.progress(ProgressEvent{Message: fmt.Sprintf("Numbered %d slides starting at %d", list.Len(), m.naming.Start), Level: LevelSuccess})
	return nil
}

// extractLabels runs label extraction and returns the descriptors that
// survive it, with their label paths filled in.
func (m *Manager) extractLabels(ctx context.Context, folder string, descs []model.SourceDescriptor) ([]model.SourceDescriptor, error) {
	m.progress(ProgressEvent{Message: fmt.Sprintf("Extracting label images for %d slides", len(descs)), Level: LevelInfo})

	slides := make([]string, len(descs))
	for i, d := range descs {
		slides[i] = d.SlidePath
	}

	results, err := m.extractor.ExtractAll(ctx, folder, slides)
	if err != nil {
		return nil, err
	}

	kept := descs[:0]
	for i, result := range results {
		switch {
		case result.Quarantined:
			m.progress(ProgressEvent{Message: fmt.Sprintf("Cannot open %s, moved to %s", filepath.Base(slides[i]), m.settings.CannotOpenFolder), Level: LevelWarning})
		case result.Err != nil:
			m.progress(ProgressEvent{Message: fmt.Sprintf("Label extraction failed for %s: %v", filepath.Base(slides[i]), result.Err), Level: LevelError})
			kept = append(kept, descs[i])
		default:
			descs[i].LabelPath = result.LabelPath
			kept = append(kept, descs[i])
			m.progress(ProgressEvent{Message: fmt.Sprintf("Extracted label for %s", filepath.Base(slides[i])), Level: LevelVerbose})
		}
	}
	return kept, nil
}

// Edit overrides one entry's identifier with hand-typed text and
// propagates new automatic values forward up to the next hand-edited
// entry. The text may use the configured separator, spaces, or no
// separator at all when the digit count is unambiguous.
func (m *Manager) Edit(index int, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.list == nil {
		return model.ErrEmptyBatch
	}
	if err := sequence.ApplyEdit(m.list, m.naming, index, text); err != nil {
		return err
	}

	entry, err := m.list.Get(index)
	if err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Entry %d set to %s", index, entry.IdentifierString(m.naming)), Level: LevelVerbose})
	return nil
}

// Reconfigure swaps the naming parameters mid-review, renumbering the
// automatic entries while keeping every hand-edited identifier.
func (m *Manager) Reconfigure(cfg *model.NamingConfig) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.list != nil {
		if err := sequence.Reconfigure(m.list, cfg); err != nil {
			return err
		}
	}
	m.naming = cfg
	return nil
}

// Rows projects the batch for display. Filenames are computed fresh on
// every call so they always reflect the current configuration.
func (m *Manager) Rows() []Row {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.list == nil {
		return nil
	}
	entries := m.list.Entries()
	rows := make([]Row, len(entries))
	for i, entry := range entries {
		rows[i] = Row{
			Index:       entry.Index,
			SlideName:   filepath.Base(entry.SlidePath),
			LabelPath:   entry.LabelPath,
			Identifier:  entry.IdentifierString(m.naming),
			NewFilename: entry.NewFilename(m.naming),
			Explicit:    entry.Status == model.StatusExplicit,
		}
	}
	return rows
}

// Preview computes the rename plan without touching the filesystem.
func (m *Manager) Preview() (*rename.Plan, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.list == nil {
		return nil, model.ErrEmptyBatch
	}
	return m.planner.BuildPlan(m.list, m.naming)
}

// Commit plans and executes the renames.
func (m *Manager) Commit(ctx context.Context) ([]rename.ExecResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.list == nil {
		return nil, model.ErrEmptyBatch
	}
	plan, err := m.planner.BuildPlan(m.list, m.naming)
	if err != nil {
		return nil, err
	}

	m.progress(ProgressEvent{Message: fmt.Sprintf("Renaming %d slides into %s", len(plan.Actions), plan.OutputDir), Level: LevelInfo})
	results, err := m.executor.Execute(ctx, plan)
	if err != nil {
		return results, err
	}

	failed := 0
	for _, result := range results {
		if result.Err != nil {
			failed++
			m.progress(ProgressEvent{Message: fmt.Sprintf("Failed to rename %s: %v", filepath.Base(result.Action.SlideSource), result.Err), Level: LevelError})
		}
	}
	if failed == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Renamed %d slides", len(results)), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Renamed %d slides, %d failed", len(results)-failed, failed), Level: LevelWarning})
	}
	return results, nil
}

// SaveSession snapshots the review into a session file.
func (m *Manager) SaveSession(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.list == nil {
		return model.ErrEmptyBatch
	}
	sess := session.New(m.settings.SlideFolder, m.settings.OutputFolder, m.naming)
	sess.Capture(m.list)
	if err := sess.Save(path); err != nil {
		return err
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Session saved to %s", path), Level: LevelSuccess})
	return nil
}

// RestoreSession scans the slide folder and replays a saved session's
// hand-edited identifiers onto the current batch.
func (m *Manager) RestoreSession(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, err := session.Load(path)
	if err != nil {
		return err
	}

	descs, err := m.scanner.Scan(m.settings.SlideFolder, m.settings.LabelFolder)
	if err != nil {
		return err
	}
	list, err := model.NewWorkList(descs, sess.Naming.AmountPerSlide)
	if err != nil {
		return err
	}
	if err := sess.Restore(list); err != nil {
		return err
	}

	m.list = list
	m.naming = sess.NamingConfig()
	m.progress(ProgressEvent{Message: fmt.Sprintf("Restored session %s (%d slides)", sess.ID, list.Len()), Level: LevelSuccess})
	return nil
}

// Len returns the number of entries in the batch, 0 before LoadBatch.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.list == nil {
		return 0
	}
	return m.list.Len()
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
