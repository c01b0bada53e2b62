package rename

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/slide-renamer/internal/fsutil"
	"github.com/handiism/slide-renamer/internal/model"
)

// Action is one planned rename: a slide move plus, when the slide has an
// extracted label image, the matching label move.
type Action struct {
	// Index is the entry's position in the reviewed batch.
	Index int

	// Identifier is the entry's identifier string, for display.
	Identifier string

	// SlideSource and SlideTarget are the slide's current and new paths.
	SlideSource string
	SlideTarget string

	// LabelSource and LabelTarget are the label image's current and new
	// paths, "" when the slide has no label image.
	LabelSource string
	LabelTarget string
}

// Plan is the full set of renames for a batch, computed before anything
// touches the filesystem so the whole batch can be previewed and the name
// collisions are resolved deterministically.
type Plan struct {
	OutputDir string
	Actions   []Action
}

// Planner builds rename plans.
type Planner struct {
	// OutputDir receives the renamed slides. When "" the slides are
	// renamed in place.
	OutputDir string

	// DuplicateSuffix disambiguates colliding target names: the first
	// duplicate gets the suffix, later ones get the suffix plus a counter
	// ("_b", "_b2", "_b3", ...).
	DuplicateSuffix string
}

// BuildPlan computes the rename actions for every entry in the list.
//
// Target names are taken against both the output folder's current contents
// and the names already claimed earlier in the plan, so two entries that
// resolve to the same filename never overwrite each other. A slide with a
// label image additionally reserves the paired label name in the label
// folder; when either name is occupied the duplicate suffix is applied to
// both so the stems stay matched. Entries without an identifier fail the
// whole plan; a partially numbered batch is not committable.
func (p *Planner) BuildPlan(list *model.WorkList, cfg *model.NamingConfig) (*Plan, error) {
	entries := list.Entries()

	outputDir := p.OutputDir
	if outputDir == "" && len(entries) > 0 {
		outputDir = filepath.Dir(entries[0].SlidePath)
	}

	taken, err := existingNames(outputDir)
	if err != nil {
		return nil, err
	}
	labelTaken := make(map[string]map[string]bool)

	plan := &Plan{OutputDir: outputDir}
	for _, entry := range entries {
		filename := entry.NewFilename(cfg)
		if filename == "" {
			return nil, fmt.Errorf("entry %d (%s): %w",
				entry.Index, filepath.Base(entry.SlidePath), model.ErrInvalidValue)
		}
		filename = fsutil.SanitizeFileName(filename)

		var labels map[string]bool
		if entry.LabelPath != "" {
			labelDir := filepath.Dir(entry.LabelPath)
			labels = labelTaken[labelDir]
			if labels == nil {
				labels, err = existingNames(labelDir)
				if err != nil {
					return nil, err
				}
				labelTaken[labelDir] = labels
			}
		}

		filename = p.deduplicate(filename, func(name string) bool {
			if taken[strings.ToLower(name)] {
				return false
			}
			return labels == nil || !labels[strings.ToLower(labelName(name))]
		})
		taken[strings.ToLower(filename)] = true

		action := Action{
			Index:       entry.Index,
			Identifier:  entry.IdentifierString(cfg),
			SlideSource: entry.SlidePath,
			SlideTarget: filepath.Join(outputDir, filename),
		}
		if entry.LabelPath != "" {
			action.LabelSource = entry.LabelPath
			action.LabelTarget = filepath.Join(filepath.Dir(entry.LabelPath), labelName(filename))
			labels[strings.ToLower(labelName(filename))] = true
		}
		plan.Actions = append(plan.Actions, action)
	}

	return plan, nil
}

// labelName maps a slide filename to its paired label image name.
func labelName(filename string) string {
	return strings.TrimSuffix(filename, filepath.Ext(filename)) + ".jpg"
}

// deduplicate appends the duplicate suffix (and a counter from the second
// duplicate on) until free accepts the name. Matching is case-insensitive
// so the plan is safe on case-preserving filesystems.
func (p *Planner) deduplicate(filename string, free func(string) bool) string {
	if free(filename) {
		return filename
	}

	ext := filepath.Ext(filename)
	stem := strings.TrimSuffix(filename, ext)
	for i := 1; ; i++ {
		suffix := p.DuplicateSuffix
		if i > 1 {
			suffix = fmt.Sprintf("%s%d", p.DuplicateSuffix, i)
		}
		candidate := stem + suffix + ext
		if free(candidate) {
			return candidate
		}
	}
}

// existingNames lists the output folder's current filenames, lowercased.
// A folder that does not exist yet is simply empty.
func existingNames(dir string) (map[string]bool, error) {
	taken := make(map[string]bool)

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return taken, nil
		}
		return nil, err
	}
	for _, de := range dirEntries {
		taken[strings.ToLower(de.Name())] = true
	}
	return taken, nil
}
