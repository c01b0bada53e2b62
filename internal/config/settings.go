package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/handiism/slide-renamer/internal/model"
)

// Settings holds all configuration options.
type Settings struct {
	// Folder settings
	SlideFolder  string `json:"slide_folder"`
	OutputFolder string `json:"output_folder"`

	// Naming settings
	Prefix         string `json:"prefix"`
	Extension      string `json:"extension"`
	AmountPerSlide int    `json:"amount_per_slide"`
	SkipFactor     int    `json:"skip_factor"`
	Start          int    `json:"start"`
	PadWidth       int    `json:"pad_width"`
	Separator      string `json:"separator"`

	// Label extraction settings
	CropCoords       [4]int `json:"crop_coords"`
	RotationAngle    int    `json:"rotation_angle"`
	LabelMaxSize     int    `json:"label_max_size"`
	BatchSize        int    `json:"batch_size"`
	LabelFolder      string `json:"label_folder"`
	CannotOpenFolder string `json:"cannot_open_folder"`

	// Scan settings
	SupportedExtensions []string `json:"supported_extensions"`
	SkipPrefixes        []string `json:"skip_prefixes"`

	// Rename settings
	DuplicateSuffix string `json:"duplicate_suffix"`
	LogFilename     string `json:"log_filename"`
}

// DefaultSettings returns settings with default values.
//
// The defaults match the lab's standard workflow: identifiers of two
// numbers per slide with one value skipped between slides, three-digit
// zero padding, a 270 degree label rotation and the (10, 13, 578, 732)
// crop preset for macro overview images.
func DefaultSettings() *Settings {
	return &Settings{
		Prefix:         "KPC12-1_",
		Extension:      ".ndpi",
		AmountPerSlide: 2,
		SkipFactor:     1,
		Start:          1,
		PadWidth:       3,
		Separator:      "_",

		CropCoords:       [4]int{10, 13, 578, 732},
		RotationAngle:    270,
		LabelMaxSize:     1000,
		BatchSize:        4,
		LabelFolder:      "label_image",
		CannotOpenFolder: "cannot_open",

		SupportedExtensions: []string{".svs", ".ndpi", ".scn", ".vms", ".vmu", ".mrxs"},
		SkipPrefixes:        []string{".", "T"},

		DuplicateSuffix: "_b",
		LogFilename:     "renaming_log.csv",
	}
}

// Load reads settings from a JSON file.
//
// A missing file is not an error: defaults are returned so the tool works
// out of the box.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	if err := json.Unmarshal(data, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to a JSON file.
func (s *Settings) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// AutoPrefix derives a prefix from the slide folder name, e.g. selecting
// /data/KPC12-1 yields "KPC12-1_". Returns the current prefix when the
// folder name is unusable.
func (s *Settings) AutoPrefix() string {
	name := filepath.Base(filepath.Clean(s.SlideFolder))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return s.Prefix
	}
	if strings.HasSuffix(name, "_") {
		return name
	}
	return name + "_"
}

// ToNamingConfig converts settings to a NamingConfig snapshot.
func (s *Settings) ToNamingConfig() *model.NamingConfig {
	return &model.NamingConfig{
		AmountPerSlide: s.AmountPerSlide,
		SkipFactor:     s.SkipFactor,
		Start:          s.Start,
		Prefix:         s.Prefix,
		Extension:      s.Extension,
		PadWidth:       s.PadWidth,
		Separator:      s.Separator,
	}
}

// ToExtractConfig converts settings to an ExtractConfig snapshot.
func (s *Settings) ToExtractConfig() *model.ExtractConfig {
	return &model.ExtractConfig{
		Crop:             s.CropCoords,
		RotationAngle:    s.RotationAngle,
		MaxSize:          s.LabelMaxSize,
		BatchSize:        s.BatchSize,
		LabelFolder:      s.LabelFolder,
		CannotOpenFolder: s.CannotOpenFolder,
	}
}
