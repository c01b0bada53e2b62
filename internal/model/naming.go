package model

// NamingConfig holds the identifier sequence parameters.
//
// The configuration is owned by the caller and treated as immutable during
// a propagation pass; the sequence engine's Reconfigure operation is the
// only sanctioned way to swap it mid-session.
//
// Example: AmountPerSlide=2, SkipFactor=1, Start=1 numbers three slides as
// 001_002, 004_005, 007_008 (003 and 006 are skipped values).
type NamingConfig struct {
	// AmountPerSlide is the count of numbers composing one identifier.
	// Must be >= 1.
	AmountPerSlide int

	// SkipFactor is the count of integer values intentionally left unused
	// between the last number of one entry and the first number of the
	// next. Must be >= 0. It counts values skipped, not entries.
	SkipFactor int

	// Start is the first number assigned to the first entry. Must be >= 0.
	// Default 1.
	Start int

	// Prefix is prepended to every generated filename, e.g. "KPC12-1_".
	Prefix string

	// Extension is the target file extension including the dot,
	// e.g. ".ndpi".
	Extension string

	// PadWidth is the minimum digit width per number. Numbers wider than
	// PadWidth render at full width. Default 3.
	PadWidth int

	// Separator joins the numbers of one identifier. Default "_".
	Separator string
}

// Validate reports whether the configuration is usable.
func (c *NamingConfig) Validate() error {
	if c.AmountPerSlide < 1 {
		return ErrInvalidValue
	}
	if c.SkipFactor < 0 {
		return ErrInvalidValue
	}
	if c.Start < 0 {
		return ErrInvalidValue
	}
	if c.PadWidth < 1 {
		return ErrInvalidValue
	}
	return nil
}

// ExtractConfig holds the label extraction parameters.
type ExtractConfig struct {
	// Crop is the rectangle (X1, Y1, X2, Y2) cut from macro overview
	// images before rotation. Ignored for direct label images.
	Crop [4]int

	// RotationAngle is the counter-clockwise rotation applied to every
	// label image, in degrees. Must be a multiple of 90.
	RotationAngle int

	// MaxSize caps the width and height of saved label images, in
	// pixels. Larger images are downscaled preserving aspect ratio;
	// 0 disables the cap.
	MaxSize int

	// BatchSize is the number of slides processed concurrently.
	BatchSize int

	// LabelFolder is the subfolder (under the slide folder) that receives
	// extracted label images.
	LabelFolder string

	// CannotOpenFolder is the subfolder that quarantines slides whose
	// label could not be read.
	CannotOpenFolder string
}
