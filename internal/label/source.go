package label

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"
	"path/filepath"
	"strings"
)

// ErrNoLabelImage is returned when no label or macro overview can be found
// for a slide. The caller quarantines such slides instead of failing the
// whole batch.
var ErrNoLabelImage = errors.New("no label image available for slide")

// Source supplies the raw label imagery for a slide file.
//
// Implementations wrap whatever can produce an overview of the slide: a
// scanner's exported sidecar files, a slide-format reading library, or a
// remote service. The boolean result reports whether the image is a direct
// label (already just the label area, no cropping needed) as opposed to a
// macro overview of the whole slide that still contains tissue.
type Source interface {
	// LabelImage returns the label or macro image for the slide at path.
	LabelImage(path string) (img image.Image, direct bool, err error)
}

// SidecarSource reads scanner-exported sidecar images from disk.
//
// For a slide <base>.<ext> it looks for, in order:
//   - <base>.label.{jpg,jpeg,png}: a direct label image
//   - <base>.macro.{jpg,jpeg,png}: a whole-slide overview that needs the
//     label area cropped out
//
// Proprietary slide formats that embed their label images are read by
// other Source implementations; this one covers the common export layout
// without any native dependencies.
type SidecarSource struct{}

// sidecar image extensions, tried in order.
var sidecarExts = []string{".jpg", ".jpeg", ".png"}

// LabelImage implements Source.
func (SidecarSource) LabelImage(path string) (image.Image, bool, error) {
	base := strings.TrimSuffix(path, filepath.Ext(path))

	if img, err := decodeFirst(base + ".label"); err == nil {
		return img, true, nil
	}
	if img, err := decodeFirst(base + ".macro"); err == nil {
		return img, false, nil
	}
	return nil, false, fmt.Errorf("%w: %s", ErrNoLabelImage, filepath.Base(path))
}

// decodeFirst decodes the first existing stem+ext sidecar file.
func decodeFirst(stem string) (image.Image, error) {
	for _, ext := range sidecarExts {
		data, err := os.ReadFile(stem + ext)
		if err != nil {
			continue
		}
		img, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return img, nil
	}
	return nil, os.ErrNotExist
}
