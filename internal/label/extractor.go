package label

import (
	"context"
	"fmt"
	"image"
	stddraw "image/draw"
	"image/jpeg"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/slide-renamer/internal/fsutil"
	"github.com/handiism/slide-renamer/internal/model"
)

// Result reports the outcome of extracting one slide's label image.
type Result struct {
	// SlidePath is the slide the result belongs to. When the slide was
	// quarantined this is its new path under the cannot-open folder.
	SlidePath string

	// LabelPath is the saved label image, "" on failure.
	LabelPath string

	// Direct reports whether the source supplied a direct label image
	// (no cropping was needed).
	Direct bool

	// Quarantined reports whether the slide was moved to the cannot-open
	// folder because no label imagery could be read.
	Quarantined bool

	// Err is the failure, nil on success.
	Err error
}

// Extractor produces review-ready label images for a batch of slides.
//
// For each slide the configured Source supplies either a direct label
// image or a macro overview; overviews are cropped to the configured label
// area first. Every image is then rotated by the configured angle,
// downscaled to the configured maximum size and saved as a JPEG next to
// the slides:
//
//	<folder>/label_image/<base>.jpg
//
// Slides whose imagery cannot be read are moved to the cannot-open folder
// so the review batch only contains workable files.
type Extractor struct {
	source Source
	cfg    *model.ExtractConfig
}

// NewExtractor creates an Extractor reading imagery from source.
func NewExtractor(source Source, cfg *model.ExtractConfig) *Extractor {
	return &Extractor{source: source, cfg: cfg}
}

// ExtractAll processes every slide, at most cfg.BatchSize concurrently.
//
// The returned results are in slide order, one per input. Per-slide
// failures are recorded in their Result and do not stop the batch; the
// returned error is non-nil only when the context is cancelled or the
// output folder cannot be created.
func (e *Extractor) ExtractAll(ctx context.Context, folder string, slides []string) ([]Result, error) {
	labelDir := filepath.Join(folder, e.cfg.LabelFolder)
	if err := fsutil.EnsureDir(labelDir); err != nil {
		return nil, err
	}

	limit := e.cfg.BatchSize
	if limit < 1 {
		limit = 1
	}

	results := make([]Result, len(slides))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, slide := range slides {
		i, slide := i, slide
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = e.extractOne(folder, labelDir, slide)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// extractOne reads, processes and saves the label image for a single
// slide, quarantining the slide when its imagery is unreadable.
func (e *Extractor) extractOne(folder, labelDir, slide string) Result {
	img, direct, err := e.source.LabelImage(slide)
	if err != nil {
		quarantine := filepath.Join(folder, e.cfg.CannotOpenFolder, filepath.Base(slide))
		if moveErr := fsutil.MoveFile(slide, quarantine); moveErr != nil {
			return Result{SlidePath: slide, Err: fmt.Errorf("%w (quarantine failed: %v)", err, moveErr)}
		}
		return Result{SlidePath: quarantine, Quarantined: true, Err: err}
	}

	processed := e.process(img, direct)

	base := strings.TrimSuffix(filepath.Base(slide), filepath.Ext(slide))
	labelPath := filepath.Join(labelDir, base+".jpg")
	if err := saveJPEG(labelPath, processed); err != nil {
		return Result{SlidePath: slide, Err: err}
	}

	return Result{SlidePath: slide, LabelPath: labelPath, Direct: direct}
}

// process applies the crop (macro overviews only), rotation and size cap.
func (e *Extractor) process(img image.Image, direct bool) image.Image {
	if !direct {
		img = Crop(img, e.cfg.Crop)
	}
	img = Rotate(img, e.cfg.RotationAngle)
	if e.cfg.MaxSize > 0 {
		img = Shrink(img, e.cfg.MaxSize, e.cfg.MaxSize)
	}
	return img
}

// Crop cuts the (x1, y1, x2, y2) rectangle out of img. The rectangle is
// clamped to the image bounds; a degenerate result falls back to the whole
// image.
func Crop(img image.Image, coords [4]int) image.Image {
	bounds := img.Bounds()
	rect := image.Rect(
		bounds.Min.X+coords[0],
		bounds.Min.Y+coords[1],
		bounds.Min.X+coords[2],
		bounds.Min.Y+coords[3],
	).Intersect(bounds)
	if rect.Empty() {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	stddraw.Draw(dst, dst.Bounds(), img, rect.Min, stddraw.Src)
	return dst
}

// Rotate turns img counter-clockwise by angle degrees. Only multiples of
// 90 are supported; other angles return the image unchanged.
func Rotate(img image.Image, angle int) image.Image {
	angle = ((angle % 360) + 360) % 360
	if angle == 0 {
		return img
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	var dst *image.RGBA
	switch angle {
	case 90:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	case 180:
		dst = image.NewRGBA(image.Rect(0, 0, w, h))
	case 270:
		dst = image.NewRGBA(image.Rect(0, 0, h, w))
	default:
		return img
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.At(bounds.Min.X+x, bounds.Min.Y+y)
			switch angle {
			case 90:
				dst.Set(y, w-1-x, c)
			case 180:
				dst.Set(w-1-x, h-1-y, c)
			case 270:
				dst.Set(h-1-y, x, c)
			}
		}
	}
	return dst
}

// Shrink downscales img to fit within maxWidth x maxHeight, preserving the
// aspect ratio. Images already within the limits are returned unchanged.
//
// The Catmull-Rom kernel is used for high-quality scaling.
func Shrink(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	if float64(maxWidth)/float64(maxHeight) > ratio {
		// Height is the limiting factor
		width = int(float64(maxHeight) * ratio)
		height = maxHeight
	} else {
		// Width is the limiting factor
		height = int(float64(maxWidth) / ratio)
		width = maxWidth
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}

// saveJPEG encodes img to path with quality 90.
func saveJPEG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: 90}); err != nil {
		return err
	}
	return f.Close()
}
