// Package label extracts review-ready label images from slide files.
//
// A Source supplies the raw imagery for each slide; the Extractor crops,
// rotates, downscales and saves it as a JPEG under the slide folder, and
// quarantines slides whose imagery cannot be read.
package label
