// Package pipeline provides the core conversion pipeline for chess.
//
// This package implements the complete decode → key pass → convert →
// encode pipeline shared by the CLI commands. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Decode: Read the input raster file into an RGBA buffer
//  2. Key pass: Optionally turn the key color (white/black) into alpha 0
//  3. Convert: Rewrite checkerboard shadow pixels and fade their neighbors
//  4. Encode: Serialize the buffer as PNG
//
// Conversions are deterministic, so the Runner caches encoded results
// keyed by input content hash plus options; re-running over an unchanged
// sprite directory is nearly free.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Input:    "sprite.bmp",
//	    KeyColor: pipeline.KeyColorWhite,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	png := result.PNG
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/dinktools/chess/pkg/errors"
	"github.com/dinktools/chess/pkg/raster"
	"github.com/dinktools/chess/pkg/shadow"
)

// =============================================================================
// Defaults and Key Colors
// =============================================================================

// Key color selector values for the transparency pre-pass.
const (
	KeyColorWhite = "white"
	KeyColorBlack = "black"
	KeyColorNone  = "none"
)

// DefaultKeyColor is the key applied when none is chosen explicitly.
// White backgrounds are what the legacy sprite sheets overwhelmingly use.
const DefaultKeyColor = KeyColorWhite

// TTLConvert is the cache lifetime for conversion results. Keys are
// content-addressed, so entries never go stale; they are kept until the
// cache is cleared.
const TTLConvert = time.Duration(0)

// ValidKeyColors is the set of recognized key color selectors.
var ValidKeyColors = map[string]bool{
	KeyColorWhite: true,
	KeyColorBlack: true,
	KeyColorNone:  true,
}

// ValidateKeyColor checks that a key color selector is valid.
func ValidateKeyColor(name string) error {
	if !ValidKeyColors[name] {
		return errors.New(errors.ErrCodeInvalidColor,
			"invalid key color: %q (must be one of: white, black, none)", name)
	}
	return nil
}

// ParseKeyColor maps a selector to the RGB triple it keys out.
// KeyColorNone returns nil, meaning the pre-pass is skipped.
func ParseKeyColor(name string) (*raster.RGB, error) {
	switch name {
	case KeyColorWhite:
		c := raster.White
		return &c, nil
	case KeyColorBlack:
		c := raster.Black
		return &c, nil
	case KeyColorNone:
		return nil, nil
	default:
		return nil, ValidateKeyColor(name)
	}
}

// =============================================================================
// Options
// =============================================================================

// Options contains all configuration for a single conversion.
type Options struct {
	// Input is the path of the raster file to convert.
	Input string `json:"input"`

	// KeyColor selects the transparency pre-pass: white, black or none.
	// Empty defaults to white.
	KeyColor string `json:"key_color,omitempty"`

	// Tolerance is the per-channel tolerance of the key match.
	Tolerance int `json:"tolerance,omitempty"`

	// NoCache bypasses the conversion result cache.
	NoCache bool `json:"no_cache,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// This method is idempotent - calling it multiple times has the same effect
// as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input path is required")
	}
	if o.KeyColor == "" {
		o.KeyColor = DefaultKeyColor
	}
	if err := ValidateKeyColor(o.KeyColor); err != nil {
		return err
	}
	if o.Tolerance < 0 {
		return errors.New(errors.ErrCodeInvalidTolerance,
			"tolerance must be >= 0, got %d", o.Tolerance)
	}
	o.validated = true
	return nil
}

// =============================================================================
// Result
// =============================================================================

// Result contains the outputs of a pipeline run.
type Result struct {
	// PNG is the encoded output image.
	PNG []byte

	// Width and Height are the image dimensions.
	Width  int
	Height int

	// ShadowPixels is the number of checkerboard pixels converted.
	ShadowPixels int

	// CacheHit reports whether the result came from the cache.
	CacheHit bool

	// Stats contains timing information. Zero on cache hits.
	Stats Stats
}

// Stats contains pipeline execution timings.
type Stats struct {
	DecodeTime  time.Duration
	ConvertTime time.Duration
	EncodeTime  time.Duration
}

// =============================================================================
// Buffer-level Conversion
// =============================================================================

// Convert applies the full conversion to an in-memory buffer: the
// key-color pass when key is non-nil, then the checkerboard-to-alpha
// converter. It returns the number of shadow pixels converted.
//
// This is the library entry point for callers that manage their own
// decoding; the Runner wraps it with file I/O and caching.
func Convert(b *raster.Buffer, key *raster.RGB, tolerance int) int {
	if key != nil {
		raster.KeyToAlpha(b, *key, tolerance)
	}
	return shadow.Convert(b)
}
