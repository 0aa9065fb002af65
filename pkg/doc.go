// Package pkg provides the core libraries for chess shadow conversion.
//
// # Overview
//
// Chess converts the checkerboard-dithered shadows of legacy game sprites
// into real alpha transparency. The pkg directory is organized into three
// main areas:
//
//  1. Domain logic (raster buffers, shadow detection, image I/O)
//  2. Infrastructure (caching, errors, observability)
//  3. Orchestration (the conversion pipeline)
//
// # Architecture
//
// The typical data flow through chess:
//
//	BMP/PNG/GIF/JPEG/TIFF input
//	         ↓
//	    [raster] package (RGBA buffer + key-color pass)
//	         ↓
//	    [shadow] package (checkerboard detection + conversion)
//	         ↓
//	    [imgio] package (PNG encoding, atomic writes)
//	         ↓
//	    PNG output
//
// # Quick Start
//
// Convert a sprite with the pipeline runner:
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	defer runner.Close()
//	result, _ := runner.Execute(ctx, pipeline.Options{
//	    Input:    "sprite.bmp",
//	    KeyColor: pipeline.KeyColorWhite,
//	})
//
// Or work directly on a buffer:
//
//	b, _ := imgio.DecodeFile("sprite.bmp")
//	raster.KeyToAlpha(b, raster.White, 0)
//	n := shadow.Convert(b)
//
// # Main Packages
//
// [raster] - RGBA pixel buffers with row-major layout and the key-color
// transparency pass.
//
// [shadow] - Checkerboard shadow classification and the in-place
// conversion scan.
//
// [imgio] - Image decoding for the legacy sprite formats, PNG encoding
// and atomic file writes.
//
// [pipeline] - Complete conversion pipeline (decode → key → convert →
// encode) with content-addressed result caching.
//
// [cache] - File-based and null cache backends for conversion results.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Pluggable hooks for pipeline and cache events.
//
// [raster]: https://pkg.go.dev/github.com/dinktools/chess/pkg/raster
// [shadow]: https://pkg.go.dev/github.com/dinktools/chess/pkg/shadow
// [imgio]: https://pkg.go.dev/github.com/dinktools/chess/pkg/imgio
// [pipeline]: https://pkg.go.dev/github.com/dinktools/chess/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/dinktools/chess/pkg/cache
// [errors]: https://pkg.go.dev/github.com/dinktools/chess/pkg/errors
// [observability]: https://pkg.go.dev/github.com/dinktools/chess/pkg/observability
package pkg
