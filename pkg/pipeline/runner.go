package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/dinktools/chess/pkg/cache"
	"github.com/dinktools/chess/pkg/errors"
	"github.com/dinktools/chess/pkg/imgio"
	"github.com/dinktools/chess/pkg/observability"
)

// resultFormatVersion scopes cache keys to the cachedResult envelope
// layout. Bump it when the envelope changes so stale entries miss instead
// of unmarshaling into the wrong shape.
const resultFormatVersion = "v1:"

// Runner executes the conversion pipeline with caching.
type Runner struct {
	cache  cache.Cache
	keyer  cache.Keyer
	logger *log.Logger
}

// NewRunner creates a pipeline runner. A nil cache disables caching and a
// nil keyer falls back to the default key strategy scoped to the current
// result format version.
func NewRunner(c cache.Cache, k cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if k == nil {
		k = cache.NewScopedKeyer(cache.NewDefaultKeyer(), resultFormatVersion)
	}
	if logger == nil {
		logger = log.New(os.Stderr)
	}
	return &Runner{cache: c, keyer: k, logger: logger}
}

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.cache.Close()
}

// cachedResult is the JSON envelope stored in the conversion cache.
type cachedResult struct {
	PNG          []byte `json:"png"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	ShadowPixels int    `json:"shadow_pixels"`
}

// Execute runs the full pipeline for one input file: read, decode, key
// pass, convert, encode. Results are cached by input content hash and
// conversion options unless opts.NoCache is set.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	data, err := os.ReadFile(opts.Input)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err,
				"input file not found: %s", opts.Input)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err,
			"failed to read input: %s", opts.Input)
	}

	keyOpts := cache.ConvertKeyOpts{KeyColor: opts.KeyColor, Tolerance: opts.Tolerance}
	cacheKey := r.keyer.ConvertKey(cache.Hash(data), keyOpts)

	if !opts.NoCache {
		if cached, ok, err := r.cache.Get(ctx, cacheKey); err == nil && ok {
			var env cachedResult
			if err := json.Unmarshal(cached, &env); err == nil {
				observability.Cache().OnCacheHit(ctx, "convert")
				logger.Debug("conversion cache hit", "input", opts.Input, "key", cacheKey)
				return &Result{
					PNG:          env.PNG,
					Width:        env.Width,
					Height:       env.Height,
					ShadowPixels: env.ShadowPixels,
					CacheHit:     true,
				}, nil
			}
			// Corrupt entry: drop it and convert fresh.
			_ = r.cache.Delete(ctx, cacheKey)
		}
		observability.Cache().OnCacheMiss(ctx, "convert")
	}

	result, err := r.execute(ctx, opts, data, logger)
	if err != nil {
		return nil, err
	}

	if !opts.NoCache {
		env := cachedResult{
			PNG:          result.PNG,
			Width:        result.Width,
			Height:       result.Height,
			ShadowPixels: result.ShadowPixels,
		}
		if encoded, err := json.Marshal(env); err == nil {
			if err := r.cache.Set(ctx, cacheKey, encoded, TTLConvert); err != nil {
				logger.Debug("failed to cache conversion", "error", err)
			} else {
				observability.Cache().OnCacheSet(ctx, "convert", len(encoded))
			}
		}
	}

	return result, nil
}

// execute runs the uncached pipeline stages over the input bytes.
func (r *Runner) execute(ctx context.Context, opts Options, data []byte, logger *log.Logger) (*Result, error) {
	var stats Stats

	observability.Pipeline().OnDecodeStart(ctx, opts.Input)
	start := time.Now()
	buf, err := imgio.DecodeBytes(data)
	stats.DecodeTime = time.Since(start)
	if err != nil {
		observability.Pipeline().OnDecodeComplete(ctx, opts.Input, 0, 0, stats.DecodeTime, err)
		return nil, err
	}
	observability.Pipeline().OnDecodeComplete(ctx, opts.Input, buf.Width, buf.Height, stats.DecodeTime, nil)
	logger.Debug("decoded input", "input", opts.Input, "width", buf.Width, "height", buf.Height)

	key, err := ParseKeyColor(opts.KeyColor)
	if err != nil {
		return nil, err
	}

	observability.Pipeline().OnConvertStart(ctx, opts.Input)
	start = time.Now()
	shadowPixels := Convert(buf, key, opts.Tolerance)
	stats.ConvertTime = time.Since(start)
	observability.Pipeline().OnConvertComplete(ctx, opts.Input, shadowPixels, stats.ConvertTime, nil)
	logger.Debug("converted shadows", "input", opts.Input, "shadow_pixels", shadowPixels)

	observability.Pipeline().OnEncodeStart(ctx, opts.Input)
	start = time.Now()
	png, err := imgio.EncodePNGBytes(buf)
	stats.EncodeTime = time.Since(start)
	if err != nil {
		observability.Pipeline().OnEncodeComplete(ctx, opts.Input, 0, stats.EncodeTime, err)
		return nil, err
	}
	observability.Pipeline().OnEncodeComplete(ctx, opts.Input, len(png), stats.EncodeTime, nil)

	return &Result{
		PNG:          png,
		Width:        buf.Width,
		Height:       buf.Height,
		ShadowPixels: shadowPixels,
		Stats:        stats,
	}, nil
}
