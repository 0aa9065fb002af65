package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dinktools/chess/pkg/errors"
	"github.com/dinktools/chess/pkg/imgio"
	"github.com/dinktools/chess/pkg/pipeline"
)

// convertOpts holds the command-line flags for the convert command.
type convertOpts struct {
	output    string // explicit output path (single input only)
	outputDir string // directory for outputs (keeps input basenames)
	keyColor  string // transparency key: white, black, none
	tolerance int    // per-channel key match tolerance
	noCache   bool   // bypass the conversion cache
}

// convertCommand creates the convert command.
//
// Default settings come from the user config file when present:
//   - key color: white
//   - tolerance: 0 (exact match)
//   - caching: enabled
func (c *CLI) convertCommand() *cobra.Command {
	opts := convertOpts{
		outputDir: c.Config.OutputDir,
		keyColor:  c.Config.KeyColor,
		tolerance: c.Config.Tolerance,
		noCache:   c.Config.NoCache,
	}

	cmd := &cobra.Command{
		Use:   "convert [file...]",
		Short: "Convert checkerboard shadows to alpha transparency",
		Long: `Convert one or more sprite images with checkerboard-dithered shadows
into PNGs with real alpha transparency.

Fully opaque pixels surrounded by transparency in the checkerboard pattern
become half-opacity shadow pixels at half brightness, and their opaque
neighbors are softened to smooth the shadow edge. An optional key-color
pass first turns the background color (white by default) transparent.

Each input is written next to it as <name>.png unless --output or
--output-dir says otherwise. Results are cached by content, so unchanged
files convert instantly on subsequent runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateKeyColor(opts.keyColor); err != nil {
				return err
			}
			if opts.output != "" && len(args) > 1 {
				return errors.New(errors.ErrCodeInvalidOutput,
					"--output requires a single input file; use --output-dir for batches")
			}
			if len(args) == 1 {
				return c.runConvert(cmd.Context(), args[0], &opts)
			}
			return c.runConvertBatch(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single input only)")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", opts.outputDir, "directory for output files")
	cmd.Flags().StringVarP(&opts.keyColor, "key", "t", opts.keyColor, "transparency key color: white (default), black, none")
	cmd.Flags().IntVar(&opts.tolerance, "tolerance", opts.tolerance, "per-channel tolerance for the key color match")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", opts.noCache, "disable caching")

	return cmd
}

// outputFor resolves the output path for one input.
func (o *convertOpts) outputFor(input string) string {
	if o.output != "" {
		return o.output
	}
	if o.outputDir != "" {
		return filepath.Join(o.outputDir, filepath.Base(imgio.OutputPath(input)))
	}
	return imgio.OutputPath(input)
}

// runConvert converts a single input file with a spinner.
func (c *CLI) runConvert(ctx context.Context, input string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Converting %s...", input))
	spinner.Start()

	result, err := runner.Execute(ctx, pipeline.Options{
		Input:     input,
		KeyColor:  opts.keyColor,
		Tolerance: opts.tolerance,
		NoCache:   opts.noCache,
		Logger:    logger,
	})
	if err != nil {
		spinner.StopWithError("Conversion failed")
		return fmt.Errorf("convert %s: %w", input, err)
	}
	spinner.Stop()

	output := opts.outputFor(input)
	if err := imgio.WriteFileAtomic(output, result.PNG); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	printSuccess("Converted %s", input)
	printFile(output)
	printStats(result.Width, result.Height, result.ShadowPixels, result.CacheHit)
	printNextStep("Check the result", fmt.Sprintf("chess inspect %s", output))
	return nil
}

// runConvertBatch converts multiple inputs with live per-file progress.
// Failures on individual files do not abort the batch; the command exits
// non-zero if any file failed.
func (c *CLI) runConvertBatch(ctx context.Context, inputs []string, opts *convertOpts) error {
	logger := loggerFromContext(ctx)

	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(logger)

	results := runBatch(ctx, len(inputs), func(send func(batchResultMsg)) {
		for _, input := range inputs {
			res := batchResult{input: input, output: opts.outputFor(input)}

			r, err := runner.Execute(ctx, pipeline.Options{
				Input:     input,
				KeyColor:  opts.keyColor,
				Tolerance: opts.tolerance,
				NoCache:   opts.noCache,
				Logger:    logger,
			})
			if err == nil {
				err = imgio.WriteFileAtomic(res.output, r.PNG)
			}
			if err != nil {
				res.err = err
			} else {
				res.shadowPixels = r.ShadowPixels
				res.cacheHit = r.CacheHit
			}
			send(batchResultMsg(res))

			if ctx.Err() != nil {
				return
			}
		}
	})

	if ctx.Err() != nil {
		return ctx.Err()
	}

	converted, failed := 0, 0
	for _, res := range results {
		if res.err != nil {
			failed++
			printError("%s: %s", res.input, errors.UserMessage(res.err))
		} else {
			converted++
		}
	}

	prog.done(fmt.Sprintf("Converted %d of %d files", converted, len(inputs)))
	if failed > 0 {
		return errors.New(errors.ErrCodeInternal, "%d of %d conversions failed", failed, len(inputs))
	}
	return nil
}
