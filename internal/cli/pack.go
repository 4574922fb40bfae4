package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/photopack/pkg/errors"
	"github.com/matzehuels/photopack/pkg/pack/ordering"
	"github.com/matzehuels/photopack/pkg/pipeline"
)

// packFlags holds the command-line flags shared by pack and view.
type packFlags struct {
	formats  string // comma-separated output formats
	output   string // output file (single format) or base path
	noCache  bool   // disable caching
	redisURL string // shared cache instead of the local file cache
}

// bindPackFlags registers the packing flags on cmd.
func bindPackFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().IntVar(&opts.Width, "width", 0, fmt.Sprintf("canvas width (default: manifest width, else %d)", pipeline.DefaultWidth))
	cmd.Flags().StringVar(&opts.Ordering, "ordering", "", fmt.Sprintf("ordering heuristic: %v (default %s)", ordering.Names(), pipeline.DefaultOrdering))
	cmd.Flags().IntVar(&opts.Scale, "scale", 0, "print one text cell per N×N block")
	cmd.Flags().StringVar(&opts.Placeholder, "placeholder", "", "marker for empty text cells (default ---)")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "ignore cached results")
}

// packCommand creates the pack command.
func (c *CLI) packCommand() *cobra.Command {
	var flags packFlags
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "pack [photos.json|photos.toml]",
		Short: "Pack a photo manifest onto a fixed-width canvas",
		Long: `Pack a photo manifest onto a fixed-width canvas.

Photos are placed tallest first, each at the lowest free position that fits
its width (leftmost on ties). The result is written as a text grid (one
photo id or placeholder per cell) and/or a JSON placement document.

With a single format and no --output the result goes to stdout. With several
formats, files named after the manifest (or --output) are written.

Results are cached locally; use --redis-url to share a cache between machines.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Manifest = args[0]
			opts.Formats = parseFormats(flags.formats)
			if err := errors.ValidatePath(opts.Manifest); err != nil {
				return err
			}
			return c.runPack(cmd.Context(), opts, flags)
		},
	}

	bindPackFlags(cmd, &opts)
	cmd.Flags().StringVarP(&flags.formats, "format", "f", "", "output format(s): text (default), json (comma-separated)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&opts.Skyline, "skyline", false, "include final skyline segments in JSON output")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&flags.redisURL, "redis-url", "", "use a shared Redis cache (e.g. redis://localhost:6379/0)")

	return cmd
}

// runPack executes the pipeline and writes the artifacts.
func (c *CLI) runPack(ctx context.Context, opts pipeline.Options, flags packFlags) error {
	c.Config.apply(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, flags.noCache, c.Config.redisURL(flags.redisURL))
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	toStdout := flags.output == "" && len(opts.Formats) == 1
	var spinner *Spinner
	if !toStdout {
		spinner = newSpinnerWithContext(ctx, fmt.Sprintf("Loading %s...", opts.Manifest))
		defer trackStages(spinner)()
		spinner.Start()
	}

	prog := newProgress(loggerFromContext(ctx))
	result, err := runner.Execute(ctx, opts)
	if err != nil {
		if spinner != nil {
			spinner.StopWithError("Packing failed")
		}
		reportPackError(err)
		return err
	}
	if spinner != nil {
		spinner.Stop()
	}
	prog.done(fmt.Sprintf("Packed %d photos", result.Stats.PhotoCount))

	if toStdout {
		_, err := os.Stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	written, err := writeArtifacts(result.Artifacts, opts.Formats, opts.Manifest, flags.output)
	if err != nil {
		return err
	}

	printSuccess("Packed %s", opts.Manifest)
	printStats(result.Stats.PhotoCount, result.Stats.Width, result.Stats.Height, result.Stats.Coverage, result.CacheInfo.PackHit)
	for _, path := range written {
		printFile(path)
	}
	printNextStep("Browse the grid", fmt.Sprintf("%s view %s", appName, opts.Manifest))
	return nil
}

// reportPackError prints a short explanation for coded packing failures.
func reportPackError(err error) {
	switch {
	case errors.Is(err, errors.ErrCodeOversizedPhoto):
		printError("%s", errors.UserMessage(err))
		printDetail("Increase --width or remove the photo from the manifest")
	case errors.IsInternal(err):
		printError("internal error while packing; please report this with the manifest")
	}
}

// writeArtifacts writes each rendered format to its own file and returns the
// paths written, in format order.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := make([]string, 0, len(formats))
	for _, format := range formats {
		path := output
		if len(formats) > 1 || path == "" {
			path = basePath(output, input) + "." + fileExt(format)
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
