package cli

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/mgpai22/srtstitch/internal/merge"
	"github.com/mgpai22/srtstitch/internal/subtitle"
	"github.com/mgpai22/srtstitch/internal/timecode"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [fragment...]",
	Short: "Merge per-chunk subtitles into one timeline",
	Long: `Merge subtitle fragments transcribed from overlapping chunks.

Fragments are merged in the order given. Each one is a path, optionally
followed by the window and overlap it was cut with, as minutes or Go
durations: path:window:overlap. Fragments without their own values use
--window and --overlap. Alternatively list them in a YAML manifest, or let
--from-names read the values from chunk_NNN_SSS-EEEmin file names.

Examples:
  srtstitch merge chunks/*.srt --from-names -o talk.srt
  srtstitch merge a.srt:10:1 b.srt:10:1 c.srt:10:1
  srtstitch merge --manifest fragments.yaml --format vtt`,
	RunE: runMerge,
}

func init() {
	rootCmd.AddCommand(mergeCmd)

	mergeCmd.Flags().
		StringP("output", "o", "", "Output file (default merged.<format>)")
	mergeCmd.Flags().
		StringP("format", "f", "srt", "Output subtitle format (srt, vtt, ass); defaults to the -o extension")
	mergeCmd.Flags().
		StringP("manifest", "m", "", "YAML manifest listing the fragments")
	mergeCmd.Flags().
		Bool("from-names", false, "Infer window and overlap from chunk file names")
	mergeCmd.Flags().
		IntP("window", "w", 10, "Default window length in minutes")
	mergeCmd.Flags().
		Int("overlap", 1, "Default overlap in minutes")
	mergeCmd.Flags().
		String("cutoff", "window-boundary", "Overlap cutoff policy (window-boundary, first-entry, last-entry)")
}

func runMerge(cmd *cobra.Command, args []string) error {
	manifestPath, _ := cmd.Flags().GetString("manifest")
	fromNames, _ := cmd.Flags().GetBool("from-names")
	outputPath, _ := cmd.Flags().GetString("output")
	formatStr, _ := cmd.Flags().GetString("format")
	policyStr := stringFlagOr(cmd, "cutoff", cfg.Merge.CutoffPolicy)

	defaults := merge.Source{
		Window:  minutesFlagOr(cmd, "window", cfg.Window()),
		Overlap: minutesFlagOr(cmd, "overlap", cfg.Overlap()),
	}

	format, err := outputFormat(formatStr, cmd.Flags().Changed("format"), outputPath, cfg.Merge.Format)
	if err != nil {
		return err
	}
	policy, err := merge.ParseCutoffPolicy(policyStr)
	if err != nil {
		return err
	}

	sources, err := resolveSources(args, manifestPath, fromNames, defaults)
	if err != nil {
		return err
	}

	if outputPath == "" {
		outputPath = "merged" + subtitle.GetExtensionForFormat(format)
	}

	logger.Infow("Starting merge",
		"fragments", len(sources),
		"output", outputPath,
		"format", format,
		"cutoff", policy,
	)

	bar := newProgress("Merging fragments")
	merger := &merge.Merger{
		Policy: policy,
		Logger: logger,
		Progress: func(p merge.Progress) {
			bar.step(p.Total)
		},
	}

	result, err := merger.MergeFiles(commandContext(cmd), sources, outputPath, format)
	bar.finish()
	if err != nil {
		return fmt.Errorf("merge failed: %w", err)
	}

	if result.Skipped > 0 {
		logger.Warnw("Some subtitle blocks could not be parsed and were skipped",
			"skipped", result.Skipped,
		)
	}

	absOutput, _ := filepath.Abs(result.Output)
	fmt.Printf("Merged %s entries from %d fragments: %s\n",
		humanize.Comma(int64(result.Entries)), result.Fragments, absOutput)
	return nil
}

// outputFormat picks the merge output format: an explicit --format wins,
// then the extension of -o, then the configured default.
func outputFormat(flagValue string, flagSet bool, output, configured string) (subtitle.Format, error) {
	switch {
	case flagSet:
		return subtitle.ParseFormat(strings.ToLower(flagValue))
	case filepath.Ext(output) != "":
		return subtitle.GetFormatFromExtension(output), nil
	}
	return subtitle.ParseFormat(strings.ToLower(configured))
}

// resolveSources picks the fragment list from a manifest, from chunk
// names, or from path[:window:overlap] arguments.
func resolveSources(args []string, manifestPath string, fromNames bool, defaults merge.Source) ([]merge.Source, error) {
	switch {
	case manifestPath != "":
		if len(args) > 0 {
			return nil, errors.New("fragments cannot be given both as arguments and in a manifest")
		}
		return merge.LoadManifest(manifestPath)
	case len(args) == 0:
		return nil, errors.New("no fragments given: pass subtitle files or --manifest")
	case fromNames:
		return merge.SourcesFromChunkNames(args)
	}

	sources := make([]merge.Source, len(args))
	for i, arg := range args {
		src, err := parseFragmentArg(arg, defaults)
		if err != nil {
			return nil, err
		}
		sources[i] = src
	}
	return sources, nil
}

// parseFragmentArg reads path, path:window or path:window:overlap. Anything
// after the path must parse as a length, so paths containing colons still
// work.
func parseFragmentArg(arg string, defaults merge.Source) (merge.Source, error) {
	src := merge.Source{Path: arg, Window: defaults.Window, Overlap: defaults.Overlap}

	parts := strings.Split(arg, ":")
	lengths := lo.Map(parts[1:], func(p string, _ int) *timecode.Millis {
		v, err := parseLength(p)
		if err != nil {
			return nil
		}
		return &v
	})

	switch n := len(parts); {
	case n >= 3 && lengths[n-3] != nil && lengths[n-2] != nil:
		src.Path = strings.Join(parts[:n-2], ":")
		src.Window, src.Overlap = *lengths[n-3], *lengths[n-2]
	case n >= 2 && lengths[n-2] != nil:
		src.Path = strings.Join(parts[:n-1], ":")
		src.Window = *lengths[n-2]
	}

	if src.Path == "" {
		return merge.Source{}, fmt.Errorf("fragment %q: missing path", arg)
	}
	return src, nil
}

// parseLength accepts minutes ("10", "1.5") or a Go duration ("90s").
func parseLength(value string) (timecode.Millis, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, errors.New("empty length")
	}
	if minutes, err := strconv.ParseFloat(value, 64); err == nil {
		if math.IsNaN(minutes) || math.IsInf(minutes, 0) {
			return 0, fmt.Errorf("invalid length %q", value)
		}
		return timecode.FromDuration(time.Duration(minutes * float64(time.Minute))), nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid length %q", value)
	}
	return timecode.FromDuration(d), nil
}
