package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mgpai22/srtstitch/internal/audio"
)

var splitCmd = &cobra.Command{
	Use:   "split [media_file]",
	Short: "Split audio into overlapping chunks",
	Long: `Decode the audio of a media file and write it as overlapping chunks.

Chunks are named chunk_NNN_SSS-EEEmin.<ext>: a 1-based ordinal, then the
window start and end in whole minutes. "merge --from-names" reads the same
convention back from the transcripts.

Examples:
  srtstitch split lecture.mp4
  srtstitch split podcast.mp3 --window 15 --overlap 2 -o parts
  srtstitch split interview.wav --extension m4a --sample-rate 16000`,
	Args: cobra.ExactArgs(1),
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().
		IntP("window", "w", 10, "Window length in minutes")
	splitCmd.Flags().
		Int("overlap", 1, "Overlap between consecutive windows in minutes")
	splitCmd.Flags().
		StringP("output-dir", "o", "chunks", "Directory for the chunk files")
	splitCmd.Flags().
		String("extension", ".mp4", "Chunk file extension")
	splitCmd.Flags().
		Int("quality", 5, "Encoder quality (ffmpeg q:a)")
	splitCmd.Flags().
		Int("sample-rate", 0, "Resample to this rate in Hz (0 keeps the source rate)")
}

func runSplit(cmd *cobra.Command, args []string) error {
	mediaPath := args[0]

	if _, err := os.Stat(mediaPath); err != nil {
		return fmt.Errorf("file not found: %s", mediaPath)
	}
	if !audio.IsMediaFile(mediaPath) {
		return fmt.Errorf("unsupported file type: %s (expected audio or video file)", filepath.Ext(mediaPath))
	}

	windowLen := minutesFlagOr(cmd, "window", cfg.Window())
	overlapLen := minutesFlagOr(cmd, "overlap", cfg.Overlap())
	outputDir := stringFlagOr(cmd, "output-dir", cfg.Split.OutputDir)
	extension := stringFlagOr(cmd, "extension", cfg.Split.Extension)
	quality := flagOr(cmd, "quality", cfg.Split.Quality)
	sampleRate := flagOr(cmd, "sample-rate", cfg.Split.SampleRate)

	logger.Infow("Starting split",
		"input", mediaPath,
		"output_dir", outputDir,
		"window", windowLen.Duration(),
		"overlap", overlapLen.Duration(),
	)

	bar := newProgress("Encoding chunks")
	splitter := &audio.Splitter{
		Decoder:   audio.FFmpegDecoder{SampleRate: sampleRate},
		Encoder:   audio.FFmpegEncoder{Codec: cfg.Split.Codec, Quality: quality},
		Window:    windowLen,
		Overlap:   overlapLen,
		Extension: extension,
		Logger:    logger,
		Progress: func(p audio.Progress) {
			bar.step(p.Total)
		},
	}

	chunks, err := splitter.Split(commandContext(cmd), mediaPath, outputDir)
	bar.finish()
	if err != nil {
		return fmt.Errorf("split failed: %w", err)
	}

	var size uint64
	for _, c := range chunks {
		if info, err := os.Stat(c.Path); err == nil {
			size += uint64(info.Size())
		}
	}

	absDir, _ := filepath.Abs(outputDir)
	fmt.Printf("Wrote %d chunks (%s) to %s\n", len(chunks), humanize.Bytes(size), absDir)
	return nil
}
