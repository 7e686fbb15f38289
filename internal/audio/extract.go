package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ExtractOptions controls standalone audio extraction.
type ExtractOptions struct {
	Format     string // wav, mp3, aac, flac
	SampleRate int    // Hz, 0 keeps the source rate
	Channels   int    // 0 keeps the source layout
	Bitrate    string // lossy formats only, e.g. "128k"
	FFmpegPath string
}

func DefaultExtractOptions() ExtractOptions {
	return ExtractOptions{
		Format:     "wav",
		SampleRate: 16000,
		Channels:   1,
	}
}

// ExtractFormats lists the formats ExtractAudio accepts.
var ExtractFormats = []string{"wav", "mp3", "aac", "flac"}

func extractKwArgs(opts ExtractOptions) (ffmpeg.KwArgs, error) {
	kwargs := ffmpeg.KwArgs{"vn": ""}
	if opts.SampleRate > 0 {
		kwargs["ar"] = opts.SampleRate
	}
	if opts.Channels > 0 {
		kwargs["ac"] = opts.Channels
	}

	switch opts.Format {
	case "mp3":
		kwargs["acodec"] = "libmp3lame"
	case "aac":
		kwargs["acodec"] = "aac"
	case "flac":
		kwargs["acodec"] = "flac"
	case "wav", "":
		kwargs["acodec"] = "pcm_s16le"
	default:
		return nil, fmt.Errorf(
			"invalid format %q: supported formats are wav, mp3, aac, flac",
			opts.Format,
		)
	}
	if opts.Bitrate != "" && (opts.Format == "mp3" || opts.Format == "aac") {
		kwargs["b:a"] = opts.Bitrate
	}
	return kwargs, nil
}

// ExtractAudio writes the audio track of inputPath to outputPath.
func ExtractAudio(ctx context.Context, inputPath, outputPath string, opts ExtractOptions) error {
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("input file %s: %w", inputPath, err)
	}

	kwargs, err := extractKwArgs(opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	stream := ffmpeg.Input(inputPath).Output(outputPath, kwargs)
	if err := runFFmpeg(ctx, opts.FFmpegPath, stream); err != nil {
		return fmt.Errorf("audio extraction failed: %w", err)
	}
	return nil
}
