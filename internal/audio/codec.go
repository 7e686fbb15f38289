package audio

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/mgpai22/srtstitch/internal/ffmpeg"
	"github.com/mgpai22/srtstitch/internal/window"
)

// Clip is one window's audio staged as 16-bit PCM WAV, ready to encode.
type Clip struct {
	Path       string
	Ordinal    int
	Window     window.Window
	SampleRate int
	Channels   int
	Frames     int64
}

// Decoder turns any media input into a 16-bit PCM mono WAV at dst.
type Decoder interface {
	Decode(ctx context.Context, input, dst string) error
}

// Encoder writes a staged clip to its final chunk file.
type Encoder interface {
	Encode(ctx context.Context, clip Clip, dst string) error
}

// FFmpegDecoder decodes with ffmpeg. A zero SampleRate keeps the input's
// native rate.
type FFmpegDecoder struct {
	SampleRate int
	FFmpegPath string
}

func (d FFmpegDecoder) Decode(ctx context.Context, input, dst string) error {
	kwargs := ffmpeg.KwArgs{
		"vn":     "",
		"ac":     1,
		"acodec": "pcm_s16le",
	}
	if d.SampleRate > 0 {
		kwargs["ar"] = d.SampleRate
	}
	stream := ffmpeg.Input(input).Output(dst, kwargs)
	return runFFmpeg(ctx, d.FFmpegPath, stream)
}

// FFmpegEncoder encodes clips as AAC using ffmpeg's variable quality scale.
type FFmpegEncoder struct {
	Codec      string
	Quality    int
	FFmpegPath string
}

func (e FFmpegEncoder) Encode(ctx context.Context, clip Clip, dst string) error {
	codec := e.Codec
	if codec == "" {
		codec = "aac"
	}
	kwargs := ffmpeg.KwArgs{"c:a": codec}
	if e.Quality > 0 {
		kwargs["q:a"] = e.Quality
	}
	stream := ffmpeg.Input(clip.Path).Output(dst, kwargs)
	return runFFmpeg(ctx, e.FFmpegPath, stream)
}

// runFFmpeg runs stream under ctx, overwriting its output, and folds the
// tail of ffmpeg's stderr into the returned error.
func runFFmpeg(ctx context.Context, binary string, stream *ffmpeg.Stream) error {
	if binary == "" {
		path, err := ffmpegbin.FFmpegPath()
		if err != nil {
			return err
		}
		binary = path
	}

	var stderr bytes.Buffer
	stream.Context = ctx
	err := stream.OverWriteOutput().
		WithErrorOutput(&stderr).
		SetFfmpegPath(binary).
		Silent(true).
		Run()
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if tail := lastLine(stderr.String()); tail != "" {
			return fmt.Errorf("ffmpeg: %w: %s", err, tail)
		}
		return fmt.Errorf("ffmpeg: %w", err)
	}
	return nil
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[i+1:])
	}
	return s
}

// Codec stages reported by CodecFailure.
const (
	StageDecode = "decode"
	StageEncode = "encode"
)

// CodecFailure reports an external codec failure. For encode failures it
// identifies the window whose chunk could not be written; no later
// windows are attempted.
type CodecFailure struct {
	Stage   string
	Ordinal int
	Window  window.Window
	Output  string
	Err     error
}

func (e *CodecFailure) Error() string {
	if e.Stage == StageDecode {
		return fmt.Sprintf("decode input to %s: %v", e.Output, e.Err)
	}
	return fmt.Sprintf("encode chunk %d %s to %s: %v", e.Ordinal, e.Window, e.Output, e.Err)
}

func (e *CodecFailure) Unwrap() error {
	return e.Err
}
