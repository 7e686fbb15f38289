package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mgpai22/srtstitch/internal/logging"
	"github.com/mgpai22/srtstitch/internal/timecode"
	"github.com/mgpai22/srtstitch/internal/window"
)

const DefaultExtension = ".mp4"

// Chunk is one encoded window written to the output directory.
type Chunk struct {
	Path    string
	Ordinal int
	Window  window.Window
}

// Progress is reported after each chunk is written.
type Progress struct {
	Done  int
	Total int
	Chunk Chunk
}

// Splitter cuts a media file into overlapping encoded windows.
type Splitter struct {
	Decoder   Decoder
	Encoder   Encoder
	Window    timecode.Millis
	Overlap   timecode.Millis
	Extension string
	Progress  func(Progress)
	Logger    *logging.Logger
}

// Split decodes input once, then encodes every window of its timeline into
// outputDir. It stops at the first codec failure; chunks written before it
// are left in place.
func (s *Splitter) Split(ctx context.Context, input, outputDir string) ([]Chunk, error) {
	if err := window.CheckParams(s.Window, s.Overlap); err != nil {
		return nil, err
	}
	if _, err := os.Stat(input); err != nil {
		return nil, fmt.Errorf("input %s: %w", input, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	log := logging.OrNop(s.Logger)

	staging, err := os.MkdirTemp("", "srtstitch-split-*")
	if err != nil {
		return nil, fmt.Errorf("create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(staging) }()

	pcmPath := filepath.Join(staging, "source.wav")
	log.Debugw("Decoding input", "input", input, "staging", staging)
	if err := s.decoder().Decode(ctx, input, pcmPath); err != nil {
		return nil, &CodecFailure{Stage: StageDecode, Output: pcmPath, Err: err}
	}

	src, err := openWAV(pcmPath)
	if err != nil {
		return nil, fmt.Errorf("read decoded audio: %w", err)
	}
	defer func() { _ = src.Close() }()

	total := src.Duration()
	if total <= 0 {
		return nil, fmt.Errorf("%s: no audio samples", input)
	}

	windows, err := window.Split(total, s.Window, s.Overlap)
	if err != nil {
		return nil, err
	}
	count, _ := window.Count(total, s.Window, s.Overlap)

	log.Infow("Splitting audio",
		"input", input,
		"duration", total,
		"windows", count,
		"sample_rate", src.sampleRate,
	)

	enc := s.encoder()
	chunks := make([]Chunk, 0, count)
	ordinal := 0
	for w := range windows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ordinal++

		startFrame := timecode.ToSamples(w.Start, src.sampleRate)
		endFrame := src.frames
		if w.End < total {
			endFrame = timecode.ToSamples(w.End, src.sampleRate)
		}

		samples, err := src.readRange(startFrame, endFrame)
		if err != nil {
			return nil, fmt.Errorf("read window %d %s: %w", ordinal, w, err)
		}

		clip := Clip{
			Path:       filepath.Join(staging, fmt.Sprintf("window_%03d.wav", ordinal)),
			Ordinal:    ordinal,
			Window:     w,
			SampleRate: src.sampleRate,
			Channels:   src.channels,
			Frames:     endFrame - startFrame,
		}
		if err := writeWAV(clip.Path, samples, src.sampleRate, src.channels); err != nil {
			return nil, fmt.Errorf("stage window %d: %w", ordinal, err)
		}

		dst := filepath.Join(outputDir, window.ChunkName(ordinal, w, s.extension()))
		if err := enc.Encode(ctx, clip, dst); err != nil {
			return nil, &CodecFailure{
				Stage:   StageEncode,
				Ordinal: ordinal,
				Window:  w,
				Output:  dst,
				Err:     err,
			}
		}
		_ = os.Remove(clip.Path)

		chunk := Chunk{Path: dst, Ordinal: ordinal, Window: w}
		chunks = append(chunks, chunk)
		log.Infof("%s (%.2f min)", filepath.Base(dst), w.Length().Duration().Minutes())
		if s.Progress != nil {
			s.Progress(Progress{Done: ordinal, Total: count, Chunk: chunk})
		}
	}

	return chunks, nil
}

func (s *Splitter) decoder() Decoder {
	if s.Decoder != nil {
		return s.Decoder
	}
	return FFmpegDecoder{}
}

func (s *Splitter) encoder() Encoder {
	if s.Encoder != nil {
		return s.Encoder
	}
	return FFmpegEncoder{Quality: 5}
}

func (s *Splitter) extension() string {
	if s.Extension == "" {
		return DefaultExtension
	}
	return s.Extension
}
