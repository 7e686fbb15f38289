package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/mgpai22/srtstitch/internal/timecode"
)

const (
	pcmBitDepth    = 16
	pcmFormat      = 1
	readBlockFrame = 64 * 1024
)

// wavSource reads frame ranges from a 16-bit PCM WAV in increasing order.
// Ranges may overlap; only frames at or after the last requested start are
// kept in memory.
type wavSource struct {
	file       *os.File
	dec        *wav.Decoder
	sampleRate int
	channels   int
	frames     int64

	scratch  *audio.IntBuffer
	buf      []int
	bufStart int64
}

func openWAV(path string) (*wavSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		_ = f.Close()
		return nil, fmt.Errorf("%s: invalid wav file", path)
	}
	dec.ReadInfo()
	if dec.WavAudioFormat != pcmFormat || dec.BitDepth != pcmBitDepth {
		_ = f.Close()
		return nil, fmt.Errorf(
			"%s: unsupported wav encoding: format=%d bits=%d (need PCM 16-bit)",
			path, dec.WavAudioFormat, dec.BitDepth,
		)
	}
	if err := dec.FwdToPCM(); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: locate pcm data: %w", path, err)
	}

	channels := int(dec.NumChans)
	frameBytes := int64(channels) * pcmBitDepth / 8
	return &wavSource{
		file:       f,
		dec:        dec,
		sampleRate: int(dec.SampleRate),
		channels:   channels,
		frames:     dec.PCMLen() / frameBytes,
		scratch: &audio.IntBuffer{
			Format: &audio.Format{
				NumChannels: channels,
				SampleRate:  int(dec.SampleRate),
			},
			Data:           make([]int, readBlockFrame*channels),
			SourceBitDepth: pcmBitDepth,
		},
	}, nil
}

// Duration is the timeline length covered by the PCM data.
func (s *wavSource) Duration() timecode.Millis {
	return timecode.FromSamples(s.frames, s.sampleRate)
}

func (s *wavSource) Close() error {
	return s.file.Close()
}

func (s *wavSource) bufEnd() int64 {
	return s.bufStart + int64(len(s.buf)/s.channels)
}

// readRange returns the interleaved samples of frames [start, end).
func (s *wavSource) readRange(start, end int64) ([]int, error) {
	if start < s.bufStart {
		return nil, fmt.Errorf("wav reader cannot rewind to frame %d (at %d)", start, s.bufStart)
	}
	end = min(end, s.frames)
	if end < start {
		end = start
	}

	s.discard(start)
	for s.bufEnd() < end {
		want := min(end-s.bufEnd(), readBlockFrame)
		s.scratch.Data = s.scratch.Data[:want*int64(s.channels)]
		n, err := s.dec.PCMBuffer(s.scratch)
		if n > 0 {
			s.buf = append(s.buf, s.scratch.Data[:n]...)
			s.discard(start)
		}
		if errors.Is(err, io.EOF) || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read pcm: %w", err)
		}
	}
	if s.bufEnd() < end {
		return nil, fmt.Errorf("wav data ended at frame %d, want %d", s.bufEnd(), end)
	}

	from := int(start-s.bufStart) * s.channels
	out := make([]int, int(end-start)*s.channels)
	copy(out, s.buf[from:])
	return out, nil
}

// discard drops buffered frames before start.
func (s *wavSource) discard(start int64) {
	n := min(start-s.bufStart, int64(len(s.buf)/s.channels))
	if n <= 0 {
		return
	}
	k := copy(s.buf, s.buf[int(n)*s.channels:])
	s.buf = s.buf[:k]
	s.bufStart += n
}

// writeWAV stores interleaved 16-bit samples as a PCM WAV file.
func writeWAV(path string, samples []int, sampleRate, channels int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, pcmBitDepth, channels, pcmFormat)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: channels, SampleRate: sampleRate},
		Data:           samples,
		SourceBitDepth: pcmBitDepth,
	}
	writeErr := enc.Write(buf)
	closeErr := enc.Close()
	fileErr := f.Close()
	if err := errors.Join(writeErr, closeErr, fileErr); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
