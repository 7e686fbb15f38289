package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mgpai22/srtstitch/internal/timecode"
)

// SubRip format
type SRTWriter struct{}

// WebVTT format
type VTTWriter struct{}

// Advanced SubStation Alpha format
type ASSWriter struct {
	Title    string
	FontName string
	FontSize int
}

func NewWriter(format Format) (Writer, error) {
	switch format {
	case FormatSRT:
		return &SRTWriter{}, nil
	case FormatVTT:
		return &VTTWriter{}, nil
	case FormatASS:
		return &ASSWriter{
			Title:    "Merged Subtitles",
			FontName: "Arial",
			FontSize: 20,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// WriteSRT serializes entries as SubRip, numbering them 1..N in order.
func WriteSRT(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for i, entry := range entries {
		// index (1-based)
		fmt.Fprintf(bw, "%d\n", i+1)

		// timestamps: 00:00:00,000 --> 00:00:00,000
		fmt.Fprintf(bw, "%s --> %s\n",
			timecode.FormatSRT(entry.StartTime),
			timecode.FormatSRT(entry.EndTime))

		// text
		bw.WriteString(entry.Text)
		bw.WriteString("\n\n")
	}
	return bw.Flush()
}

// writes the subtitle to an SRT file
func (w *SRTWriter) Write(sub *Subtitle, path string) error {
	return writeFileAtomic(path, func(out io.Writer) error {
		return WriteSRT(out, sub.Entries)
	})
}

// writes the subtitle to a VTT file
func (w *VTTWriter) Write(sub *Subtitle, path string) error {
	return writeFileAtomic(path, func(out io.Writer) error {
		bw := bufio.NewWriter(out)

		// VTT header
		bw.WriteString("WEBVTT\n\n")

		for i, entry := range sub.Entries {
			// optional cue identifier
			fmt.Fprintf(bw, "%d\n", i+1)

			// timestamps: 00:00:00.000 --> 00:00:00.000
			fmt.Fprintf(bw, "%s --> %s\n",
				timecode.FormatVTT(entry.StartTime),
				timecode.FormatVTT(entry.EndTime))

			bw.WriteString(entry.Text)
			bw.WriteString("\n\n")
		}
		return bw.Flush()
	})
}

// writes the subtitle to an ASS file
func (w *ASSWriter) Write(sub *Subtitle, path string) error {
	return writeFileAtomic(path, func(out io.Writer) error {
		bw := bufio.NewWriter(out)

		// script info section
		bw.WriteString("[Script Info]\n")
		fmt.Fprintf(bw, "Title: %s\n", w.Title)
		bw.WriteString("ScriptType: v4.00+\n")
		bw.WriteString("Collisions: Normal\n")
		bw.WriteString("PlayDepth: 0\n\n")

		// v4+ styles section
		bw.WriteString("[V4+ Styles]\n")
		bw.WriteString("Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding\n")
		fmt.Fprintf(bw, "Style: Default,%s,%d,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,2,2,2,10,10,10,1\n\n",
			w.FontName, w.FontSize)

		// events section
		bw.WriteString("[Events]\n")
		bw.WriteString("Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text\n")

		for _, entry := range sub.Entries {
			fmt.Fprintf(bw, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
				timecode.FormatASS(entry.StartTime),
				timecode.FormatASS(entry.EndTime),
				escapeASSText(entry.Text))
		}
		return bw.Flush()
	})
}

func escapeASSText(text string) string {
	text = strings.ReplaceAll(text, "\n", "\\N")
	return text
}

// writeFileAtomic writes to a temporary file next to path and renames it
// into place, so a failed write never leaves a truncated file behind.
func writeFileAtomic(path string, write func(io.Writer) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	return nil
}

// subtitle format based on file extension
func GetFormatFromExtension(path string) Format {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".srt":
		return FormatSRT
	case ".vtt":
		return FormatVTT
	case ".ass", ".ssa":
		return FormatASS
	default:
		return FormatSRT
	}
}

// file extension for a format
func GetExtensionForFormat(format Format) string {
	switch format {
	case FormatSRT:
		return ".srt"
	case FormatVTT:
		return ".vtt"
	case FormatASS:
		return ".ass"
	default:
		return ".srt"
	}
}
