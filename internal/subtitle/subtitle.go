package subtitle

import (
	"fmt"

	"github.com/mgpai22/srtstitch/internal/timecode"
)

// represents single subtitle entry
type Entry struct {
	Index     int
	StartTime timecode.Millis
	EndTime   timecode.Millis
	Text      string
}

// Shift returns a copy of the entry moved by offset. The receiver is not
// modified.
func (e Entry) Shift(offset timecode.Millis) Entry {
	e.StartTime += offset
	e.EndTime += offset
	return e
}

// represents complete subtitle track
type Subtitle struct {
	Entries []Entry
	Format  string
}

// represents supported subtitle formats
type Format string

const (
	FormatSRT Format = "srt"
	FormatVTT Format = "vtt"
	FormatASS Format = "ass"
)

// ParseFormat maps a user supplied format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatSRT, FormatVTT, FormatASS:
		return Format(name), nil
	default:
		return "", fmt.Errorf("unsupported format %q: use srt, vtt, or ass", name)
	}
}

// interface for writing subtitles to files
type Writer interface {
	Write(subtitle *Subtitle, path string) error
}

// ParseError describes one subtitle block that could not be read. Parsers
// skip such blocks and keep going.
type ParseError struct {
	Path   string
	Line   int
	Reason string
}

func (e *ParseError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s:%d: %s", e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}
