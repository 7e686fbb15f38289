package subtitle

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/mgpai22/srtstitch/internal/timecode"
)

type VTTFile struct {
	entries []Entry
	skipped []ParseError
}

var (
	vttTimingRegex = regexp.MustCompile(
		`^\s*((?:\d+:)?\d{2}:\d{2}\.\d{3})\s*-->\s*((?:\d+:)?\d{2}:\d{2}\.\d{3})(?:\s|$)`,
	)
	vttShortTimestampRegex = regexp.MustCompile(`^\d{2}:\d{2}\.\d{3}$`)
)

func parseVTTFile(path string) (*VTTFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open VTT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	parsed, err := ParseVTT(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range parsed.skipped {
		parsed.skipped[i].Path = path
	}
	return parsed, nil
}

// ParseVTT reads WebVTT cues from r. Cue identifiers are optional, NOTE and
// STYLE blocks are ignored, and cue settings after the end time are dropped.
func ParseVTT(r io.Reader) (*VTTFile, error) {
	scanner := newLineScanner(r)

	file := &VTTFile{}
	var (
		current    *Entry
		textLines  []string
		lineNum    int
		skipBlock  bool
		entryIndex int
	)

	flush := func() {
		if current != nil && len(textLines) > 0 {
			current.Text = strings.Join(textLines, "\n")
			file.entries = append(file.entries, *current)
		}
		current = nil
		textLines = nil
	}

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			flush()
			skipBlock = false
			continue
		}
		if skipBlock {
			continue
		}

		if lineNum == 1 && strings.HasPrefix(trimmed, "WEBVTT") {
			skipBlock = true
			continue
		}
		if current == nil && (strings.HasPrefix(trimmed, "NOTE") ||
			strings.HasPrefix(trimmed, "STYLE") ||
			strings.HasPrefix(trimmed, "REGION")) {
			skipBlock = true
			continue
		}

		if matches := vttTimingRegex.FindStringSubmatch(line); matches != nil {
			flush()
			start, serr := parseVTTTimestamp(matches[1])
			end, eerr := parseVTTTimestamp(matches[2])
			if serr != nil || eerr != nil || end < start {
				file.skipped = append(file.skipped, ParseError{
					Line:   lineNum,
					Reason: fmt.Sprintf("invalid timing line %q", line),
				})
				skipBlock = true
				continue
			}
			entryIndex++
			current = &Entry{
				Index:     entryIndex,
				StartTime: start,
				EndTime:   end,
			}
			continue
		}
		if current == nil && strings.Contains(line, "-->") {
			file.skipped = append(file.skipped, ParseError{
				Line:   lineNum,
				Reason: fmt.Sprintf("invalid timing line %q", line),
			})
			skipBlock = true
			continue
		}

		if current != nil {
			textLines = append(textLines, line)
		}
		// anything else before a timing line is a cue identifier
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading VTT: %w", err)
	}

	return file, nil
}

func parseVTTTimestamp(value string) (timecode.Millis, error) {
	if vttShortTimestampRegex.MatchString(value) {
		value = "00:" + value
	}
	return timecode.Parse(value)
}

func (f *VTTFile) Format() Format {
	return FormatVTT
}

func (f *VTTFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatVTT),
	}
}

func (f *VTTFile) Skipped() []ParseError {
	return f.skipped
}
