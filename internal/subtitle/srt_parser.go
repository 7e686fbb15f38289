package subtitle

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/mgpai22/srtstitch/internal/timecode"
)

type SRTFile struct {
	entries []Entry
	skipped []ParseError
}

var srtTimingRegex = regexp.MustCompile(
	`^\s*(\d+:\d{1,2}:\d{1,2}[,.]\d{1,3})\s*-->\s*(\d+:\d{1,2}:\d{1,2}[,.]\d{1,3})(?:\s|$)`,
)

func parseSRTFile(path string) (*SRTFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SRT file: %w", err)
	}
	defer func() {
		_ = file.Close()
	}()

	parsed, err := ParseSRT(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	for i := range parsed.skipped {
		parsed.skipped[i].Path = path
	}
	return parsed, nil
}

type block struct {
	line  int
	lines []string
}

// ParseSRT reads SRT blocks from r. A block that does not have an index
// line, a timing line and at least one text line is skipped and recorded
// in Skipped; only read failures are returned as errors.
func ParseSRT(r io.Reader) (*SRTFile, error) {
	scanner := newLineScanner(r)

	var (
		blocks  []block
		current *block
		lineNum int
	)
	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if strings.TrimSpace(line) == "" {
			if current != nil {
				blocks = append(blocks, *current)
				current = nil
			}
			continue
		}

		if current == nil {
			current = &block{line: lineNum}
		}
		current.lines = append(current.lines, line)
	}
	if current != nil {
		blocks = append(blocks, *current)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading SRT: %w", err)
	}

	file := &SRTFile{}
	for _, b := range blocks {
		entry, perr := parseSRTBlock(b)
		if perr != nil {
			file.skipped = append(file.skipped, *perr)
			continue
		}
		file.entries = append(file.entries, entry)
	}

	return file, nil
}

func parseSRTBlock(b block) (Entry, *ParseError) {
	fail := func(offset int, format string, args ...any) (Entry, *ParseError) {
		return Entry{}, &ParseError{
			Line:   b.line + offset,
			Reason: fmt.Sprintf(format, args...),
		}
	}

	if len(b.lines) < 3 {
		return fail(0, "incomplete block: need index, timing and text lines")
	}

	index, err := strconv.Atoi(strings.TrimSpace(b.lines[0]))
	if err != nil {
		return fail(0, "invalid index %q", strings.TrimSpace(b.lines[0]))
	}

	matches := srtTimingRegex.FindStringSubmatch(b.lines[1])
	if matches == nil {
		return fail(1, "invalid timing line %q", b.lines[1])
	}
	start, err := timecode.Parse(matches[1])
	if err != nil {
		return fail(1, "invalid start timestamp: %v", err)
	}
	end, err := timecode.Parse(matches[2])
	if err != nil {
		return fail(1, "invalid end timestamp: %v", err)
	}
	if end < start {
		return fail(1, "end %s is before start %s",
			timecode.FormatSRT(end), timecode.FormatSRT(start))
	}

	return Entry{
		Index:     index,
		StartTime: start,
		EndTime:   end,
		Text:      strings.Join(b.lines[2:], "\n"),
	}, nil
}

func (f *SRTFile) Format() Format {
	return FormatSRT
}

func (f *SRTFile) Subtitle() *Subtitle {
	return &Subtitle{
		Entries: f.entries,
		Format:  string(FormatSRT),
	}
}

func (f *SRTFile) Skipped() []ParseError {
	return f.skipped
}
