package timecode

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Millis is a point or length on a media timeline in whole milliseconds.
// All window and merge arithmetic is done in this unit so that timestamps
// round-trip through their textual form without drift.
type Millis int64

const (
	Millisecond Millis = 1
	Second             = 1000 * Millisecond
	Minute             = 60 * Second
	Hour               = 60 * Minute
)

// truncates any sub-millisecond remainder
func FromDuration(d time.Duration) Millis {
	return Millis(d.Milliseconds())
}

func Minutes(n int) Millis {
	return Millis(n) * Minute
}

func (m Millis) Duration() time.Duration {
	return time.Duration(m) * time.Millisecond
}

// whole minutes, rounded down
func (m Millis) WholeMinutes() int {
	return int(m / Minute)
}

func (m Millis) String() string {
	return m.Duration().String()
}

// FromSamples converts a sample count at the given rate to milliseconds,
// rounding down.
func FromSamples(samples int64, sampleRate int) Millis {
	if sampleRate <= 0 {
		return 0
	}
	return Millis(samples * 1000 / int64(sampleRate))
}

// ToSamples converts a timeline position to the index of the first sample
// at or after it.
func ToSamples(m Millis, sampleRate int) int64 {
	if sampleRate <= 0 || m <= 0 {
		return 0
	}
	return (int64(m)*int64(sampleRate) + 999) / 1000
}

func split(m Millis) (h, mm, s, ms int64) {
	v := int64(m)
	if v < 0 {
		v = 0
	}
	h = v / int64(Hour)
	mm = (v % int64(Hour)) / int64(Minute)
	s = (v % int64(Minute)) / int64(Second)
	ms = v % int64(Second)
	return
}

// HH:MM:SS,mmm
func FormatSRT(m Millis) string {
	h, mm, s, ms := split(m)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, mm, s, ms)
}

// HH:MM:SS.mmm
func FormatVTT(m Millis) string {
	h, mm, s, ms := split(m)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, mm, s, ms)
}

// H:MM:SS.cc
func FormatASS(m Millis) string {
	h, mm, s, ms := split(m)
	return fmt.Sprintf("%d:%02d:%02d.%02d", h, mm, s, ms/10)
}

var timestampRegex = regexp.MustCompile(`^(\d+):(\d{1,2}):(\d{1,2})[,.](\d{1,3})$`)

// Parse reads an SRT style timestamp. Hours may have any number of digits
// and a dot is accepted in place of the comma.
func Parse(value string) (Millis, error) {
	matches := timestampRegex.FindStringSubmatch(value)
	if matches == nil {
		return 0, fmt.Errorf("invalid timestamp %q", value)
	}
	h, err := strconv.ParseInt(matches[1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid hours in %q: %w", value, err)
	}
	mm, _ := strconv.ParseInt(matches[2], 10, 64)
	s, _ := strconv.ParseInt(matches[3], 10, 64)
	if mm > 59 || s > 59 {
		return 0, fmt.Errorf("invalid timestamp %q: field out of range", value)
	}
	frac := matches[4]
	ms, _ := strconv.ParseInt(frac, 10, 64)
	// "1,5" is half a second, not five milliseconds
	for i := len(frac); i < 3; i++ {
		ms *= 10
	}

	return Millis(h)*Hour + Millis(mm)*Minute + Millis(s)*Second +
		Millis(ms), nil
}
