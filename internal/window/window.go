package window

import (
	"fmt"
	"iter"

	"github.com/mgpai22/srtstitch/internal/timecode"
)

// Window is the half-open range [Start, End) of a timeline.
type Window struct {
	Start timecode.Millis
	End   timecode.Millis
}

func (w Window) Length() timecode.Millis {
	return w.End - w.Start
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)",
		timecode.FormatSRT(w.Start), timecode.FormatSRT(w.End))
}

// ConfigurationError reports window parameters that cannot produce a finite
// covering of the timeline.
type ConfigurationError struct {
	Total   timecode.Millis
	Length  timecode.Millis
	Overlap timecode.Millis
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(
		"invalid window configuration (total=%s window=%s overlap=%s): %s",
		e.Total, e.Length, e.Overlap, e.Reason,
	)
}

// Validate checks total > 0, length > 0 and 0 <= overlap < length.
func Validate(total, length, overlap timecode.Millis) error {
	if err := checkParams(length, overlap); err != nil {
		err.Total = total
		return err
	}
	if total <= 0 {
		return &ConfigurationError{
			Total:   total,
			Length:  length,
			Overlap: overlap,
			Reason:  "total length must be positive",
		}
	}
	return nil
}

// CheckParams validates a window/overlap pair before the timeline length
// is known.
func CheckParams(length, overlap timecode.Millis) error {
	if err := checkParams(length, overlap); err != nil {
		return err
	}
	return nil
}

func checkParams(length, overlap timecode.Millis) *ConfigurationError {
	fail := func(reason string) *ConfigurationError {
		return &ConfigurationError{
			Length:  length,
			Overlap: overlap,
			Reason:  reason,
		}
	}

	switch {
	case length <= 0:
		return fail("window length must be positive")
	case overlap < 0:
		return fail("overlap must not be negative")
	case overlap >= length:
		return fail("overlap must be shorter than the window")
	}
	return nil
}

// Split returns the windows covering [0, total). Consecutive windows start
// length-overlap apart, and the last window always ends at total.
func Split(total, length, overlap timecode.Millis) (iter.Seq[Window], error) {
	if err := Validate(total, length, overlap); err != nil {
		return nil, err
	}

	step := length - overlap
	return func(yield func(Window) bool) {
		for start := timecode.Millis(0); ; start += step {
			end := min(start+length, total)
			if !yield(Window{Start: start, End: end}) {
				return
			}
			if start+length >= total {
				return
			}
		}
	}, nil
}

// Plan is Split collected into a slice.
func Plan(total, length, overlap timecode.Millis) ([]Window, error) {
	seq, err := Split(total, length, overlap)
	if err != nil {
		return nil, err
	}

	windows := make([]Window, 0, count(total, length, overlap))
	for w := range seq {
		windows = append(windows, w)
	}
	return windows, nil
}

// Count returns how many windows Split yields without producing them.
func Count(total, length, overlap timecode.Millis) (int, error) {
	if err := Validate(total, length, overlap); err != nil {
		return 0, err
	}
	return count(total, length, overlap), nil
}

func count(total, length, overlap timecode.Millis) int {
	if total <= length {
		return 1
	}
	step := length - overlap
	return int((total - overlap + step - 1) / step)
}
