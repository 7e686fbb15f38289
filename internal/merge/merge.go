package merge

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/samber/lo"

	"github.com/mgpai22/srtstitch/internal/logging"
	"github.com/mgpai22/srtstitch/internal/subtitle"
	"github.com/mgpai22/srtstitch/internal/timecode"
	"github.com/mgpai22/srtstitch/internal/window"
)

// Fragment is one window's transcript with the window and overlap lengths
// that produced it. Entry times are local to the window.
type Fragment struct {
	Source  string
	Entries []subtitle.Entry
	Window  timecode.Millis
	Overlap timecode.Millis

	// blocks the parser could not read
	Skipped []subtitle.ParseError
}

// CutoffPolicy decides where the previous fragments stop being trusted once
// the next fragment starts.
type CutoffPolicy int

const (
	// CutoffWindowBoundary cuts where the current fragment's window begins
	// on the global timeline: the previous fragment's offset plus its own
	// window minus overlap.
	CutoffWindowBoundary CutoffPolicy = iota
	// CutoffFirstEntry measures from the first entry the previous fragment
	// contributed.
	CutoffFirstEntry
	// CutoffLastEntry measures from the last entry accumulated so far.
	CutoffLastEntry
)

var policyNames = map[CutoffPolicy]string{
	CutoffWindowBoundary: "window-boundary",
	CutoffFirstEntry:     "first-entry",
	CutoffLastEntry:      "last-entry",
}

func (p CutoffPolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return fmt.Sprintf("CutoffPolicy(%d)", int(p))
}

// ParseCutoffPolicy accepts the names printed by String. An empty name
// selects the default.
func ParseCutoffPolicy(name string) (CutoffPolicy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return CutoffWindowBoundary, nil
	}
	for policy, n := range policyNames {
		if n == name {
			return policy, nil
		}
	}
	return 0, fmt.Errorf(
		"unknown cutoff policy %q: use window-boundary, first-entry, or last-entry",
		name,
	)
}

// EmptyFragmentError aborts a merge when a fragment has no entries.
type EmptyFragmentError struct {
	Index  int
	Source string
}

func (e *EmptyFragmentError) Error() string {
	return fmt.Sprintf("fragment %d (%s) has no subtitle entries", e.Index, sourceName(e.Source))
}

// InvalidFragmentError aborts a merge when a fragment's window and overlap
// cannot describe an overlapping split.
type InvalidFragmentError struct {
	Index   int
	Source  string
	Window  timecode.Millis
	Overlap timecode.Millis
	Err     error
}

func (e *InvalidFragmentError) Error() string {
	return fmt.Sprintf("fragment %d (%s): %v", e.Index, sourceName(e.Source), e.Err)
}

func (e *InvalidFragmentError) Unwrap() error {
	return e.Err
}

func sourceName(source string) string {
	if source == "" {
		return "unnamed"
	}
	return filepath.Base(source)
}

// Progress is reported after each fragment is merged.
type Progress struct {
	Done    int
	Total   int
	Source  string
	Entries int
}

type Merger struct {
	Policy   CutoffPolicy
	Progress func(Progress)
	Logger   *logging.Logger
}

// Merge builds one renumbered, globally timed entry list from fragments in
// order. Fragments are validated up front; an invalid fragment produces no
// output at all. The input slices are never modified.
func (m *Merger) Merge(fragments []Fragment) ([]subtitle.Entry, error) {
	for i, f := range fragments {
		if err := validateFragment(i, f); err != nil {
			return nil, err
		}
	}

	log := logging.OrNop(m.Logger)

	var (
		out       []subtitle.Entry
		offset    timecode.Millis
		prevFirst timecode.Millis
	)
	for i, f := range fragments {
		step := f.Window - f.Overlap

		if i > 0 && f.Overlap > 0 && len(out) > 0 {
			var cutoff timecode.Millis
			switch m.Policy {
			case CutoffFirstEntry:
				cutoff = prevFirst + step
			case CutoffLastEntry:
				cutoff = out[len(out)-1].StartTime + step
			default:
				cutoff = offset
			}

			before := len(out)
			out = lo.Filter(out, func(e subtitle.Entry, _ int) bool {
				return e.EndTime <= cutoff
			})
			if dropped := before - len(out); dropped > 0 {
				log.Debugw("Dropped overlap entries",
					"fragment", i,
					"cutoff", timecode.FormatSRT(cutoff),
					"dropped", dropped,
				)
			}
		}

		shifted := lo.Map(f.Entries, func(e subtitle.Entry, _ int) subtitle.Entry {
			return e.Shift(offset)
		})
		prevFirst = shifted[0].StartTime
		out = append(out, shifted...)
		offset += step

		log.Infof("%s (%d entries)", sourceName(f.Source), len(f.Entries))
		if m.Progress != nil {
			m.Progress(Progress{
				Done:    i + 1,
				Total:   len(fragments),
				Source:  f.Source,
				Entries: len(f.Entries),
			})
		}
	}

	return lo.Map(out, func(e subtitle.Entry, i int) subtitle.Entry {
		e.Index = i + 1
		return e
	}), nil
}

// Merge merges with the default cutoff policy and no logging.
func Merge(fragments []Fragment) ([]subtitle.Entry, error) {
	return (&Merger{}).Merge(fragments)
}

func validateFragment(index int, f Fragment) error {
	if err := window.CheckParams(f.Window, f.Overlap); err != nil {
		return &InvalidFragmentError{
			Index:   index,
			Source:  f.Source,
			Window:  f.Window,
			Overlap: f.Overlap,
			Err:     err,
		}
	}
	if len(f.Entries) == 0 {
		return &EmptyFragmentError{Index: index, Source: f.Source}
	}
	return nil
}
