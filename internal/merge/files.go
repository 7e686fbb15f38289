package merge

import (
	"context"
	"fmt"

	"github.com/mgpai22/srtstitch/internal/subtitle"
)

// Result summarizes a merge written to disk.
type Result struct {
	Output    string
	Fragments int
	Entries   int
	Skipped   int
}

// MergeFiles loads sources, merges them and writes the timeline to output.
// Nothing is written unless the merge succeeds, and the file only appears
// once it is complete.
func (m *Merger) MergeFiles(
	ctx context.Context,
	sources []Source,
	output string,
	format subtitle.Format,
) (*Result, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("no fragments to merge")
	}

	writer, err := subtitle.NewWriter(format)
	if err != nil {
		return nil, err
	}

	fragments, err := m.LoadFragments(ctx, sources)
	if err != nil {
		return nil, err
	}

	entries, err := m.Merge(fragments)
	if err != nil {
		return nil, err
	}

	sub := &subtitle.Subtitle{Entries: entries, Format: string(format)}
	if err := writer.Write(sub, output); err != nil {
		return nil, err
	}

	result := &Result{
		Output:    output,
		Fragments: len(fragments),
		Entries:   len(entries),
	}
	for _, f := range fragments {
		result.Skipped += len(f.Skipped)
	}
	return result, nil
}

// MergeFiles merges with the default cutoff policy and no logging.
func MergeFiles(
	ctx context.Context,
	sources []Source,
	output string,
	format subtitle.Format,
) (*Result, error) {
	return (&Merger{}).MergeFiles(ctx, sources, output, format)
}
