package merge

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/mgpai22/srtstitch/internal/logging"
	"github.com/mgpai22/srtstitch/internal/subtitle"
	"github.com/mgpai22/srtstitch/internal/timecode"
)

const loadConcurrency = 8

// Source names a fragment file and the split parameters it came from.
type Source struct {
	Path    string
	Window  timecode.Millis
	Overlap timecode.Millis
}

// LoadFragments parses every source concurrently. The result keeps the
// order of sources.
func LoadFragments(ctx context.Context, sources []Source) ([]Fragment, error) {
	return (&Merger{}).LoadFragments(ctx, sources)
}

// LoadFragments parses every source concurrently and logs blocks the
// parser had to skip.
func (m *Merger) LoadFragments(ctx context.Context, sources []Source) ([]Fragment, error) {
	log := logging.OrNop(m.Logger)
	fragments := make([]Fragment, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(loadConcurrency)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			file, err := subtitle.Open(src.Path)
			if err != nil {
				return fmt.Errorf("fragment %d: %w", i, err)
			}

			skipped := file.Skipped()
			for _, perr := range skipped {
				log.Warnw("Skipping malformed subtitle block",
					"fragment", i,
					"file", perr.Path,
					"line", perr.Line,
					"reason", perr.Reason,
				)
			}

			fragments[i] = Fragment{
				Source:  src.Path,
				Entries: file.Subtitle().Entries,
				Window:  src.Window,
				Overlap: src.Overlap,
				Skipped: skipped,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fragments, nil
}
