package merge

import (
	"fmt"

	"github.com/mgpai22/srtstitch/internal/timecode"
	"github.com/mgpai22/srtstitch/internal/window"
)

// SourcesFromChunkNames infers window and overlap from file names produced
// by the splitter, e.g. chunk_002_009-019min.srt. Names only carry whole
// minutes, so this recovers splits made with whole-minute parameters. The
// paths must be given in ordinal order.
func SourcesFromChunkNames(paths []string) ([]Source, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("no fragments to merge")
	}

	infos := make([]window.ChunkInfo, len(paths))
	for i, p := range paths {
		info, err := window.ParseChunkName(p)
		if err != nil {
			return nil, err
		}
		if i > 0 && info.Ordinal != infos[i-1].Ordinal+1 {
			return nil, fmt.Errorf(
				"%s: expected chunk %d after chunk %d",
				p, infos[i-1].Ordinal+1, infos[i-1].Ordinal,
			)
		}
		infos[i] = info
	}

	first := infos[0]
	length := first.EndMinutes - first.StartMinutes
	overlap := 0
	if len(infos) > 1 {
		overlap = first.EndMinutes - infos[1].StartMinutes
	}
	if length <= 0 {
		if len(infos) > 1 {
			return nil, fmt.Errorf("%s: chunk shorter than a minute", paths[0])
		}
		// a lone chunk under a minute: its window length never affects timing
		length = 1
	}
	if err := window.CheckParams(timecode.Minutes(length), timecode.Minutes(overlap)); err != nil {
		return nil, fmt.Errorf("chunk names starting at %s: %w", paths[0], err)
	}

	step := length - overlap
	sources := make([]Source, len(paths))
	for i, info := range infos {
		if want := first.StartMinutes + i*step; info.StartMinutes != want {
			return nil, fmt.Errorf(
				"%s: starts at minute %d, want %d for a %d/%d minute split",
				paths[i], info.StartMinutes, want, length, overlap,
			)
		}
		sources[i] = Source{
			Path:    paths[i],
			Window:  timecode.Minutes(length),
			Overlap: timecode.Minutes(overlap),
		}
	}
	return sources, nil
}
