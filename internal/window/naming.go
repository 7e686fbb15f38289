package window

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// chunk_001_000-010min.mp4: 1-based ordinal, then start and end in whole
// minutes.
var chunkNameRegex = regexp.MustCompile(`^chunk_(\d{3,})_(\d{3,})-(\d{3,})min$`)

// ChunkName builds the file name for the window at the given 1-based
// ordinal.
func ChunkName(ordinal int, w Window, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return fmt.Sprintf(
		"chunk_%03d_%03d-%03dmin%s",
		ordinal,
		w.Start.WholeMinutes(),
		w.End.WholeMinutes(),
		ext,
	)
}

// ChunkInfo is what a chunk file name tells about its window.
type ChunkInfo struct {
	Ordinal      int
	StartMinutes int
	EndMinutes   int
}

// ParseChunkName recovers the ordinal and minute bounds from a path whose
// base name follows ChunkName. Any extension is ignored, so transcripts
// named after their audio chunk (chunk_002_009-019min.srt) parse too.
func ParseChunkName(path string) (ChunkInfo, error) {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))

	matches := chunkNameRegex.FindStringSubmatch(base)
	if matches == nil {
		return ChunkInfo{}, fmt.Errorf("%s does not follow the chunk naming convention", filepath.Base(path))
	}

	ordinal, _ := strconv.Atoi(matches[1])
	start, _ := strconv.Atoi(matches[2])
	end, _ := strconv.Atoi(matches[3])
	if ordinal < 1 {
		return ChunkInfo{}, fmt.Errorf("%s: chunk ordinal must start at 1", filepath.Base(path))
	}
	if end < start {
		return ChunkInfo{}, fmt.Errorf("%s: chunk ends before it starts", filepath.Base(path))
	}

	return ChunkInfo{Ordinal: ordinal, StartMinutes: start, EndMinutes: end}, nil
}
