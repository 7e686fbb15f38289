//go:build ffmpeg_embedded

package ffmpeg

import (
	"embed"
	"io/fs"
)

// Builds tagged ffmpeg_embedded ship the release zips from assets/.
//
//go:embed assets/*.zip
var embeddedAssets embed.FS

func init() {
	sub, err := fs.Sub(embeddedAssets, "assets")
	if err == nil {
		bundledAssets = sub
	}
}
