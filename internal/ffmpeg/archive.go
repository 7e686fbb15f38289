package ffmpeg

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

func downloadAndExtract(assetName, installDir string) error {
	url := fmt.Sprintf("%s/v%s/%s", ffmpegReleaseBaseURL, ffmpegReleaseVersion, assetName)
	client := &http.Client{Timeout: 5 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("download ffmpeg bundle: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download ffmpeg bundle: unexpected status %s", resp.Status)
	}

	return extractFromReader(assetName, resp.Body, installDir)
}

// bundledAssets holds release archives compiled into the binary. It is nil
// unless the ffmpeg_embedded build tag is set.
var bundledAssets fs.FS

func extractEmbedded(assetName, installDir string) (bool, error) {
	if bundledAssets == nil {
		return false, nil
	}
	file, err := bundledAssets.Open(assetName)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open bundled ffmpeg: %w", err)
	}
	defer func() { _ = file.Close() }()

	return true, extractFromReader(assetName, file, installDir)
}

// zip needs random access, so the stream is spooled to a temp file first
func extractFromReader(assetName string, reader io.Reader, installDir string) error {
	tmpFile, err := os.CreateTemp("", "srtstitch-ffmpeg-*.zip")
	if err != nil {
		return fmt.Errorf("create temp archive: %w", err)
	}
	archivePath := tmpFile.Name()
	defer func() { _ = os.Remove(archivePath) }()

	_, copyErr := io.Copy(tmpFile, reader)
	closeErr := tmpFile.Close()
	if err := errors.Join(copyErr, closeErr); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	if err := extractBinaries(archivePath, installDir); err != nil {
		return fmt.Errorf("extract %s: %w", assetName, err)
	}
	return nil
}

func extractBinaries(archivePath, installDir string) error {
	zipReader, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("open ffmpeg archive: %w", err)
	}
	defer func() { _ = zipReader.Close() }()

	wanted := map[string]bool{"ffmpeg": false, "ffprobe": false}
	for _, file := range zipReader.File {
		name := binaryName(filepath.Base(file.Name))
		found, ok := wanted[name]
		if !ok || found {
			continue
		}
		dest := filepath.Join(installDir, name+executableSuffix())
		if err := extractZipFile(file, dest); err != nil {
			return err
		}
		wanted[name] = true
	}

	for name, found := range wanted {
		if !found {
			return fmt.Errorf("ffmpeg archive missing %s", name)
		}
	}
	return nil
}

// binaryName maps "ffmpeg", "FFMPEG.EXE" and the like to the bare tool name.
func binaryName(base string) string {
	return strings.TrimSuffix(strings.ToLower(base), ".exe")
}

func extractZipFile(file *zip.File, dest string) error {
	reader, err := file.Open()
	if err != nil {
		return fmt.Errorf("open ffmpeg archive entry: %w", err)
	}
	defer func() { _ = reader.Close() }()

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create ffmpeg output dir: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create ffmpeg binary: %w", err)
	}
	defer func() { _ = out.Close() }()

	if _, err := io.Copy(out, reader); err != nil {
		return fmt.Errorf("write ffmpeg binary: %w", err)
	}
	return nil
}
