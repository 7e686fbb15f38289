package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/mgpai22/srtstitch/internal/logging"
)

const (
	ffmpegReleaseVersion = "6.1"
	ffmpegReleaseBaseURL = "https://github.com/ffbinaries/ffbinaries-prebuilt/releases/download"

	envFFmpegPath  = "SRTSTITCH_FFMPEG_PATH"
	envFFprobePath = "SRTSTITCH_FFPROBE_PATH"
)

type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

// Resolver finds the codec binaries. The zero value searches the
// environment and PATH and falls back to downloading into the user cache.
type Resolver struct {
	FFmpegPath      string
	FFprobePath     string
	DisableDownload bool
	CacheDir        string
	Logger          *logging.Logger

	lookPath func(string) (string, error)
}

var (
	mu         sync.Mutex
	configured Resolver
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Configure replaces the resolver used by Ensure. It only has an effect
// before the first call to Ensure.
func Configure(r Resolver) {
	mu.Lock()
	defer mu.Unlock()
	configured = r
}

func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		mu.Lock()
		r := configured
		mu.Unlock()
		ensurePath, ensureErr = r.Resolve()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func (r Resolver) Resolve() (BinaryPaths, error) {
	log := logging.OrNop(r.Logger)
	lookPath := r.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	paths := BinaryPaths{FFmpeg: r.FFmpegPath, FFprobe: r.FFprobePath}
	if paths.FFmpeg == "" {
		paths.FFmpeg = os.Getenv(envFFmpegPath)
	}
	if paths.FFprobe == "" {
		paths.FFprobe = os.Getenv(envFFprobePath)
	}
	if paths.FFmpeg == "" {
		if found, err := lookPath("ffmpeg"); err == nil {
			paths.FFmpeg = found
		}
	}
	if paths.FFprobe == "" {
		if found, err := lookPath("ffprobe"); err == nil {
			paths.FFprobe = found
		}
	}
	if paths.FFmpeg != "" && paths.FFprobe != "" {
		log.Debugw("Using ffmpeg binaries", "ffmpeg", paths.FFmpeg, "ffprobe", paths.FFprobe)
		return paths, nil
	}

	installDir, err := r.installDir()
	if err != nil {
		return BinaryPaths{}, err
	}
	cached := BinaryPaths{
		FFmpeg:  filepath.Join(installDir, "ffmpeg"+executableSuffix()),
		FFprobe: filepath.Join(installDir, "ffprobe"+executableSuffix()),
	}
	if binariesExist(cached) {
		return cached, nil
	}

	assetName, err := assetForPlatform(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return BinaryPaths{}, err
	}
	if err := os.MkdirAll(installDir, 0o755); err != nil {
		return BinaryPaths{}, fmt.Errorf("create ffmpeg cache dir: %w", err)
	}

	embeddedUsed, err := extractEmbedded(assetName, installDir)
	if err != nil {
		return BinaryPaths{}, err
	}
	if !embeddedUsed {
		if r.DisableDownload {
			return BinaryPaths{}, errors.New(
				"ffmpeg not found: install it, set " + envFFmpegPath + " and " +
					envFFprobePath + ", or enable downloads",
			)
		}
		log.Infow("Downloading ffmpeg", "asset", assetName, "dir", installDir)
		if err := downloadAndExtract(assetName, installDir); err != nil {
			return BinaryPaths{}, err
		}
	}

	if !binariesExist(cached) {
		return BinaryPaths{}, errors.New("ffmpeg binaries not found after extraction")
	}
	if err := makeExecutable(cached); err != nil {
		return BinaryPaths{}, err
	}
	return cached, nil
}

func (r Resolver) installDir() (string, error) {
	base := r.CacheDir
	if base == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil || cacheDir == "" {
			cacheDir = os.TempDir()
		}
		base = filepath.Join(cacheDir, "srtstitch", "ffmpeg")
	}
	return filepath.Join(base, ffmpegReleaseVersion, runtime.GOOS, runtime.GOARCH), nil
}

func assetForPlatform(goos, goarch string) (string, error) {
	switch {
	case goos == "linux" && goarch == "amd64":
		return "ffmpeg-" + ffmpegReleaseVersion + "-linux-64.zip", nil
	case goos == "linux" && goarch == "arm64":
		return "ffmpeg-" + ffmpegReleaseVersion + "-linux-arm-64.zip", nil
	case goos == "darwin" && goarch == "amd64":
		return "ffmpeg-" + ffmpegReleaseVersion + "-macos-64.zip", nil
	case goos == "windows" && goarch == "amd64":
		return "ffmpeg-" + ffmpegReleaseVersion + "-win-64.zip", nil
	default:
		return "", fmt.Errorf("unsupported platform for bundled ffmpeg: %s/%s", goos, goarch)
	}
}

func makeExecutable(paths BinaryPaths) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	for _, p := range []string{paths.FFmpeg, paths.FFprobe} {
		if err := os.Chmod(p, 0o755); err != nil {
			return fmt.Errorf("chmod %s: %w", filepath.Base(p), err)
		}
	}
	return nil
}

func binariesExist(paths BinaryPaths) bool {
	return fileExists(paths.FFmpeg) && fileExists(paths.FFprobe)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
