package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/srtstitch/internal/ffmpeg"
	"github.com/mgpai22/srtstitch/internal/timecode"
)

//go:embed sample_config.toml
var sampleConfig string

// Split configures audio windowing and chunk encoding.
type Split struct {
	WindowMinutes  int    `toml:"window_minutes"`
	OverlapMinutes int    `toml:"overlap_minutes"`
	OutputDir      string `toml:"output_dir"`
	Extension      string `toml:"extension"`
	Codec          string `toml:"codec"`
	Quality        int    `toml:"quality"`
	SampleRate     int    `toml:"sample_rate"`
}

// Merge configures subtitle reassembly.
type Merge struct {
	CutoffPolicy string `toml:"cutoff_policy"`
	Format       string `toml:"format"`
}

// FFmpeg overrides how the codec binaries are located.
type FFmpeg struct {
	FFmpegPath      string `toml:"ffmpeg_path"`
	FFprobePath     string `toml:"ffprobe_path"`
	DisableDownload bool   `toml:"disable_download"`
	CacheDir        string `toml:"cache_dir"`
}

type Logging struct {
	Level string `toml:"level"`
}

type Config struct {
	Split   Split   `toml:"split"`
	Merge   Merge   `toml:"merge"`
	FFmpeg  FFmpeg  `toml:"ffmpeg"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path of the default config file.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load reads the config at path, or the default location when path is
// empty, over the built-in defaults. A missing default file is not an
// error; a missing explicit file is. It returns the resolved path and
// whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}
	if path != "" && !exists {
		return nil, "", false, fmt.Errorf("config file %s: %w", resolvedPath, fs.ErrNotExist)
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path == "" {
		path = defaultConfigPath
	}
	expanded, err := expandPath(path)
	if err != nil {
		return "", false, err
	}

	info, err := os.Stat(expanded)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return expanded, false, nil
		}
		return "", false, fmt.Errorf("stat config: %w", err)
	}
	if info.IsDir() {
		return "", false, fmt.Errorf("config path %s is a directory", expanded)
	}
	return expanded, true, nil
}

// Window is the configured split window length.
func (c *Config) Window() timecode.Millis {
	return timecode.Minutes(c.Split.WindowMinutes)
}

// Overlap is the configured split overlap length.
func (c *Config) Overlap() timecode.Millis {
	return timecode.Minutes(c.Split.OverlapMinutes)
}

// Resolver builds the ffmpeg binary resolver described by the [ffmpeg]
// section.
func (c *Config) Resolver() ffmpeg.Resolver {
	return ffmpeg.Resolver{
		FFmpegPath:      c.FFmpeg.FFmpegPath,
		FFprobePath:     c.FFmpeg.FFprobePath,
		DisableDownload: c.FFmpeg.DisableDownload,
		CacheDir:        c.FFmpeg.CacheDir,
	}
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// ExpandPath applies the config package's tilde and absolute path rules.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a commented sample configuration file.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
