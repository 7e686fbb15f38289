package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"github.com/mgpai22/srtstitch/internal/config"
	"github.com/mgpai22/srtstitch/internal/timecode"
)

func TestLoadDefaultConfigWhenFileAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	if want := filepath.Join(tempHome, ".config", "srtstitch", "config.toml"); resolved != want {
		t.Fatalf("resolved path = %q, want %q", resolved, want)
	}

	if cfg.Window() != timecode.Minutes(10) || cfg.Overlap() != timecode.Minutes(1) {
		t.Fatalf("unexpected default window/overlap: %v/%v", cfg.Window(), cfg.Overlap())
	}
	if !filepath.IsAbs(cfg.Split.OutputDir) || filepath.Base(cfg.Split.OutputDir) != "chunks" {
		t.Fatalf("output dir should be absolute chunks dir, got %q", cfg.Split.OutputDir)
	}
	if cfg.Split.Extension != ".mp4" || cfg.Split.Codec != "aac" || cfg.Split.Quality != 5 {
		t.Fatalf("unexpected encode defaults: %+v", cfg.Split)
	}
	if cfg.Merge.CutoffPolicy != "window-boundary" || cfg.Merge.Format != "srt" {
		t.Fatalf("unexpected merge defaults: %+v", cfg.Merge)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level: %q", cfg.Logging.Level)
	}
}

func TestLoadNormalizesFileValues(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "srtstitch.toml")
	content := `[split]
window_minutes = 20
overlap_minutes = 2
output_dir = "~/audio/chunks"
extension = "M4A"

[merge]
cutoff_policy = " First-Entry "
format = "VTT"

[ffmpeg]
ffmpeg_path = "~/bin/ffmpeg"
disable_download = true

[logging]
level = "DEBUG"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("resolved = %q exists = %v", resolved, exists)
	}
	if cfg.Window() != timecode.Minutes(20) || cfg.Overlap() != timecode.Minutes(2) {
		t.Fatalf("window/overlap = %v/%v", cfg.Window(), cfg.Overlap())
	}
	if cfg.Split.OutputDir != filepath.Join(tempHome, "audio", "chunks") {
		t.Fatalf("output dir not expanded: %q", cfg.Split.OutputDir)
	}
	if cfg.Split.Extension != ".m4a" {
		t.Fatalf("extension = %q", cfg.Split.Extension)
	}
	if cfg.Merge.CutoffPolicy != "first-entry" || cfg.Merge.Format != "vtt" {
		t.Fatalf("merge = %+v", cfg.Merge)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("level = %q", cfg.Logging.Level)
	}

	resolver := cfg.Resolver()
	if resolver.FFmpegPath != filepath.Join(tempHome, "bin", "ffmpeg") || !resolver.DisableDownload {
		t.Fatalf("resolver = %+v", resolver)
	}
	if resolver.FFprobePath != "" {
		t.Fatalf("unset ffprobe path should stay empty, got %q", resolver.FFprobePath)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, _, _, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"overlap too long", "[split]\nwindow_minutes = 5\noverlap_minutes = 5\n", "split.window_minutes"},
		{"zero window", "[split]\nwindow_minutes = 0\n", "split.window_minutes"},
		{"negative quality", "[split]\nquality = -1\n", "split.quality"},
		{"bad policy", "[merge]\ncutoff_policy = \"middle\"\n", "merge.cutoff_policy"},
		{"bad format", "[merge]\nformat = \"txt\"\n", "merge.format"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"unknown key", "[split]\nwindow = 5\n", "parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, _, _, err := config.Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestCreateSampleMatchesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	var sample config.Config
	if err := toml.Unmarshal(data, &sample); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}

	defaults := config.Default()
	if sample.Split != defaults.Split {
		t.Errorf("sample split = %+v, defaults = %+v", sample.Split, defaults.Split)
	}
	if sample.Merge != defaults.Merge {
		t.Errorf("sample merge = %+v, defaults = %+v", sample.Merge, defaults.Merge)
	}
}

func TestExpandPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := config.ExpandPath("~/subs")
	if err != nil {
		t.Fatal(err)
	}
	if got != filepath.Join(home, "subs") {
		t.Errorf("ExpandPath = %q", got)
	}
	if got, _ := config.ExpandPath(""); got != "" {
		t.Errorf("empty path should stay empty, got %q", got)
	}
}
