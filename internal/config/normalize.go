package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizeSplit(); err != nil {
		return err
	}
	if err := c.normalizeFFmpeg(); err != nil {
		return err
	}
	c.Merge.CutoffPolicy = strings.ToLower(strings.TrimSpace(c.Merge.CutoffPolicy))
	if c.Merge.CutoffPolicy == "" {
		c.Merge.CutoffPolicy = defaultCutoffPolicy
	}
	c.Merge.Format = strings.ToLower(strings.TrimSpace(c.Merge.Format))
	if c.Merge.Format == "" {
		c.Merge.Format = defaultMergeFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}

func (c *Config) normalizeSplit() error {
	if strings.TrimSpace(c.Split.OutputDir) == "" {
		c.Split.OutputDir = defaultOutputDir
	}
	var err error
	if c.Split.OutputDir, err = expandPath(c.Split.OutputDir); err != nil {
		return fmt.Errorf("split.output_dir: %w", err)
	}

	ext := strings.ToLower(strings.TrimSpace(c.Split.Extension))
	if ext == "" {
		ext = defaultExtension
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	c.Split.Extension = ext

	c.Split.Codec = strings.TrimSpace(c.Split.Codec)
	if c.Split.Codec == "" {
		c.Split.Codec = defaultCodec
	}
	return nil
}

func (c *Config) normalizeFFmpeg() error {
	var err error
	if c.FFmpeg.FFmpegPath, err = expandPath(strings.TrimSpace(c.FFmpeg.FFmpegPath)); err != nil {
		return fmt.Errorf("ffmpeg.ffmpeg_path: %w", err)
	}
	if c.FFmpeg.FFprobePath, err = expandPath(strings.TrimSpace(c.FFmpeg.FFprobePath)); err != nil {
		return fmt.Errorf("ffmpeg.ffprobe_path: %w", err)
	}
	if c.FFmpeg.CacheDir, err = expandPath(strings.TrimSpace(c.FFmpeg.CacheDir)); err != nil {
		return fmt.Errorf("ffmpeg.cache_dir: %w", err)
	}
	return nil
}
