package config

import (
	"errors"
	"fmt"

	"go.uber.org/zap/zapcore"

	"github.com/mgpai22/srtstitch/internal/merge"
	"github.com/mgpai22/srtstitch/internal/subtitle"
	"github.com/mgpai22/srtstitch/internal/window"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSplit(); err != nil {
		return err
	}
	if err := c.validateMerge(); err != nil {
		return err
	}
	if _, err := zapcore.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	return nil
}

func (c *Config) validateSplit() error {
	if err := window.CheckParams(c.Window(), c.Overlap()); err != nil {
		return fmt.Errorf("split.window_minutes/overlap_minutes: %w", err)
	}
	if c.Split.Quality < 0 {
		return errors.New("split.quality must not be negative")
	}
	if c.Split.SampleRate < 0 {
		return errors.New("split.sample_rate must not be negative")
	}
	return nil
}

func (c *Config) validateMerge() error {
	if _, err := merge.ParseCutoffPolicy(c.Merge.CutoffPolicy); err != nil {
		return fmt.Errorf("merge.cutoff_policy: %w", err)
	}
	if _, err := subtitle.ParseFormat(c.Merge.Format); err != nil {
		return fmt.Errorf("merge.format: %w", err)
	}
	return nil
}
