package config

const (
	defaultWindowMinutes  = 10
	defaultOverlapMinutes = 1
	defaultOutputDir      = "chunks"
	defaultExtension      = ".mp4"
	defaultCodec          = "aac"
	defaultQuality        = 5
	defaultCutoffPolicy   = "window-boundary"
	defaultMergeFormat    = "srt"
	defaultLogLevel       = "info"
	defaultConfigPath     = "~/.config/srtstitch/config.toml"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Split: Split{
			WindowMinutes:  defaultWindowMinutes,
			OverlapMinutes: defaultOverlapMinutes,
			OutputDir:      defaultOutputDir,
			Extension:      defaultExtension,
			Codec:          defaultCodec,
			Quality:        defaultQuality,
		},
		Merge: Merge{
			CutoffPolicy: defaultCutoffPolicy,
			Format:       defaultMergeFormat,
		},
		Logging: Logging{
			Level: defaultLogLevel,
		},
	}
}
