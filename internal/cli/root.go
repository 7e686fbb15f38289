package cli

import (
	"context"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mgpai22/srtstitch/internal/config"
	"github.com/mgpai22/srtstitch/internal/ffmpeg"
	"github.com/mgpai22/srtstitch/internal/logging"
	"github.com/mgpai22/srtstitch/internal/timecode"
)

var (
	verbose    bool
	configPath string
	cfg        *config.Config
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "srtstitch",
	Short: "Split long media into overlapping chunks and stitch their subtitles back together",
	Long: `srtstitch prepares long recordings for transcription services that only
accept short inputs, then reassembles the results.

"split" cuts the audio into overlapping windows named after their position
in the timeline. Transcribe each chunk with any tool you like, then "merge"
shifts the per-chunk subtitles onto one timeline and drops the duplicated
lines from the overlaps.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, resolved, exists, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger = logging.NewLogger(verbose, cfg.Logging.Level).With("run", uuid.NewString())
		if exists {
			logger.Debugw("Loaded config", "path", resolved)
		}

		resolver := cfg.Resolver()
		resolver.Logger = logger
		ffmpeg.Configure(resolver)
		return nil
	},
}

func Execute() error {
	return ExecuteContext(context.Background())
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file (default ~/.config/srtstitch/config.toml)")
}

// flagOr returns the named int flag when the user set it and fallback
// otherwise.
func flagOr(cmd *cobra.Command, name string, fallback int) int {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

// minutesFlagOr returns the named minutes flag when the user set it and
// fallback otherwise.
func minutesFlagOr(cmd *cobra.Command, name string, fallback timecode.Millis) timecode.Millis {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetInt(name)
	return timecode.Minutes(v)
}

func stringFlagOr(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
