package cli

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/mgpai22/srtstitch/internal/audio"
	"github.com/mgpai22/srtstitch/internal/config"
	"github.com/mgpai22/srtstitch/internal/timecode"
)

func TestMinutesFlagOr(t *testing.T) {
	configured := config.Default()
	configured.Split.WindowMinutes = 20
	configured.Split.OverlapMinutes = 2

	tests := []struct {
		name        string
		args        []string
		wantWindow  timecode.Millis
		wantOverlap timecode.Millis
	}{
		{"config when unset", nil, timecode.Minutes(20), timecode.Minutes(2)},
		{"flag when set", []string{"--window", "15"}, timecode.Minutes(15), timecode.Minutes(2)},
		{"explicit zero overlap", []string{"--overlap", "0"}, timecode.Minutes(20), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "test"}
			cmd.Flags().Int("window", 10, "")
			cmd.Flags().Int("overlap", 1, "")
			if err := cmd.Flags().Parse(tt.args); err != nil {
				t.Fatal(err)
			}

			if got := minutesFlagOr(cmd, "window", configured.Window()); got != tt.wantWindow {
				t.Errorf("window = %d, want %d", got, tt.wantWindow)
			}
			if got := minutesFlagOr(cmd, "overlap", configured.Overlap()); got != tt.wantOverlap {
				t.Errorf("overlap = %d, want %d", got, tt.wantOverlap)
			}
		})
	}
}

func TestExtractFlagDefaults(t *testing.T) {
	defaults := audio.DefaultExtractOptions()
	flags := extractCmd.Flags()

	if got := flags.Lookup("format").DefValue; got != defaults.Format {
		t.Errorf("format default = %q, want %q", got, defaults.Format)
	}
	if got, _ := flags.GetInt("sample-rate"); got != defaults.SampleRate {
		t.Errorf("sample-rate default = %d, want %d", got, defaults.SampleRate)
	}
	if got, _ := flags.GetInt("channels"); got != defaults.Channels {
		t.Errorf("channels default = %d, want %d", got, defaults.Channels)
	}
}
