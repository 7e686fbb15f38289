package cli

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/mgpai22/srtstitch/internal/audio"
	"github.com/mgpai22/srtstitch/internal/timecode"
	"github.com/mgpai22/srtstitch/internal/window"
)

var planCmd = &cobra.Command{
	Use:   "plan [media_file]",
	Short: "Show the windows a split would produce",
	Long: `Print the window layout for a media file, or for a timeline length given
with --length, without decoding or writing anything.

Examples:
  srtstitch plan lecture.mp4
  srtstitch plan --length 2h15m --window 20 --overlap 2`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().
		Duration("length", 0, "Timeline length instead of probing a media file (e.g. 95m)")
	planCmd.Flags().
		IntP("window", "w", 10, "Window length in minutes")
	planCmd.Flags().
		Int("overlap", 1, "Overlap between consecutive windows in minutes")
	planCmd.Flags().
		String("extension", ".mp4", "Chunk file extension")
}

func runPlan(cmd *cobra.Command, args []string) error {
	length, _ := cmd.Flags().GetDuration("length")
	windowLen := minutesFlagOr(cmd, "window", cfg.Window())
	overlapLen := minutesFlagOr(cmd, "overlap", cfg.Overlap())
	extension := stringFlagOr(cmd, "extension", cfg.Split.Extension)

	var total timecode.Millis
	switch {
	case len(args) == 1 && length > 0:
		return errors.New("give either a media file or --length, not both")
	case len(args) == 1:
		d, err := audio.GetDuration(commandContext(cmd), args[0])
		if err != nil {
			return err
		}
		total = d
	case length > 0:
		total = timecode.FromDuration(length)
	default:
		return errors.New("a media file or --length is required")
	}

	windows, err := window.Plan(total, windowLen, overlapLen)
	if err != nil {
		return err
	}

	fmt.Println(renderPlan(windows, extension))
	fmt.Printf("%d windows covering %s\n", len(windows), total.Duration().Round(time.Millisecond))
	return nil
}

func renderPlan(windows []window.Window, extension string) string {
	rows := make([][]string, len(windows))
	for i, w := range windows {
		rows[i] = []string{
			strconv.Itoa(i + 1),
			timecode.FormatSRT(w.Start),
			timecode.FormatSRT(w.End),
			fmt.Sprintf("%.2f min", w.Length().Duration().Minutes()),
			window.ChunkName(i+1, w, extension),
		}
	}
	return renderTable(
		[]string{"#", "Start", "End", "Length", "Chunk"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignLeft},
	)
}
