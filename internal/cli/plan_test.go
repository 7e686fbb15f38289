package cli

import (
	"strings"
	"testing"

	"github.com/mgpai22/srtstitch/internal/timecode"
	"github.com/mgpai22/srtstitch/internal/window"
)

func TestRenderPlan(t *testing.T) {
	windows, err := window.Plan(timecode.Minutes(25), timecode.Minutes(10), timecode.Minutes(1))
	if err != nil {
		t.Fatal(err)
	}

	out := renderPlan(windows, ".mp4")
	for _, want := range []string{
		"chunk_001_000-010min.mp4",
		"chunk_002_009-019min.mp4",
		"chunk_003_018-025min.mp4",
		"00:18:00,000",
		"7.00 min",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("plan table missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, nil)
	if !strings.Contains(out, "only") {
		t.Errorf("table = %s", out)
	}
	if renderTable(nil, nil, nil) != "" {
		t.Error("table without headers should render empty")
	}
}
