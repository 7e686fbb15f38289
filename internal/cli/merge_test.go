package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mgpai22/srtstitch/internal/merge"
	"github.com/mgpai22/srtstitch/internal/subtitle"
	"github.com/mgpai22/srtstitch/internal/timecode"
)

var testDefaults = merge.Source{Window: timecode.Minutes(10), Overlap: timecode.Minutes(1)}

func TestParseFragmentArg(t *testing.T) {
	tests := []struct {
		arg     string
		want    merge.Source
		wantErr bool
	}{
		{"a.srt", merge.Source{Path: "a.srt", Window: timecode.Minutes(10), Overlap: timecode.Minutes(1)}, false},
		{"a.srt:15:2", merge.Source{Path: "a.srt", Window: timecode.Minutes(15), Overlap: timecode.Minutes(2)}, false},
		{"a.srt:20", merge.Source{Path: "a.srt", Window: timecode.Minutes(20), Overlap: timecode.Minutes(1)}, false},
		{"a.srt:90s:30s", merge.Source{Path: "a.srt", Window: 90 * timecode.Second, Overlap: 30 * timecode.Second}, false},
		{"a.srt:1.5:0", merge.Source{Path: "a.srt", Window: 90 * timecode.Second, Overlap: 0}, false},
		{`C:\subs\a.srt`, merge.Source{Path: `C:\subs\a.srt`, Window: timecode.Minutes(10), Overlap: timecode.Minutes(1)}, false},
		{`C:\subs\a.srt:5:1`, merge.Source{Path: `C:\subs\a.srt`, Window: timecode.Minutes(5), Overlap: timecode.Minutes(1)}, false},
		{"odd:name.srt", merge.Source{Path: "odd:name.srt", Window: timecode.Minutes(10), Overlap: timecode.Minutes(1)}, false},
		{":10:1", merge.Source{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseFragmentArg(tt.arg, testDefaults)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseLength(t *testing.T) {
	tests := []struct {
		input   string
		want    timecode.Millis
		wantErr bool
	}{
		{"10", timecode.Minutes(10), false},
		{"0.5", 30 * timecode.Second, false},
		{"1m30s", 90 * timecode.Second, false},
		{"", 0, true},
		{"ten", 0, true},
		{"Inf", 0, true},
	}

	for _, tt := range tests {
		got, err := parseLength(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseLength(%q) error = %v", tt.input, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("parseLength(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestResolveSources(t *testing.T) {
	t.Run("arguments", func(t *testing.T) {
		sources, err := resolveSources([]string{"a.srt", "b.srt:5:1"}, "", false, testDefaults)
		if err != nil {
			t.Fatal(err)
		}
		if len(sources) != 2 || sources[1].Window != timecode.Minutes(5) {
			t.Errorf("sources = %+v", sources)
		}
	})

	t.Run("from names", func(t *testing.T) {
		sources, err := resolveSources(
			[]string{"chunk_001_000-020min.srt", "chunk_002_018-038min.srt"},
			"", true, testDefaults,
		)
		if err != nil {
			t.Fatal(err)
		}
		if sources[0].Window != timecode.Minutes(20) || sources[0].Overlap != timecode.Minutes(2) {
			t.Errorf("sources = %+v", sources)
		}
	})

	t.Run("manifest", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "m.yaml")
		if err := os.WriteFile(path, []byte("window: 10m\noverlap: 1m\nfragments:\n  - path: a.srt\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		sources, err := resolveSources(nil, path, false, testDefaults)
		if err != nil {
			t.Fatal(err)
		}
		if len(sources) != 1 || sources[0].Path != filepath.Join(filepath.Dir(path), "a.srt") {
			t.Errorf("sources = %+v", sources)
		}
		if _, err := resolveSources([]string{"b.srt"}, path, false, testDefaults); err == nil {
			t.Error("expected error when mixing a manifest with arguments")
		}
	})

	t.Run("nothing", func(t *testing.T) {
		if _, err := resolveSources(nil, "", false, testDefaults); err == nil {
			t.Error("expected error without fragments")
		}
	})
}

func TestOutputFormat(t *testing.T) {
	tests := []struct {
		name       string
		flagValue  string
		flagSet    bool
		output     string
		configured string
		want       subtitle.Format
		wantErr    bool
	}{
		{"config default", "srt", false, "", "vtt", subtitle.FormatVTT, false},
		{"output extension", "srt", false, "talk.VTT", "srt", subtitle.FormatVTT, false},
		{"ssa extension", "srt", false, "talk.ssa", "srt", subtitle.FormatASS, false},
		{"flag beats extension", "ass", true, "talk.vtt", "srt", subtitle.FormatASS, false},
		{"no extension uses config", "srt", false, "merged", "ass", subtitle.FormatASS, false},
		{"bad flag", "txt", true, "talk.srt", "srt", "", true},
		{"bad config", "srt", false, "", "docx", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := outputFormat(tt.flagValue, tt.flagSet, tt.output, tt.configured)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("outputFormat = %q, want %q", got, tt.want)
			}
		})
	}
}
