package ffmpeg

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"testing/fstest"
)

func noLookPath(string) (string, error) {
	return "", errors.New("not found")
}

func TestResolveExplicitPaths(t *testing.T) {
	t.Setenv(envFFmpegPath, "/env/ffmpeg")
	t.Setenv(envFFprobePath, "/env/ffprobe")

	r := Resolver{FFmpegPath: "/opt/ffmpeg", FFprobePath: "/opt/ffprobe", lookPath: noLookPath}
	paths, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if paths.FFmpeg != "/opt/ffmpeg" || paths.FFprobe != "/opt/ffprobe" {
		t.Errorf("explicit paths not preferred: %+v", paths)
	}
}

func TestResolveEnvironment(t *testing.T) {
	t.Setenv(envFFmpegPath, "/env/ffmpeg")
	t.Setenv(envFFprobePath, "/env/ffprobe")

	paths, err := Resolver{lookPath: noLookPath}.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if paths.FFmpeg != "/env/ffmpeg" || paths.FFprobe != "/env/ffprobe" {
		t.Errorf("environment paths not used: %+v", paths)
	}
}

func TestResolvePathLookup(t *testing.T) {
	t.Setenv(envFFmpegPath, "")
	t.Setenv(envFFprobePath, "/env/ffprobe")

	r := Resolver{lookPath: func(name string) (string, error) {
		return "/usr/bin/" + name, nil
	}}
	paths, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if paths.FFmpeg != "/usr/bin/ffmpeg" {
		t.Errorf("ffmpeg = %q, want PATH lookup result", paths.FFmpeg)
	}
	if paths.FFprobe != "/env/ffprobe" {
		t.Errorf("ffprobe = %q, want environment value", paths.FFprobe)
	}
}

func TestResolveCachedBinaries(t *testing.T) {
	t.Setenv(envFFmpegPath, "")
	t.Setenv(envFFprobePath, "")

	cache := t.TempDir()
	r := Resolver{CacheDir: cache, DisableDownload: true, lookPath: noLookPath}
	dir, _ := r.installDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"ffmpeg", "ffprobe"} {
		if err := os.WriteFile(filepath.Join(dir, name+executableSuffix()), []byte("bin"), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	paths, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !strings.HasPrefix(paths.FFmpeg, cache) || !strings.HasPrefix(paths.FFprobe, cache) {
		t.Errorf("cached binaries not used: %+v", paths)
	}
}

func TestResolveDownloadDisabled(t *testing.T) {
	if _, err := assetForPlatform(runtime.GOOS, runtime.GOARCH); err != nil {
		t.Skip("no bundled ffmpeg for this platform")
	}
	t.Setenv(envFFmpegPath, "")
	t.Setenv(envFFprobePath, "")

	r := Resolver{CacheDir: t.TempDir(), DisableDownload: true, lookPath: noLookPath}
	_, err := r.Resolve()
	if err == nil {
		t.Fatal("expected error when ffmpeg is missing and downloads are disabled")
	}
	if !strings.Contains(err.Error(), envFFmpegPath) {
		t.Errorf("error should mention %s: %v", envFFmpegPath, err)
	}
}

func TestAssetForPlatform(t *testing.T) {
	tests := []struct {
		goos, goarch string
		want         string
		wantErr      bool
	}{
		{"linux", "amd64", "ffmpeg-6.1-linux-64.zip", false},
		{"linux", "arm64", "ffmpeg-6.1-linux-arm-64.zip", false},
		{"darwin", "amd64", "ffmpeg-6.1-macos-64.zip", false},
		{"windows", "amd64", "ffmpeg-6.1-win-64.zip", false},
		{"plan9", "386", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.goos+"/"+tt.goarch, func(t *testing.T) {
			got, err := assetForPlatform(tt.goos, tt.goarch)
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
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestExtractBinaries(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "bundle.zip")
	writeZip(t, archive, map[string]string{
		"bin/FFMPEG.exe": "ffmpeg-bytes",
		"ffprobe":        "ffprobe-bytes",
		"README.txt":     "ignored",
	})

	installDir := filepath.Join(dir, "install")
	if err := extractBinaries(archive, installDir); err != nil {
		t.Fatalf("extractBinaries: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(installDir, "ffmpeg"+executableSuffix()))
	if err != nil {
		t.Fatalf("ffmpeg not extracted: %v", err)
	}
	if string(data) != "ffmpeg-bytes" {
		t.Errorf("ffmpeg contents = %q", data)
	}
	if _, err := os.Stat(filepath.Join(installDir, "README.txt")); !os.IsNotExist(err) {
		t.Error("unrelated archive entries should not be extracted")
	}
}

func TestExtractBinariesMissingProbe(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "bundle.zip")
	writeZip(t, archive, map[string]string{"ffmpeg": "x"})

	err := extractBinaries(archive, filepath.Join(dir, "install"))
	if err == nil || !strings.Contains(err.Error(), "ffprobe") {
		t.Errorf("expected missing ffprobe error, got %v", err)
	}
}

func TestResolveFromBundledAssets(t *testing.T) {
	asset, err := assetForPlatform(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		t.Skip("no bundled ffmpeg for this platform")
	}
	t.Setenv(envFFmpegPath, "")
	t.Setenv(envFFprobePath, "")

	dir := t.TempDir()
	archive := filepath.Join(dir, asset)
	writeZip(t, archive, map[string]string{
		"ffmpeg" + executableSuffix():  "ffmpeg-bytes",
		"ffprobe" + executableSuffix(): "ffprobe-bytes",
	})
	data, err := os.ReadFile(archive)
	if err != nil {
		t.Fatal(err)
	}

	saved := bundledAssets
	bundledAssets = fstest.MapFS{asset: &fstest.MapFile{Data: data}}
	t.Cleanup(func() { bundledAssets = saved })

	r := Resolver{CacheDir: filepath.Join(dir, "cache"), DisableDownload: true, lookPath: noLookPath}
	paths, err := r.Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	got, err := os.ReadFile(paths.FFprobe)
	if err != nil || string(got) != "ffprobe-bytes" {
		t.Errorf("ffprobe not installed from bundle: %q, %v", got, err)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(paths.FFmpeg)
		if err != nil || info.Mode().Perm()&0o100 == 0 {
			t.Errorf("ffmpeg should be executable: %v", err)
		}
	}
}
