package convert

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"cueweb/config"
	"cueweb/state"
	"cueweb/ttml"
)

func testEnv(t *testing.T) *state.LocalEnv {
	t.Helper()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return &state.LocalEnv{Cfg: cfg, Log: zap.NewNop()}
}

func testDoc() *ttml.Document {
	return &ttml.Document{
		RefID: "doc-1",
		Lang:  "en",
		Cues: []ttml.Cue{
			{ID: "c1", Begin: time.Second, End: 2 * time.Second, Text: nil},
		},
	}
}

func TestBuildOutputPath_NoDirs(t *testing.T) {
	env := testEnv(t)
	env.NoDirs = true

	got := buildOutputPath(testDoc(), "sub/dir/episode.ttml", "/out", config.OutputFmtHTML, env)
	want := filepath.Join("/out", "episode.html")
	if got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_KeepDirs(t *testing.T) {
	env := testEnv(t)

	got := buildOutputPath(testDoc(), "sub/dir/episode.ttml", "/out", config.OutputFmtHTML, env)
	want := filepath.Join("/out", "sub", "dir", "episode.html")
	if got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_BundleExtension(t *testing.T) {
	env := testEnv(t)
	env.NoDirs = true

	got := buildOutputPath(testDoc(), "episode.ttml", "/out", config.OutputFmtBundle, env)
	if !strings.HasSuffix(got, ".zip") {
		t.Errorf("bundle output must use .zip, got %q", got)
	}
}

func TestBuildOutputPath_Transliterate(t *testing.T) {
	env := testEnv(t)
	env.NoDirs = true
	env.Cfg.Preview.FileNameTransliterate = true

	got := buildOutputPath(testDoc(), "Серия Первая.ttml", "/out", config.OutputFmtHTML, env)
	base := filepath.Base(got)
	for _, r := range base {
		if r > 127 {
			t.Errorf("transliterated name still has non-ASCII rune %q in %q", r, base)
			break
		}
	}
}

func TestBuildOutputPath_Template(t *testing.T) {
	env := testEnv(t)
	env.NoDirs = true
	env.Cfg.Preview.OutputNameTemplate = "{{ .Language }}/{{ .SourceFile }}"

	got := buildOutputPath(testDoc(), "episode.ttml", "/out", config.OutputFmtHTML, env)
	want := filepath.Join("/out", "en", "episode.html")
	if got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestBuildOutputPath_BrokenTemplateFallsBack(t *testing.T) {
	env := testEnv(t)
	env.NoDirs = true
	env.Cfg.Preview.OutputNameTemplate = "{{ .NoSuchField }}"

	got := buildOutputPath(testDoc(), "episode.ttml", "/out", config.OutputFmtHTML, env)
	want := filepath.Join("/out", "episode.html")
	if got != want {
		t.Errorf("buildOutputPath() = %q, want %q", got, want)
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a/b/c", []string{"a", "b", "c"}},
		{"single", []string{"single"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitAndCleanPath(filepath.FromSlash(tt.in))
		if len(got) != len(tt.want) {
			t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.in, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.in, got, tt.want)
				break
			}
		}
	}
}
