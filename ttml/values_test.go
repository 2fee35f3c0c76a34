package ttml

import (
	"testing"
	"time"

	"cueweb/span"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{"00:00:01", time.Second},
		{"01:02:03", time.Hour + 2*time.Minute + 3*time.Second},
		{"00:00:01.500", 1500 * time.Millisecond},
		{"00:01:02:12", time.Minute + 2*time.Second}, // frames dropped
		{"12.5s", 12500 * time.Millisecond},
		{"300ms", 300 * time.Millisecond},
		{"2m", 2 * time.Minute},
		{"1.5h", 90 * time.Minute},
	}
	for _, tt := range tests {
		got, err := parseTime(tt.in)
		if err != nil {
			t.Errorf("parseTime(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseTime(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "later", "00:99:00", "1:2", "-5s", "5 s"} {
		if _, err := parseTime(bad); err == nil {
			t.Errorf("parseTime(%q): expected error", bad)
		}
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"red", 0xFFFF0000},
		{"White", 0xFFFFFFFF},
		{"transparent", 0x00000000},
		{"#0000FF", 0xFF0000FF},
		{"#0000ff80", 0x800000FF},
		{"rgb(255,0,0)", 0xFFFF0000},
		{"rgba(0, 255, 0, 128)", 0x8000FF00},
	}
	for _, tt := range tests {
		got, err := parseColor(tt.in)
		if err != nil {
			t.Errorf("parseColor(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseColor(%q) = %#08x, want %#08x", tt.in, got, tt.want)
		}
	}

	for _, bad := range []string{"", "reddish", "#12", "#GGGGGG", "rgb(1,2)", "rgba(0,0,0,300)", "hsl(0,0,0)"} {
		if _, err := parseColor(bad); err == nil {
			t.Errorf("parseColor(%q): expected error", bad)
		}
	}
}

func TestParseFontSize(t *testing.T) {
	s, ok := parseFontSize("18px", 1, 4)
	if !ok || s.Kind != span.AbsoluteSize || s.Size != 18 || !s.DIP || s.Start != 1 || s.End != 4 {
		t.Errorf("18px: got %+v, ok=%v", s, ok)
	}
	s, ok = parseFontSize("150%", 0, 2)
	if !ok || s.Kind != span.RelativeSize || s.Size != 1.5 {
		t.Errorf("150%%: got %+v, ok=%v", s, ok)
	}
	s, ok = parseFontSize("1.2em", 0, 2)
	if !ok || s.Kind != span.RelativeSize || s.Size != 1.2 {
		t.Errorf("1.2em: got %+v, ok=%v", s, ok)
	}
	// two-component size: the vertical extent wins
	s, ok = parseFontSize("100% 50%", 0, 2)
	if !ok || s.Kind != span.RelativeSize || s.Size != 0.5 {
		t.Errorf("100%% 50%%: got %+v, ok=%v", s, ok)
	}
	for _, bad := range []string{"", "big", "2c", "-3px", "0px"} {
		if _, ok := parseFontSize(bad, 0, 1); ok {
			t.Errorf("parseFontSize(%q): expected failure", bad)
		}
	}
}

func TestParseTextEmphasis(t *testing.T) {
	tests := []struct {
		in       string
		wantMark span.EmphasisMark
		wantPos  span.EmphasisPosition
	}{
		{"auto", span.MarkAuto, span.EmphasisPositionUnknown},
		{"filled circle before", span.MarkFilledCircle, span.EmphasisPositionBefore},
		{"open sesame after", span.MarkOpenSesame, span.EmphasisPositionAfter},
		{"dot", span.MarkFilledDot, span.EmphasisPositionUnknown},
		{"filled outside", span.MarkFilledCircle, span.EmphasisPositionOutside},
		{"before open dot", span.MarkOpenDot, span.EmphasisPositionBefore},
	}
	for _, tt := range tests {
		mark, pos, ok := parseTextEmphasis(tt.in)
		if !ok {
			t.Errorf("parseTextEmphasis(%q): expected success", tt.in)
			continue
		}
		if mark != tt.wantMark || pos != tt.wantPos {
			t.Errorf("parseTextEmphasis(%q) = (%v, %v), want (%v, %v)", tt.in, mark, pos, tt.wantMark, tt.wantPos)
		}
	}
	for _, bad := range []string{"none", "wavy", ""} {
		if _, _, ok := parseTextEmphasis(bad); ok {
			t.Errorf("parseTextEmphasis(%q): expected failure", bad)
		}
	}
}

func TestRubyPosition(t *testing.T) {
	if got := rubyPosition("", "before"); got != span.RubyPositionOver {
		t.Errorf("own before = %v", got)
	}
	if got := rubyPosition("before", "after"); got != span.RubyPositionUnder {
		t.Errorf("own must win over container, got %v", got)
	}
	if got := rubyPosition("under", ""); got != span.RubyPositionUnder {
		t.Errorf("container fallback = %v", got)
	}
	if got := rubyPosition("", ""); got != span.RubyPositionUnknown {
		t.Errorf("unset = %v", got)
	}
}

func TestNormalizeSpace(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hello world", "hello world"},
		{"hello\n\t  world", "hello world"},
		{" hello ", " hello "},
		{"\n      ", " "},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizeSpace(tt.in); got != tt.want {
			t.Errorf("normalizeSpace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
