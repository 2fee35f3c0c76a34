package css_test

import (
	"testing"

	"cueweb/css"
)

func TestRGBA(t *testing.T) {
	tests := []struct {
		name string
		argb uint32
		want string
	}{
		{"opaque white", 0xFFFFFFFF, "rgba(255,255,255,1.000)"},
		{"opaque black", 0xFF000000, "rgba(0,0,0,1.000)"},
		{"transparent", 0x00000000, "rgba(0,0,0,0.000)"},
		{"half alpha red", 0x80FF0000, "rgba(255,0,0,0.502)"},
		{"opaque blue", 0xFF0000FF, "rgba(0,0,255,1.000)"},
		{"arbitrary", 0x40102030, "rgba(16,32,48,0.251)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := css.RGBA(tt.argb); got != tt.want {
				t.Errorf("RGBA(%#x) = %q, want %q", tt.argb, got, tt.want)
			}
		})
	}
}

func TestAllClassDescendantsSelector(t *testing.T) {
	if got := css.AllClassDescendantsSelector("bg_4278190335"); got != ".bg_4278190335 *" {
		t.Errorf("unexpected selector: %q", got)
	}
}
