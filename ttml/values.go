package ttml

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cueweb/span"
)

// parseTime accepts the two TTML time expression families: clock times
// "HH:MM:SS", "HH:MM:SS.fff" and "HH:MM:SS:ff" (frames are dropped, frame
// rate interpretation is out of scope), and offset times like "12.5s",
// "300ms", "2m" or "1.5h".
func parseTime(v string) (time.Duration, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, fmt.Errorf("empty time expression")
	}

	if parts := strings.Split(v, ":"); len(parts) >= 3 {
		h, err1 := strconv.Atoi(parts[0])
		m, err2 := strconv.Atoi(parts[1])
		s, err3 := strconv.ParseFloat(parts[2], 64)
		if err1 != nil || err2 != nil || err3 != nil || len(parts) > 4 {
			return 0, fmt.Errorf("bad clock time %q", v)
		}
		if m < 0 || m > 59 || s < 0 || s >= 61 {
			return 0, fmt.Errorf("clock time %q out of range", v)
		}
		d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute +
			time.Duration(s*float64(time.Second))
		return d, nil
	}

	for _, unit := range []struct {
		suffix string
		scale  time.Duration
	}{
		{"ms", time.Millisecond},
		{"h", time.Hour},
		{"m", time.Minute},
		{"s", time.Second},
	} {
		if !strings.HasSuffix(v, unit.suffix) {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, unit.suffix), 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("bad offset time %q", v)
		}
		return time.Duration(n * float64(unit.scale)), nil
	}
	return 0, fmt.Errorf("unrecognized time expression %q", v)
}

// namedColors is the TTML <named-color> set, as ARGB.
var namedColors = map[string]uint32{
	"transparent": 0x00000000,
	"black":       0xFF000000,
	"silver":      0xFFC0C0C0,
	"gray":        0xFF808080,
	"white":       0xFFFFFFFF,
	"maroon":      0xFF800000,
	"red":         0xFFFF0000,
	"purple":      0xFF800080,
	"fuchsia":     0xFFFF00FF,
	"magenta":     0xFFFF00FF,
	"green":       0xFF008000,
	"lime":        0xFF00FF00,
	"olive":       0xFF808000,
	"yellow":      0xFFFFFF00,
	"navy":        0xFF000080,
	"blue":        0xFF0000FF,
	"teal":        0xFF008080,
	"aqua":        0xFF00FFFF,
	"cyan":        0xFF00FFFF,
}

// parseColor converts a TTML color expression (named color, #RRGGBB,
// #RRGGBBAA, rgb(...) or rgba(...)) to ARGB.
func parseColor(v string) (uint32, error) {
	v = strings.TrimSpace(v)
	if c, ok := namedColors[strings.ToLower(v)]; ok {
		return c, nil
	}

	if strings.HasPrefix(v, "#") {
		n, err := strconv.ParseUint(v[1:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("bad hex color %q", v)
		}
		switch len(v) - 1 {
		case 6:
			return 0xFF000000 | uint32(n), nil
		case 8:
			// #RRGGBBAA carries alpha last, ARGB wants it first
			return uint32(n)>>8 | uint32(n&0xff)<<24, nil
		}
		return 0, fmt.Errorf("bad hex color %q", v)
	}

	fn, rest, ok := strings.Cut(v, "(")
	if !ok || !strings.HasSuffix(rest, ")") {
		return 0, fmt.Errorf("unrecognized color %q", v)
	}
	args := strings.Split(strings.TrimSuffix(rest, ")"), ",")
	var wantArgs int
	switch fn {
	case "rgb":
		wantArgs = 3
	case "rgba":
		wantArgs = 4
	default:
		return 0, fmt.Errorf("unrecognized color function %q", fn)
	}
	if len(args) != wantArgs {
		return 0, fmt.Errorf("color %q needs %d components", v, wantArgs)
	}

	var c uint32 = 0xFF000000
	for i, arg := range args {
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 0 || n > 255 {
			return 0, fmt.Errorf("bad color component %q in %q", arg, v)
		}
		if i == 3 {
			c = c&0x00FFFFFF | uint32(n)<<24
		} else {
			c |= uint32(n) << (16 - 8*i)
		}
	}
	return c, nil
}

// parseFontSize maps a TTML fontSize to a size span over [start, end).
// Pixel sizes are treated as device independent, percentages and em factors
// become relative sizes. Cell sizes need region geometry and are rejected.
func parseFontSize(v string, start, end int) (span.Span, bool) {
	// two-component sizes scale both axes; only the vertical one matters
	if fields := strings.Fields(v); len(fields) == 2 {
		v = fields[1]
	}

	for _, unit := range []string{"px", "em", "%"} {
		if !strings.HasSuffix(v, unit) {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSuffix(v, unit), 64)
		if err != nil || n <= 0 {
			return span.Span{}, false
		}
		switch unit {
		case "px":
			return span.NewAbsoluteSize(n, true, start, end), true
		case "em":
			return span.NewRelativeSize(n, start, end), true
		default:
			return span.NewRelativeSize(n/100, start, end), true
		}
	}
	return span.Span{}, false
}

// parseTextEmphasis interprets a tts:textEmphasis value: an optional style
// ("filled"/"open", or shorthand "auto"/"none"), an optional mark shape and
// an optional position. Token order is free per the TTML2 grammar.
func parseTextEmphasis(v string) (span.EmphasisMark, span.EmphasisPosition, bool) {
	mark := span.MarkUnknown
	pos := span.EmphasisPositionUnknown
	filled := true
	haveStyle := false
	shape := ""

	for _, tok := range strings.Fields(strings.ToLower(v)) {
		switch tok {
		case "none":
			return 0, 0, false
		case "auto":
			mark = span.MarkAuto
		case "filled":
			filled, haveStyle = true, true
		case "open":
			filled, haveStyle = false, true
		case "circle", "dot", "sesame":
			shape = tok
		case "before":
			pos = span.EmphasisPositionBefore
		case "after":
			pos = span.EmphasisPositionAfter
		case "outside":
			pos = span.EmphasisPositionOutside
		case "current":
			// inherit: nothing to record
		default:
			return 0, 0, false
		}
	}

	if shape == "" && haveStyle {
		shape = "circle"
	}
	switch shape {
	case "circle":
		mark = span.MarkFilledCircle
	case "dot":
		mark = span.MarkFilledDot
	case "sesame":
		mark = span.MarkFilledSesame
	}
	if shape != "" && !filled {
		mark += span.MarkOpenCircle - span.MarkFilledCircle
	}
	if mark == span.MarkUnknown {
		return 0, 0, false
	}
	return mark, pos, true
}

// rubyPosition resolves the position of a ruby annotation: the position set
// on the text span itself wins over the one inherited from its container.
func rubyPosition(parent, own string) span.RubyPosition {
	v := own
	if v == "" {
		v = parent
	}
	switch v {
	case "before", "over":
		return span.RubyPositionOver
	case "after", "under":
		return span.RubyPositionUnder
	}
	return span.RubyPositionUnknown
}
