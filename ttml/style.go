package ttml

import (
	"strings"

	"github.com/beevik/etree"
	"go.uber.org/zap"

	"cueweb/span"
)

// styleAttrs is a flat set of tts styling attributes by local name.
type styleAttrs map[string]string

// keptAttrs is the styling subset this decoder interprets.
var keptAttrs = map[string]struct{}{
	"color":           {},
	"backgroundColor": {},
	"fontWeight":      {},
	"fontStyle":       {},
	"textDecoration":  {},
	"fontSize":        {},
	"fontFamily":      {},
	"textCombine":     {},
	"textEmphasis":    {},
	"ruby":            {},
	"rubyPosition":    {},
}

// collect copies the tts attributes present on el, overwriting existing
// values.
func (a styleAttrs) collect(el *etree.Element) {
	for _, attr := range el.Attr {
		if attr.Space != "tts" {
			continue
		}
		if _, ok := keptAttrs[attr.Key]; ok {
			a[attr.Key] = attr.Value
		}
	}
}

// merge copies all values from other, overwriting existing ones.
func (a styleAttrs) merge(other styleAttrs) {
	for k, v := range other {
		a[k] = v
	}
}

// attach converts collected styling into spans over [start, end) and
// records them on the builder. Values this decoder does not understand are
// logged and dropped, the cue text itself always survives.
func (a styleAttrs) attach(b *span.Builder, start, end int, log *zap.Logger) {
	if len(a) == 0 {
		return
	}

	bold := strings.EqualFold(a["fontWeight"], "bold")
	italic := strings.EqualFold(a["fontStyle"], "italic") || strings.EqualFold(a["fontStyle"], "oblique")
	switch {
	case bold && italic:
		b.Attach(span.NewFontStyle(span.StyleBoldItalic, start, end))
	case bold:
		b.Attach(span.NewFontStyle(span.StyleBold, start, end))
	case italic:
		b.Attach(span.NewFontStyle(span.StyleItalic, start, end))
	}

	for _, deco := range strings.Fields(a["textDecoration"]) {
		switch deco {
		case "underline":
			b.Attach(span.NewUnderline(start, end))
		case "lineThrough":
			b.Attach(span.NewStrikethrough(start, end))
		case "none", "noUnderline", "noLineThrough", "overline", "noOverline":
			// nothing to render
		default:
			log.Debug("Unsupported text decoration", zap.String("value", deco))
		}
	}

	if v := a["color"]; v != "" {
		if c, err := parseColor(v); err == nil {
			b.Attach(span.NewForegroundColor(c, start, end))
		} else {
			log.Debug("Unsupported color", zap.String("value", v), zap.Error(err))
		}
	}
	if v := a["backgroundColor"]; v != "" {
		if c, err := parseColor(v); err == nil {
			b.Attach(span.NewBackgroundColor(c, start, end))
		} else {
			log.Debug("Unsupported background color", zap.String("value", v), zap.Error(err))
		}
	}

	if v := a["fontSize"]; v != "" {
		if s, ok := parseFontSize(v, start, end); ok {
			b.Attach(s)
		} else {
			log.Debug("Unsupported font size", zap.String("value", v))
		}
	}

	if v := fontFamily(a["fontFamily"]); v != "" {
		b.Attach(span.NewFontFamily(v, start, end))
	}

	if strings.EqualFold(a["textCombine"], "all") {
		b.Attach(span.NewHorizontalTextInVertical(start, end))
	}

	if v := a["textEmphasis"]; v != "" {
		mark, pos, ok := parseTextEmphasis(v)
		if ok {
			b.Attach(span.NewTextEmphasis(mark, pos, start, end))
		} else {
			log.Debug("Unsupported text emphasis", zap.String("value", v))
		}
	}
}

// fontFamily picks the first family from a comma separated list, dropping
// quotes. The generic "default" family produces no span.
func fontFamily(v string) string {
	first, _, _ := strings.Cut(v, ",")
	first = strings.Trim(strings.TrimSpace(first), `"'`)
	if strings.EqualFold(first, "default") {
		return ""
	}
	return first
}
