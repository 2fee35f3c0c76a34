// Package render compiles annotated subtitle cue text into an HTML
// fragment plus the CSS rules the fragment depends on, for display inside
// an embedded web view.
//
// All textual content is HTML-escaped during the conversion. Overlapping
// spans are not repaired: they produce structurally overlapping tags which
// browser engines parse leniently. This is intentional; subtitle formats
// carry formatting as a tag tree themselves, so decoded spans rarely cross.
package render

import (
	"fmt"
	"strings"

	"cueweb/css"
	"cueweb/span"
)

// Output holds a rendered HTML fragment and its CSS rule sets. CSS keys
// are selectors, values are semicolon-terminated declaration strings safe
// to concatenate into a <style> block.
type Output struct {
	HTML string
	CSS  map[string]string
}

// Convert renders text into HTML, adding tags and CSS rules to match the
// annotations present. displayDensity is the ratio used to convert device
// dependent sizes to CSS px and must be positive; nil text converts to an
// empty result.
//
// The conversion is a pure function of its arguments: no state is shared
// between calls and repeated invocations produce byte-identical results.
func Convert(text *span.Text, displayDensity float64) Output {
	if text == nil {
		return Output{HTML: "", CSS: map[string]string{}}
	}
	if len(text.Spans) == 0 {
		return Output{HTML: escapeHTML(text.Text), CSS: map[string]string{}}
	}

	runes := []rune(text.Text)
	transitions, offsets := findTransitions(text.Spans, displayDensity)

	var html strings.Builder
	html.Grow(len(text.Text))

	previous := 0
	for _, offset := range offsets {
		html.WriteString(escapeHTML(string(runes[previous:offset])))

		tr := transitions[offset]
		sortForClosing(tr.removed)
		for _, info := range tr.removed {
			html.WriteString(info.closing)
		}
		sortForOpening(tr.added)
		for _, info := range tr.added {
			html.WriteString(info.opening)
		}
		previous = offset
	}
	html.WriteString(escapeHTML(string(runes[previous:])))

	return Output{HTML: html.String(), CSS: backgroundRules(text.Spans)}
}

// backgroundRules collects one CSS rule per distinct background color.
// The color is attached to all descendants of the class-carrying wrapper
// via CSS inheritance, so it tints text inside any nested elements.
func backgroundRules(spans []span.Span) map[string]string {
	colors := make(map[uint32]struct{})
	for _, s := range spans {
		if s.Kind == span.BackgroundColor {
			colors[s.Color] = struct{}{}
		}
	}

	rules := make(map[string]string, len(colors))
	for color := range colors {
		rules[css.AllClassDescendantsSelector(backgroundClass(color))] =
			fmt.Sprintf("background-color:%s;", css.RGBA(color))
	}
	return rules
}
