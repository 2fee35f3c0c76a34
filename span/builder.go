package span

import (
	"strings"
	"unicode/utf8"
)

// Builder accumulates cue text and attaches spans over it. Offsets are
// tracked in rune units so decoders do not have to recount the text they
// already produced.
type Builder struct {
	text  strings.Builder
	runes int
	spans []Span
}

// Len returns the current text length in runes, i.e. the offset at which
// the next written string will start.
func (b *Builder) Len() int {
	return b.runes
}

// WriteString appends s to the text.
func (b *Builder) WriteString(s string) {
	b.text.WriteString(s)
	b.runes += utf8.RuneCountInString(s)
}

// WriteRune appends r to the text.
func (b *Builder) WriteRune(r rune) {
	b.text.WriteRune(r)
	b.runes++
}

// Attach records a span. Ranges outside the final text are the caller's
// defect, they are not validated here.
func (b *Builder) Attach(s Span) {
	b.spans = append(b.spans, s)
}

// Text returns accumulated annotated text. The builder must not be used
// afterwards.
func (b *Builder) Text() *Text {
	return &Text{Text: b.text.String(), Spans: b.spans}
}
