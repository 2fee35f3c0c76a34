// Package span defines positional styling annotations for subtitle cue
// text. A Text value is a plain string plus a set of spans, each covering a
// half-open rune range [Start, End). Spans may overlap arbitrarily and
// multiple spans may share the same range.
package span

// Kind identifies the styling a span applies. The set is closed: rendering
// switches over Kind exhaustively and an unrecognized value degrades to no
// markup instead of failing.
type Kind int

const (
	Unknown Kind = iota
	Strikethrough
	ForegroundColor
	BackgroundColor
	HorizontalTextInVertical
	AbsoluteSize
	RelativeSize
	FontFamily
	FontStyle
	Ruby
	Underline
	TextEmphasis
)

func (k Kind) String() string {
	switch k {
	case Strikethrough:
		return "strikethrough"
	case ForegroundColor:
		return "foreground-color"
	case BackgroundColor:
		return "background-color"
	case HorizontalTextInVertical:
		return "horizontal-text-in-vertical"
	case AbsoluteSize:
		return "absolute-size"
	case RelativeSize:
		return "relative-size"
	case FontFamily:
		return "font-family"
	case FontStyle:
		return "font-style"
	case Ruby:
		return "ruby"
	case Underline:
		return "underline"
	case TextEmphasis:
		return "text-emphasis"
	default:
		return "unknown"
	}
}

// Style is the variant carried by FontStyle spans.
type Style int

const (
	StyleUnknown Style = iota
	StyleBold
	StyleItalic
	StyleBoldItalic
)

// RubyPosition tells on which side of the base text ruby annotation is
// rendered.
type RubyPosition int

const (
	RubyPositionUnknown RubyPosition = iota
	RubyPositionOver
	RubyPositionUnder
)

// EmphasisMark is the glyph used by TextEmphasis spans.
type EmphasisMark int

const (
	MarkUnknown EmphasisMark = iota
	MarkAuto
	MarkFilledCircle
	MarkFilledDot
	MarkFilledSesame
	MarkOpenCircle
	MarkOpenDot
	MarkOpenSesame
)

// EmphasisPosition tells on which side of the text emphasis marks are
// rendered.
type EmphasisPosition int

const (
	EmphasisPositionUnknown EmphasisPosition = iota
	EmphasisPositionBefore
	EmphasisPositionAfter
	EmphasisPositionOutside
)

// Span is a single annotation over [Start, End) in rune units. Only the
// payload fields relevant to Kind are meaningful; the rest stay zero.
// Producers are responsible for valid ranges (0 <= Start <= End <= rune
// length of the text).
type Span struct {
	Start int
	End   int
	Kind  Kind

	Color        uint32 // packed ARGB, ForegroundColor and BackgroundColor
	Size         float64
	DIP          bool // AbsoluteSize magnitude is density independent
	Family       string
	Style        Style
	RubyText     string
	RubyPosition RubyPosition
	Mark         EmphasisMark
	MarkPosition EmphasisPosition
}

// Constructor helpers, one per kind.

func NewStrikethrough(start, end int) Span {
	return Span{Start: start, End: end, Kind: Strikethrough}
}

func NewForegroundColor(argb uint32, start, end int) Span {
	return Span{Start: start, End: end, Kind: ForegroundColor, Color: argb}
}

func NewBackgroundColor(argb uint32, start, end int) Span {
	return Span{Start: start, End: end, Kind: BackgroundColor, Color: argb}
}

func NewHorizontalTextInVertical(start, end int) Span {
	return Span{Start: start, End: end, Kind: HorizontalTextInVertical}
}

// NewAbsoluteSize creates a fixed font size span. When dip is false the
// size is in device pixels and will be divided by the display density on
// output.
func NewAbsoluteSize(size float64, dip bool, start, end int) Span {
	return Span{Start: start, End: end, Kind: AbsoluteSize, Size: size, DIP: dip}
}

// NewRelativeSize creates a proportional font size span, factor 1.0 being
// the surrounding size.
func NewRelativeSize(factor float64, start, end int) Span {
	return Span{Start: start, End: end, Kind: RelativeSize, Size: factor}
}

// NewFontFamily creates a font family span. An empty family name produces
// no markup on output.
func NewFontFamily(family string, start, end int) Span {
	return Span{Start: start, End: end, Kind: FontFamily, Family: family}
}

func NewFontStyle(style Style, start, end int) Span {
	return Span{Start: start, End: end, Kind: FontStyle, Style: style}
}

func NewRuby(text string, pos RubyPosition, start, end int) Span {
	return Span{Start: start, End: end, Kind: Ruby, RubyText: text, RubyPosition: pos}
}

func NewUnderline(start, end int) Span {
	return Span{Start: start, End: end, Kind: Underline}
}

func NewTextEmphasis(mark EmphasisMark, pos EmphasisPosition, start, end int) Span {
	return Span{Start: start, End: end, Kind: TextEmphasis, Mark: mark, MarkPosition: pos}
}

// Text is annotated cue text. Zero value is an empty unannotated text.
type Text struct {
	Text  string
	Spans []Span
}

// Plain wraps a string carrying no annotations.
func Plain(s string) *Text {
	return &Text{Text: s}
}

// New builds annotated text from a string and spans.
func New(s string, spans ...Span) *Text {
	return &Text{Text: s, Spans: spans}
}
