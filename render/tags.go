package render

import (
	"fmt"

	"cueweb/css"
	"cueweb/span"
)

// openingTag maps a span to its opening markup. Returns false for spans
// that produce no markup at all: unknown kinds, font style variants outside
// bold/italic/bold-italic and font family spans without a family name. A
// true result here guarantees closingTag also returns true for the same
// span.
func openingTag(s span.Span, displayDensity float64) (string, bool) {
	switch s.Kind {
	case span.Strikethrough:
		return "<span style='text-decoration:line-through;'>", true
	case span.ForegroundColor:
		return fmt.Sprintf("<span style='color:%s;'>", css.RGBA(s.Color)), true
	case span.BackgroundColor:
		// actual color comes from a collected CSS rule so that it also
		// tints nested elements, see backgroundRules
		return fmt.Sprintf("<span class='%s'>", backgroundClass(s.Color)), true
	case span.HorizontalTextInVertical:
		return "<span style='text-combine-upright:all;'>", true
	case span.AbsoluteSize:
		size := s.Size
		if !s.DIP {
			size /= displayDensity
		}
		return fmt.Sprintf("<span style='font-size:%.2fpx;'>", size), true
	case span.RelativeSize:
		return fmt.Sprintf("<span style='font-size:%.2f%%;'>", s.Size*100), true
	case span.FontFamily:
		if s.Family == "" {
			return "", false
		}
		return fmt.Sprintf("<span style='font-family:\"%s\";'>", s.Family), true
	case span.FontStyle:
		switch s.Style {
		case span.StyleBold:
			return "<b>", true
		case span.StyleItalic:
			return "<i>", true
		case span.StyleBoldItalic:
			return "<b><i>", true
		default:
			return "", false
		}
	case span.Ruby:
		switch s.RubyPosition {
		case span.RubyPositionOver:
			return "<ruby style='ruby-position:over;'>", true
		case span.RubyPositionUnder:
			return "<ruby style='ruby-position:under;'>", true
		default:
			return "<ruby style='ruby-position:unset;'>", true
		}
	case span.Underline:
		return "<u>", true
	case span.TextEmphasis:
		style := emphasisStyle(s.Mark)
		position := emphasisPosition(s.MarkPosition)
		return fmt.Sprintf(
			"<span style='-webkit-text-emphasis-style: %s; text-emphasis-style: %s; "+
				"-webkit-text-emphasis-position: %s; text-emphasis-position: %s;'>",
			style, style, position, position), true
	default:
		return "", false
	}
}

// closingTag maps a span to its closing markup. For ruby spans the closing
// markup carries the escaped annotation text itself, it is not a bare
// closer.
func closingTag(s span.Span) (string, bool) {
	switch s.Kind {
	case span.Strikethrough,
		span.ForegroundColor,
		span.BackgroundColor,
		span.HorizontalTextInVertical,
		span.AbsoluteSize,
		span.RelativeSize,
		span.TextEmphasis:
		return "</span>", true
	case span.FontFamily:
		if s.Family == "" {
			return "", false
		}
		return "</span>", true
	case span.FontStyle:
		switch s.Style {
		case span.StyleBold:
			return "</b>", true
		case span.StyleItalic:
			return "</i>", true
		case span.StyleBoldItalic:
			// bold opened first closes last
			return "</i></b>", true
		default:
			return "", false
		}
	case span.Ruby:
		return "<rt>" + escapeHTML(s.RubyText) + "</rt></ruby>", true
	case span.Underline:
		return "</u>", true
	default:
		return "", false
	}
}

func backgroundClass(argb uint32) string {
	return fmt.Sprintf("bg_%d", argb)
}

func emphasisStyle(mark span.EmphasisMark) string {
	switch mark {
	case span.MarkFilledCircle:
		return "filled circle"
	case span.MarkFilledDot:
		return "filled dot"
	case span.MarkFilledSesame:
		return "filled sesame"
	case span.MarkOpenCircle:
		return "open circle"
	case span.MarkOpenDot:
		return "open dot"
	case span.MarkOpenSesame:
		return "open sesame"
	default:
		// https://www.w3.org/TR/ttml2/#style-value-emphasis-style
		// "auto" depends on the writing mode which is unknown here, leave
		// the decision to the renderer
		return "unset"
	}
}

func emphasisPosition(pos span.EmphasisPosition) string {
	switch pos {
	case span.EmphasisPositionAfter:
		return "under left"
	default:
		// https://www.w3.org/TR/ttml2/#style-value-annotation-position
		// unrecognized positions must be interpreted as "before"
		return "over right"
	}
}
