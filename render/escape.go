package render

import (
	"regexp"
	"strings"
)

// matches \n and \r\n in ampersand-encoded form produced by escapeHTML
var newlinePattern = regexp.MustCompile(`(&#13;)?&#10;`)

// escapeHTML escapes text for embedding into markup and replaces encoded
// line breaks with a single <br> element. Bare carriage returns and line
// feeds are first encoded as numeric character references so the pattern
// above sees them uniformly.
func escapeHTML(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))
	for _, r := range text {
		switch r {
		case '&':
			sb.WriteString("&amp;")
		case '<':
			sb.WriteString("&lt;")
		case '>':
			sb.WriteString("&gt;")
		case '"':
			sb.WriteString("&quot;")
		case '\'':
			sb.WriteString("&#39;")
		case '\r':
			sb.WriteString("&#13;")
		case '\n':
			sb.WriteString("&#10;")
		default:
			sb.WriteRune(r)
		}
	}
	return newlinePattern.ReplaceAllString(sb.String(), "<br>")
}
