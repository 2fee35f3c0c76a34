// Package css holds CSS formatting helpers and a small stylesheet
// abstraction used when assembling rendered subtitle previews.
package css

import "fmt"

// RGBA formats a packed ARGB color value as a CSS rgba() component value.
// Alpha is emitted as a fraction with 3 decimal places.
func RGBA(argb uint32) string {
	a := float64(argb>>24&0xff) / 255
	r := argb >> 16 & 0xff
	g := argb >> 8 & 0xff
	b := argb & 0xff
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", r, g, b, a)
}

// AllClassDescendantsSelector returns a selector matching every descendant
// of elements carrying the given class. Used to propagate a style set on a
// wrapping element to everything nested inside it.
func AllClassDescendantsSelector(class string) string {
	return "." + class + " *"
}
