package css

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/maruel/natural"
)

// Stylesheet is a set of flat CSS rules keyed by selector. Declarations are
// raw semicolon-terminated "property:value;" strings, safe to concatenate
// into a <style> block. Later additions for the same selector are appended
// to the existing declaration.
type Stylesheet struct {
	rules map[string]string
}

// NewStylesheet creates an empty stylesheet.
func NewStylesheet() *Stylesheet {
	return &Stylesheet{rules: make(map[string]string)}
}

// Add records declarations for a selector.
func (s *Stylesheet) Add(selector, declarations string) {
	if selector == "" || declarations == "" {
		return
	}
	s.rules[selector] += declarations
}

// AddAll records every rule from the selector to declaration map.
func (s *Stylesheet) AddAll(rules map[string]string) {
	for sel, decl := range rules {
		s.Add(sel, decl)
	}
}

// Merge copies all rules from other into s.
func (s *Stylesheet) Merge(other *Stylesheet) {
	if other == nil {
		return
	}
	s.AddAll(other.rules)
}

// Len returns the number of distinct selectors.
func (s *Stylesheet) Len() int {
	return len(s.rules)
}

// Declarations returns the declaration string recorded for a selector.
func (s *Stylesheet) Declarations(selector string) (string, bool) {
	decl, ok := s.rules[selector]
	return decl, ok
}

// WriteTo writes the stylesheet, one rule per line, implementing
// io.WriterTo. Selectors are ordered naturally (bg_2 before bg_10) so the
// output is reproducible byte for byte.
func (s *Stylesheet) WriteTo(w io.Writer) (int64, error) {
	selectors := make([]string, 0, len(s.rules))
	for sel := range s.rules {
		selectors = append(selectors, sel)
	}
	sort.Sort(natural.StringSlice(selectors))

	var total int64
	for _, sel := range selectors {
		n, err := fmt.Fprintf(w, "%s {%s}\n", sel, s.rules[sel])
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// String returns the CSS text of the stylesheet.
func (s *Stylesheet) String() string {
	var sb strings.Builder
	s.WriteTo(&sb) //nolint:errcheck
	return sb.String()
}
