package render

import (
	"fmt"
	"sort"

	"cueweb/span"
)

// spanInfo is a resolved span: its rune range plus the markup emitted where
// it starts and ends.
type spanInfo struct {
	start, end       int
	opening, closing string
}

// transition records which resolved spans start and end at one text
// offset. A zero-length span appears in both lists of the same transition.
type transition struct {
	added   []spanInfo
	removed []spanInfo
}

// findTransitions resolves every span to markup and groups the results by
// boundary offset. Spans that resolve to no markup are dropped silently.
// Returned offsets are sorted ascending and cover exactly the distinct
// start/end positions of the resolved spans.
func findTransitions(spans []span.Span, displayDensity float64) (map[int]*transition, []int) {
	transitions := make(map[int]*transition)

	at := func(offset int) *transition {
		tr := transitions[offset]
		if tr == nil {
			tr = &transition{}
			transitions[offset] = tr
		}
		return tr
	}

	for _, s := range spans {
		opening, ok := openingTag(s, displayDensity)
		if !ok {
			continue
		}
		closing, ok := closingTag(s)
		if !ok {
			// a kind mapped to an opening tag must map to a closing tag,
			// anything else is a defect in the tables above
			panic(fmt.Sprintf("render: span kind %s has opening tag %q but no closing tag", s.Kind, opening))
		}
		info := spanInfo{start: s.Start, end: s.End, opening: opening, closing: closing}
		at(s.Start).added = append(at(s.Start).added, info)
		at(s.End).removed = append(at(s.End).removed, info)
	}

	offsets := make([]int, 0, len(transitions))
	for offset := range transitions {
		offsets = append(offsets, offset)
	}
	sort.Ints(offsets)
	return transitions, offsets
}

// openingLess orders spans opened at the same boundary: spans that close
// later open first so they wrap the shorter-lived ones, ties broken by the
// markup strings (both ascending) for reproducible output.
func openingLess(a, b spanInfo) bool {
	if a.end != b.end {
		return a.end > b.end
	}
	if a.opening != b.opening {
		return a.opening < b.opening
	}
	return a.closing < b.closing
}

// closingLess orders spans closed at the same boundary. It mirrors
// openingLess with descending tie-breaks so closing tags come out in the
// exact reverse of the corresponding opening order, keeping nested ranges
// well formed.
func closingLess(a, b spanInfo) bool {
	if a.start != b.start {
		return a.start > b.start
	}
	if a.opening != b.opening {
		return a.opening > b.opening
	}
	return a.closing > b.closing
}

func sortForOpening(infos []spanInfo) {
	sort.Slice(infos, func(i, j int) bool { return openingLess(infos[i], infos[j]) })
}

func sortForClosing(infos []spanInfo) {
	sort.Slice(infos, func(i, j int) bool { return closingLess(infos[i], infos[j]) })
}
