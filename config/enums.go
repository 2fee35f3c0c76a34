package config

import (
	"fmt"
	"strings"
)

// TemplateFieldName names a configuration field holding a user template, so
// template processing errors can point at the right place.
type TemplateFieldName string

// Specification of requested output type.
type OutputFmt int

const (
	OutputFmtHTML OutputFmt = iota
	OutputFmtBundle
)

var outputFmtNames = []string{"html", "bundle"}

func (o OutputFmt) String() string {
	if o < 0 || int(o) >= len(outputFmtNames) {
		return fmt.Sprintf("OutputFmt(%d)", int(o))
	}
	return outputFmtNames[o]
}

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtHTML:
		return ".html"
	case OutputFmtBundle:
		return ".zip"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}

// ParseOutputFmt converts command line value to OutputFmt.
func ParseOutputFmt(name string) (OutputFmt, error) {
	for i, n := range outputFmtNames {
		if strings.EqualFold(name, n) {
			return OutputFmt(i), nil
		}
	}
	return OutputFmtHTML, fmt.Errorf("unknown output format %q", name)
}

// OutputFmtNames lists supported output format names for usage text.
func OutputFmtNames() []string {
	return append([]string(nil), outputFmtNames...)
}
