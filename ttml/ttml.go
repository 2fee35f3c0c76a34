// Package ttml decodes a practical subset of TTML (Timed Text Markup
// Language) subtitle documents into annotated cue text. Layout (regions),
// animation and timing containers beyond begin/end on paragraphs are not
// interpreted; unknown elements and attributes are ignored with debug
// logging so documents from the wild still decode to usable cues.
package ttml

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"cueweb/span"
)

// Cue is a single timed paragraph of annotated text.
type Cue struct {
	ID    string
	Begin time.Duration
	End   time.Duration
	Text  *span.Text
}

// Document is a decoded subtitle document.
type Document struct {
	// RefID identifies the document in logs and reports: xml:id of the tt
	// root when present, a generated UUID otherwise.
	RefID string
	Lang  string
	Cues  []Cue
}

// Parse decodes a TTML document from r.
func Parse(r io.Reader, log *zap.Logger) (*Document, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("ttml")

	doc := etree.NewDocument()
	doc.ReadSettings = etree.ReadSettings{
		CharsetReader: charset.NewReaderLabel,
		Permissive:    true,
	}
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("unable to parse XML: %w", err)
	}

	root := doc.Root()
	if root == nil || root.Tag != "tt" {
		return nil, fmt.Errorf("not a TTML document: root element is %q", rootTag(root))
	}

	d := &decoder{
		log:    log,
		styles: make(map[string]styleAttrs),
	}

	out := &Document{
		RefID: selectAttr(root, "id"),
		Lang:  selectAttr(root, "lang"),
	}
	if out.RefID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("unable to generate document id: %w", err)
		}
		out.RefID = id.String()
	}

	if head := root.SelectElement("head"); head != nil {
		d.parseHead(head)
	}

	body := root.SelectElement("body")
	if body == nil {
		log.Debug("TTML document has no body", zap.String("id", out.RefID))
		return out, nil
	}
	d.collectCues(body, out)

	log.Debug("Decoded TTML document",
		zap.String("id", out.RefID), zap.String("lang", out.Lang), zap.Int("cues", len(out.Cues)))
	return out, nil
}

func rootTag(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return el.Tag
}

// selectAttr returns an attribute value matching the local name under any
// namespace prefix (tts:color, xml:id and friends).
func selectAttr(el *etree.Element, local string) string {
	for _, a := range el.Attr {
		if a.Key == local {
			return a.Value
		}
	}
	return ""
}

type decoder struct {
	log    *zap.Logger
	styles map[string]styleAttrs
}

// parseHead collects styling/style elements into the style map, resolving
// style-on-style references. Styles may reference styles defined before
// them; forward references are not resolved.
func (d *decoder) parseHead(head *etree.Element) {
	styling := head.SelectElement("styling")
	if styling == nil {
		return
	}
	for _, st := range styling.SelectElements("style") {
		id := selectAttr(st, "id")
		if id == "" {
			d.log.Debug("Style without xml:id, ignoring")
			continue
		}
		attrs := make(styleAttrs)
		// referenced styles first so inline attributes win
		for _, ref := range strings.Fields(selectAttr(st, "style")) {
			if base, ok := d.styles[ref]; ok {
				attrs.merge(base)
			} else {
				d.log.Debug("Unresolved style reference", zap.String("style", id), zap.String("ref", ref))
			}
		}
		attrs.collect(st)
		d.styles[id] = attrs
	}
}

// collectCues walks body content finding p elements.
func (d *decoder) collectCues(el *etree.Element, out *Document) {
	for _, child := range el.ChildElements() {
		switch child.Tag {
		case "div":
			d.collectCues(child, out)
		case "p":
			cue, err := d.parseCue(child)
			if err != nil {
				d.log.Warn("Skipping cue", zap.String("id", selectAttr(child, "id")), zap.Error(err))
				continue
			}
			out.Cues = append(out.Cues, cue)
		default:
			d.log.Debug("Unexpected tag in body, ignoring", zap.String("parent", el.Tag), zap.String("tag", child.Tag))
		}
	}
}

func (d *decoder) parseCue(p *etree.Element) (Cue, error) {
	cue := Cue{ID: selectAttr(p, "id")}

	var err error
	if v := selectAttr(p, "begin"); v != "" {
		if cue.Begin, err = parseTime(v); err != nil {
			return cue, fmt.Errorf("begin: %w", err)
		}
	}
	if v := selectAttr(p, "end"); v != "" {
		if cue.End, err = parseTime(v); err != nil {
			return cue, fmt.Errorf("end: %w", err)
		}
	}
	if cue.End < cue.Begin {
		return cue, fmt.Errorf("cue ends (%s) before it begins (%s)", cue.End, cue.Begin)
	}

	b := &span.Builder{}
	d.walk(p, b)
	cue.Text = b.Text()
	return cue, nil
}

// walk appends element content to the builder, attaching spans for the
// styling computed on each element. Inherited styling is not duplicated on
// children: nesting of ranges gives the same effect.
func (d *decoder) walk(el *etree.Element, b *span.Builder) {
	attrs := d.computedStyle(el)

	start := b.Len()
	var rubyBase *[2]int

	for _, child := range el.Child {
		switch node := child.(type) {
		case *etree.CharData:
			b.WriteString(normalizeSpace(node.Data))
		case *etree.Element:
			switch node.Tag {
			case "br":
				b.WriteString("\n")
			case "span":
				d.walkSpan(node, b, &rubyBase, attrs)
			default:
				d.log.Debug("Unexpected tag in cue, ignoring", zap.String("parent", el.Tag), zap.String("tag", node.Tag))
			}
		}
	}

	attrs.attach(b, start, b.Len(), d.log)
}

// walkSpan handles one nested span, including the ruby roles: a base span
// contributes characters and remembers its range, a text span contributes
// no characters and becomes the ruby annotation over the preceding base.
func (d *decoder) walkSpan(el *etree.Element, b *span.Builder, rubyBase **[2]int, parent styleAttrs) {
	attrs := d.computedStyle(el)

	switch attrs["ruby"] {
	case "base", "baseContainer":
		start := b.Len()
		d.walk(el, b)
		*rubyBase = &[2]int{start, b.Len()}
		return
	case "text", "textContainer":
		text := collectPlainText(el)
		if *rubyBase == nil {
			d.log.Debug("Ruby text without base, ignoring", zap.String("text", text))
			return
		}
		pos := rubyPosition(parent["rubyPosition"], attrs["rubyPosition"])
		b.Attach(span.NewRuby(text, pos, (*rubyBase)[0], (*rubyBase)[1]))
		*rubyBase = nil
		return
	case "delimiter":
		// annotation delimiters are presentation-only
		return
	}

	d.walk(el, b)
}

// computedStyle merges referenced styles with inline tts attributes,
// inline winning.
func (d *decoder) computedStyle(el *etree.Element) styleAttrs {
	attrs := make(styleAttrs)
	for _, ref := range strings.Fields(selectAttr(el, "style")) {
		if base, ok := d.styles[ref]; ok {
			attrs.merge(base)
		} else {
			d.log.Debug("Unresolved style reference", zap.String("tag", el.Tag), zap.String("ref", ref))
		}
	}
	attrs.collect(el)
	return attrs
}

// collectPlainText concatenates character data of el and its descendants.
func collectPlainText(el *etree.Element) string {
	var sb strings.Builder
	var rec func(*etree.Element)
	rec = func(e *etree.Element) {
		for _, child := range e.Child {
			switch node := child.(type) {
			case *etree.CharData:
				sb.WriteString(normalizeSpace(node.Data))
			case *etree.Element:
				rec(node)
			}
		}
	}
	rec(el)
	return sb.String()
}

// normalizeSpace folds XML insignificant whitespace (tabs, line breaks and
// runs of spaces) into single spaces, the default TTML xml:space handling.
// Single leading/trailing spaces survive so text split across adjacent
// nodes keeps its word separation.
func normalizeSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		switch r {
		case ' ', '\t', '\n', '\r':
			space = true
		default:
			if space {
				sb.WriteByte(' ')
				space = false
			}
			sb.WriteRune(r)
		}
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}
