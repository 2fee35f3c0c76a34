package render_test

import (
	"strings"
	"testing"

	"golang.org/x/net/html"

	"cueweb/render"
	"cueweb/span"
)

func TestConvertNilText(t *testing.T) {
	out := render.Convert(nil, 1)
	if out.HTML != "" {
		t.Errorf("expected empty HTML, got %q", out.HTML)
	}
	if len(out.CSS) != 0 {
		t.Errorf("expected no CSS rules, got %v", out.CSS)
	}
}

func TestConvertPlainTextIsEscapedOnly(t *testing.T) {
	tests := []struct {
		name, in, want string
	}{
		{"simple", "hello", "hello"},
		{"markup chars", `a < b & "c" > 'd'`, "a &lt; b &amp; &quot;c&quot; &gt; &#39;d&#39;"},
		{"lf", "one\ntwo", "one<br>two"},
		{"crlf", "one\r\ntwo", "one<br>two"},
		{"lone cr survives encoded", "one\rtwo", "one&#13;two"},
		{"unicode", "日本語", "日本語"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render.Convert(span.Plain(tt.in), 1)
			if out.HTML != tt.want {
				t.Errorf("Convert(%q) = %q, want %q", tt.in, out.HTML, tt.want)
			}
			if len(out.CSS) != 0 {
				t.Errorf("plain text produced CSS rules: %v", out.CSS)
			}
		})
	}
}

func TestConvertSingleSpans(t *testing.T) {
	tests := []struct {
		name string
		text *span.Text
		want string
	}{
		{
			"strikethrough",
			span.New("abc", span.NewStrikethrough(0, 3)),
			"<span style='text-decoration:line-through;'>abc</span>",
		},
		{
			"foreground color",
			span.New("abc", span.NewForegroundColor(0xFFFF0000, 0, 3)),
			"<span style='color:rgba(255,0,0,1.000);'>abc</span>",
		},
		{
			"background color",
			span.New("abc", span.NewBackgroundColor(0xFF0000FF, 0, 3)),
			"<span class='bg_4278190335'>abc</span>",
		},
		{
			"horizontal in vertical",
			span.New("123", span.NewHorizontalTextInVertical(0, 3)),
			"<span style='text-combine-upright:all;'>123</span>",
		},
		{
			"relative size",
			span.New("abc", span.NewRelativeSize(0.5, 0, 3)),
			"<span style='font-size:50.00%;'>abc</span>",
		},
		{
			"font family",
			span.New("abc", span.NewFontFamily("Courier New", 0, 3)),
			"<span style='font-family:\"Courier New\";'>abc</span>",
		},
		{
			"bold",
			span.New("abc", span.NewFontStyle(span.StyleBold, 0, 3)),
			"<b>abc</b>",
		},
		{
			"italic",
			span.New("abc", span.NewFontStyle(span.StyleItalic, 0, 3)),
			"<i>abc</i>",
		},
		{
			"bold italic",
			span.New("abc", span.NewFontStyle(span.StyleBoldItalic, 0, 3)),
			"<b><i>abc</i></b>",
		},
		{
			"underline",
			span.New("abc", span.NewUnderline(0, 3)),
			"<u>abc</u>",
		},
		{
			"partial range",
			span.New("hello world", span.NewFontStyle(span.StyleBold, 6, 11)),
			"hello <b>world</b>",
		},
		{
			"text emphasis",
			span.New("abc", span.NewTextEmphasis(span.MarkFilledSesame, span.EmphasisPositionBefore, 0, 3)),
			"<span style='-webkit-text-emphasis-style: filled sesame; text-emphasis-style: filled sesame; " +
				"-webkit-text-emphasis-position: over right; text-emphasis-position: over right;'>abc</span>",
		},
		{
			"text emphasis after",
			span.New("abc", span.NewTextEmphasis(span.MarkOpenDot, span.EmphasisPositionAfter, 0, 3)),
			"<span style='-webkit-text-emphasis-style: open dot; text-emphasis-style: open dot; " +
				"-webkit-text-emphasis-position: under left; text-emphasis-position: under left;'>abc</span>",
		},
		{
			"text emphasis auto falls back to unset",
			span.New("abc", span.NewTextEmphasis(span.MarkAuto, span.EmphasisPositionOutside, 0, 3)),
			"<span style='-webkit-text-emphasis-style: unset; text-emphasis-style: unset; " +
				"-webkit-text-emphasis-position: over right; text-emphasis-position: over right;'>abc</span>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render.Convert(tt.text, 1)
			if out.HTML != tt.want {
				t.Errorf("got  %q\nwant %q", out.HTML, tt.want)
			}
		})
	}
}

func TestConvertAbsoluteSizeDensity(t *testing.T) {
	// device pixels are divided by display density
	out := render.Convert(span.New("abc", span.NewAbsoluteSize(20, false, 0, 3)), 2)
	if want := "<span style='font-size:10.00px;'>abc</span>"; out.HTML != want {
		t.Errorf("got %q, want %q", out.HTML, want)
	}

	// density independent sizes pass through regardless of density
	out = render.Convert(span.New("abc", span.NewAbsoluteSize(20, true, 0, 3)), 2)
	if want := "<span style='font-size:20.00px;'>abc</span>"; out.HTML != want {
		t.Errorf("got %q, want %q", out.HTML, want)
	}
}

func TestConvertUnsupportedSpansDegradeToPlainText(t *testing.T) {
	tests := []struct {
		name string
		text *span.Text
	}{
		{"unknown kind", span.New("abc", span.Span{Start: 0, End: 3, Kind: span.Unknown})},
		{"unknown style variant", span.New("abc", span.NewFontStyle(span.StyleUnknown, 0, 3))},
		{"font family without name", span.New("abc", span.NewFontFamily("", 0, 3))},
		{"out of range kind value", span.New("abc", span.Span{Start: 0, End: 3, Kind: span.Kind(999)})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render.Convert(tt.text, 1)
			if out.HTML != "abc" {
				t.Errorf("expected pass-through text, got %q", out.HTML)
			}
			if len(out.CSS) != 0 {
				t.Errorf("expected no CSS rules, got %v", out.CSS)
			}
		})
	}
}

func TestConvertRuby(t *testing.T) {
	out := render.Convert(span.New("漢字", span.NewRuby("かんじ", span.RubyPositionOver, 0, 2)), 1)
	want := "<ruby style='ruby-position:over;'>漢字<rt>かんじ</rt></ruby>"
	if out.HTML != want {
		t.Errorf("got %q, want %q", out.HTML, want)
	}

	out = render.Convert(span.New("漢字", span.NewRuby("<kanji>", span.RubyPositionUnder, 0, 2)), 1)
	want = "<ruby style='ruby-position:under;'>漢字<rt>&lt;kanji&gt;</rt></ruby>"
	if out.HTML != want {
		t.Errorf("ruby text must be escaped: got %q, want %q", out.HTML, want)
	}

	out = render.Convert(span.New("漢字", span.NewRuby("かんじ", span.RubyPositionUnknown, 0, 2)), 1)
	if !strings.HasPrefix(out.HTML, "<ruby style='ruby-position:unset;'>") {
		t.Errorf("unknown position must map to unset: got %q", out.HTML)
	}
}

func TestConvertNestedSpans(t *testing.T) {
	// the longer-lived span must open first and close last
	text := span.New("hello world",
		span.NewFontStyle(span.StyleBold, 6, 11),
		span.NewFontStyle(span.StyleItalic, 0, 5),
		span.NewForegroundColor(0xFFFF0000, 0, 11),
	)
	out := render.Convert(text, 1)
	want := "<span style='color:rgba(255,0,0,1.000);'><i>hello</i> <b>world</b></span>"
	if out.HTML != want {
		t.Errorf("got  %q\nwant %q", out.HTML, want)
	}
}

func TestConvertSharedBoundaryOrderIsDeterministic(t *testing.T) {
	blue := span.NewForegroundColor(0xFF0000FF, 0, 3)
	red := span.NewForegroundColor(0xFFFF0000, 0, 3)

	// identical ranges: ties broken by markup text, closes mirror opens
	want := "<span style='color:rgba(0,0,255,1.000);'><span style='color:rgba(255,0,0,1.000);'>abc</span></span>"
	if out := render.Convert(span.New("abc", blue, red), 1); out.HTML != want {
		t.Errorf("got  %q\nwant %q", out.HTML, want)
	}
	// span registration order must not matter
	if out := render.Convert(span.New("abc", red, blue), 1); out.HTML != want {
		t.Errorf("reversed span order: got %q\nwant %q", out.HTML, want)
	}
}

func TestConvertOverlappingSpansEmitCrossingTags(t *testing.T) {
	// crossing ranges intentionally produce overlapping tags, the target
	// renderer parses them leniently
	text := span.New("abcdefghi",
		span.NewFontStyle(span.StyleBold, 0, 6),
		span.NewUnderline(3, 9),
	)
	out := render.Convert(text, 1)
	want := "<b>abc<u>def</b>ghi</u>"
	if out.HTML != want {
		t.Errorf("got %q, want %q", out.HTML, want)
	}
}

func TestConvertBackgroundColorInheritance(t *testing.T) {
	text := span.New("hello world",
		span.NewBackgroundColor(0xFF0000FF, 0, 11),
		span.NewBackgroundColor(0xFF0000FF, 0, 5), // duplicate color collapses
		span.NewFontStyle(span.StyleBold, 6, 11),
	)
	out := render.Convert(text, 1)

	if len(out.CSS) != 1 {
		t.Fatalf("expected exactly one CSS rule, got %v", out.CSS)
	}
	decl, ok := out.CSS[".bg_4278190335 *"]
	if !ok {
		t.Fatalf("missing descendant selector rule, got %v", out.CSS)
	}
	if decl != "background-color:rgba(0,0,255,1.000);" {
		t.Errorf("unexpected declaration %q", decl)
	}

	// the bold element must be nested inside the class-carrying wrapper
	open := strings.Index(out.HTML, "<span class='bg_4278190335'>")
	bold := strings.Index(out.HTML, "<b>")
	if open == -1 || bold == -1 || bold < open {
		t.Errorf("bold span not nested inside background wrapper: %q", out.HTML)
	}
}

func TestConvertDeterminism(t *testing.T) {
	text := span.New("one two three\nfour",
		span.NewFontStyle(span.StyleBold, 0, 7),
		span.NewUnderline(4, 13),
		span.NewBackgroundColor(0x80808080, 0, 18),
		span.NewRuby("r", span.RubyPositionOver, 8, 13),
	)
	first := render.Convert(text, 1.5)
	for range 10 {
		next := render.Convert(text, 1.5)
		if next.HTML != first.HTML {
			t.Fatal("HTML differs between identical invocations")
		}
		if len(next.CSS) != len(first.CSS) {
			t.Fatal("CSS differs between identical invocations")
		}
		for sel, decl := range first.CSS {
			if next.CSS[sel] != decl {
				t.Fatalf("CSS rule %q differs between identical invocations", sel)
			}
		}
	}
}

// extractText walks parsed HTML collecting text content, mapping <br>
// elements back to line feeds.
func extractText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode && n.Data == "br" {
		sb.WriteString("\n")
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		extractText(c, sb)
	}
}

func TestConvertPreservesCharacters(t *testing.T) {
	tests := []struct {
		name string
		text *span.Text
	}{
		{"nested", span.New("hello <world> & 'friends'",
			span.NewFontStyle(span.StyleBold, 0, 25),
			span.NewUnderline(6, 13),
		)},
		{"crossing", span.New("abcdefghi",
			span.NewFontStyle(span.StyleItalic, 0, 6),
			span.NewStrikethrough(3, 9),
		)},
		{"line breaks", span.New("one\ntwo\nthree",
			span.NewForegroundColor(0xFF00FF00, 4, 7),
		)},
		{"unicode offsets", span.New("日本語テスト",
			span.NewFontStyle(span.StyleBold, 3, 6),
		)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := render.Convert(tt.text, 1)
			doc, err := html.Parse(strings.NewReader(out.HTML))
			if err != nil {
				t.Fatalf("output did not parse: %v", err)
			}
			var sb strings.Builder
			extractText(doc, &sb)
			if sb.String() != tt.text.Text {
				t.Errorf("text content changed:\ngot  %q\nwant %q", sb.String(), tt.text.Text)
			}
		})
	}
}
