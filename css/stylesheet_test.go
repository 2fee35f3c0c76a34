package css_test

import (
	"testing"

	"cueweb/css"
)

func TestStylesheetWriteOrder(t *testing.T) {
	s := css.NewStylesheet()
	s.Add(".bg_10 *", "background-color:rgba(0,0,255,1.000);")
	s.Add(".bg_2 *", "background-color:rgba(255,0,0,1.000);")
	s.Add(".cue", "white-space:pre-wrap;")

	want := ".bg_2 * {background-color:rgba(255,0,0,1.000);}\n" +
		".bg_10 * {background-color:rgba(0,0,255,1.000);}\n" +
		".cue {white-space:pre-wrap;}\n"
	if got := s.String(); got != want {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", got, want)
	}

	// repeated renders are byte-identical
	if again := s.String(); again != s.String() {
		t.Error("String is not deterministic")
	}
}

func TestStylesheetAppendAndMerge(t *testing.T) {
	s := css.NewStylesheet()
	s.Add(".cue", "color:red;")
	s.Add(".cue", "font-size:10px;")

	decl, ok := s.Declarations(".cue")
	if !ok || decl != "color:red;font-size:10px;" {
		t.Errorf("unexpected declarations: %q (present %v)", decl, ok)
	}

	other := css.NewStylesheet()
	other.Add("body", "margin:0;")
	s.Merge(other)
	if s.Len() != 2 {
		t.Errorf("expected 2 selectors after merge, got %d", s.Len())
	}

	// empty pieces are ignored
	s.Add("", "color:red;")
	s.Add(".x", "")
	if s.Len() != 2 {
		t.Errorf("empty additions must be dropped, got %d selectors", s.Len())
	}
}

func TestParserFlatRules(t *testing.T) {
	in := []byte(`
/* comment */
.cue { color: red; font-weight: bold }
p, div { margin: 0 auto; }
@media screen { .skip { color: blue } }
@import url("other.css");
`)

	sheet := css.NewParser(nil).Parse(in, "test")

	decl, ok := sheet.Declarations(".cue")
	if !ok {
		t.Fatal("expected .cue rule")
	}
	if decl != "color:red;font-weight:bold;" {
		t.Errorf("unexpected .cue declarations: %q", decl)
	}

	for _, sel := range []string{"p", "div"} {
		decl, ok := sheet.Declarations(sel)
		if !ok || decl != "margin:0 auto;" {
			t.Errorf("selector %q: got %q (present %v)", sel, decl, ok)
		}
	}

	if _, ok := sheet.Declarations(".skip"); ok {
		t.Error("rules inside @media blocks must be skipped")
	}
	if sheet.Len() != 3 {
		t.Errorf("expected 3 selectors, got %d", sheet.Len())
	}
}

func TestParserEmptyAndGarbage(t *testing.T) {
	if sheet := css.NewParser(nil).Parse(nil); sheet.Len() != 0 {
		t.Errorf("nil input produced %d rules", sheet.Len())
	}
	if sheet := css.NewParser(nil).Parse([]byte("not a stylesheet {{{{")); sheet.Len() != 0 {
		t.Errorf("garbage input produced %d rules", sheet.Len())
	}
}
