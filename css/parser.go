package css

import (
	"bytes"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser parses user supplied stylesheets into flat rules so they can be
// merged with generated preview rules. Only plain rulesets are kept:
// at-rules reference external resources or conditional blocks which have no
// place inside a single embedded <style> block and are skipped.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Parse parses CSS text into a Stylesheet. The optional source parameter
// identifies what is being parsed (for debug logging).
func (p *Parser) Parse(data []byte, source ...string) *Stylesheet {
	sheet := NewStylesheet()

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Parsing CSS", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)

	// grouped selectors come in one by one before the ruleset body starts
	var pending []string

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			if parser.Err() != nil && parser.Err().Error() != "EOF" {
				p.log.Debug("CSS parse error", zap.Error(parser.Err()))
			}
			return sheet

		case css.BeginAtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))
			p.skipAtRuleBlock(parser)

		case css.AtRuleGrammar:
			p.log.Debug("Skipping @-rule", zap.String("rule", string(data)))

		case css.QualifiedRuleGrammar:
			pending = append(pending, parseSelectors(data, parser.Values())...)

		case css.BeginRulesetGrammar:
			selectors := append(pending, parseSelectors(data, parser.Values())...)
			pending = nil
			declarations := p.parseDeclarations(parser)
			if declarations == "" {
				continue
			}
			for _, sel := range selectors {
				sheet.Add(sel, declarations)
			}
		}
	}
}

// parseSelectors extracts selector strings from token data, splitting
// grouped selectors on commas.
func parseSelectors(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		if s = strings.TrimSpace(s); s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// parseDeclarations consumes property declarations until the end of the
// current ruleset, producing a single "property:value;" concatenation.
func (p *Parser) parseDeclarations(parser *css.Parser) string {
	var sb strings.Builder

	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar, css.EndRulesetGrammar:
			return sb.String()

		case css.DeclarationGrammar:
			value := tokensToValue(parser.Values())
			if value == "" {
				continue
			}
			sb.Write(data)
			sb.WriteByte(':')
			sb.WriteString(value)
			sb.WriteByte(';')

		case css.CustomPropertyGrammar:
			// custom properties (--var) are not supported
			continue
		}
	}
}

// tokensToValue renders value tokens back to a string, collapsing
// whitespace runs to single spaces.
func tokensToValue(tokens []css.Token) string {
	var parts []string
	for _, t := range tokens {
		if t.TokenType != css.WhitespaceToken {
			parts = append(parts, string(t.Data))
		} else if len(parts) > 0 && !strings.HasSuffix(parts[len(parts)-1], " ") {
			parts = append(parts, " ")
		}
	}
	return strings.TrimSpace(strings.Join(parts, ""))
}

// skipAtRuleBlock skips tokens until the matching end of an @-rule block.
func (p *Parser) skipAtRuleBlock(parser *css.Parser) {
	depth := 1
	for depth > 0 {
		gt, _, _ := parser.Next()
		switch gt {
		case css.ErrorGrammar:
			return
		case css.BeginAtRuleGrammar, css.BeginRulesetGrammar:
			depth++
		case css.EndAtRuleGrammar, css.EndRulesetGrammar:
			depth--
		}
	}
}
