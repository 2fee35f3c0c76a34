package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"

	"cueweb/config"
	"cueweb/ttml"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Language   string
	DocID      string
	SourceFile string
	Format     string
	Cues       int
}

// buildTitle derives a human readable title when the document does not carry
// a usable one: base name of the source without extension.
func buildTitle(doc *ttml.Document, src string) string {
	if doc != nil && doc.Lang != "" {
		base := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		return base + " (" + doc.Lang + ")"
	}
	return strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
}

func expandTemplate(doc *ttml.Document, name config.TemplateFieldName, field string, src string, format config.OutputFmt) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:    string(name),
		Title:      buildTitle(doc, src),
		SourceFile: strings.TrimSuffix(filepath.Base(src), filepath.Ext(src)),
		Format:     format.String(),
	}
	if doc != nil {
		values.Language = doc.Lang
		values.DocID = doc.RefID
		values.Cues = len(doc.Cues)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
