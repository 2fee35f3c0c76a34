package convert

import (
	"archive/zip"
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"cueweb/css"
	"cueweb/render"
	"cueweb/state"
	"cueweb/ttml"
)

//go:embed default.css
var defaultStylesheet []byte

// bundled file names
const (
	bundlePageName  = "preview.html"
	bundleStyleName = "styles.css"
)

const pageShell = `<!DOCTYPE html>
<html{{ if .Lang }} lang="{{ .Lang }}"{{ end }}>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
{{ if .StyleHref }}<link rel="stylesheet" href="{{ .StyleHref }}">{{ else }}<style>
{{ .Styles }}</style>{{ end }}
</head>
<body>
<main class="cues">
{{ range .Cues }}<div class="cue"{{ if .ID }} id="{{ .ID }}"{{ end }}>
{{ if $.ShowTimings }}<span class="timing">{{ .Begin }} &rarr; {{ .End }}</span>
{{ end }}<p class="cue-text">{{ .Content }}</p>
</div>
{{ end }}</main>
</body>
</html>
`

type cueView struct {
	ID      string
	Begin   string
	End     string
	Content template.HTML
}

type pageView struct {
	Title       string
	Lang        string
	ShowTimings bool
	// StyleHref switches the shell from an inline style block to an external
	// stylesheet reference, used by bundle output.
	StyleHref string
	Styles    template.CSS
	Cues      []cueView
}

// buildPage renders every cue and assembles the preview page pieces: the
// page view and the stylesheet collected from cue backgrounds, defaults and
// user additions.
func buildPage(doc *ttml.Document, title string, env *state.LocalEnv, log *zap.Logger) (*pageView, *css.Stylesheet) {
	sheet := css.NewParser(log).Parse(defaultStylesheet, "default.css")
	if len(env.ExtraStyle) > 0 {
		sheet.Merge(css.NewParser(log).Parse(env.ExtraStyle, env.Cfg.Preview.StylesheetPath))
	}

	page := &pageView{
		Title:       title,
		Lang:        doc.Lang,
		ShowTimings: env.Cfg.Preview.ShowTimings,
		Cues:        make([]cueView, 0, len(doc.Cues)),
	}

	for i, cue := range doc.Cues {
		out := render.Convert(cue.Text, env.Cfg.Preview.DisplayDensity)
		sheet.AddAll(out.CSS)

		id := cue.ID
		if id == "" {
			id = fmt.Sprintf("cue-%d", i+1)
		}
		page.Cues = append(page.Cues, cueView{
			ID:      id,
			Begin:   formatTimestamp(cue.Begin),
			End:     formatTimestamp(cue.End),
			Content: template.HTML(out.HTML),
		})
	}
	return page, sheet
}

// formatTimestamp renders a cue boundary as HH:MM:SS.mmm.
func formatTimestamp(d time.Duration) string {
	d = d.Round(time.Millisecond)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	d -= s * time.Second
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, d/time.Millisecond)
}

func executeShell(page *pageView) ([]byte, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap(sprig.FuncMap())).Parse(pageShell)
	if err != nil {
		return nil, fmt.Errorf("unable to parse page template: %w", err)
	}
	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, page); err != nil {
		return nil, fmt.Errorf("unable to execute page template: %w", err)
	}
	return buf.Bytes(), nil
}

// writePage produces a standalone HTML file with the stylesheet inlined.
func writePage(outputPath string, page *pageView, sheet *css.Stylesheet) error {
	page.Styles = template.CSS(sheet.String())

	data, err := executeShell(page)
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0644)
}

// writeBundle produces a zip archive with the page and its stylesheet as
// separate entries, so the stylesheet can be tweaked without regenerating.
func writeBundle(outputPath string, page *pageView, sheet *css.Stylesheet, fixZip bool) error {
	page.StyleHref = bundleStyleName

	data, err := executeShell(page)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(outputPath), "cueweb-*.zip")
	if err != nil {
		return fmt.Errorf("unable to create temporary bundle: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	zw := zip.NewWriter(tmp)
	now := time.Now()
	for _, f := range []struct {
		name string
		data []byte
	}{
		{bundlePageName, data},
		{bundleStyleName, []byte(sheet.String())},
	} {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: f.name, Method: zip.Deflate, Modified: now})
		if err != nil {
			return fmt.Errorf("unable to create bundle entry %s: %w", f.name, err)
		}
		if _, err := w.Write(f.data); err != nil {
			return fmt.Errorf("unable to write bundle entry %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close bundle archive: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to finalize bundle file: %w", err)
	}

	if fixZip {
		return copyZipWithoutDataDescriptors(tmpName, outputPath)
	}
	return copyFile(tmpName, outputPath)
}

func copyZipWithoutDataDescriptors(from, to string) error {
	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destinationFile.Close()

	if _, err = io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = destinationFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
