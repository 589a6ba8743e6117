package site

import (
	"fmt"
	"html/template"
	"io"

	"git.home.luguber.info/inful/godocsite/internal/config"
)

// The page skeleton follows the classic godoc static layout: the static dir
// is expected to provide style.css and godocs.js next to the generated pages.
const pageTemplates = `
{{define "header"}}<html>
<head>
<meta http-equiv="Content-Type" content="text/html; charset=utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="theme-color" content="#375EAB">
<title>{{.Title}}</title>
<link type="text/css" rel="stylesheet" href="{{.Static}}/style.css">
<script type="text/javascript" src="{{.Static}}/godocs.js"></script>
<style type="text/css"></style>
</head>
<body>
<div id="page" class="wide">
<div class="container">
{{end}}

{{define "footer"}}
<div id="footer">
<br /><br />
<hr>
<pre class="copyright">
{{.License}}</pre><!-- copyright -->
</div><!-- footer -->

</div><!-- container -->
</div><!-- page -->
</body>
</html>{{end}}

{{define "page"}}{{template "header" .}}<h1>{{.SiteTitle}} – <b>{{.Path}}</b> – {{.Description}}</h1>
{{.Body}}{{template "footer" .}}{{end}}

{{define "index"}}{{template "header" .}}<h1>{{.SiteTitle}} – Documentation</h1>
{{with .Intro}}{{.}}
{{end}}<h2 id="pkg-index">Index</h2>
<div id="manual-nav">
<dl>
{{range .Items}}<dd><a href="{{.File}}"><b>{{.Path}}</b>: {{.Description}}</a></dd>
{{end}}</dl>
</div><!-- manual-nav -->
{{template "footer" .}}{{end}}
`

// templates renders package pages and the index with a shared header/footer
// pair, so no page can ever carry an unmatched bound.
type templates struct {
	tmpl      *template.Template
	siteTitle string
	staticDir string
	license   template.HTML
}

type pageData struct {
	Title       string
	SiteTitle   string
	Static      string
	License     template.HTML
	Path        string
	Description string
	Body        template.HTML
}

type indexItem struct {
	File        string
	Path        string
	Description string
}

type indexData struct {
	Title     string
	SiteTitle string
	Static    string
	License   template.HTML
	Intro     template.HTML
	Items     []indexItem
}

// newTemplates parses the page templates once. The license text is embedded
// verbatim into every footer.
func newTemplates(siteTitle, staticDir string, license []byte) (*templates, error) {
	t, err := template.New("site").Parse(pageTemplates)
	if err != nil {
		return nil, fmt.Errorf("parse page templates: %w", err)
	}
	return &templates{
		tmpl:      t,
		siteTitle: siteTitle,
		staticDir: staticDir,
		license:   template.HTML(license),
	}, nil
}

// renderPage writes one package page: header, h1 line, the documentation
// fragment, footer.
func (t *templates) renderPage(w io.Writer, pkg config.Package, body []byte) error {
	return t.tmpl.ExecuteTemplate(w, "page", pageData{
		Title:       fmt.Sprintf("%s – package %s", t.siteTitle, pkg.Path),
		SiteTitle:   t.siteTitle,
		Static:      t.staticDir,
		License:     t.license,
		Path:        pkg.Path,
		Description: pkg.Description,
		Body:        template.HTML(body),
	})
}

// renderIndex writes the index page listing every package in registry order.
// An empty item list still produces the full header, list markup and footer.
func (t *templates) renderIndex(w io.Writer, intro template.HTML, items []indexItem) error {
	return t.tmpl.ExecuteTemplate(w, "index", indexData{
		Title:     fmt.Sprintf("%s – Documentation", t.siteTitle),
		SiteTitle: t.siteTitle,
		Static:    t.staticDir,
		License:   t.license,
		Intro:     intro,
		Items:     items,
	})
}

// newIndexItem maps a package entry to its index line.
func newIndexItem(pkg config.Package) indexItem {
	return indexItem{
		File:        PageFileName(pkg.Path),
		Path:        pkg.Path,
		Description: pkg.Description,
	}
}
