// Package assets renders the embedded web page that displays the map.
package assets

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/svg"
)

//go:embed index.html.tpl style.css script.js pin.svg
var files embed.FS

// PageData is passed to the page template.
type PageData struct {
	Title      string
	Categories string
	CSS        string
	JS         string
}

// Page is the rendered, minified web application.
type Page struct {
	Index   []byte
	Favicon []byte
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFunc("text/javascript", js.Minify)
	m.AddFunc("image/svg+xml", svg.Minify)
	return m
}

// Render builds the page for the given place categories.
func Render(categories []string) (*Page, error) {
	m := newMinifier()

	cssMin, err := minifyFile(m, "text/css", "style.css")
	if err != nil {
		return nil, err
	}
	jsMin, err := minifyFile(m, "text/javascript", "script.js")
	if err != nil {
		return nil, err
	}
	svgMin, err := minifyFile(m, "image/svg+xml", "pin.svg")
	if err != nil {
		return nil, err
	}

	htmlRaw, err := files.ReadFile("index.html.tpl")
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	tmpl, err := template.New("index").Parse(string(htmlRaw))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, PageData{
		Title:      "What's Nearby?",
		Categories: joinCategories(categories),
		CSS:        cssMin,
		JS:         jsMin,
	})
	if err != nil {
		return nil, fmt.Errorf("execute template: %w", err)
	}

	finalHTML, err := m.Bytes("text/html", buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("minify HTML: %w", err)
	}

	return &Page{Index: finalHTML, Favicon: []byte(svgMin)}, nil
}

func minifyFile(m *minify.M, mediatype, name string) (string, error) {
	raw, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	out, err := m.String(mediatype, string(raw))
	if err != nil {
		return "", fmt.Errorf("minify %s: %w", name, err)
	}
	return out, nil
}

// joinCategories formats ["catering", "office"] as "catering and office".
func joinCategories(categories []string) string {
	switch len(categories) {
	case 0:
		return "places"
	case 1:
		return categories[0]
	default:
		return strings.Join(categories[:len(categories)-1], ", ") + " and " + categories[len(categories)-1]
	}
}
