// Package codegen renders TSX source for extracted icons: one component per
// asset, an index that lazily imports every component and a lookup helper
// that resolves dotted icon paths against the index.
package codegen

import (
	"bytes"
	"context"
	"embed"
	"path"
	"strconv"
	"text/template"

	"gitlab.com/tozd/go/errors"

	"github.com/kataras/figma-icons/pkg/asset"
)

const (
	DefaultRootName      = "Icons"
	DefaultWrapperImport = "@grace-studio/graceful-next/components"

	IndexFile  = "index.tsx"
	LookupFile = "lookup.tsx"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("codegen").Funcs(template.FuncMap{
	"prop": prop,
}).ParseFS(templateFS, "templates/*.tmpl"))

// prop renders an optional numeric JSX attribute, or nothing when v is nil.
func prop(name string, v *float64) string {
	if v == nil {
		return ""
	}
	return " " + name + "={" + strconv.FormatFloat(*v, 'f', -1, 64) + "}"
}

// Unit is one generated file, relative to the output directory.
type Unit struct {
	Dir  string
	Name string
	Text string
}

// Path returns the slash separated path of the unit.
func (u Unit) Path() string {
	return path.Join(u.Dir, u.Name)
}

// Generator renders units. The zero value is usable.
type Generator struct {
	// RootName is the identifier of the exported index object.
	RootName string
	// WrapperImport is the module IconWrapper and IconProps are imported from.
	WrapperImport string
	// ComponentsDir prefixes every component directory. Empty means the
	// components sit next to the index.
	ComponentsDir string
	// Formatter is applied to every unit. Defaults to Normalizer.
	Formatter Formatter
}

func (g Generator) rootName() string {
	if g.RootName == "" {
		return DefaultRootName
	}
	return g.RootName
}

func (g Generator) wrapperImport() string {
	if g.WrapperImport == "" {
		return DefaultWrapperImport
	}
	return g.WrapperImport
}

func (g Generator) formatter() Formatter {
	if g.Formatter == nil {
		return Normalizer{}
	}
	return g.Formatter
}

// Component renders the component file of a.
func (g Generator) Component(ctx context.Context, a asset.Asset) (Unit, error) {
	u := Unit{
		Dir:  path.Join(g.ComponentsDir, a.FilePath),
		Name: a.Name + ".tsx",
	}
	data := struct {
		WrapperImport string
		Name          string
		Markup        string
		Width         *float64
		Height        *float64
	}{g.wrapperImport(), a.Name, a.Markup, a.Width, a.Height}

	return g.render(ctx, u, "component.tsx.tmpl", data)
}

type indexEntry struct {
	Name   string
	Import string
}

type indexSection struct {
	Name    string
	Entries []indexEntry
}

type indexPage struct {
	Alias    string
	Sections []indexSection
}

// Index renders the index of assets, nested by page alias, then section,
// then component name.
func (g Generator) Index(ctx context.Context, assets []asset.Asset) (Unit, error) {
	var pages []indexPage
	for _, p := range Group(assets) {
		ip := indexPage{Alias: p.Alias}
		for _, s := range p.Sections {
			is := indexSection{Name: s.Name}
			for _, a := range s.Assets {
				is.Entries = append(is.Entries, indexEntry{
					Name:   a.Name,
					Import: "./" + path.Join(g.ComponentsDir, a.FileName),
				})
			}
			ip.Sections = append(ip.Sections, is)
		}
		pages = append(pages, ip)
	}

	data := struct {
		RootName string
		Pages    []indexPage
	}{g.rootName(), pages}

	return g.render(ctx, Unit{Name: IndexFile}, "index.tsx.tmpl", data)
}

// Lookup renders the getIcon helper. It does not depend on the assets: it
// walks the index at runtime and reports {found: false} for unknown paths.
func (g Generator) Lookup(ctx context.Context) (Unit, error) {
	data := struct {
		RootName      string
		WrapperImport string
	}{g.rootName(), g.wrapperImport()}

	return g.render(ctx, Unit{Name: LookupFile}, "lookup.tsx.tmpl", data)
}

func (g Generator) render(ctx context.Context, u Unit, name string, data any) (Unit, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return u, errors.Errorf("render %s: %w", u.Path(), err)
	}

	text, err := g.formatter().Format(ctx, u.Path(), buf.String())
	if err != nil {
		return u, errors.Errorf("format %s: %w", u.Path(), err)
	}
	u.Text = text
	return u, nil
}
