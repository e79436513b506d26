// Package asset holds the value types that flow through the extraction
// pipeline and the pure transforms between them.
package asset

import (
	"fmt"
	"path"
	"strings"

	"github.com/kataras/figma-icons/pkg/naming"
	"github.com/kataras/figma-icons/pkg/svg"
)

// Provenance identifies where an asset came from.
// File is the display name of the Figma file, Page the configured page name
// and Alias the optional human alias of the source.
type Provenance struct {
	FileKey string
	File    string
	Page    string
	Alias   string
}

// Raw is a resolved component before normalization.
type Raw struct {
	NodeID  string
	Name    string
	Section string
	Markup  string
	Provenance
}

// Asset is a normalized SVG component ready for code generation.
type Asset struct {
	NodeID    string
	Name      string
	Section   string
	PageAlias string
	Markup    string
	Width     *float64
	Height    *float64

	// FileName is the canonical path without extension,
	// file/page/section/Name. It is the dedup and sort key.
	FileName string
	FilePath string

	Provenance
}

// IndexPath is the dotted path of the asset in the generated index,
// PageAlias.Section.Name.
func (a Asset) IndexPath() string {
	return a.PageAlias + "." + a.Section + "." + a.Name
}

// Build derives the canonical names of raw and combines them with its
// normalized markup.
func Build(raw Raw, n svg.Normalized) Asset {
	filePath := path.Join(
		naming.ToPathCase(raw.File),
		naming.ToPathCase(raw.Page),
		naming.ToPathCase(raw.Section),
	)
	name := naming.ToIdentifierCase(raw.Name)

	return Asset{
		NodeID:     raw.NodeID,
		Name:       name,
		Section:    naming.ToIdentifierCase(raw.Section),
		PageAlias:  PageAlias(raw.Provenance),
		Markup:     n.Markup,
		Width:      n.Width,
		Height:     n.Height,
		FileName:   path.Join(filePath, name),
		FilePath:   filePath,
		Provenance: raw.Provenance,
	}
}

// PageAlias is the top-level index key of a source: the alias when one is
// configured, otherwise the file and page names.
func PageAlias(p Provenance) string {
	if strings.TrimSpace(p.Alias) != "" {
		return naming.ToIdentifierCase(p.Alias)
	}
	return naming.ToIdentifierCase(naming.ToPathCase(p.File) + " " + naming.ToPathCase(p.Page))
}

// Failure stages.
const (
	StageSource   = "source"
	StageExport   = "export"
	StageDownload = "download"
	StageFormat   = "format"
)

// Failure records an asset, or a whole source, that was dropped from the run.
type Failure struct {
	Stage     string
	Component string
	NodeID    string
	File      string
	Page      string
	Section   string
	Reason    string
	Err       error
}

func (f Failure) Error() string {
	var b strings.Builder
	b.WriteString(f.Stage)
	if f.Component != "" {
		fmt.Fprintf(&b, " %q", f.Component)
	}
	fmt.Fprintf(&b, " (file %q, page %q", f.File, f.Page)
	if f.Section != "" {
		fmt.Fprintf(&b, ", section %q", f.Section)
	}
	b.WriteString("): ")
	b.WriteString(f.Reason)
	if f.Err != nil {
		b.WriteString(": ")
		b.WriteString(f.Err.Error())
	}
	return b.String()
}

func (f Failure) Unwrap() error {
	return f.Err
}

// Duplicate is an asset excluded because an earlier asset already claimed
// its FileName.
type Duplicate struct {
	Asset  Asset
	Kept   Asset
	Reason string
}
