package codegen

import "github.com/kataras/figma-icons/pkg/asset"

// Page is the first level of the index: every asset sharing a PageAlias.
type Page struct {
	Alias    string
	Sections []Section
}

// Section is the second level of the index.
type Section struct {
	Name   string
	Assets []asset.Asset
}

// Group nests assets by PageAlias, then Section. Groups appear in the order
// their first asset appears in the input, and assets keep their input order
// inside a group.
func Group(assets []asset.Asset) []Page {
	var (
		pages     []Page
		pageIndex = map[string]int{}
		sectIndex = map[[2]string]int{}
	)
	for _, a := range assets {
		pi, ok := pageIndex[a.PageAlias]
		if !ok {
			pi = len(pages)
			pageIndex[a.PageAlias] = pi
			pages = append(pages, Page{Alias: a.PageAlias})
		}

		key := [2]string{a.PageAlias, a.Section}
		si, ok := sectIndex[key]
		if !ok {
			si = len(pages[pi].Sections)
			sectIndex[key] = si
			pages[pi].Sections = append(pages[pi].Sections, Section{Name: a.Section})
		}

		pages[pi].Sections[si].Assets = append(pages[pi].Sections[si].Assets, a)
	}
	return pages
}
