// Package tree searches a Figma document for the pages, sections and
// components that make up an icon set.
package tree

import (
	"strings"

	"github.com/kataras/figma-icons/pkg/figma"
)

// Kind is the closed set of node kinds the search distinguishes.
type Kind int

const (
	KindOther Kind = iota
	KindDocument
	KindCanvas
	KindSection
	KindComponent
)

func (k Kind) String() string {
	switch k {
	case KindDocument:
		return "DOCUMENT"
	case KindCanvas:
		return "CANVAS"
	case KindSection:
		return "SECTION"
	case KindComponent:
		return "COMPONENT"
	default:
		return "OTHER"
	}
}

// ParseKind maps a Figma node type to a Kind, ignoring case.
// FRAME, GROUP, INSTANCE, VECTOR and every other type map to KindOther.
func ParseKind(figmaType string) Kind {
	switch strings.ToUpper(strings.TrimSpace(figmaType)) {
	case "DOCUMENT":
		return KindDocument
	case "CANVAS":
		return KindCanvas
	case "SECTION":
		return KindSection
	case "COMPONENT":
		return KindComponent
	default:
		return KindOther
	}
}

// Node is a read-only view of a Figma node.
// Section holds the lower-cased name of the nearest enclosing matched
// section; it is empty until FindSections tags a node.
type Node struct {
	ID       string
	Name     string
	Kind     Kind
	Section  string
	Children []Node
}

// FromFigma converts the wire representation, recursively.
func FromFigma(n figma.Node) Node {
	node := Node{
		ID:   n.ID,
		Name: n.Name,
		Kind: ParseKind(n.Type),
	}
	if len(n.Children) > 0 {
		node.Children = make([]Node, len(n.Children))
		for i, child := range n.Children {
			node.Children[i] = FromFigma(child)
		}
	}
	return node
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindPage returns every canvas whose trimmed name equals pageName, ignoring
// case. Callers normally use the first match only.
func FindPage(n Node, pageName string) []Node {
	if n.Kind == KindCanvas && normalize(n.Name) == normalize(pageName) {
		return []Node{n}
	}

	var out []Node
	for _, child := range n.Children {
		out = append(out, FindPage(child, pageName)...)
	}
	return out
}

// FindSections returns the section nodes whose trimmed, lower-cased name is
// in names. Each returned node is tagged with its own lower-cased name so the
// components below it know where they came from. Matched sections are not
// searched for nested sections.
func FindSections(n Node, names []string) []Node {
	targets := make(map[string]struct{}, len(names))
	for _, name := range names {
		targets[normalize(name)] = struct{}{}
	}
	return findSections(n, targets)
}

func findSections(n Node, targets map[string]struct{}) []Node {
	if n.Kind == KindSection {
		if _, ok := targets[normalize(n.Name)]; ok {
			n.Section = strings.ToLower(n.Name)
			return []Node{n}
		}
	}

	var out []Node
	for _, child := range n.Children {
		out = append(out, findSections(child, targets)...)
	}
	return out
}

// FindComponents returns the component nodes below n. The Section tag of n
// is passed down to every descendant that has none of its own.
func FindComponents(n Node) []Node {
	if n.Kind == KindComponent {
		return []Node{n}
	}

	var out []Node
	for _, child := range n.Children {
		if child.Section == "" {
			child.Section = n.Section
		}
		out = append(out, FindComponents(child)...)
	}
	return out
}

// Search composes FindPage, FindSections and FindComponents. A page or
// section that does not exist yields an empty result.
func Search(root Node, pageName string, sections []string) []Node {
	var components []Node
	for _, page := range FindPage(root, pageName) {
		for _, section := range FindSections(page, sections) {
			components = append(components, FindComponents(section)...)
		}
	}
	return components
}

// ParseSectionNames splits a comma-joined list of section names.
func ParseSectionNames(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if name := normalize(part); name != "" {
			out = append(out, name)
		}
	}
	return out
}
