package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	figmaicons "github.com/kataras/figma-icons"
)

// ToMarkdown renders a run result as a markdown report: a summary, the
// generated icons with their index path, skipped duplicates and failures.
// Sections without entries are left out.
func ToMarkdown(res *figmaicons.Result, title string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Figma Icons - %s\n\n", title))
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Icons**: %d\n", len(res.Assets)))
	sb.WriteString(fmt.Sprintf("- **Files**: %d\n", len(res.Units)))
	sb.WriteString(fmt.Sprintf("- **Duplicates**: %d\n", len(res.Duplicates)))
	sb.WriteString(fmt.Sprintf("- **Failures**: %d\n", len(res.Failures)))
	sb.WriteString("\n")

	if len(res.Assets) > 0 {
		sb.WriteString("## Icons\n\n")
		sb.WriteString("| Icon | Path | Size | Markup | Node |\n")
		sb.WriteString("|------|------|------|--------|------|\n")
		for _, a := range res.Assets {
			sb.WriteString(fmt.Sprintf("| `%s.%s.%s` | `%s` | %s | %s | %s |\n",
				a.PageAlias, a.Section, a.Name,
				a.FileName,
				size(a.Width, a.Height),
				humanize.Bytes(uint64(len(a.Markup))),
				a.NodeID,
			))
		}
		sb.WriteString("\n")
	}

	if len(res.Duplicates) > 0 {
		sb.WriteString("## Duplicates\n\n")
		sb.WriteString("| Path | Skipped Node | Kept Node |\n")
		sb.WriteString("|------|--------------|-----------|\n")
		for _, d := range res.Duplicates {
			sb.WriteString(fmt.Sprintf("| `%s` | %s | %s |\n", d.Asset.FileName, d.Asset.NodeID, d.Kept.NodeID))
		}
		sb.WriteString("\n")
	}

	if len(res.Failures) > 0 {
		sb.WriteString("## Failures\n\n")
		sb.WriteString("| Stage | Component | File | Page | Section | Reason |\n")
		sb.WriteString("|-------|-----------|------|------|---------|--------|\n")
		for _, f := range res.Failures {
			reason := f.Reason
			if f.Err != nil {
				reason += ": " + f.Err.Error()
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s | %s |\n",
				f.Stage, cell(f.Component), cell(f.File), cell(f.Page), cell(f.Section), cell(reason)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func size(w, h *float64) string {
	if w == nil && h == nil {
		return "-"
	}
	return dimension(w) + "×" + dimension(h)
}

func dimension(v *float64) string {
	if v == nil {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// cell keeps a value on one table row.
func cell(s string) string {
	if s == "" {
		return "-"
	}
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
