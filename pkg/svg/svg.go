// Package svg prepares raw SVG exports for embedding in JSX.
//
// Normalize runs three passes in a fixed order:
//
//  1. CamelCaseAttributes rewrites hyphenated attribute names
//     (stroke-width -> strokeWidth).
//  2. StripFills removes literal hex fills so the caller can recolor the icon.
//  3. ExtractOuter reads width/height from the outer <svg> tag and keeps only
//     its inner markup.
package svg

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// Normalized is the result of Normalize.
// Width and Height are nil when the outer tag has no usable value.
type Normalized struct {
	Markup string
	Width  *float64
	Height *float64
}

// Normalize applies CamelCaseAttributes, StripFills and ExtractOuter to raw.
// It never fails: markup without an outer <svg> element yields a zero
// Normalized value.
func Normalize(raw string) Normalized {
	return ExtractOuter(StripFills(CamelCaseAttributes(raw)))
}

var (
	tagPattern  = regexp.MustCompile(`<[^<>!?/](?:[^<>"']|"[^"]*"|'[^']*')*>`)
	attrPattern = regexp.MustCompile(`([^\s=/<>"']+)(\s*=\s*)("[^"]*"|'[^']*')`)
	dashLetter  = regexp.MustCompile(`-([a-z])`)
)

// CamelCaseAttributes rewrites hyphenated attribute names to camelCase.
// Names starting with data- or aria- and namespaced names such as
// xlink:href are left as they are. Quoted values and text content are never
// touched.
func CamelCaseAttributes(s string) string {
	return tagPattern.ReplaceAllStringFunc(s, func(tag string) string {
		return attrPattern.ReplaceAllStringFunc(tag, func(attr string) string {
			m := attrPattern.FindStringSubmatch(attr)
			return attributeName(m[1]) + m[2] + m[3]
		})
	})
}

func attributeName(name string) string {
	lower := strings.ToLower(name)
	if !strings.Contains(name, "-") ||
		strings.Contains(name, ":") ||
		strings.HasPrefix(lower, "data-") ||
		strings.HasPrefix(lower, "aria-") {
		return name
	}
	return dashLetter.ReplaceAllStringFunc(name, func(m string) string {
		return strings.ToUpper(m[1:])
	})
}

var hexFill = regexp.MustCompile(`\s+fill\s*=\s*(?:"#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3,4})"|'#(?:[0-9a-fA-F]{8}|[0-9a-fA-F]{6}|[0-9a-fA-F]{3,4})')`)

// StripFills removes fill attributes holding a literal hex color, together
// with the whitespace before them. fill="currentColor", fill="none" and
// fill="url(#id)" are kept.
func StripFills(s string) string {
	return hexFill.ReplaceAllString(s, "")
}

var (
	lineBreaks = regexp.MustCompile(`[ \t]*[\r\n]\s*`)
	betweenTag = regexp.MustCompile(`>[ \t]*[\r\n]\s*<`)
	magnitude  = regexp.MustCompile(`^\s*([0-9]*\.?[0-9]+)`)
)

// ExtractOuter returns the markup between the first <svg> start tag and the
// last </svg> end tag, along with the numeric part of the start tag's width
// and height ("32px" -> 32, "100%" -> 100). Line breaks are collapsed
// first: a break between two tags disappears, any other one becomes a single
// space. Whitespace within a line is kept.
func ExtractOuter(s string) Normalized {
	s = lineBreaks.ReplaceAllString(betweenTag.ReplaceAllString(s, "><"), " ")

	var (
		z             = html.NewTokenizer(strings.NewReader(s))
		offset        int
		start, end    = -1, -1
		width, height *float64
	)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() != io.EOF {
				return Normalized{}
			}
			break
		}
		raw := len(z.Raw())
		name, hasAttr := z.TagName()

		switch {
		case start < 0 && tt == html.StartTagToken && string(name) == "svg":
			start = offset + raw
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				switch string(key) {
				case "width":
					width = parseMagnitude(string(val))
				case "height":
					height = parseMagnitude(string(val))
				}
			}
		case start >= 0 && tt == html.EndTagToken && string(name) == "svg":
			end = offset
		}
		offset += raw
	}

	if start < 0 || end < start {
		return Normalized{}
	}

	return Normalized{
		Markup: strings.TrimSpace(s[start:end]),
		Width:  width,
		Height: height,
	}
}

func parseMagnitude(v string) *float64 {
	m := magnitude.FindStringSubmatch(v)
	if m == nil {
		return nil
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return nil
	}
	return &f
}
