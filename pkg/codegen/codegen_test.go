package codegen

import (
	"context"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/tozd/go/errors"

	"github.com/kataras/figma-icons/pkg/asset"
)

func ptr(v float64) *float64 { return &v }

func fixture(alias, section, name string) asset.Asset {
	dir := "design-system/components/" + strings.ToLower(section)
	return asset.Asset{
		Name:      name,
		Section:   section,
		PageAlias: alias,
		Markup:    `<path d="M0 0h24v24H0z"/>`,
		FilePath:  dir,
		FileName:  dir + "/" + name,
	}
}

func TestComponent(t *testing.T) {
	a := fixture("DesignSystemComponents", "Icons", "ExternalLink")
	a.Width, a.Height = ptr(32), ptr(24.5)

	u, err := Generator{}.Component(t.Context(), a)
	require.NoError(t, err)

	assert.Equal(t, "design-system/components/icons", u.Dir)
	assert.Equal(t, "ExternalLink.tsx", u.Name)
	assert.Equal(t, "design-system/components/icons/ExternalLink.tsx", u.Path())

	want := `import { IconWrapper, IconProps } from '@grace-studio/graceful-next/components';

const ExternalLink = (props: IconProps) => (
  <IconWrapper {...props} width={32} height={24.5}>
    <path d="M0 0h24v24H0z"/>
  </IconWrapper>
);

export default ExternalLink;
`
	assert.Equal(t, want, u.Text)
}

func TestComponentOmitsMissingDimensions(t *testing.T) {
	a := fixture("P", "Icons", "Trash")
	a.Height = ptr(16)

	u, err := Generator{WrapperImport: "@/ui/icon", ComponentsDir: "icons"}.Component(t.Context(), a)
	require.NoError(t, err)

	assert.Equal(t, "icons/design-system/components/icons", u.Dir)
	assert.Contains(t, u.Text, "from '@/ui/icon';")
	assert.Contains(t, u.Text, "<IconWrapper {...props} height={16}>")
	assert.NotContains(t, u.Text, "width=")
}

func TestIndex(t *testing.T) {
	assets := []asset.Asset{
		fixture("Web", "Icons", "Trash"),
		fixture("Web", "Logos", "Acme"),
		fixture("Mobile", "Icons", "Close"),
		fixture("Web", "Icons", "ExternalLink"),
	}

	u, err := Generator{}.Index(t.Context(), assets)
	require.NoError(t, err)
	assert.Equal(t, "index.tsx", u.Path())

	want := `import dynamic from 'next/dynamic';

const Icons = {
  Web: {
    Icons: {
      Trash: dynamic(() => import('./design-system/components/icons/Trash')),
      ExternalLink: dynamic(() => import('./design-system/components/icons/ExternalLink')),
    },
    Logos: {
      Acme: dynamic(() => import('./design-system/components/logos/Acme')),
    },
  },
  Mobile: {
    Icons: {
      Close: dynamic(() => import('./design-system/components/icons/Close')),
    },
  },
};

export type IconsIndex = typeof Icons;

export default Icons;
`
	assert.Equal(t, want, u.Text)
}

func TestIndexHonoursRootNameAndComponentsDir(t *testing.T) {
	u, err := Generator{RootName: "Glyphs", ComponentsDir: "generated"}.Index(t.Context(), []asset.Asset{fixture("Web", "Icons", "Trash")})
	require.NoError(t, err)

	assert.Contains(t, u.Text, "const Glyphs = {")
	assert.Contains(t, u.Text, "import('./generated/design-system/components/icons/Trash')")
	assert.Contains(t, u.Text, "export default Glyphs;")
}

func TestIndexWithoutAssets(t *testing.T) {
	u, err := Generator{}.Index(t.Context(), nil)
	require.NoError(t, err)
	assert.Contains(t, u.Text, "const Icons = {\n};")
}

func TestLookup(t *testing.T) {
	u, err := Generator{RootName: "Glyphs"}.Lookup(t.Context())
	require.NoError(t, err)

	assert.Equal(t, "lookup.tsx", u.Path())
	assert.Contains(t, u.Text, "import Glyphs from './index';")
	assert.Contains(t, u.Text, "export const getIcon = (path: string): IconLookup => {")
	assert.Contains(t, u.Text, "let current: unknown = Glyphs;")
	assert.Contains(t, u.Text, "return { found: false, path };")
	assert.True(t, strings.HasSuffix(u.Text, "export default getIcon;\n"))
}

type failingFormatter struct{ path string }

func (f failingFormatter) Format(_ context.Context, path, src string) (string, error) {
	if path == f.path {
		return "", errors.New("parse error")
	}
	return src, nil
}

func TestFormatterErrorsAreReturned(t *testing.T) {
	g := Generator{Formatter: failingFormatter{path: "index.tsx"}}

	_, err := g.Index(t.Context(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format index.tsx")
	assert.Contains(t, err.Error(), "parse error")

	_, err = g.Lookup(t.Context())
	assert.NoError(t, err)
}

func TestGroup(t *testing.T) {
	pages := Group([]asset.Asset{
		fixture("B", "Icons", "One"),
		fixture("A", "Icons", "Two"),
		fixture("B", "Logos", "Three"),
		fixture("B", "Icons", "Four"),
	})

	require.Len(t, pages, 2)
	assert.Equal(t, "B", pages[0].Alias)
	assert.Equal(t, "A", pages[1].Alias)

	require.Len(t, pages[0].Sections, 2)
	assert.Equal(t, "Icons", pages[0].Sections[0].Name)
	require.Len(t, pages[0].Sections[0].Assets, 2)
	assert.Equal(t, "One", pages[0].Sections[0].Assets[0].Name)
	assert.Equal(t, "Four", pages[0].Sections[0].Assets[1].Name)
	assert.Equal(t, "Logos", pages[0].Sections[1].Name)
}

func TestNormalizer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"crlf", "a\r\nb\r\n", "a\nb\n"},
		{"trailing whitespace", "a  \n\tb\t\n", "a\n\tb\n"},
		{"blank runs", "a\n\n\n\nb", "a\n\nb\n"},
		{"leading and trailing newlines", "\n\na\n\n\n", "a\n"},
		{"only whitespace", " \n\n \n", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalizer{}.Format(t.Context(), "x.tsx", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCommandFormatter(t *testing.T) {
	if _, err := exec.LookPath("cat"); err != nil {
		t.Skip("cat not available")
	}

	got, err := Command{Name: "cat"}.Format(t.Context(), "x.tsx", "const a = 1;\n")
	require.NoError(t, err)
	assert.Equal(t, "const a = 1;\n", got)

	_, err = Command{Name: "false"}.Format(t.Context(), "x.tsx", "")
	assert.Error(t, err)
}
