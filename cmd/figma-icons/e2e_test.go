package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/figma-icons/pkg/codegen"
)

// TestReactIconsLive runs the command against the real Figma API.
//
// Run with:
//
//	FIGMA_TOKEN=<your-token> FIGMA_ICONS_CONFIG=/path/to/graceful.yaml go test -v -run Live ./cmd/figma-icons
func TestReactIconsLive(t *testing.T) {
	token := os.Getenv("FIGMA_TOKEN")
	cfgPath := os.Getenv("FIGMA_ICONS_CONFIG")
	if token == "" || cfgPath == "" {
		t.Skip("FIGMA_TOKEN or FIGMA_ICONS_CONFIG not set, skipping test")
	}

	outDir := filepath.Join(t.TempDir(), "icons")
	report := filepath.Join(t.TempDir(), "report.md")

	out, err := execute(t, "", "react-icons",
		"--config", cfgPath,
		"--token", token,
		"--out", outDir,
		"--report", report,
		"--force",
	)
	t.Log(out)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(outDir, codegen.IndexFile))
	assert.FileExists(t, filepath.Join(outDir, codegen.LookupFile))
	assert.FileExists(t, report)
}
