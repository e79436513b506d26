package codegen

import (
	"bytes"
	"context"
	"os/exec"
	"regexp"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Formatter rewrites generated source text. path is the unit's relative path
// and lets external tools pick a parser.
type Formatter interface {
	Format(ctx context.Context, path, src string) (string, error)
}

// Normalizer is the built-in Formatter. It converts line endings to LF,
// trims trailing whitespace, collapses runs of blank lines to one, drops
// leading blank lines and ends the text with exactly one newline.
type Normalizer struct{}

var blankRuns = regexp.MustCompile(`\n{3,}`)

func (Normalizer) Format(_ context.Context, _ string, src string) (string, error) {
	src = strings.ReplaceAll(src, "\r\n", "\n")

	lines := strings.Split(src, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	out := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	out = strings.TrimLeft(out, "\n")
	out = strings.TrimRight(out, "\n")
	if out == "" {
		return "", nil
	}
	return out + "\n", nil
}

// Command runs an external formatter such as prettier. The source is written
// to stdin and the formatted text read from stdout. Every "{path}" in Args
// is replaced with the unit's path.
type Command struct {
	Name string
	Args []string
}

func (c Command) Format(ctx context.Context, path, src string) (string, error) {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = strings.ReplaceAll(a, "{path}", path)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, c.Name, args...)
	cmd.Stdin = strings.NewReader(src)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", errors.Errorf("format %s with %s: %w: %s", path, c.Name, err, strings.TrimSpace(stderr.String()))
	}
	return stdout.String(), nil
}
