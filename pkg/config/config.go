// Package config loads the YAML configuration of an icon extraction run.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-multierror"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/kataras/figma-icons/pkg/figma"
	"github.com/kataras/figma-icons/pkg/tree"
)

// TokenEnv is consulted when the configuration carries no token.
const TokenEnv = "FIGMA_ACCESS_TOKEN"

// DefaultOutDir is used when outDir is not set.
const DefaultOutDir = "src/components/icons"

// FileNames are searched, in order, by Find.
var FileNames = []string{"graceful.yaml", "graceful.yml", "figma-icons.yaml"}

// ErrNoConfig is returned by Find when none of FileNames exists.
var ErrNoConfig = errors.Base("no configuration file found")

// SectionNames is the list of section names a source extracts from. In YAML
// it is either a comma separated string or a list of strings.
type SectionNames []string

func (s *SectionNames) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		*s = tree.ParseSectionNames(value.Value)
		return nil
	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = tree.ParseSectionNames(strings.Join(list, ","))
		return nil
	default:
		return errors.Errorf("line %d: sectionName must be a string or a list of strings", value.Line)
	}
}

// Source is one Figma page to extract icons from.
type Source struct {
	FileKey  string       `yaml:"fileKey"`
	FileURL  string       `yaml:"fileUrl"`
	PageName string       `yaml:"pageName"`
	Sections SectionNames `yaml:"sectionName"`
	// Alias replaces the file and page names as the top level key of the
	// generated index.
	Alias string `yaml:"alias"`
}

// Key returns the file key, parsing FileURL when FileKey is empty.
func (s Source) Key() (string, error) {
	if s.FileKey != "" {
		return s.FileKey, nil
	}
	if s.FileURL == "" {
		return "", errors.New("source needs a fileKey or a fileUrl")
	}
	return figma.ExtractFileKey(s.FileURL)
}

type Formatter struct {
	// Command is the argv of an external formatter. Empty means the built-in
	// whitespace normalizer.
	Command []string `yaml:"command"`
}

// Config is the whole configuration file.
type Config struct {
	Token         string    `yaml:"token"`
	OutDir        string    `yaml:"outDir"`
	Force         bool      `yaml:"force"`
	RootName      string    `yaml:"rootName"`
	WrapperImport string    `yaml:"wrapperImport"`
	ComponentsDir string    `yaml:"componentsDir"`
	BatchSize     int       `yaml:"batchSize"`
	Formatter     Formatter `yaml:"formatter"`
	Sources       []Source  `yaml:"sources"`

	// Path is the file the configuration was read from.
	Path string `yaml:"-"`
}

// Parse decodes YAML and applies defaults. It does not validate.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Errorf("parse config: %w", err)
	}

	if cfg.Token == "" {
		cfg.Token = os.Getenv(TokenEnv)
	}
	if cfg.OutDir == "" {
		cfg.OutDir = DefaultOutDir
	}
	return &cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("read config: %w", err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, errors.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Find returns the first of FileNames present in dir.
func Find(dir string) (string, error) {
	for _, name := range FileNames {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", errors.Errorf("%w in %s (looked for %s)", ErrNoConfig, dir, strings.Join(FileNames, ", "))
}

// Validate reports every problem of the configuration at once.
func (c *Config) Validate() error {
	var errs *multierror.Error
	if strings.TrimSpace(c.OutDir) == "" {
		errs = multierror.Append(errs, errors.New("outDir is empty"))
	}
	if c.BatchSize < 0 {
		errs = multierror.Append(errs, errors.Errorf("batchSize %d is negative", c.BatchSize))
	}
	if len(c.Sources) == 0 {
		errs = multierror.Append(errs, errors.New("no sources configured"))
	}
	for i, s := range c.Sources {
		if _, err := s.Key(); err != nil {
			errs = multierror.Append(errs, errors.Errorf("sources[%d]: %w", i, err))
		}
		if strings.TrimSpace(s.PageName) == "" {
			errs = multierror.Append(errs, errors.Errorf("sources[%d]: pageName is empty", i))
		}
		if len(s.Sections) == 0 {
			errs = multierror.Append(errs, errors.Errorf("sources[%d]: sectionName is empty", i))
		}
	}
	return errs.ErrorOrNil()
}
