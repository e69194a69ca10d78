package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"

	"docsnip/internal/content"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Project struct {
		Root   string `yaml:"root"`   // defaults to the git top-level directory
		Marker string `yaml:"marker"` // first attribute of every documentation tag
	} `yaml:"project"`
	Docs struct {
		Extensions []string `yaml:"extensions"`
		Ignored    []string `yaml:"ignored"`
	} `yaml:"docs"`
	Content struct {
		Ellipsis       string     `yaml:"ellipsis"`
		VerifyComments bool       `yaml:"verify_comments"`
		Languages      []Language `yaml:"languages"`
	} `yaml:"content"`
	Workers int `yaml:"workers"`
}

// Language adds or overrides the comment syntax of content files.
type Language struct {
	Name        string   `yaml:"name"`
	Extensions  []string `yaml:"extensions"`
	LineComment string   `yaml:"line_comment"`
	TagMarkers  []string `yaml:"tag_markers"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	var cfg Config
	cfg.Project.Marker = "docsnip"
	cfg.Docs.Extensions = []string{".md"}
	cfg.Docs.Ignored = []string{".git", "node_modules", "vendor"}
	cfg.Content.Ellipsis = "..."
	cfg.Workers = runtime.NumCPU()
	return &cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config on top of the defaults
	cfg := Default()
	file, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if root := os.Getenv("DOCSNIP_ROOT"); root != "" {
		cfg.Project.Root = root
	}
	if marker := os.Getenv("DOCSNIP_MARKER"); marker != "" {
		cfg.Project.Marker = marker
	}
	if workers := os.Getenv("DOCSNIP_WORKERS"); workers != "" {
		n, err := strconv.Atoi(workers)
		if err != nil {
			return nil, fmt.Errorf("invalid DOCSNIP_WORKERS %q: %w", workers, err)
		}
		cfg.Workers = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values a YAML file may have emptied.
func (c *Config) Validate() error {
	if c.Project.Marker == "" {
		return errors.New("project.marker must not be empty")
	}
	if len(c.Docs.Extensions) == 0 {
		return errors.New("docs.extensions must list at least one extension")
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
	if c.Content.Ellipsis == "" {
		c.Content.Ellipsis = "..."
	}
	for i, l := range c.Content.Languages {
		if l.Name == "" {
			return fmt.Errorf("content.languages[%d]: name is required", i)
		}
		if l.LineComment == "" && len(l.TagMarkers) == 0 {
			return fmt.Errorf("content.languages[%d] (%s): line_comment or tag_markers is required", i, l.Name)
		}
	}
	return nil
}

// ContentLanguages builds the language table for content files.
func (c *Config) ContentLanguages() *content.Languages {
	extra := make([]*content.Language, 0, len(c.Content.Languages))
	for _, l := range c.Content.Languages {
		extra = append(extra, &content.Language{
			Name:        l.Name,
			Extensions:  l.Extensions,
			LineComment: l.LineComment,
			TagMarkers:  l.TagMarkers,
		})
	}
	return content.NewLanguages(extra...)
}
