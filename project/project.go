// Package project loads squirrel.yaml, which ties a grammar to the files
// it parses.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/squirrel/ebnf"
	"github.com/dhamidi/squirrel/grammar"
	"github.com/dhamidi/squirrel/peg"
)

// ConfigFile is the name of the project configuration file.
const ConfigFile = "squirrel.yaml"

// ErrNotFound is returned when no configuration file can be located.
var ErrNotFound = errors.New("no " + ConfigFile + " found")

var log = commonlog.GetLogger("squirrel.project")

// Config is the content of squirrel.yaml.
type Config struct {
	Name    string   `yaml:"name"`
	Grammar string   `yaml:"grammar"`         // .peg or .ebnf file, relative to Dir
	Start   string   `yaml:"start,omitempty"` // top rule; defaults to the first rule
	Files   []string `yaml:"files"`           // glob patterns of input files, relative to Dir

	// Dir is the directory holding the configuration file.
	Dir string `yaml:"-"`
}

// Default returns the configuration written by "squirrel init" in dir.
func Default(dir string) *Config {
	name := filepath.Base(dir)
	if abs, err := filepath.Abs(dir); err == nil {
		name = filepath.Base(abs)
	}
	return &Config{
		Name:    name,
		Grammar: "grammar.peg",
		Files:   []string{"*.txt"},
		Dir:     dir,
	}
}

// Load reads the configuration of the current directory.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom reads dir/squirrel.yaml.
func LoadFrom(dir string) (*Config, error) {
	return LoadFile(filepath.Join(dir, ConfigFile))
}

// LoadFile reads the configuration file at path.
func LoadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	var cfg Config
	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Grammar == "" {
		return nil, fmt.Errorf("%s: no grammar configured", path)
	}
	cfg.Dir = filepath.Dir(path)
	log.Debugf("loaded %s (grammar %s)", path, cfg.Grammar)
	return &cfg, nil
}

// Find looks for a configuration file in dir and its parents.
func Find(dir string) (*Config, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", dir, err)
	}
	for d := abs; ; d = filepath.Dir(d) {
		cfg, err := LoadFrom(d)
		if !errors.Is(err, ErrNotFound) {
			return cfg, err
		}
		if parent := filepath.Dir(d); parent == d {
			break
		}
	}
	return nil, fmt.Errorf("%w in %s or its parents", ErrNotFound, abs)
}

// Save writes the configuration to Dir/squirrel.yaml.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(filepath.Join(c.Dir, ConfigFile), data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// GrammarPath returns the path of the grammar file.
func (c *Config) GrammarPath() string {
	return c.resolve(c.Grammar)
}

func (c *Config) resolve(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// LoadGrammar compiles the configured grammar and returns it with the top
// rule to parse from. Files ending in .ebnf are imported as EBNF and need
// an explicit start rule; anything else is read as PEG.
func (c *Config) LoadGrammar() (*peg.Grammar, string, error) {
	path := c.GrammarPath()
	if strings.EqualFold(filepath.Ext(path), ".ebnf") {
		if c.Start == "" {
			return nil, "", fmt.Errorf("%s: an EBNF grammar needs a start rule", path)
		}
		g, err := ebnf.CompileFile(path, c.Start)
		if err != nil {
			return nil, "", err
		}
		return g, c.Start, nil
	}

	g, err := grammar.CompileFile(path)
	if err != nil {
		return nil, "", err
	}
	start := c.Start
	if start == "" {
		start = g.RuleNames()[0]
	}
	if _, ok := g.Rule(start); !ok {
		return nil, "", fmt.Errorf("%s: %w: %s", path, peg.ErrUnknownRule, start)
	}
	return g, start, nil
}

// Matches reports whether path is an input file of the project.
func (c *Config) Matches(path string) bool {
	rel := path
	if r, err := filepath.Rel(c.Dir, path); err == nil && !strings.HasPrefix(r, "..") {
		rel = r
	}
	for _, pattern := range c.Files {
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// SourceFiles returns the input files matched by the configured patterns,
// sorted and without duplicates.
func (c *Config) SourceFiles() ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, pattern := range c.Files {
		matches, err := filepath.Glob(c.resolve(pattern))
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if info, err := os.Stat(m); err != nil || info.IsDir() || seen[m] {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}
