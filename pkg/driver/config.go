package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dis-da-moe/pseudo-pseudo-code/pkg/builtins"
)

// ConfigFileName is the project file looked up next to (or above) a program.
const ConfigFileName = "pseudo.yml"

// ErrConfigNotFound is returned by FindConfig when no pseudo.yml exists on
// the way up to the filesystem root.
var ErrConfigNotFound = errors.New("pseudo.yml not found")

// Config represents the parsed contents of pseudo.yml.
type Config struct {
	Path     string
	Name     string
	Entry    string
	Seed     *int64
	Color    ColorMode
	Input    string
	History  string
	Disabled []string
	Sources  map[string]*SourceSpec
}

// ColorMode selects when diagnostics are coloured.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// IsValid reports whether the mode is recognised. The empty mode means auto.
func (m ColorMode) IsValid() bool {
	switch m {
	case "", ColorAuto, ColorAlways, ColorNever:
		return true
	default:
		return false
	}
}

// SourceSpec names a git repository holding programs. At most one of Rev,
// Tag and Branch may be set; none means the remote HEAD.
type SourceSpec struct {
	Git    string
	Rev    string
	Tag    string
	Branch string
}

// ValidationError aggregates config validation failures.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "config: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("config validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// LoadConfig parses pseudo.yml from disk, returning a validated config.
// An empty file yields the zero config.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", absPath, err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)

	var raw configFile
	if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", absPath, err)
	}

	cfg := raw.toConfig(absPath)
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfig walks from start (a file or directory) up to the filesystem
// root and returns the first pseudo.yml it sees.
func FindConfig(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	origin := dir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found from %s upwards: %w", ConfigFileName, origin, ErrConfigNotFound)
		}
		dir = parent
	}
}

// Dir is the directory holding the config file; relative paths resolve
// against it.
func (c *Config) Dir() string {
	if c == nil || c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Resolve makes a config-relative path absolute.
func (c *Config) Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Dir(), filepath.FromSlash(path))
}

// EntryPath returns the absolute entry program, or "" when none is set.
func (c *Config) EntryPath() string {
	if c == nil {
		return ""
	}
	return c.Resolve(c.Entry)
}

// InputPath returns the absolute INPUT file, or "" when none is set.
func (c *Config) InputPath() string {
	if c == nil {
		return ""
	}
	return c.Resolve(c.Input)
}

// HistoryPath returns the absolute REPL history file, or "" when none is set.
func (c *Config) HistoryPath() string {
	if c == nil {
		return ""
	}
	return c.Resolve(c.History)
}

// SourceNames lists the configured sources in sorted order.
func (c *Config) SourceNames() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c *Config) validate() error {
	var errs ValidationError
	if !c.Color.IsValid() {
		errs.Issues = append(errs.Issues, fmt.Sprintf("color must be one of auto, always, never (got %q)", c.Color))
	}
	if c.Entry != "" && strings.HasSuffix(c.Entry, "/") {
		errs.Issues = append(errs.Issues, fmt.Sprintf("entry %q must name a file", c.Entry))
	}
	for i, name := range c.Disabled {
		if !isBuiltinName(name) {
			errs.Issues = append(errs.Issues, fmt.Sprintf("builtins.disable[%d]: unknown built-in %q", i, name))
		}
	}
	for _, name := range c.SourceNames() {
		if sanitizePathSegment(name) != name {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources.%s: name may only use letters, digits, '.', '-' and '_'", name))
		}
		for _, issue := range c.Sources[name].validate() {
			errs.Issues = append(errs.Issues, fmt.Sprintf("sources.%s: %s", name, issue))
		}
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

func isBuiltinName(name string) bool {
	for _, known := range builtins.Names {
		if known == name {
			return true
		}
	}
	return false
}

func (s *SourceSpec) validate() []string {
	var errs []string
	if s == nil {
		return []string{"must specify git"}
	}
	if s.Git == "" {
		errs = append(errs, "must specify git")
	}
	pinned := 0
	for _, ref := range []string{s.Rev, s.Tag, s.Branch} {
		if ref != "" {
			pinned++
		}
	}
	if pinned > 1 {
		errs = append(errs, "only one of rev, tag, or branch may be set")
	}
	return errs
}

type configFile struct {
	Name     string        `yaml:"name"`
	Entry    string        `yaml:"entry"`
	Seed     *int64        `yaml:"seed"`
	Color    ColorMode     `yaml:"color"`
	Input    string        `yaml:"input"`
	History  string        `yaml:"history"`
	Builtins builtinsBlock `yaml:"builtins"`
	Sources  sourceMap     `yaml:"sources"`
}

type builtinsBlock struct {
	Disable stringList `yaml:"disable"`
}

type sourceMap map[string]*SourceSpec

type stringList []string

func (cf configFile) toConfig(path string) *Config {
	cfg := &Config{
		Path:     path,
		Name:     strings.TrimSpace(cf.Name),
		Entry:    strings.TrimSpace(cf.Entry),
		Seed:     cf.Seed,
		Color:    ColorMode(strings.ToLower(strings.TrimSpace(string(cf.Color)))),
		Input:    strings.TrimSpace(cf.Input),
		History:  strings.TrimSpace(cf.History),
		Disabled: []string(cf.Builtins.Disable),
		Sources:  make(map[string]*SourceSpec, len(cf.Sources)),
	}
	for name, spec := range cf.Sources {
		if spec == nil {
			cfg.Sources[name] = nil
			continue
		}
		src := *spec
		cfg.Sources[name] = &src
	}
	return cfg
}

func (l *stringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" || strings.TrimSpace(value.Value) == "" {
			*l = nil
			return nil
		}
		*l = stringList{strings.TrimSpace(value.Value)}
		return nil
	case yaml.SequenceNode:
		items := make([]string, 0, len(value.Content))
		for _, node := range value.Content {
			var str string
			if err := node.Decode(&str); err != nil {
				return err
			}
			if str = strings.TrimSpace(str); str != "" {
				items = append(items, str)
			}
		}
		*l = stringList(items)
		return nil
	case yaml.AliasNode:
		return l.UnmarshalYAML(value.Alias)
	case 0:
		*l = nil
		return nil
	default:
		return fmt.Errorf("config: expected string or sequence for list but found %s", value.ShortTag())
	}
}

func (sm *sourceMap) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == 0 || (value.Kind == yaml.ScalarNode && value.Tag == "!!null") {
		*sm = make(sourceMap)
		return nil
	}
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("config: sources must be a mapping")
	}
	result := make(sourceMap, len(value.Content)/2)
	for i := 0; i < len(value.Content); i += 2 {
		var key string
		if err := value.Content[i].Decode(&key); err != nil {
			return err
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return fmt.Errorf("config: source names must be non-empty")
		}
		spec := new(SourceSpec)
		if err := spec.unmarshalYAML(value.Content[i+1]); err != nil {
			return fmt.Errorf("config: source %q: %w", key, err)
		}
		result[key] = spec
	}
	*sm = result
	return nil
}

// A source is either a bare URL or a mapping with git and an optional ref.
func (s *SourceSpec) unmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag == "!!null" {
			*s = SourceSpec{}
			return nil
		}
		*s = SourceSpec{Git: strings.TrimSpace(value.Value)}
		return nil
	case yaml.MappingNode:
		var raw struct {
			Git    string `yaml:"git"`
			Rev    string `yaml:"rev"`
			Tag    string `yaml:"tag"`
			Branch string `yaml:"branch"`
		}
		if err := value.Decode(&raw); err != nil {
			return err
		}
		*s = SourceSpec{
			Git:    strings.TrimSpace(raw.Git),
			Rev:    strings.TrimSpace(raw.Rev),
			Tag:    strings.TrimSpace(raw.Tag),
			Branch: strings.TrimSpace(raw.Branch),
		}
		return nil
	case yaml.AliasNode:
		return s.unmarshalYAML(value.Alias)
	default:
		return fmt.Errorf("expected string or mapping, found %s", value.ShortTag())
	}
}
