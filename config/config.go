// Package config loads javasrc settings from javasrc.yaml and the
// environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v3"
)

// ProjectConfigFile is the name of the project-level config file.
const ProjectConfigFile = "javasrc.yaml"

var log = commonlog.GetLogger("javasrc.config")

type Config struct {
	// Classpath entries: jars, class directories or globs like lib/*.jar.
	Classpath []string `yaml:"classpath"`
	// Sources are glob patterns of .java files, relative to the config file.
	Sources []string `yaml:"sources"`
	// Indexes are YAML package indexes in the form index.Load reads.
	Indexes []string `yaml:"indexes"`
	// JDK enables the embedded JDK index. Nil means the default, true.
	JDK *bool     `yaml:"jdk,omitempty"`
	Log LogConfig `yaml:"log"`

	// Dir is the directory of the file the config was read from.
	Dir string `yaml:"-"`
}

type LogConfig struct {
	Verbosity int    `yaml:"verbosity"`
	File      string `yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Sources: []string{"**/*.java"},
	}
}

// UseJDK reports whether the embedded JDK index should be registered.
func (c *Config) UseJDK() bool {
	return c.JDK == nil || *c.JDK
}

func (c *Config) Validate() error {
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	for key, entries := range map[string][]string{
		"classpath": c.Classpath,
		"sources":   c.Sources,
		"indexes":   c.Indexes,
	} {
		for i, entry := range entries {
			if strings.TrimSpace(entry) == "" {
				return fmt.Errorf("%s[%d] is empty", key, i)
			}
		}
	}
	return nil
}

// LoadFromFile reads path on top of the defaults. Relative classpath and
// index entries are made relative to the file's directory.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	config.Dir = filepath.Dir(path)
	config.Classpath = relativeTo(config.Dir, config.Classpath)
	config.Indexes = relativeTo(config.Dir, config.Indexes)
	return config, nil
}

func relativeTo(dir string, entries []string) []string {
	result := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry != "" && !filepath.IsAbs(entry) {
			entry = filepath.Join(dir, entry)
		}
		result = append(result, entry)
	}
	return result
}

// Merge overlays the non-zero settings of other onto c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}
	if len(other.Classpath) > 0 {
		c.Classpath = other.Classpath
	}
	if len(other.Sources) > 0 {
		c.Sources = other.Sources
	}
	if len(other.Indexes) > 0 {
		c.Indexes = other.Indexes
	}
	if other.JDK != nil {
		jdk := *other.JDK
		c.JDK = &jdk
	}
	if other.Log.Verbosity != 0 {
		c.Log.Verbosity = other.Log.Verbosity
	}
	if other.Log.File != "" {
		c.Log.File = other.Log.File
	}
	if other.Dir != "" {
		c.Dir = other.Dir
	}
}

// FindProjectConfig searches dir and its parents for javasrc.yaml and
// returns "" when there is none.
func FindProjectConfig(dir string) string {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Load layers the defaults, the project config found from dir and the
// environment, and validates the result.
func Load(dir string) (*Config, error) {
	config := DefaultConfig()

	if path := FindProjectConfig(dir); path != "" {
		project, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		log.Debugf("loaded project config %s", path)
		config.Merge(project)
	} else {
		log.Debugf("no %s found from %s", ProjectConfigFile, dir)
	}

	if err := config.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("JAVASRC_CLASSPATH"); ok && v != "" {
		c.Classpath = filepath.SplitList(v)
	}
	if v, ok := lookup("JAVASRC_SOURCES"); ok && v != "" {
		c.Sources = strings.Split(v, ",")
	}
	if v, ok := lookup("JAVASRC_VERBOSITY"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("JAVASRC_VERBOSITY: %w", err)
		}
		c.Log.Verbosity = n
	}
	return nil
}
