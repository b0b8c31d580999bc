// Package config loads lint settings from HCL, YAML or TOML files.
package config

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/spf13/afero"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/walteh/gabcls/pkg/diagnostic"
)

// FileNames are the configuration files looked up by Find, in order.
var FileNames = []string{".gabclint.hcl", ".gabclint.yaml", ".gabclint.yml", ".gabclint.toml"}

// FailNever disables the failing exit status.
const FailNever = "never"

type Config struct {
	// Disable lists rule names that are not run.
	Disable []string `hcl:"disable,optional" yaml:"disable,omitempty" toml:"disable"`
	// Ignore lists doublestar patterns matched against diagnostic codes.
	Ignore []string `hcl:"ignore,optional" yaml:"ignore,omitempty" toml:"ignore"`
	// Severity overrides the severity of a code.
	Severity map[string]string `hcl:"severity,optional" yaml:"severity,omitempty" toml:"severity"`
	// FailOn is the lowest severity that fails a run, or "never".
	FailOn string `hcl:"fail_on,optional" yaml:"fail_on,omitempty" toml:"fail_on"`
	// Extensions are the file extensions picked up when walking directories.
	Extensions []string `hcl:"extensions,optional" yaml:"extensions,omitempty" toml:"extensions"`
}

func Default() *Config {
	return &Config{
		FailOn:     string(diagnostic.Error),
		Extensions: []string{".gabc"},
	}
}

// Load reads the file at path, choosing the format by extension, and fills
// in defaults for the fields it leaves empty.
func Load(fs afero.Fs, path string) (*Config, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, errors.Errorf("parsing YAML: %w", err)
		}
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&cfg)
		if err != nil {
			return nil, errors.Errorf("parsing TOML: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("parsing TOML: unknown field %q", undecoded[0].String())
		}
	case ".hcl":
		file, diags := hclparse.NewParser().ParseHCL(data, path)
		if diags.HasErrors() {
			return nil, errors.Errorf("parsing HCL: %s", diags.Error())
		}
		if diags := gohcl.DecodeBody(file.Body, nil, &cfg); diags.HasErrors() {
			return nil, errors.Errorf("decoding HCL: %s", diags.Error())
		}
	default:
		return nil, errors.Errorf("unsupported config format %q", filepath.Ext(path))
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating %s: %w", path, err)
	}
	return &cfg, nil
}

// Find returns the first configuration file present in dir.
func Find(fs afero.Fs, dir string) (string, bool) {
	for _, name := range FileNames {
		p := filepath.Join(dir, name)
		if ok, err := afero.Exists(fs, p); err == nil && ok {
			return p, true
		}
	}
	return "", false
}

func (c *Config) applyDefaults() {
	def := Default()
	if c.FailOn == "" {
		c.FailOn = def.FailOn
	}
	if len(c.Extensions) == 0 {
		c.Extensions = def.Extensions
	}
}

func (c *Config) Validate() error {
	if c.FailOn != FailNever {
		if _, ok := diagnostic.ParseSeverity(c.FailOn); !ok {
			return errors.Errorf("fail_on: unknown severity %q", c.FailOn)
		}
	}
	for code, sev := range c.Severity {
		if _, ok := diagnostic.ParseSeverity(sev); !ok {
			return errors.Errorf("severity.%s: unknown severity %q", code, sev)
		}
	}
	for _, pattern := range c.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			return errors.Errorf("ignore: invalid pattern %q", pattern)
		}
	}
	return nil
}

// Ignored reports whether a diagnostic code matches an ignore pattern.
func (c *Config) Ignored(code string) bool {
	for _, pattern := range c.Ignore {
		if ok, _ := doublestar.Match(pattern, code); ok {
			return true
		}
	}
	return false
}

// SeverityFor returns the configured override for code.
func (c *Config) SeverityFor(code string) (diagnostic.Severity, bool) {
	raw, ok := c.Severity[code]
	if !ok {
		return "", false
	}
	return diagnostic.ParseSeverity(raw)
}

// FailThreshold returns the severity that fails a run; ok is false for "never".
func (c *Config) FailThreshold() (diagnostic.Severity, bool) {
	if c.FailOn == FailNever {
		return "", false
	}
	sev, ok := diagnostic.ParseSeverity(c.FailOn)
	if !ok {
		return diagnostic.Error, true
	}
	return sev, true
}

// Matches reports whether path has one of the configured extensions.
func (c *Config) Matches(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range c.Extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}
