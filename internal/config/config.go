package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape for envdelta. All
// fields are pointers so an absent key is distinguishable from a zero
// value; precedence is CLI flag > repo-local file > global file.
type FileConfig struct {
	Format      *string `yaml:"format"`       // env|json|yaml
	Profile     *string `yaml:"profile"`      // env: dotenv|compose
	Multiline   *bool   `yaml:"multiline"`    // env: quoted values may span lines
	Expand      *bool   `yaml:"expand"`       // env: resolve $VAR references
	ArrayMode   *string `yaml:"array_mode"`   // json/yaml: index|stringify|ignore
	Strict      *bool   `yaml:"strict"`       // yaml: duplicate keys are fatal
	MaxKeys     *int    `yaml:"max_keys"`     // flattened key cap
	IncludeKeys *string `yaml:"include_keys"` // comma-separated key globs
	ExcludeKeys *string `yaml:"exclude_keys"`
	FailOn      *string `yaml:"fail_on"` // low|medium|high|none
	NoColor     *bool   `yaml:"no_color"`

	// Redaction tuning for displayed values.
	RedactPrefix *int `yaml:"redact_prefix"`
	RedactSuffix *int `yaml:"redact_suffix"`
	RedactMin    *int `yaml:"redact_min"`

	// MinRulesVersion refuses to run with a built-in rule set older than
	// this semantic version.
	MinRulesVersion *string `yaml:"min_rules_version"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadLocal searches for a repo-local config file in the given root.
// It supports .envdelta.yml/.yaml and envdelta.yml/.yaml.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range []string{".envdelta.yml", ".envdelta.yaml", "envdelta.yml", "envdelta.yaml"} {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// LoadGlobal loads the global config file from XDG base directory or ~/.config.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return cfg, errors.New("no config dir")
	}
	p := filepath.Join(base, "envdelta", "config.yml")
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}
