package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/elcoosp/linkgen/internal/naming"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is looked up at the project root during Load.
const ConfigFileName = ".linkgen.yaml"

// NamingConfig controls how variant and field identifiers are derived.
type NamingConfig struct {
	// IncludeMethodInNames prepends the HTTP method to variant names.
	IncludeMethodInNames *bool `yaml:"includeMethodInNames"`
	// PathPrefixToRemove is stripped from paths for naming only; emitted
	// route paths always keep the full resolved path.
	PathPrefixToRemove string `yaml:"pathPrefixToRemove"`
	// VariantCase is the case convention for variant names.
	VariantCase string `yaml:"variantCase"`
	// FieldCase is the case convention for field names.
	FieldCase string `yaml:"fieldCase"`
	// WordSeparators are the characters treated as word boundaries when
	// tokenizing path segments.
	WordSeparators string `yaml:"wordSeparators"`
	// VariantPrefix is concatenated verbatim before each variant name.
	VariantPrefix string `yaml:"variantPrefix"`
	// VariantSuffix is concatenated verbatim after each variant name.
	VariantSuffix string `yaml:"variantSuffix"`
	// PreserveNumbers splits digit runs into their own tokens.
	PreserveNumbers bool `yaml:"preserveNumbers"`
}

// TypeScriptConfig controls the optional TypeScript artifact.
type TypeScriptConfig struct {
	GenerateClient bool   `yaml:"generateClient"`
	OutputPath     string `yaml:"outputPath"`
}

// Config is the one-shot snapshot of recognized options. Every pipeline
// stage reads the same snapshot; nothing mutates it after Load.
type Config struct {
	// ControllersPath is the directory scanned for controller files,
	// relative to the project root unless absolute.
	ControllersPath string `yaml:"controllersPath"`
	// OutputFile is the generated Rust registry, relative to the project
	// root unless absolute.
	OutputFile string `yaml:"outputFile"`
	// OpenAPIOutput enables the optional OpenAPI artifact when non-empty.
	OpenAPIOutput string `yaml:"openapiOutput"`

	Naming     NamingConfig     `yaml:"naming"`
	TypeScript TypeScriptConfig `yaml:"typescript"`
}

// ConfigError is an invalid option value, surfaced before scanning begins.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration for %q: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Default returns the configuration used when no file or flag overrides an
// option.
func Default() *Config {
	includeMethod := true
	return &Config{
		ControllersPath: "src/controllers",
		OutputFile:      "links.rs",
		Naming: NamingConfig{
			IncludeMethodInNames: &includeMethod,
			VariantCase:          "pascal",
			FieldCase:            "snake",
			WordSeparators:       "-._:",
		},
		TypeScript: TypeScriptConfig{
			OutputPath: "client.ts",
		},
	}
}

// Load reads .linkgen.yaml from the project root, if present, on top of the
// defaults. A missing file is not an error.
func Load(projectPath string) (*Config, error) {
	cfg := Default()

	configPath := filepath.Join(projectPath, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err == nil {
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing %s: %w", configPath, unmarshalErr)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	if cfg.Naming.IncludeMethodInNames == nil {
		includeMethod := true
		cfg.Naming.IncludeMethodInNames = &includeMethod
	}
	if cfg.Naming.WordSeparators == "" {
		cfg.Naming.WordSeparators = "-._:"
	}

	return cfg, nil
}

// IncludeMethod reports the effective includeMethodInNames value.
func (n *NamingConfig) IncludeMethod() bool {
	return n.IncludeMethodInNames == nil || *n.IncludeMethodInNames
}

// Validate rejects unrecognized option values. Case names are parsed here so
// a bad value fails the run before any file is scanned.
func (c *Config) Validate() error {
	if c.ControllersPath == "" {
		return &ConfigError{Field: "controllersPath", Err: fmt.Errorf("must not be empty")}
	}
	if c.OutputFile == "" {
		return &ConfigError{Field: "outputFile", Err: fmt.Errorf("must not be empty")}
	}
	if _, err := naming.ParseCase(c.Naming.VariantCase); err != nil {
		return &ConfigError{Field: "naming.variantCase", Err: err}
	}
	if _, err := naming.ParseCase(c.Naming.FieldCase); err != nil {
		return &ConfigError{Field: "naming.fieldCase", Err: err}
	}
	if c.TypeScript.GenerateClient && c.TypeScript.OutputPath == "" {
		return &ConfigError{Field: "typescript.outputPath", Err: fmt.Errorf("must not be empty when generateClient is set")}
	}
	return nil
}

// VariantCase returns the parsed variant case convention. Validate must have
// accepted the config first.
func (c *Config) VariantCase() naming.Case {
	cs, _ := naming.ParseCase(c.Naming.VariantCase)
	return cs
}

// FieldCase returns the parsed field case convention.
func (c *Config) FieldCase() naming.Case {
	cs, _ := naming.ParseCase(c.Naming.FieldCase)
	return cs
}
