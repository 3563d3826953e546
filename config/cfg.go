package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	yaml "gopkg.in/yaml.v3"

	"github.com/rupor-github/gencfg"

	"mephrase/common"
)

//go:embed config.yaml.tmpl
var ConfigTmpl []byte

type (
	ButtonConfig struct {
		Name      string   `yaml:"name" validate:"required"`
		Label     string   `yaml:"label" validate:"required"`
		AriaLabel string   `yaml:"aria_label"`
		ClassList []string `yaml:"class_list" validate:"dive,required"`
	}

	PhraseConfig struct {
		TagName    string            `yaml:"tag_name" validate:"required,alphanum|contains=-,lowercase"`
		ClassList  []string          `yaml:"class_list" validate:"dive,required"`
		ClassMatch common.ClassMatch `yaml:"class_match" validate:"gte=0"`
		Button     ButtonConfig      `yaml:"button"`
	}

	DocumentConfig struct {
		Fragment     bool   `yaml:"fragment"`
		RootSelector string `yaml:"root_selector" validate:"required_if=Fragment false"`
		Sanitize     bool   `yaml:"sanitize"`
		OutputExt    string `yaml:"output_ext" validate:"required,startswith=."`
	}

	Config struct {
		Version   int            `yaml:"version" validate:"eq=1"`
		Phrase    PhraseConfig   `yaml:"phrase"`
		Document  DocumentConfig `yaml:"document"`
		Logging   LoggingConfig  `yaml:"logging"`
		Reporting ReporterConfig `yaml:"reporting"`
	}
)

func unmarshalConfig(data []byte, cfg *Config, process bool) (*Config, error) {
	// only fields we know about are allowed, so no yaml.Unmarshal here
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration data: %w", err)
	}
	if !process {
		return cfg, nil
	}
	if err := gencfg.Sanitize(cfg); err != nil {
		return nil, err
	}
	if err := gencfg.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfiguration expands embedded template to get defaults, then puts
// values from the file at path (if any) on top and validates the result.
func LoadConfiguration(path string, options ...func(*gencfg.ProcessingOptions)) (*Config, error) {
	haveFile := len(path) > 0

	data, err := gencfg.Process(ConfigTmpl, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	cfg, err := unmarshalConfig(data, &Config{}, !haveFile)
	if err != nil {
		return nil, fmt.Errorf("failed to process configuration template: %w", err)
	}
	if !haveFile {
		return cfg, nil
	}

	if data, err = os.ReadFile(path); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if cfg, err = unmarshalConfig(data, cfg, true); err != nil {
		return nil, fmt.Errorf("failed to process configuration file: %w", err)
	}
	return cfg, nil
}

// Prepare returns expanded configuration template.
func Prepare() ([]byte, error) {
	return gencfg.Process(ConfigTmpl)
}

func Dump(cfg *Config) ([]byte, error) {
	data, err := yaml.Marshal(*cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
	}
	return data, nil
}
