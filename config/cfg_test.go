package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mephrase/common"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfiguration_Defaults(t *testing.T) {
	t.Setenv("MEPHRASE_HOME", t.TempDir())

	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("Version = %d, want 1", cfg.Version)
	}
	if cfg.Phrase.TagName != "span" || len(cfg.Phrase.ClassList) != 0 {
		t.Errorf("unexpected phrase defaults %+v", cfg.Phrase)
	}
	if cfg.Phrase.ClassMatch != common.ClassMatchSubset {
		t.Errorf("ClassMatch = %s, want subset", cfg.Phrase.ClassMatch)
	}
	if cfg.Phrase.Button.Name != "phrase" || cfg.Phrase.Button.Label != "S" || cfg.Phrase.Button.AriaLabel != "Span Button" {
		t.Errorf("unexpected button defaults %+v", cfg.Phrase.Button)
	}
	if !cfg.Document.Fragment || cfg.Document.RootSelector != "body" || cfg.Document.OutputExt != ".html" {
		t.Errorf("unexpected document defaults %+v", cfg.Document)
	}
	if cfg.Logging.ConsoleLogger.Level != "normal" || cfg.Logging.FileLogger.Level != "none" {
		t.Errorf("unexpected logging defaults %+v", cfg.Logging)
	}
	if !strings.HasSuffix(cfg.Reporting.Destination, "mephrase-report.zip") {
		t.Errorf("Reporting.Destination = %q", cfg.Reporting.Destination)
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	t.Setenv("MEPHRASE_HOME", t.TempDir())

	path := writeConfig(t, `version: 1
phrase:
  tag_name: mark
  class_list: [phrase-class, extra]
  class_match: exact
document:
  fragment: false
  root_selector: "#editor"
  sanitize: true
logging:
  file:
    level: debug
    mode: append
`)
	cfg, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	if cfg.Phrase.TagName != "mark" || len(cfg.Phrase.ClassList) != 2 || cfg.Phrase.ClassMatch != common.ClassMatchExact {
		t.Errorf("phrase section was not loaded: %+v", cfg.Phrase)
	}
	if cfg.Document.Fragment || cfg.Document.RootSelector != "#editor" || !cfg.Document.Sanitize {
		t.Errorf("document section was not loaded: %+v", cfg.Document)
	}
	// not in file, comes from template
	if cfg.Document.OutputExt != ".html" || cfg.Phrase.Button.Label != "S" {
		t.Errorf("defaults were lost: %+v", cfg)
	}
	if cfg.Logging.FileLogger.Level != "debug" || cfg.Logging.FileLogger.Mode != "append" {
		t.Errorf("logging section was not loaded: %+v", cfg.Logging.FileLogger)
	}
}

func TestLoadConfiguration_Errors(t *testing.T) {
	t.Setenv("MEPHRASE_HOME", t.TempDir())

	tests := []struct {
		name    string
		content string
	}{
		{"bad_version", "version: 2\n"},
		{"unknown_field", "version: 1\nphrase:\n  color: red\n"},
		{"bad_class_match", "version: 1\nphrase:\n  class_match: some\n"},
		{"bad_yaml", "version: 1\nphrase: [\n"},
		{"empty_class", "version: 1\nphrase:\n  class_list: ['']\n"},
		{"no_root_selector", "version: 1\ndocument:\n  fragment: false\n  root_selector: ''\n"},
		{"bad_ext", "version: 1\ndocument:\n  output_ext: html\n"},
		{"bad_log_level", "version: 1\nlogging:\n  console:\n    level: loud\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfiguration(writeConfig(t, tt.content)); err == nil {
				t.Fatalf("LoadConfiguration() accepted %q", tt.content)
			}
		})
	}

	if _, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("LoadConfiguration() accepted missing file")
	}
}

func TestPrepareAndDump(t *testing.T) {
	t.Setenv("MEPHRASE_HOME", t.TempDir())

	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}
	if strings.Contains(string(data), "{{") {
		t.Fatalf("Prepare() left template actions: %s", data)
	}
	cfg, err := unmarshalConfig(data, &Config{}, true)
	if err != nil {
		t.Fatalf("prepared configuration is invalid: %v", err)
	}

	cfg.Phrase.ClassList = []string{"phrase-class"}
	cfg.Phrase.ClassMatch = common.ClassMatchExact
	out, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}
	for _, want := range []string{"class_match: exact", "- phrase-class", "tag_name: span"} {
		if !strings.Contains(string(out), want) {
			t.Errorf("Dump() has no %q:\n%s", want, out)
		}
	}

	again, err := unmarshalConfig(out, &Config{}, true)
	if err != nil {
		t.Fatalf("dumped configuration is invalid: %v", err)
	}
	if again.Phrase.ClassMatch != common.ClassMatchExact {
		t.Fatalf("ClassMatch = %s after dump", again.Phrase.ClassMatch)
	}
}
