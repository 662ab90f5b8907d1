package categorize

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type ruleFile struct {
	Categories []Rule `yaml:"categories"`
}

// LoadRules reads a YAML rule table.
func LoadRules(path string) ([]Rule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading rules: %w", err)
	}
	var rf ruleFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return nil, fmt.Errorf("parsing rules: %w", err)
	}
	if len(rf.Categories) == 0 {
		return nil, fmt.Errorf("parsing rules: %s defines no categories", path)
	}
	return rf.Categories, nil
}

// SaveRules writes a YAML rule table, creating parent directories.
func SaveRules(path string, rules []Rule) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating rules dir: %w", err)
	}
	data, err := yaml.Marshal(ruleFile{Categories: rules})
	if err != nil {
		return fmt.Errorf("marshaling rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}
	return nil
}

// Load builds an engine from the rule file at path, or from DefaultRules
// when the file does not exist.
func Load(path string) (*Engine, error) {
	if path == "" {
		return Default(), nil
	}
	rules, err := LoadRules(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	e, err := NewEngine(rules)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return e, nil
}
