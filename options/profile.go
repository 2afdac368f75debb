package options

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"object-mapper/node"
	"object-mapper/primitive"
)

// Profile is the YAML representation of mapper settings.
type Profile struct {
	Version     string   `yaml:"version"`
	Categories  []string `yaml:"categories,omitempty"`
	TimeLayouts []string `yaml:"time_layouts,omitempty"`
	Tag         string   `yaml:"tag,omitempty"`
	Concurrency int      `yaml:"concurrency,omitempty"`
}

// Default returns the profile equivalent to a mapper built without options.
func Default() *Profile {
	return &Profile{
		Version:     "1",
		Categories:  []string{"all"},
		TimeLayouts: append([]string(nil), primitive.DefaultTimeLayouts...),
		Tag:         node.DefaultTagKey,
		Concurrency: 1,
	}
}

// LoadFile loads and parses a YAML profile from the given path.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	return Parse(data)
}

// Parse parses YAML data into a Profile and validates it.
func Parse(data []byte) (*Profile, error) {
	var p Profile

	err := yaml.Unmarshal(data, &p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile YAML: %w", err)
	}

	applyDefaults(&p)

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(p *Profile) {
	if p.Version == "" {
		p.Version = "1"
	}

	if len(p.Categories) == 0 {
		p.Categories = []string{"all"}
	}

	if p.Tag == "" {
		p.Tag = node.DefaultTagKey
	}

	if p.Concurrency <= 0 {
		p.Concurrency = 1
	}
}

// Validate checks the version and the category names.
func (p *Profile) Validate() error {
	if p.Version != "1" {
		return fmt.Errorf("unsupported profile version %q", p.Version)
	}

	if _, err := p.Allowed(); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	return nil
}

// Allowed combines the profile categories.
func (p *Profile) Allowed() (primitive.CategoryEnum, error) {
	return primitive.ParseCategories(p.Categories...)
}

// Marshal serializes a Profile to YAML.
func Marshal(p *Profile) ([]byte, error) {
	return yaml.Marshal(p)
}

// WriteFile writes a Profile to the given path.
func WriteFile(p *Profile, path string) error {
	data, err := Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write profile %s: %w", path, err)
	}

	return nil
}
