// Package content reads the YAML manifests that describe which business
// object definitions and tags a run should load.
package content

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"herdcl/internal/catalog"
)

// Manifest is the parsed content file.
type Manifest struct {
	Namespace string   `yaml:"namespace"`
	Objects   []Object `yaml:"objects"`
	// SourcePath is where the manifest was read from.
	SourcePath string `yaml:"-"`
}

// Object is one business object definition row.
type Object struct {
	Name        string   `yaml:"name"`
	DisplayName string   `yaml:"display_name"`
	Description string   `yaml:"description"`
	Tags        []string `yaml:"tags"`
}

// Load reads and validates the manifest at path.
func Load(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	m, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("content %s: %w", path, err)
	}
	m.SourcePath = path
	return m, nil
}

// Parse decodes and validates a manifest body.
func Parse(b []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if err := m.normalize(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) normalize() error {
	ns, err := catalog.NormalizeName(m.Namespace)
	if err != nil {
		return fmt.Errorf("namespace: %w", err)
	}
	m.Namespace = ns

	if len(m.Objects) == 0 {
		return errors.New("manifest lists no objects")
	}
	seen := make(map[string]int, len(m.Objects))
	for i := range m.Objects {
		obj := &m.Objects[i]
		name, err := catalog.NormalizeName(obj.Name)
		if err != nil {
			return fmt.Errorf("objects[%d]: %w", i, err)
		}
		upper := strings.ToUpper(name)
		if prev, ok := seen[upper]; ok {
			return fmt.Errorf("objects[%d]: duplicate name %q (first seen at objects[%d])", i, name, prev)
		}
		seen[upper] = i
		obj.Name = name
		obj.DisplayName = strings.TrimSpace(obj.DisplayName)
		obj.Description = strings.TrimSpace(obj.Description)
		obj.Tags = catalog.NormalizeTags(obj.Tags)
	}
	return nil
}

// Definitions converts the manifest rows into catalog entries.
func (m *Manifest) Definitions() []catalog.Definition {
	out := make([]catalog.Definition, 0, len(m.Objects))
	for _, obj := range m.Objects {
		out = append(out, catalog.Definition{
			Namespace:   m.Namespace,
			Name:        obj.Name,
			DisplayName: obj.DisplayName,
			Description: obj.Description,
			Tags:        append([]string(nil), obj.Tags...),
		})
	}
	return out
}
