package structdown

import (
	"fmt"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// manifestDoc is the wire form of a registry. The same document shape decodes
// from JSON and YAML.
type manifestDoc struct {
	Types []manifestType `json:"types" yaml:"types"`
	Roots []string       `json:"roots,omitempty" yaml:"roots,omitempty"`
}

type manifestType struct {
	Name              string          `json:"name" yaml:"name"`
	ValueType         bool            `json:"valueType,omitempty" yaml:"valueType,omitempty"`
	TitleField        string          `json:"titleField,omitempty" yaml:"titleField,omitempty"`
	TitleContextField string          `json:"titleContextField,omitempty" yaml:"titleContextField,omitempty"`
	Fields            []manifestField `json:"fields" yaml:"fields"`
}

type manifestField struct {
	Name           string `json:"name" yaml:"name"`
	Type           string `json:"type" yaml:"type"`
	Display        string `json:"display,omitempty" yaml:"display,omitempty"`
	Exclude        bool   `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	ExcludeInTable bool   `json:"excludeInTable,omitempty" yaml:"excludeInTable,omitempty"`
	Section        bool   `json:"section,omitempty" yaml:"section,omitempty"`
	SectionName    string `json:"sectionName,omitempty" yaml:"sectionName,omitempty"`
	SectionDepth   int    `json:"sectionDepth,omitempty" yaml:"sectionDepth,omitempty"`
}

// RegistryFromJSON decodes a registry manifest from JSON.
func RegistryFromJSON(data []byte) (*Registry, error) {
	var doc manifestDoc
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return doc.registry()
}

// RegistryFromYAML decodes a registry manifest from YAML.
func RegistryFromYAML(data []byte) (*Registry, error) {
	var doc manifestDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	return doc.registry()
}

func (doc manifestDoc) registry() (*Registry, error) {
	reg := NewRegistry()
	for _, t := range doc.Types {
		td := &TypeDescriptor{
			Name:              t.Name,
			ValueType:         t.ValueType,
			TitleField:        t.TitleField,
			TitleContextField: t.TitleContextField,
		}
		for _, f := range t.Fields {
			ref, err := ParseTypeRef(f.Type)
			if err != nil {
				return nil, fmt.Errorf("manifest: type %s field %s: %w", t.Name, f.Name, err)
			}
			td.Fields = append(td.Fields, FieldDescriptor{
				Name:           f.Name,
				Display:        f.Display,
				Type:           ref,
				Exclude:        f.Exclude,
				ExcludeInTable: f.ExcludeInTable,
				Section:        f.Section,
				SectionName:    f.SectionName,
				SectionDepth:   f.SectionDepth,
			})
		}
		if err := reg.Add(td); err != nil {
			return nil, err
		}
	}
	for _, root := range doc.Roots {
		if err := reg.AddRoot(root); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
