// Package catalog provides the connector schema catalog: it loads the
// JSON Schema documents describing connection configurations and indexes
// them by connector type for validation and form generation.
package catalog

import (
	"encoding/json"
	"fmt"
	"sort"
)

// PropertyKind is the semantic kind of a connector schema property.
type PropertyKind string

// Property kinds understood by the validator.
const (
	KindString   PropertyKind = "string"
	KindPassword PropertyKind = "password"
	KindInteger  PropertyKind = "integer"
	KindBoolean  PropertyKind = "boolean"
	KindObject   PropertyKind = "object"
	KindEnum     PropertyKind = "enum"
)

// Property is one declared property of a connector schema.
type Property struct {
	// Name is the property key as it appears in a connection config.
	Name string

	// Kind is the semantic kind derived from the schema document's
	// type/format/enum keywords.
	Kind PropertyKind

	// Description is the human-readable description from the document.
	Description string

	// Enum holds the allowed values when Kind is KindEnum.
	Enum []string

	// Default is the declared default value, if any.
	Default any

	// Secret reports whether the property carries the password format
	// and must be redacted from any serialized representation.
	Secret bool
}

// IsDiscriminant reports whether the property is a fixed single-value
// enum with a matching default, used to tag which connector variant a
// config belongs to (the type and scheme fields).
func (p *Property) IsDiscriminant() bool {
	if p.Kind != KindEnum || len(p.Enum) != 1 {
		return false
	}
	def, ok := p.Default.(string)
	return ok && def == p.Enum[0]
}

// ConnectorSchema is the generic, declarative form of one connector
// connection schema document. One instance is built per document; the
// per-connector required sets and enum discriminants are preserved while
// the structure itself is shared across all connectors.
type ConnectorSchema struct {
	connectorType        string
	title                string
	description          string
	properties           map[string]*Property
	required             map[string]struct{}
	additionalProperties bool
}

// Type returns the connector type discriminant value (e.g. "Hive").
func (s *ConnectorSchema) Type() string { return s.connectorType }

// Title returns the document title (e.g. "HiveConnection").
func (s *ConnectorSchema) Title() string { return s.title }

// Description returns the document description.
func (s *ConnectorSchema) Description() string { return s.description }

// Property returns the declared property with the given name.
func (s *ConnectorSchema) Property(name string) (*Property, bool) {
	p, ok := s.properties[name]
	return p, ok
}

// Properties returns the declared properties in a stable order:
// discriminants first, then required properties, then the rest, each
// group sorted by name. A form layer can render fields in this order.
func (s *ConnectorSchema) Properties() []*Property {
	props := make([]*Property, 0, len(s.properties))
	for _, p := range s.properties {
		props = append(props, p)
	}
	rank := func(p *Property) int {
		switch {
		case p.IsDiscriminant():
			return 0
		case s.IsRequired(p.Name):
			return 1
		default:
			return 2
		}
	}
	sort.Slice(props, func(i, j int) bool {
		ri, rj := rank(props[i]), rank(props[j])
		if ri != rj {
			return ri < rj
		}
		return props[i].Name < props[j].Name
	})
	return props
}

// Required returns the required property names, sorted.
func (s *ConnectorSchema) Required() []string {
	names := make([]string, 0, len(s.required))
	for name := range s.required {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRequired reports whether the named property is required.
func (s *ConnectorSchema) IsRequired(name string) bool {
	_, ok := s.required[name]
	return ok
}

// AdditionalProperties reports whether keys outside the declared
// property set are accepted.
func (s *ConnectorSchema) AdditionalProperties() bool {
	return s.additionalProperties
}

// rawDocument mirrors the subset of JSON Schema draft-07 keywords the
// connector documents use.
type rawDocument struct {
	ID                   string                 `json:"$id"`
	Title                string                 `json:"title"`
	Description          string                 `json:"description"`
	Type                 string                 `json:"type"`
	Properties           map[string]rawProperty `json:"properties"`
	Required             []string               `json:"required"`
	AdditionalProperties *bool                  `json:"additionalProperties"`
}

type rawProperty struct {
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Format      string   `json:"format"`
	Enum        []string `json:"enum"`
	Default     any      `json:"default"`
}

// parseConnectorSchema builds a ConnectorSchema from a draft-07 document.
// The document must be an object schema whose "type" property is a fixed
// single-value enum naming the connector.
func parseConnectorSchema(name string, data []byte) (*ConnectorSchema, error) {
	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema document %s: %w", name, err)
	}

	if doc.Type != "object" {
		return nil, fmt.Errorf("schema document %s: root type must be object, got %q", name, doc.Type)
	}
	if len(doc.Properties) == 0 {
		return nil, fmt.Errorf("schema document %s: no properties declared", name)
	}

	schema := &ConnectorSchema{
		title:                doc.Title,
		description:          doc.Description,
		properties:           make(map[string]*Property, len(doc.Properties)),
		required:             make(map[string]struct{}, len(doc.Required)),
		additionalProperties: doc.AdditionalProperties == nil || *doc.AdditionalProperties,
	}

	for propName, raw := range doc.Properties {
		prop, err := parseProperty(propName, raw)
		if err != nil {
			return nil, fmt.Errorf("schema document %s: %w", name, err)
		}
		schema.properties[propName] = prop
	}

	for _, req := range doc.Required {
		if _, ok := schema.properties[req]; !ok {
			return nil, fmt.Errorf("schema document %s: required property %q is not declared", name, req)
		}
		schema.required[req] = struct{}{}
	}

	typeProp, ok := schema.properties["type"]
	if !ok || !typeProp.IsDiscriminant() {
		return nil, fmt.Errorf("schema document %s: missing single-value 'type' enum discriminant", name)
	}
	schema.connectorType = typeProp.Enum[0]

	return schema, nil
}

func parseProperty(name string, raw rawProperty) (*Property, error) {
	prop := &Property{
		Name:        name,
		Description: raw.Description,
		Default:     raw.Default,
	}

	switch {
	case len(raw.Enum) > 0:
		if raw.Type != "string" {
			return nil, fmt.Errorf("property %q: enum is only supported on string properties", name)
		}
		prop.Kind = KindEnum
		prop.Enum = raw.Enum
	case raw.Type == "string" && raw.Format == "password":
		prop.Kind = KindPassword
		prop.Secret = true
	case raw.Type == "string":
		prop.Kind = KindString
	case raw.Type == "integer":
		prop.Kind = KindInteger
	case raw.Type == "boolean":
		prop.Kind = KindBoolean
	case raw.Type == "object":
		prop.Kind = KindObject
	default:
		return nil, fmt.Errorf("property %q: unsupported type %q", name, raw.Type)
	}

	return prop, nil
}
