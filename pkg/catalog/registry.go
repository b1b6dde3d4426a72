package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/opencatalog/ingestkit/schemas"
)

// ErrConnectorNotFound is returned by Lookup when no schema is
// registered for the requested connector type.
var ErrConnectorNotFound = errors.New("connector type not found")

// Registry indexes connector schemas by their type discriminant.
// It is loaded once at startup and immutable afterwards, so lookups
// from concurrent validations need no coordination.
type Registry struct {
	schemas map[string]*ConnectorSchema
}

// NewRegistry loads the embedded schema catalog.
func NewRegistry() (*Registry, error) {
	return NewRegistryFromFS(schemas.FS)
}

// NewRegistryFromFS loads every *.json schema document in the given
// filesystem. Each document is compiled against its declared JSON Schema
// draft before being parsed, so malformed documents are rejected at load
// time rather than surfacing as bogus validation results later.
func NewRegistryFromFS(fsys fs.FS) (*Registry, error) {
	matches, err := fs.Glob(fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to list schema documents: %w", err)
	}
	if len(matches) == 0 {
		return nil, errors.New("no schema documents found")
	}

	registry := &Registry{
		schemas: make(map[string]*ConnectorSchema, len(matches)),
	}

	compiler := jsonschema.NewCompiler()
	for _, path := range matches {
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read schema document %s: %w", path, err)
		}

		// Compile first: this checks the document is itself a valid
		// schema per its declared draft.
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("schema document %s is not valid JSON: %w", path, err)
		}
		if err := compiler.AddResource(path, doc); err != nil {
			return nil, fmt.Errorf("failed to register schema document %s: %w", path, err)
		}
		if _, err := compiler.Compile(path); err != nil {
			return nil, fmt.Errorf("schema document %s is not a valid JSON Schema: %w", path, err)
		}

		schema, err := parseConnectorSchema(path, data)
		if err != nil {
			return nil, err
		}
		if _, exists := registry.schemas[schema.Type()]; exists {
			return nil, fmt.Errorf("duplicate schema for connector type %q (document %s)", schema.Type(), path)
		}
		registry.schemas[schema.Type()] = schema
	}

	return registry, nil
}

// Lookup returns the schema for the given connector type. The miss is
// surfaced as ErrConnectorNotFound and never silently defaulted.
func (r *Registry) Lookup(connectorType string) (*ConnectorSchema, error) {
	schema, ok := r.schemas[connectorType]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrConnectorNotFound, connectorType)
	}
	return schema, nil
}

// Types returns the registered connector types, sorted.
func (r *Registry) Types() []string {
	types := make([]string, 0, len(r.schemas))
	for t := range r.schemas {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
