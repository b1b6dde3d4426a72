package catalog

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	require.NoError(t, err)

	types := registry.Types()
	assert.Contains(t, types, "Hive")
	assert.Contains(t, types, "Trino")
	assert.Contains(t, types, "DynamoDB")
	assert.Contains(t, types, "Snowflake")
	assert.Contains(t, types, "Kafka")
}

func TestLookupRequiredSets(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	require.NoError(t, err)

	tests := []struct {
		connectorType string
		required      []string
	}{
		{
			connectorType: "Hive",
			required:      []string{"hostPort"},
		},
		{
			connectorType: "Trino",
			required:      []string{"hostPort", "username"},
		},
		{
			connectorType: "DynamoDB",
			required:      []string{"awsAccessKeyId", "awsRegion", "awsSecretAccessKey", "endPointURL"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.connectorType, func(t *testing.T) {
			t.Parallel()
			schema, err := registry.Lookup(tt.connectorType)
			require.NoError(t, err)
			assert.Equal(t, tt.required, schema.Required())
			assert.False(t, schema.AdditionalProperties())
		})
	}
}

func TestLookupUnknownType(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	require.NoError(t, err)

	_, err = registry.Lookup("Netezza")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrConnectorNotFound)
}

func TestDiscriminantDetection(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	require.NoError(t, err)

	schema, err := registry.Lookup("Hive")
	require.NoError(t, err)

	typeProp, ok := schema.Property("type")
	require.True(t, ok)
	assert.True(t, typeProp.IsDiscriminant())
	assert.Equal(t, []string{"Hive"}, typeProp.Enum)

	schemeProp, ok := schema.Property("scheme")
	require.True(t, ok)
	assert.True(t, schemeProp.IsDiscriminant())

	hostProp, ok := schema.Property("hostPort")
	require.True(t, ok)
	assert.False(t, hostProp.IsDiscriminant())
	assert.Equal(t, KindString, hostProp.Kind)

	passwordProp, ok := schema.Property("password")
	require.True(t, ok)
	assert.Equal(t, KindPassword, passwordProp.Kind)
	assert.True(t, passwordProp.Secret)
}

func TestPropertiesOrder(t *testing.T) {
	t.Parallel()

	registry, err := NewRegistry()
	require.NoError(t, err)

	schema, err := registry.Lookup("Trino")
	require.NoError(t, err)

	props := schema.Properties()
	require.NotEmpty(t, props)

	// Discriminants come first, then required properties, then the rest.
	assert.True(t, props[0].IsDiscriminant())
	sawOptional := false
	for _, p := range props {
		if p.IsDiscriminant() {
			assert.False(t, sawOptional, "discriminant %s after optional properties", p.Name)
			continue
		}
		if schema.IsRequired(p.Name) {
			assert.False(t, sawOptional, "required %s after optional properties", p.Name)
			continue
		}
		sawOptional = true
	}
}

func TestNewRegistryFromFSRejectsBadDocuments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "not JSON",
			content: `{not json`,
		},
		{
			name: "missing type discriminant",
			content: `{
				"$schema": "http://json-schema.org/draft-07/schema#",
				"title": "BrokenConnection",
				"type": "object",
				"properties": {"hostPort": {"type": "string"}},
				"required": ["hostPort"]
			}`,
		},
		{
			name: "required references undeclared property",
			content: `{
				"$schema": "http://json-schema.org/draft-07/schema#",
				"title": "BrokenConnection",
				"type": "object",
				"properties": {
					"type": {"type": "string", "enum": ["Broken"], "default": "Broken"}
				},
				"required": ["hostPort"]
			}`,
		},
		{
			name: "root is not an object schema",
			content: `{
				"$schema": "http://json-schema.org/draft-07/schema#",
				"title": "BrokenConnection",
				"type": "string"
			}`,
		},
		{
			name: "invalid draft-07 keyword value",
			content: `{
				"$schema": "http://json-schema.org/draft-07/schema#",
				"title": "BrokenConnection",
				"type": "object",
				"properties": {"hostPort": {"type": 12}}
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fsys := fstest.MapFS{
				"brokenConnection.json": &fstest.MapFile{Data: []byte(tt.content)},
			}
			_, err := NewRegistryFromFS(fsys)
			assert.Error(t, err)
		})
	}
}

func TestNewRegistryFromFSRejectsDuplicateTypes(t *testing.T) {
	t.Parallel()

	doc := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title": "DupConnection",
		"type": "object",
		"properties": {
			"type": {"type": "string", "enum": ["Dup"], "default": "Dup"}
		}
	}`
	fsys := fstest.MapFS{
		"a.json": &fstest.MapFile{Data: []byte(doc)},
		"b.json": &fstest.MapFile{Data: []byte(doc)},
	}
	_, err := NewRegistryFromFS(fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate schema")
}
