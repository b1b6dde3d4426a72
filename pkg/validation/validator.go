package validation

import (
	"fmt"
	"math"
	"sort"

	"github.com/opencatalog/ingestkit/pkg/catalog"
)

// Validator validates raw connection configs against the schema catalog.
type Validator struct {
	registry *catalog.Registry
}

// NewValidator creates a Validator backed by the given registry.
func NewValidator(registry *catalog.Registry) *Validator {
	return &Validator{registry: registry}
}

// Validate resolves the schema for the given connector type and checks
// the raw config against it. On success the returned ErrorList is nil;
// on failure the config is nil and the list contains every violation.
func (v *Validator) Validate(connectorType string, raw map[string]any) (*ValidatedConfig, ErrorList) {
	schema, err := v.registry.Lookup(connectorType)
	if err != nil {
		return nil, ErrorList{{
			Code:    CodeConnectorNotFound,
			Field:   "type",
			Message: fmt.Sprintf("no schema registered for connector type %q", connectorType),
		}}
	}
	return ValidateAgainst(schema, raw)
}

// ValidateAgainst checks a raw config against one connector schema.
// All violations are collected rather than short-circuited, and the
// resulting list order is deterministic: declared properties in schema
// order, then unknown keys in lexical order.
func ValidateAgainst(schema *catalog.ConnectorSchema, raw map[string]any) (*ValidatedConfig, ErrorList) {
	var errs ErrorList

	effective := make(map[string]any, len(raw))
	secrets := make(map[string]struct{})
	for k, v := range raw {
		effective[k] = v
	}

	for _, prop := range schema.Properties() {
		value, present := raw[prop.Name]
		if !present {
			if prop.IsDiscriminant() {
				// Absent discriminants resolve to their fixed value.
				effective[prop.Name] = prop.Default
				continue
			}
			if schema.IsRequired(prop.Name) {
				errs = append(errs, &ValidationError{
					Code:    CodeMissingRequiredField,
					Field:   prop.Name,
					Message: fmt.Sprintf("required property %q is missing", prop.Name),
				})
			}
			continue
		}

		if err := checkProperty(prop, value); err != nil {
			errs = append(errs, err)
			continue
		}
		if prop.Secret {
			secrets[prop.Name] = struct{}{}
		}
	}

	if !schema.AdditionalProperties() {
		for _, key := range sortedKeys(raw) {
			if _, declared := schema.Property(key); !declared {
				errs = append(errs, &ValidationError{
					Code:    CodeUnknownField,
					Field:   key,
					Message: fmt.Sprintf("property %q is not declared by the %s schema", key, schema.Title()),
				})
			}
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}

	return &ValidatedConfig{
		connectorType: schema.Type(),
		values:        effective,
		secrets:       secrets,
	}, nil
}

// checkProperty validates one present value against its declared kind.
// Messages for secret properties must never include the offered value.
func checkProperty(prop *catalog.Property, value any) *ValidationError {
	switch prop.Kind {
	case catalog.KindEnum:
		s, ok := value.(string)
		if !ok {
			return typeMismatch(prop, "string", value)
		}
		for _, allowed := range prop.Enum {
			if s == allowed {
				return nil
			}
		}
		return &ValidationError{
			Code:    CodeInvalidEnumValue,
			Field:   prop.Name,
			Message: fmt.Sprintf("value %q is not one of %v", s, prop.Enum),
		}

	case catalog.KindString, catalog.KindPassword:
		if _, ok := value.(string); !ok {
			return typeMismatch(prop, "string", value)
		}

	case catalog.KindInteger:
		if !isIntegral(value) {
			return typeMismatch(prop, "integer", value)
		}

	case catalog.KindBoolean:
		if _, ok := value.(bool); !ok {
			return typeMismatch(prop, "boolean", value)
		}

	case catalog.KindObject:
		if _, ok := value.(map[string]any); !ok {
			return typeMismatch(prop, "object", value)
		}
	}
	return nil
}

func typeMismatch(prop *catalog.Property, want string, got any) *ValidationError {
	return &ValidationError{
		Code:    CodeTypeMismatch,
		Field:   prop.Name,
		Message: fmt.Sprintf("expected %s, got %s", want, typeName(got)),
	}
}

// typeName names the offered value's JSON type. Values themselves are
// deliberately left out of messages so secrets cannot leak through them.
func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case float64, int, int64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// isIntegral accepts the integer representations a JSON or YAML decode
// can produce.
func isIntegral(v any) bool {
	switch n := v.(type) {
	case int, int64:
		return true
	case float64:
		return n == math.Trunc(n)
	default:
		return false
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
