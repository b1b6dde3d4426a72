package validation

import (
	"encoding/json"
	"fmt"
	"sort"

	"go.uber.org/zap/zapcore"
)

// RedactedValue replaces secret property values in every serialized
// representation of a validated config.
const RedactedValue = "*********"

// ValidatedConfig is a connection configuration that passed schema
// validation. It knows which of its properties are secret and redacts
// them from JSON, string, and log representations; the real values are
// only reachable through SecretValue, for the layer that submits the
// pipeline definition.
type ValidatedConfig struct {
	connectorType string
	values        map[string]any
	secrets       map[string]struct{}
}

// ConnectorType returns the effective connector type discriminant.
func (c *ValidatedConfig) ConnectorType() string { return c.connectorType }

// Value returns the named property value. Secret properties are
// returned redacted.
func (c *ValidatedConfig) Value(name string) (any, bool) {
	v, ok := c.values[name]
	if !ok {
		return nil, false
	}
	if _, secret := c.secrets[name]; secret {
		return RedactedValue, true
	}
	return v, true
}

// SecretValue returns the real value of a secret property. It returns
// false for properties that are absent or not secret.
func (c *ValidatedConfig) SecretValue(name string) (string, bool) {
	if _, secret := c.secrets[name]; !secret {
		return "", false
	}
	v, ok := c.values[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Redacted returns a copy of the full configuration with every secret
// property replaced by RedactedValue.
func (c *ValidatedConfig) Redacted() map[string]any {
	out := make(map[string]any, len(c.values))
	for name, v := range c.values {
		if _, secret := c.secrets[name]; secret {
			out[name] = RedactedValue
			continue
		}
		out[name] = v
	}
	return out
}

// MarshalJSON serializes the redacted form only. The unredacted values
// never leave this type through serialization.
func (c *ValidatedConfig) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Redacted())
}

// String implements fmt.Stringer over the redacted form.
func (c *ValidatedConfig) String() string {
	redacted := c.Redacted()
	keys := make([]string, 0, len(redacted))
	for k := range redacted {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	s := c.connectorType + "{"
	for i, k := range keys {
		if i > 0 {
			s += ", "
		}
		s += fmt.Sprintf("%s:%v", k, redacted[k])
	}
	return s + "}"
}

// MarshalLogObject implements zapcore.ObjectMarshaler so a validated
// config can be logged as a structured field without leaking secrets.
func (c *ValidatedConfig) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	redacted := c.Redacted()
	keys := make([]string, 0, len(redacted))
	for k := range redacted {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := enc.AddReflected(k, redacted[k]); err != nil {
			return err
		}
	}
	return nil
}
