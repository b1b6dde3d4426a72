package validation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencatalog/ingestkit/pkg/catalog"
)

func newValidator(t *testing.T) *Validator {
	t.Helper()
	registry, err := catalog.NewRegistry()
	require.NoError(t, err)
	return NewValidator(registry)
}

func TestValidateHive(t *testing.T) {
	t.Parallel()
	validator := newValidator(t)

	tests := []struct {
		name      string
		config    map[string]any
		wantCodes []Code
		wantField string
	}{
		{
			name: "minimal valid config",
			config: map[string]any{
				"hostPort": "hive:10000",
			},
		},
		{
			name: "full valid config",
			config: map[string]any{
				"type":     "Hive",
				"scheme":   "hive",
				"hostPort": "hive:10000",
				"username": "reader",
				"password": "secret",
				"connectionOptions": map[string]any{
					"http_path": "cliservice",
				},
				"supportsProfiler": true,
			},
		},
		{
			name:      "missing required hostPort",
			config:    map[string]any{"username": "reader"},
			wantCodes: []Code{CodeMissingRequiredField},
			wantField: "hostPort",
		},
		{
			name: "wrong discriminant value",
			config: map[string]any{
				"type":     "Trino",
				"hostPort": "hive:10000",
			},
			wantCodes: []Code{CodeInvalidEnumValue},
			wantField: "type",
		},
		{
			name: "unknown field rejected",
			config: map[string]any{
				"hostPort": "hive:10000",
				"hostport": "typo",
			},
			wantCodes: []Code{CodeUnknownField},
			wantField: "hostport",
		},
		{
			name: "type mismatch on string property",
			config: map[string]any{
				"hostPort": 10000,
			},
			wantCodes: []Code{CodeTypeMismatch},
			wantField: "hostPort",
		},
		{
			name: "type mismatch on object property",
			config: map[string]any{
				"hostPort":          "hive:10000",
				"connectionOptions": "not-an-object",
			},
			wantCodes: []Code{CodeTypeMismatch},
			wantField: "connectionOptions",
		},
		{
			name: "type mismatch on boolean property",
			config: map[string]any{
				"hostPort":         "hive:10000",
				"supportsProfiler": "yes",
			},
			wantCodes: []Code{CodeTypeMismatch},
			wantField: "supportsProfiler",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			validated, errs := validator.Validate("Hive", tt.config)

			if len(tt.wantCodes) == 0 {
				require.Empty(t, errs)
				require.NotNil(t, validated)
				assert.Equal(t, "Hive", validated.ConnectorType())
				return
			}

			require.Nil(t, validated)
			require.Len(t, errs, len(tt.wantCodes))
			for i, code := range tt.wantCodes {
				assert.Equal(t, code, errs[i].Code)
			}
			if tt.wantField != "" {
				assert.Equal(t, tt.wantField, errs[0].Field)
			}
		})
	}
}

func TestValidateUnknownConnectorType(t *testing.T) {
	t.Parallel()
	validator := newValidator(t)

	validated, errs := validator.Validate("Netezza", map[string]any{})
	require.Nil(t, validated)
	require.Len(t, errs, 1)
	assert.Equal(t, CodeConnectorNotFound, errs[0].Code)
	assert.Equal(t, "type", errs[0].Field)
}

func TestDiscriminantDefaulting(t *testing.T) {
	t.Parallel()
	validator := newValidator(t)

	validated, errs := validator.Validate("Hive", map[string]any{
		"hostPort": "hive:10000",
	})
	require.Empty(t, errs)

	typeValue, ok := validated.Value("type")
	require.True(t, ok)
	assert.Equal(t, "Hive", typeValue)

	schemeValue, ok := validated.Value("scheme")
	require.True(t, ok)
	assert.Equal(t, "hive", schemeValue)
}

func TestValidateCollectsAllViolations(t *testing.T) {
	t.Parallel()
	validator := newValidator(t)

	// Missing two required fields, one type mismatch, one unknown key.
	_, errs := validator.Validate("DynamoDB", map[string]any{
		"endPointURL": "https://dynamodb.local",
		"awsRegion":   42,
		"extraField":  "x",
	})
	require.Len(t, errs, 4)
	assert.True(t, errs.HasCode(CodeMissingRequiredField))
	assert.True(t, errs.HasCode(CodeTypeMismatch))
	assert.True(t, errs.HasCode(CodeUnknownField))
}

func TestValidateIsIdempotent(t *testing.T) {
	t.Parallel()
	validator := newValidator(t)

	config := map[string]any{
		"awsRegion":  7,
		"unexpected": true,
	}
	_, first := validator.Validate("DynamoDB", config)
	_, second := validator.Validate("DynamoDB", config)
	assert.Equal(t, first, second)
}

func TestSecretsAreRedacted(t *testing.T) {
	t.Parallel()
	validator := newValidator(t)

	const secret = "hunter2-super-secret"

	validated, errs := validator.Validate("DynamoDB", map[string]any{
		"endPointURL":        "https://dynamodb.local",
		"awsRegion":          "us-east-1",
		"awsAccessKeyId":     "AKIA123",
		"awsSecretAccessKey": secret,
	})
	require.Empty(t, errs)

	// JSON representation never carries the secret.
	data, err := json.Marshal(validated)
	require.NoError(t, err)
	assert.NotContains(t, string(data), secret)
	assert.Contains(t, string(data), RedactedValue)

	// String representation never carries the secret.
	assert.NotContains(t, validated.String(), secret)

	// Value returns the redacted form; SecretValue the real one.
	v, ok := validated.Value("awsSecretAccessKey")
	require.True(t, ok)
	assert.Equal(t, RedactedValue, v)

	real, ok := validated.SecretValue("awsSecretAccessKey")
	require.True(t, ok)
	assert.Equal(t, secret, real)

	// Non-secret properties are not reachable through SecretValue.
	_, ok = validated.SecretValue("awsRegion")
	assert.False(t, ok)
}

func TestSecretNeverAppearsInErrorMessages(t *testing.T) {
	t.Parallel()
	validator := newValidator(t)

	// A wrongly-typed secret still must not leak into the message.
	_, errs := validator.Validate("DynamoDB", map[string]any{
		"endPointURL":        "https://dynamodb.local",
		"awsRegion":          "us-east-1",
		"awsAccessKeyId":     "AKIA123",
		"awsSecretAccessKey": 12345,
	})
	require.Len(t, errs, 1)
	assert.Equal(t, CodeTypeMismatch, errs[0].Code)
	assert.NotContains(t, errs[0].Error(), "12345")
}

func TestErrorListPrefixed(t *testing.T) {
	t.Parallel()

	list := ErrorList{
		{Code: CodeMissingRequiredField, Field: "hostPort", Message: "missing"},
		{Code: CodeConnectorNotFound, Field: "", Message: "unknown"},
	}
	prefixed := list.Prefixed("connection")
	assert.Equal(t, "connection.hostPort", prefixed[0].Field)
	assert.Equal(t, "connection", prefixed[1].Field)

	// The original list is untouched.
	assert.Equal(t, "hostPort", list[0].Field)
}

func TestValidationErrorFormatting(t *testing.T) {
	t.Parallel()

	e := &ValidationError{Code: CodeUnknownField, Field: "extra", Message: "not declared"}
	assert.Equal(t, fmt.Sprintf("%s: extra: not declared", CodeUnknownField), e.Error())
}
