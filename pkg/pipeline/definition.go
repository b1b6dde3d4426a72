// Package pipeline assembles ingestion pipeline definitions from a
// connector type, connection configuration, filter patterns, flags, and
// a schedule interval. A definition is only ever produced when every
// part validated; it is handed to an external orchestration service and
// not persisted here.
package pipeline

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/opencatalog/ingestkit/pkg/filtering"
	"github.com/opencatalog/ingestkit/pkg/schedule"
	"github.com/opencatalog/ingestkit/pkg/validation"
)

// CodeInvalidName tags violations of the pipeline display-name rules.
const CodeInvalidName = validation.Code("invalid_name")

const (
	minNameLength = 1
	maxNameLength = 256
)

// Name pattern: must start and end with alphanumeric, may contain
// spaces, dots, underscores, and hyphens in the middle.
var namePattern = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9 ._-]*[a-zA-Z0-9])?$`)

// ValidateName validates a pipeline display name. Returns the trimmed
// name and an error describing the first violated rule.
func ValidateName(name string) (string, error) {
	name = strings.TrimSpace(name)

	if len(name) < minNameLength {
		return "", fmt.Errorf("pipeline name cannot be empty")
	}
	if len(name) > maxNameLength {
		return "", fmt.Errorf("pipeline name exceeds maximum length of %d characters", maxNameLength)
	}
	if !namePattern.MatchString(name) {
		return "", fmt.Errorf(
			"pipeline name %q is invalid. Names must start and end with alphanumeric characters, "+
				"and may contain spaces, dots, underscores, and hyphens in the middle",
			name,
		)
	}
	return name, nil
}

// Flags are the boolean switches of an ingestion run.
type Flags struct {
	// IncludeViews extends table metadata extraction to views.
	IncludeViews bool `json:"includeViews" yaml:"includeViews"`

	// EnableDataProfiler runs the data profiler during ingestion.
	EnableDataProfiler bool `json:"enableDataProfiler" yaml:"enableDataProfiler"`

	// IngestSampleData captures sample rows for profiled tables.
	IngestSampleData bool `json:"ingestSampleData" yaml:"ingestSampleData"`
}

// Definition is a fully validated, submittable ingestion pipeline.
type Definition struct {
	// ID uniquely identifies the definition.
	ID string `json:"id"`

	// Name is the validated human-readable pipeline name.
	Name string `json:"name"`

	// ConnectorType is the schema discriminant the connection validated
	// against.
	ConnectorType string `json:"connectorType"`

	// Connection is the validated connection configuration. Its JSON
	// form is redacted; secrets are only reachable through
	// Connection.SecretValue.
	Connection *validation.ValidatedConfig `json:"connection"`

	// FilterPatterns scope the assets the run processes, per kind.
	FilterPatterns map[filtering.AssetKind]filtering.FilterPattern `json:"filterPatterns,omitempty"`

	// Flags are the ingestion switches.
	Flags Flags `json:"flags"`

	// Schedule is the validated recurrence interval.
	Schedule schedule.Interval `json:"scheduleInterval"`

	matchers map[filtering.AssetKind]*filtering.Matcher
}

// Matcher returns the compiled matcher for an asset kind. Kinds without
// a configured pattern match everything.
func (d *Definition) Matcher(kind filtering.AssetKind) *filtering.Matcher {
	if m, ok := d.matchers[kind]; ok {
		return m
	}
	return filtering.MatchAll
}
