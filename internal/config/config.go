// Package config loads ingestion spec files for the ingestctl commands.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opencatalog/ingestkit/pkg/filtering"
	"github.com/opencatalog/ingestkit/pkg/pipeline"
	"github.com/opencatalog/ingestkit/pkg/schedule"
	"github.com/opencatalog/ingestkit/pkg/validation"
)

// SpecLoader defines the interface for loading ingestion specs
type SpecLoader interface {
	LoadSpec(path string) (*IngestionSpec, error)
}

// IngestionSpec is the on-disk form of a pipeline build request.
type IngestionSpec struct {
	Name             string                             `yaml:"name"`
	Connector        ConnectorSpec                      `yaml:"connector"`
	FilterPatterns   map[string]filtering.FilterPattern `yaml:"filterPatterns,omitempty"`
	Flags            pipeline.Flags                     `yaml:"flags,omitempty"`
	ScheduleInterval ScheduleSpec                       `yaml:"scheduleInterval"`
}

// ConnectorSpec selects the connector schema and carries the raw
// connection configuration.
type ConnectorSpec struct {
	Type   string         `yaml:"type"`
	Config map[string]any `yaml:"config"`
}

// ScheduleSpec is the string form of a schedule interval.
type ScheduleSpec struct {
	Expression string `yaml:"expression"`
	StartDate  string `yaml:"startDate,omitempty"`
	EndDate    string `yaml:"endDate,omitempty"`
}

// Validate checks the spec's structure. Field-level validation happens
// in the builder; this only rejects specs that cannot form a request.
func (s *IngestionSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Connector.Type == "" {
		return fmt.Errorf("connector.type is required")
	}
	if s.ScheduleInterval.Expression == "" {
		return fmt.Errorf("scheduleInterval.expression is required")
	}
	return nil
}

// ToBuildRequest converts the spec into a builder request. Date parse
// failures are returned as schedule violations so the caller sees them
// alongside the builder's own error list.
func (s *IngestionSpec) ToBuildRequest() (pipeline.BuildRequest, validation.ErrorList) {
	var errs validation.ErrorList

	start, err := schedule.ParseDate(s.ScheduleInterval.StartDate)
	if err != nil {
		errs = append(errs, &validation.ValidationError{
			Code:    validation.CodeInvalidSchedule,
			Field:   "scheduleInterval.startDate",
			Message: err.Error(),
		})
	}
	end, err := schedule.ParseDate(s.ScheduleInterval.EndDate)
	if err != nil {
		errs = append(errs, &validation.ValidationError{
			Code:    validation.CodeInvalidSchedule,
			Field:   "scheduleInterval.endDate",
			Message: err.Error(),
		})
	}

	patterns := make(map[filtering.AssetKind]filtering.FilterPattern, len(s.FilterPatterns))
	for kind, pattern := range s.FilterPatterns {
		patterns[filtering.AssetKind(kind)] = pattern
	}

	req := pipeline.BuildRequest{
		Name:               s.Name,
		ConnectorType:      s.Connector.Type,
		ConnectionConfig:   s.Connector.Config,
		FilterPatterns:     patterns,
		Flags:              s.Flags,
		ScheduleExpression: s.ScheduleInterval.Expression,
		ScheduleStart:      start,
		ScheduleEnd:        end,
	}
	return req, errs
}

// specLoader implements the SpecLoader interface
type specLoader struct{}

// NewSpecLoader creates a new SpecLoader instance
func NewSpecLoader() SpecLoader {
	return &specLoader{}
}

// LoadSpec loads and parses an ingestion spec from a YAML file
func (*specLoader) LoadSpec(path string) (*IngestionSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	var spec IngestionSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("failed to parse YAML spec: %w", err)
	}

	return &spec, nil
}
