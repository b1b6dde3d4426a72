package pipeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/opencatalog/ingestkit/pkg/catalog"
	"github.com/opencatalog/ingestkit/pkg/filtering"
	"github.com/opencatalog/ingestkit/pkg/schedule"
	"github.com/opencatalog/ingestkit/pkg/validation"
)

// BuildRequest carries the raw wizard input for one pipeline.
type BuildRequest struct {
	// Name is the human-readable pipeline name.
	Name string

	// ConnectorType selects the connection schema.
	ConnectorType string

	// ConnectionConfig is the raw connection configuration.
	ConnectionConfig map[string]any

	// FilterPatterns are the per-asset-kind include/exclude globs.
	FilterPatterns map[filtering.AssetKind]filtering.FilterPattern

	// Flags are the ingestion switches.
	Flags Flags

	// ScheduleExpression is the cron recurrence expression.
	ScheduleExpression string

	// ScheduleStart and ScheduleEnd optionally bound the schedule.
	ScheduleStart *time.Time
	ScheduleEnd   *time.Time
}

// Builder assembles pipeline definitions, validating every part.
type Builder struct {
	validator *validation.Validator
}

// NewBuilder creates a Builder backed by the given schema registry.
func NewBuilder(registry *catalog.Registry) *Builder {
	return &Builder{validator: validation.NewValidator(registry)}
}

// Build validates every part of the request and assembles a definition.
// Errors from all sub-validations are aggregated into one combined,
// field-addressable list; no partial definition is returned when any
// error exists.
func (b *Builder) Build(req BuildRequest) (*Definition, validation.ErrorList) {
	var errs validation.ErrorList

	name, nameErr := ValidateName(req.Name)
	if nameErr != nil {
		errs = append(errs, &validation.ValidationError{
			Code:    CodeInvalidName,
			Field:   "name",
			Message: nameErr.Error(),
		})
	}

	connection, connErrs := b.validator.Validate(req.ConnectorType, req.ConnectionConfig)
	errs = append(errs, connErrs.Prefixed("connection")...)

	matchers := make(map[filtering.AssetKind]*filtering.Matcher, len(req.FilterPatterns))
	for _, kind := range sortedKinds(req.FilterPatterns) {
		if !filtering.IsKnownAssetKind(kind) {
			errs = append(errs, &validation.ValidationError{
				Code:    validation.CodeUnknownField,
				Field:   fmt.Sprintf("filterPatterns.%s", kind),
				Message: fmt.Sprintf("unknown asset kind %q", kind),
			})
			continue
		}
		matcher, patternErrs := filtering.Compile(req.FilterPatterns[kind])
		if len(patternErrs) > 0 {
			errs = append(errs, patternErrs.Prefixed(fmt.Sprintf("filterPatterns.%s", kind))...)
			continue
		}
		matchers[kind] = matcher
	}

	interval, scheduleErrs := schedule.Parse(req.ScheduleExpression, req.ScheduleStart, req.ScheduleEnd)
	errs = append(errs, scheduleErrs.Prefixed("scheduleInterval")...)

	if len(errs) > 0 {
		return nil, errs
	}

	return &Definition{
		ID:             uuid.NewString(),
		Name:           name,
		ConnectorType:  connection.ConnectorType(),
		Connection:     connection,
		FilterPatterns: req.FilterPatterns,
		Flags:          req.Flags,
		Schedule:       *interval,
		matchers:       matchers,
	}, nil
}

func sortedKinds(patterns map[filtering.AssetKind]filtering.FilterPattern) []filtering.AssetKind {
	kinds := make([]filtering.AssetKind, 0, len(patterns))
	for kind := range patterns {
		kinds = append(kinds, kind)
	}
	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })
	return kinds
}
