// Package schedule models the recurrence interval of an ingestion
// pipeline. The interval is a value object consumed by an external
// scheduler; nothing here executes a schedule.
package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/opencatalog/ingestkit/pkg/validation"
)

// Cron grammars accepted for recurrence expressions: the standard
// five-field form and the six-field form with a leading seconds field.
// Descriptors like @daily are not part of the restricted grammar.
var (
	fiveFieldParser = cron.NewParser(
		cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)
	sixFieldParser = cron.NewParser(
		cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
	)
)

// Interval is a validated recurrence expression with optional start and
// end bounds.
type Interval struct {
	// Expression is the cron recurrence expression.
	Expression string `json:"expression" yaml:"expression"`

	// StartDate is the earliest time the schedule applies, if bounded.
	StartDate *time.Time `json:"startDate,omitempty" yaml:"startDate,omitempty"`

	// EndDate is the latest time the schedule applies, if bounded.
	EndDate *time.Time `json:"endDate,omitempty" yaml:"endDate,omitempty"`
}

// Parse validates the recurrence expression and the start/end bounds.
// All violations are collected; on success the error list is nil.
func Parse(expression string, start, end *time.Time) (*Interval, validation.ErrorList) {
	var errs validation.ErrorList

	if err := checkExpression(expression); err != nil {
		errs = append(errs, &validation.ValidationError{
			Code:    validation.CodeInvalidSchedule,
			Field:   "expression",
			Message: err.Error(),
		})
	}

	if start != nil && end != nil && start.After(*end) {
		errs = append(errs, &validation.ValidationError{
			Code:  validation.CodeInvalidSchedule,
			Field: "startDate",
			Message: fmt.Sprintf("start date %s is after end date %s",
				start.Format(time.RFC3339), end.Format(time.RFC3339)),
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return &Interval{Expression: expression, StartDate: start, EndDate: end}, nil
}

func checkExpression(expression string) error {
	trimmed := strings.TrimSpace(expression)
	if trimmed == "" {
		return fmt.Errorf("recurrence expression is empty")
	}

	parser := fiveFieldParser
	if len(strings.Fields(trimmed)) == 6 {
		parser = sixFieldParser
	}
	if _, err := parser.Parse(trimmed); err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", trimmed, err)
	}
	return nil
}

// Date layouts accepted for interval bounds supplied as strings.
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

// ParseDate parses an interval bound from its string form. An empty
// string means the bound is absent.
func ParseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q: expected RFC3339 or YYYY-MM-DD", value)
}

// ParseStrings is Parse over string-form bounds, for callers handing in
// raw user input.
func ParseStrings(expression, start, end string) (*Interval, validation.ErrorList) {
	var errs validation.ErrorList

	startDate, err := ParseDate(start)
	if err != nil {
		errs = append(errs, &validation.ValidationError{
			Code:    validation.CodeInvalidSchedule,
			Field:   "startDate",
			Message: err.Error(),
		})
	}
	endDate, err := ParseDate(end)
	if err != nil {
		errs = append(errs, &validation.ValidationError{
			Code:    validation.CodeInvalidSchedule,
			Field:   "endDate",
			Message: err.Error(),
		})
	}
	if len(errs) > 0 {
		// Still surface expression problems alongside the bad dates.
		if exprErr := checkExpression(expression); exprErr != nil {
			errs = append(validation.ErrorList{{
				Code:    validation.CodeInvalidSchedule,
				Field:   "expression",
				Message: exprErr.Error(),
			}}, errs...)
		}
		return nil, errs
	}

	return Parse(expression, startDate, endDate)
}
