// Package wizard models the multi-step ingestion configuration flow as
// an explicit state machine: each step holds its own pending data, and a
// pure reducer applies events to produce the next state. A presentation
// layer renders the current step and dispatches events; submission
// delegates to the pipeline builder.
package wizard

import (
	"time"

	"github.com/opencatalog/ingestkit/pkg/filtering"
	"github.com/opencatalog/ingestkit/pkg/pipeline"
	"github.com/opencatalog/ingestkit/pkg/validation"
)

// Step identifies one screen of the configuration flow.
type Step string

// Wizard steps, in forward order.
const (
	StepConfigureConnection Step = "configure_connection"
	StepConfigureFilters    Step = "configure_filters"
	StepConfigureSchedule   Step = "configure_schedule"
	StepReview              Step = "review"
)

var stepOrder = []Step{
	StepConfigureConnection,
	StepConfigureFilters,
	StepConfigureSchedule,
	StepReview,
}

// State is the full wizard state. It is a value; Reduce returns a new
// state and never mutates its input.
type State struct {
	// Step is the current screen.
	Step Step

	// Name is the pipeline display name entered on the connection step.
	Name string

	// ConnectorType and ConnectionConfig are the connection step's data.
	ConnectorType    string
	ConnectionConfig map[string]any

	// FilterPatterns and Flags are the filter step's data.
	FilterPatterns map[filtering.AssetKind]filtering.FilterPattern
	Flags          pipeline.Flags

	// ScheduleExpression, ScheduleStart, ScheduleEnd are the schedule
	// step's data.
	ScheduleExpression string
	ScheduleStart      *time.Time
	ScheduleEnd        *time.Time

	// Errors holds the aggregated error list from the last submission,
	// nil when the last submission succeeded or none was attempted.
	Errors validation.ErrorList

	// Definition is set when submission succeeded.
	Definition *pipeline.Definition
}

// New returns the initial wizard state.
func New() State {
	return State{Step: StepConfigureConnection}
}

// Event is a wizard input. The concrete types below are the only
// implementations.
type Event interface {
	isEvent()
}

// Next advances to the following step.
type Next struct{}

// Back returns to the previous step.
type Back struct{}

// SetConnection records the connection step's data.
type SetConnection struct {
	Name          string
	ConnectorType string
	Config        map[string]any
}

// SetFilters records the filter step's data.
type SetFilters struct {
	Patterns map[filtering.AssetKind]filtering.FilterPattern
	Flags    pipeline.Flags
}

// SetSchedule records the schedule step's data.
type SetSchedule struct {
	Expression string
	Start      *time.Time
	End        *time.Time
}

// Submit builds the pipeline definition from the collected data. Only
// meaningful on the review step; elsewhere it is ignored.
type Submit struct{}

func (Next) isEvent()          {}
func (Back) isEvent()          {}
func (SetConnection) isEvent() {}
func (SetFilters) isEvent()    {}
func (SetSchedule) isEvent()   {}
func (Submit) isEvent()        {}

// Reduce applies one event to the state. Submission runs the builder;
// on failure the aggregated errors are stored and the step does not
// change, so the presentation layer can mark every invalid step at once.
func Reduce(builder *pipeline.Builder, state State, event Event) State {
	switch e := event.(type) {
	case Next:
		state.Step = stepAfter(state.Step)

	case Back:
		state.Step = stepBefore(state.Step)

	case SetConnection:
		state.Name = e.Name
		state.ConnectorType = e.ConnectorType
		state.ConnectionConfig = e.Config

	case SetFilters:
		state.FilterPatterns = e.Patterns
		state.Flags = e.Flags

	case SetSchedule:
		state.ScheduleExpression = e.Expression
		state.ScheduleStart = e.Start
		state.ScheduleEnd = e.End

	case Submit:
		if state.Step != StepReview {
			return state
		}
		definition, errs := builder.Build(pipeline.BuildRequest{
			Name:               state.Name,
			ConnectorType:      state.ConnectorType,
			ConnectionConfig:   state.ConnectionConfig,
			FilterPatterns:     state.FilterPatterns,
			Flags:              state.Flags,
			ScheduleExpression: state.ScheduleExpression,
			ScheduleStart:      state.ScheduleStart,
			ScheduleEnd:        state.ScheduleEnd,
		})
		state.Definition = definition
		state.Errors = errs
	}
	return state
}

func stepAfter(step Step) Step {
	for i, s := range stepOrder {
		if s == step && i+1 < len(stepOrder) {
			return stepOrder[i+1]
		}
	}
	return step
}

func stepBefore(step Step) Step {
	for i, s := range stepOrder {
		if s == step && i > 0 {
			return stepOrder[i-1]
		}
	}
	return step
}
