package domain

import (
	"fmt"
	"reflect"
	"strings"
)

// Switchable is a control that can be enabled and disabled.
type Switchable interface {
	Enabled() bool
	SetEnabled(enabled bool)
}

// SelectControl is a drop-down style control.
type SelectControl interface {
	Switchable
	Options() []string
	CurrentOption() (int, string)
	SelectOption(index int)
}

// TextControl is a free text (or numeric) input.
type TextControl interface {
	Switchable
	Text() string
	SetText(text string)
}

// CheckControl is a checkbox.
type CheckControl interface {
	Switchable
	Checked() bool
	SetChecked(checked bool)
}

// Label is the visual label paired with a control.
type Label interface {
	Greyed() bool
	SetGreyed(greyed bool)
}

// Bindings maps logical fields to control handles.
type Bindings struct {
	Format           SelectControl
	MonitorDir       SelectControl
	ExistingScript   SelectControl
	NewScript        SelectControl
	ScriptFile       TextControl
	TimeoutFormat    SelectControl
	TimeoutValue     TextControl
	Simulate         CheckControl
	RealSimulation   CheckControl
	SimulationDir    SelectControl
	TimeBetweenReads TextControl
	ReadCount        TextControl

	Labels map[FieldID]Label
}

// BindingError reports fields with no bound control.
type BindingError struct {
	Missing []FieldID
}

func (e *BindingError) Error() string {
	ids := make([]string, 0, len(e.Missing))
	for _, id := range e.Missing {
		ids = append(ids, string(id))
	}
	return fmt.Sprintf("missing controls: %s", strings.Join(ids, ", "))
}

// Control returns the control bound to field, or nil.
func (b Bindings) Control(field FieldID) Switchable {
	var control Switchable
	switch field {
	case FieldFormat:
		control = b.Format
	case FieldMonitorDir:
		control = b.MonitorDir
	case FieldExistingScript:
		control = b.ExistingScript
	case FieldNewScript:
		control = b.NewScript
	case FieldScriptFile:
		control = b.ScriptFile
	case FieldTimeoutFormat:
		control = b.TimeoutFormat
	case FieldTimeoutValue:
		control = b.TimeoutValue
	case FieldSimulate:
		control = b.Simulate
	case FieldRealSimulation:
		control = b.RealSimulation
	case FieldSimulationDir:
		control = b.SimulationDir
	case FieldTimeBetweenReads:
		control = b.TimeBetweenReads
	case FieldReadCount:
		control = b.ReadCount
	}
	if isNil(control) {
		return nil
	}
	return control
}

// Label returns the label bound to field, or nil.
func (b Bindings) Label(field FieldID) Label {
	if b.Labels == nil {
		return nil
	}
	label := b.Labels[field]
	if isNil(label) {
		return nil
	}
	return label
}

// Validate returns a *BindingError if any managed field has no control or
// no label.
func (b Bindings) Validate() error {
	var missing []FieldID
	for _, field := range Fields {
		if b.Control(field) == nil || b.Label(field) == nil {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return &BindingError{Missing: missing}
	}
	return nil
}

// isNil catches typed nil pointers stored in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
