package ui

import (
	"github.com/plumber-cd/ez-pipeline/internal/domain"
	"github.com/rivo/tview"
)

// greyedLabelTag is prepended to the label of a greyed-out control.
const greyedLabelTag = "[gray]"

// formControl is a form item bound to a domain field.
type formControl interface {
	domain.Switchable
	domain.Label
	FormItem() tview.FormItem
}

// formLabel keeps the plain label text and renders the greyed variant.
type formLabel struct {
	text   string
	greyed bool
	set    func(label string)
}

func (l *formLabel) Greyed() bool { return l.greyed }

func (l *formLabel) SetGreyed(greyed bool) {
	l.greyed = greyed
	l.set(l.render())
}

func (l *formLabel) render() string {
	if l.greyed {
		return greyedLabelTag + l.text
	}
	return l.text
}

// ---------- DropDown ----------

type dropDownControl struct {
	formLabel
	dropDown *tview.DropDown
	options  []string
	disabled bool
}

func newDropDownControl(label string, options []string) *dropDownControl {
	dd := tview.NewDropDown().
		SetLabel(label).
		SetFieldWidth(FormFieldWidth).
		SetOptions(options, nil)
	if len(options) > 0 {
		dd.SetCurrentOption(0)
	}
	c := &dropDownControl{
		dropDown: dd,
		options:  append([]string(nil), options...),
	}
	c.formLabel = formLabel{text: label, set: func(l string) { dd.SetLabel(l) }}
	return c
}

func (c *dropDownControl) FormItem() tview.FormItem { return c.dropDown }
func (c *dropDownControl) Options() []string        { return c.options }
func (c *dropDownControl) Enabled() bool            { return !c.disabled }

func (c *dropDownControl) SetEnabled(enabled bool) {
	c.disabled = !enabled
	c.dropDown.SetDisabled(!enabled)
}

func (c *dropDownControl) CurrentOption() (int, string) {
	return c.dropDown.GetCurrentOption()
}

func (c *dropDownControl) SelectOption(index int) {
	if index < 0 || index >= len(c.options) {
		return
	}
	c.dropDown.SetCurrentOption(index)
}

// ---------- InputField ----------

type inputControl struct {
	formLabel
	input    *tview.InputField
	disabled bool
}

func newInputControl(label string, numeric bool) *inputControl {
	input := tview.NewInputField().
		SetLabel(label).
		SetFieldWidth(FormFieldWidth)
	if numeric {
		input.SetAcceptanceFunc(tview.InputFieldInteger)
	}
	c := &inputControl{input: input}
	c.formLabel = formLabel{text: label, set: func(l string) { input.SetLabel(l) }}
	return c
}

func (c *inputControl) FormItem() tview.FormItem { return c.input }
func (c *inputControl) Text() string             { return c.input.GetText() }
func (c *inputControl) SetText(text string)      { c.input.SetText(text) }
func (c *inputControl) Enabled() bool            { return !c.disabled }

func (c *inputControl) SetEnabled(enabled bool) {
	c.disabled = !enabled
	c.input.SetDisabled(!enabled)
}

// ---------- Checkbox ----------

type checkboxControl struct {
	formLabel
	checkbox *tview.Checkbox
	disabled bool
}

func newCheckboxControl(label string) *checkboxControl {
	cb := tview.NewCheckbox().SetLabel(label)
	c := &checkboxControl{checkbox: cb}
	c.formLabel = formLabel{text: label, set: func(l string) { cb.SetLabel(l) }}
	return c
}

func (c *checkboxControl) FormItem() tview.FormItem { return c.checkbox }
func (c *checkboxControl) Checked() bool            { return c.checkbox.IsChecked() }
func (c *checkboxControl) SetChecked(checked bool)  { c.checkbox.SetChecked(checked) }
func (c *checkboxControl) Enabled() bool            { return !c.disabled }

func (c *checkboxControl) SetEnabled(enabled bool) {
	c.disabled = !enabled
	c.checkbox.SetDisabled(!enabled)
}

// ---------- Binding layer ----------

// numericFields accept digits only.
var numericFields = map[domain.FieldID]bool{
	domain.FieldTimeoutValue:     true,
	domain.FieldTimeBetweenReads: true,
	domain.FieldReadCount:        true,
}

// newFormControls creates one control per managed field.
func newFormControls(choices domain.Choices) map[domain.FieldID]formControl {
	controls := make(map[domain.FieldID]formControl, len(domain.Fields))
	for _, field := range domain.Fields {
		label := field.Label()
		switch field {
		case domain.FieldSimulate, domain.FieldRealSimulation:
			controls[field] = newCheckboxControl(label)
		case domain.FieldScriptFile, domain.FieldTimeoutValue, domain.FieldTimeBetweenReads, domain.FieldReadCount:
			controls[field] = newInputControl(label, numericFields[field])
		default:
			controls[field] = newDropDownControl(label, choices.Options(field))
		}
	}
	return controls
}

// bindControls maps the form controls onto domain bindings.
func bindControls(controls map[domain.FieldID]formControl) domain.Bindings {
	selectControl := func(field domain.FieldID) domain.SelectControl {
		c, _ := controls[field].(*dropDownControl)
		if c == nil {
			return nil
		}
		return c
	}
	textControl := func(field domain.FieldID) domain.TextControl {
		c, _ := controls[field].(*inputControl)
		if c == nil {
			return nil
		}
		return c
	}
	checkControl := func(field domain.FieldID) domain.CheckControl {
		c, _ := controls[field].(*checkboxControl)
		if c == nil {
			return nil
		}
		return c
	}

	b := domain.Bindings{
		Format:           selectControl(domain.FieldFormat),
		MonitorDir:       selectControl(domain.FieldMonitorDir),
		ExistingScript:   selectControl(domain.FieldExistingScript),
		NewScript:        selectControl(domain.FieldNewScript),
		ScriptFile:       textControl(domain.FieldScriptFile),
		TimeoutFormat:    selectControl(domain.FieldTimeoutFormat),
		TimeoutValue:     textControl(domain.FieldTimeoutValue),
		Simulate:         checkControl(domain.FieldSimulate),
		RealSimulation:   checkControl(domain.FieldRealSimulation),
		SimulationDir:    selectControl(domain.FieldSimulationDir),
		TimeBetweenReads: textControl(domain.FieldTimeBetweenReads),
		ReadCount:        textControl(domain.FieldReadCount),
		Labels:           make(map[domain.FieldID]domain.Label, len(controls)),
	}
	for field, control := range controls {
		b.Labels[field] = control
	}
	return b
}
