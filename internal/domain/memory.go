package domain

// In-memory controls back the headless CLI rendering and the tests.

// MemorySelect is an in-memory SelectControl.
type MemorySelect struct {
	options  []string
	current  int
	disabled bool
}

func NewMemorySelect(options []string) *MemorySelect {
	s := &MemorySelect{options: append([]string(nil), options...), current: -1}
	if len(s.options) > 0 {
		s.current = 0
	}
	return s
}

func (s *MemorySelect) Options() []string { return s.options }
func (s *MemorySelect) Enabled() bool     { return !s.disabled }
func (s *MemorySelect) SetEnabled(e bool) { s.disabled = !e }

func (s *MemorySelect) CurrentOption() (int, string) {
	if s.current < 0 || s.current >= len(s.options) {
		return -1, ""
	}
	return s.current, s.options[s.current]
}

func (s *MemorySelect) SelectOption(index int) {
	if index < 0 || index >= len(s.options) {
		return
	}
	s.current = index
}

// MemoryText is an in-memory TextControl.
type MemoryText struct {
	text     string
	disabled bool
}

func NewMemoryText(text string) *MemoryText { return &MemoryText{text: text} }

func (t *MemoryText) Text() string        { return t.text }
func (t *MemoryText) SetText(text string) { t.text = text }
func (t *MemoryText) Enabled() bool       { return !t.disabled }
func (t *MemoryText) SetEnabled(e bool)   { t.disabled = !e }

// MemoryCheck is an in-memory CheckControl.
type MemoryCheck struct {
	checked  bool
	disabled bool
}

func NewMemoryCheck(checked bool) *MemoryCheck { return &MemoryCheck{checked: checked} }

func (c *MemoryCheck) Checked() bool     { return c.checked }
func (c *MemoryCheck) SetChecked(v bool) { c.checked = v }
func (c *MemoryCheck) Enabled() bool     { return !c.disabled }
func (c *MemoryCheck) SetEnabled(e bool) { c.disabled = !e }

// MemoryLabel is an in-memory Label.
type MemoryLabel struct {
	greyed bool
}

func (l *MemoryLabel) Greyed() bool     { return l.greyed }
func (l *MemoryLabel) SetGreyed(g bool) { l.greyed = g }

// NewMemoryBindings builds a complete set of in-memory controls whose
// selection options come from choices.
func NewMemoryBindings(choices Choices) Bindings {
	b := Bindings{
		Format:           NewMemorySelect(choices.Options(FieldFormat)),
		MonitorDir:       NewMemorySelect(choices.Options(FieldMonitorDir)),
		ExistingScript:   NewMemorySelect(choices.Options(FieldExistingScript)),
		NewScript:        NewMemorySelect(choices.Options(FieldNewScript)),
		ScriptFile:       NewMemoryText(""),
		TimeoutFormat:    NewMemorySelect(choices.Options(FieldTimeoutFormat)),
		TimeoutValue:     NewMemoryText(""),
		Simulate:         NewMemoryCheck(false),
		RealSimulation:   NewMemoryCheck(false),
		SimulationDir:    NewMemorySelect(choices.Options(FieldSimulationDir)),
		TimeBetweenReads: NewMemoryText(""),
		ReadCount:        NewMemoryText(""),
		Labels:           make(map[FieldID]Label, len(Fields)),
	}
	for _, field := range Fields {
		b.Labels[field] = &MemoryLabel{}
	}
	return b
}
