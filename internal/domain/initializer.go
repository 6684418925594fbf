package domain

// ApplyResult describes what an Apply call did.
type ApplyResult struct {
	// Unmatched lists selection fields whose default matched no option; their
	// selection was left as it was.
	Unmatched []FieldID
	// Dependents is the outcome of the dependency rules.
	Dependents DependentState
	// Rules lists the dependency rules that fired, in evaluation order.
	Rules []string
}

// Apply sets every bound control to its default, then runs the script-source
// toggle and the dependency rules. Nothing is touched when a binding is
// missing.
func Apply(d Defaults, b Bindings) (ApplyResult, error) {
	if err := b.Validate(); err != nil {
		return ApplyResult{}, err
	}

	var result ApplyResult
	selectDefault := func(field FieldID, control SelectControl, want string) {
		if !SelectByText(control, want) {
			result.Unmatched = append(result.Unmatched, field)
		}
	}

	selectDefault(FieldFormat, b.Format, d.Format)
	selectDefault(FieldMonitorDir, b.MonitorDir, d.MonitorDir)
	selectDefault(FieldExistingScript, b.ExistingScript, d.Script)
	selectDefault(FieldNewScript, b.NewScript, d.NewScript)
	applyScriptSource(d, b)

	selectDefault(FieldTimeoutFormat, b.TimeoutFormat, d.TimeoutFormat)
	b.TimeoutValue.SetText(d.TimeoutValue)

	applyToggle(b.RealSimulation, d.RealSimulation)
	selectDefault(FieldSimulationDir, b.SimulationDir, d.SimulationDir)
	b.TimeBetweenReads.SetText(d.TimeBetweenReads)
	b.ReadCount.SetText(d.ReadCount)
	applyToggle(b.Simulate, d.Simulate)

	in := ReadDependencyInputs(b)
	result.Dependents = EvaluateDependencies(in)
	result.Rules = FiredRules(in)
	for _, field := range DependentFields {
		enabled, _ := result.Dependents.Enabled(field)
		b.Control(field).SetEnabled(enabled)
		b.Label(field).SetGreyed(!enabled)
	}

	return result, nil
}

// SelectByText selects the first option whose text equals want exactly. It
// returns false, leaving the selection unchanged, when no option matches.
func SelectByText(control SelectControl, want string) bool {
	for i, option := range control.Options() {
		if option == want {
			control.SelectOption(i)
			return true
		}
	}
	return false
}

// applyToggle leaves the checkbox alone for an unknown sentinel.
func applyToggle(control CheckControl, t Toggle) {
	checked, ok := t.Checked()
	if !ok {
		return
	}
	control.SetChecked(checked)
}

// applyScriptSource greys the script selector that is not in use and clears
// the new script file unless it is meant to be kept.
func applyScriptSource(d Defaults, b Bindings) {
	useExisting := d.NewScript == NotSelected
	b.Label(FieldNewScript).SetGreyed(useExisting)
	b.Label(FieldExistingScript).SetGreyed(!useExisting)
	if !d.KeepNewScript {
		b.ScriptFile.SetText("")
	}
}
