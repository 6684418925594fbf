package domain

import "strings"

// DependencyInputs is the checkbox and value state the rules read.
type DependencyInputs struct {
	Simulate         bool
	RealSimulation   bool
	TimeBetweenReads string
}

// IntervalSet reports whether time-between-reads holds a non-empty value.
func (in DependencyInputs) IntervalSet() bool {
	return in.TimeBetweenReads != ""
}

// DependentState holds the enabled flags of the simulation dependents.
type DependentState struct {
	RealSimulation   bool
	TimeBetweenReads bool
	ReadCount        bool
	SimulationDir    bool
}

// Enabled returns the enabled flag for a dependent field. ok is false for
// fields the rules do not govern.
func (s DependentState) Enabled(field FieldID) (enabled bool, ok bool) {
	switch field {
	case FieldRealSimulation:
		return s.RealSimulation, true
	case FieldTimeBetweenReads:
		return s.TimeBetweenReads, true
	case FieldReadCount:
		return s.ReadCount, true
	case FieldSimulationDir:
		return s.SimulationDir, true
	}
	return false, false
}

// DependentFields lists the fields governed by the dependency rules.
var DependentFields = []FieldID{
	FieldRealSimulation,
	FieldTimeBetweenReads,
	FieldReadCount,
	FieldSimulationDir,
}

// Rule is one step of the dependency evaluation.
type Rule struct {
	Name  string
	When  func(in DependencyInputs) bool
	Apply func(in DependencyInputs, out *DependentState)
}

// DependencyRules is evaluated top to bottom. Every rule reads the inputs
// only, never another rule's output, so with simulation on, a checked
// real-time run and a non-empty interval both of those controls end up
// disabled.
var DependencyRules = []Rule{
	{
		Name: "simulation-off",
		When: func(in DependencyInputs) bool { return !in.Simulate },
		Apply: func(_ DependencyInputs, out *DependentState) {
			*out = DependentState{}
		},
	},
	{
		Name: "real-run-locks-interval",
		When: func(in DependencyInputs) bool { return in.Simulate },
		Apply: func(in DependencyInputs, out *DependentState) {
			out.TimeBetweenReads = !in.RealSimulation
		},
	},
	{
		Name: "interval-locks-real-run",
		When: func(in DependencyInputs) bool { return in.Simulate },
		Apply: func(in DependencyInputs, out *DependentState) {
			out.RealSimulation = !in.IntervalSet()
		},
	},
	{
		Name: "simulation-on",
		When: func(in DependencyInputs) bool { return in.Simulate },
		Apply: func(_ DependencyInputs, out *DependentState) {
			out.ReadCount = true
			out.SimulationDir = true
		},
	},
}

// EvaluateDependencies runs DependencyRules against in.
func EvaluateDependencies(in DependencyInputs) DependentState {
	return evaluateRules(DependencyRules, in)
}

func evaluateRules(rules []Rule, in DependencyInputs) DependentState {
	var out DependentState
	for _, rule := range rules {
		if rule.When(in) {
			rule.Apply(in, &out)
		}
	}
	return out
}

// ReadDependencyInputs captures the rule inputs from bound controls.
func ReadDependencyInputs(b Bindings) DependencyInputs {
	return DependencyInputs{
		Simulate:         b.Simulate.Checked(),
		RealSimulation:   b.RealSimulation.Checked(),
		TimeBetweenReads: b.TimeBetweenReads.Text(),
	}
}

// FiredRules returns the names of the rules whose condition holds for in.
func FiredRules(in DependencyInputs) []string {
	var names []string
	for _, rule := range DependencyRules {
		if rule.When(in) {
			names = append(names, rule.Name)
		}
	}
	return names
}

// String renders the state as "field=on|off" pairs for logs.
func (s DependentState) String() string {
	parts := make([]string, 0, len(DependentFields))
	for _, field := range DependentFields {
		enabled, _ := s.Enabled(field)
		state := "off"
		if enabled {
			state = "on"
		}
		parts = append(parts, string(field)+"="+state)
	}
	return strings.Join(parts, " ")
}
