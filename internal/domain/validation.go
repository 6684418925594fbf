package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks that toggles use the on/off sentinel and numeric defaults
// are either empty or non-negative integers.
func (d Defaults) Validate() error {
	if _, ok := d.Simulate.Checked(); !ok {
		return fmt.Errorf("simulate must be %q or %q, got %q", ToggleOn, ToggleOff, d.Simulate)
	}
	if _, ok := d.RealSimulation.Checked(); !ok {
		return fmt.Errorf("real_simulation must be %q or %q, got %q", ToggleOn, ToggleOff, d.RealSimulation)
	}
	for _, numeric := range []struct {
		name  string
		value string
	}{
		{"timeout_value", d.TimeoutValue},
		{"time_between_reads", d.TimeBetweenReads},
		{"read_count", d.ReadCount},
	} {
		if err := validateOptionalCount(numeric.value); err != nil {
			return fmt.Errorf("invalid %s: %w", numeric.name, err)
		}
	}
	return nil
}

// Validate checks that every selection control has at least one option.
func (c Choices) Validate() error {
	for _, field := range []FieldID{FieldFormat, FieldMonitorDir, FieldExistingScript, FieldTimeoutFormat, FieldSimulationDir} {
		options := c.Options(field)
		if len(options) == 0 {
			return fmt.Errorf("no options for %s", field)
		}
		seen := map[string]struct{}{}
		for _, option := range options {
			if strings.TrimSpace(option) == "" {
				return fmt.Errorf("empty option for %s", field)
			}
			if _, ok := seen[option]; ok {
				return fmt.Errorf("duplicate option %q for %s", option, field)
			}
			seen[option] = struct{}{}
		}
	}
	return nil
}

// Validate checks both the defaults and the choices of the profile.
func (p Profile) Validate() error {
	if err := p.Defaults.Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	if err := p.Choices.Validate(); err != nil {
		return fmt.Errorf("choices: %w", err)
	}
	return nil
}

func validateOptionalCount(value string) error {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil {
		return fmt.Errorf("%q is not a number", value)
	}
	if n < 0 {
		return fmt.Errorf("must be >= 0")
	}
	return nil
}
