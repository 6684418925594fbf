package domain

import (
	"encoding/json"
	"fmt"
)

// FieldID identifies a form control in the binding contract.
type FieldID string

// Managed field identifiers.
const (
	FieldFormat           FieldID = "format"
	FieldMonitorDir       FieldID = "dir"
	FieldExistingScript   FieldID = "script-exist"
	FieldNewScript        FieldID = "script-new"
	FieldScriptFile       FieldID = "script-file"
	FieldTimeoutFormat    FieldID = "timeout-format"
	FieldTimeoutValue     FieldID = "timeout-time"
	FieldSimulate         FieldID = "sim"
	FieldRealSimulation   FieldID = "sim-real"
	FieldSimulationDir    FieldID = "sim-dir"
	FieldTimeBetweenReads FieldID = "sim-time"
	FieldReadCount        FieldID = "sim-read_num"
)

// Fields lists every managed field in form order.
var Fields = []FieldID{
	FieldFormat,
	FieldMonitorDir,
	FieldExistingScript,
	FieldNewScript,
	FieldScriptFile,
	FieldTimeoutFormat,
	FieldTimeoutValue,
	FieldSimulate,
	FieldRealSimulation,
	FieldSimulationDir,
	FieldTimeBetweenReads,
	FieldReadCount,
}

// FieldLabels holds the human readable label of each field.
var FieldLabels = map[FieldID]string{
	FieldFormat:           "Output format",
	FieldMonitorDir:       "Monitored directory",
	FieldExistingScript:   "Existing script",
	FieldNewScript:        "Uploaded script",
	FieldScriptFile:       "New script file",
	FieldTimeoutFormat:    "Timeout unit",
	FieldTimeoutValue:     "Timeout",
	FieldSimulate:         "Simulate",
	FieldRealSimulation:   "Real-time simulation",
	FieldSimulationDir:    "Simulation directory",
	FieldTimeBetweenReads: "Time between reads",
	FieldReadCount:        "Number of reads",
}

// Label returns the display label of the field, falling back to its id.
func (f FieldID) Label() string {
	if label, ok := FieldLabels[f]; ok {
		return label
	}
	return string(f)
}

// Toggle is the on/off sentinel used for checkbox defaults.
type Toggle string

const (
	ToggleOn  Toggle = "on"
	ToggleOff Toggle = "off"
)

// Checked reports the checked state the toggle stands for. ok is false for
// anything other than "on" or "off".
func (t Toggle) Checked() (checked bool, ok bool) {
	switch t {
	case ToggleOn:
		return true, true
	case ToggleOff:
		return false, true
	}
	return false, false
}

// UnmarshalJSON accepts the sentinel strings as well as YAML booleans, which
// an unquoted on/off in the profile decodes to.
func (t *Toggle) UnmarshalJSON(data []byte) error {
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		if b {
			*t = ToggleOn
		} else {
			*t = ToggleOff
		}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("toggle must be %q or %q: %w", ToggleOn, ToggleOff, err)
	}
	*t = Toggle(s)
	return nil
}

// NotSelected is the first option of the uploaded script selector.
const NotSelected = "-- not selected --"

// Defaults is the fixed default value set applied on start and on reset.
// It is passed around by value and never mutated once loaded.
type Defaults struct {
	Format           string `json:"format"`
	MonitorDir       string `json:"monitor_dir"`
	Script           string `json:"script"`
	NewScript        string `json:"new_script"`
	KeepNewScript    bool   `json:"keep_new_script"`
	TimeoutFormat    string `json:"timeout_format"`
	TimeoutValue     string `json:"timeout_value"`
	Simulate         Toggle `json:"simulate"`
	RealSimulation   Toggle `json:"real_simulation"`
	SimulationDir    string `json:"simulation_dir"`
	TimeBetweenReads string `json:"time_between_reads"`
	ReadCount        string `json:"read_count"`
}

// Choices holds the option lists of the selection controls.
type Choices struct {
	Formats         []string `json:"formats"`
	MonitorDirs     []string `json:"monitor_dirs"`
	Scripts         []string `json:"scripts"`
	UploadedScripts []string `json:"uploaded_scripts"`
	TimeoutFormats  []string `json:"timeout_formats"`
	SimulationDirs  []string `json:"simulation_dirs"`
}

// Options returns the option list backing a selection field, or nil.
func (c Choices) Options(field FieldID) []string {
	switch field {
	case FieldFormat:
		return c.Formats
	case FieldMonitorDir:
		return c.MonitorDirs
	case FieldExistingScript:
		return c.Scripts
	case FieldNewScript:
		if len(c.UploadedScripts) == 0 || c.UploadedScripts[0] != NotSelected {
			return append([]string{NotSelected}, c.UploadedScripts...)
		}
		return c.UploadedScripts
	case FieldTimeoutFormat:
		return c.TimeoutFormats
	case FieldSimulationDir:
		return c.SimulationDirs
	}
	return nil
}

// Profile is the persisted run profile: defaults plus option lists.
type Profile struct {
	Defaults Defaults `json:"defaults"`
	Choices  Choices  `json:"choices"`
}

// FactoryDefaults returns the built-in default value set.
func FactoryDefaults() Defaults {
	return Defaults{
		Format:           "--zebra",
		MonitorDir:       "/mnt/simulator_out",
		Script:           "fast5_pipeline.sh",
		NewScript:        NotSelected,
		KeepNewScript:    false,
		TimeoutFormat:    "Hours",
		TimeoutValue:     "",
		Simulate:         ToggleOff,
		RealSimulation:   ToggleOff,
		SimulationDir:    "/mnt/zebrafish/zebrafish_test",
		TimeBetweenReads: "",
		ReadCount:        "",
	}
}

// FactoryChoices returns the built-in option lists.
func FactoryChoices() Choices {
	return Choices{
		Formats:         []string{"--fast5", "--zebra", "--fastq"},
		MonitorDirs:     []string{"/mnt/sequencer_out", "/mnt/simulator_out"},
		Scripts:         []string{"fast5_pipeline.sh", "basecall_only.sh"},
		UploadedScripts: nil,
		TimeoutFormats:  []string{"Minutes", "Hours", "Days"},
		SimulationDirs:  []string{"/mnt/zebrafish/zebrafish_test", "/mnt/zebrafish/zebrafish_full"},
	}
}

// FactoryProfile returns the built-in profile.
func FactoryProfile() Profile {
	return Profile{
		Defaults: FactoryDefaults(),
		Choices:  FactoryChoices(),
	}
}
