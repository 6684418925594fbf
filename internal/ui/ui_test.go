package ui

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
)

func TestStartupAppliesDefaults(t *testing.T) {
	h := NewTestHarness(t)

	h.AssertScreenContains("Run Options")
	h.AssertScreenContains("Output format")
	h.AssertScreenContains("--zebra")
	h.AssertScreenContains("/mnt/simulator_out")
	h.AssertScreenContains("reset to default options")
	h.AssertScreenContains("Defaults applied")
	h.AssertScreenContains("Factory defaults")

	h.Do(func(a *App) {
		if _, got := a.Bindings.Format.CurrentOption(); got != "--zebra" {
			t.Errorf("format = %q, want --zebra", got)
		}
		if a.Bindings.Simulate.Checked() {
			t.Error("simulate should start unchecked")
		}
		for _, field := range domain.DependentFields {
			if a.Controls[field].Enabled() {
				t.Errorf("%s should be disabled with simulation off", field)
			}
			if !a.Controls[field].Greyed() {
				t.Errorf("%s label should be greyed with simulation off", field)
			}
		}
		if !a.Controls[domain.FieldSimulate].Enabled() {
			t.Error("simulate checkbox should stay enabled")
		}
		// Uploaded script is "-- not selected --", so its own label is greyed.
		if !a.Controls[domain.FieldNewScript].Greyed() {
			t.Error("uploaded script label should be greyed")
		}
		if a.Controls[domain.FieldExistingScript].Greyed() {
			t.Error("existing script label should not be greyed")
		}
	})
}

func TestStartupWithSimulationProfile(t *testing.T) {
	profile := domain.FactoryProfile()
	profile.Defaults.Simulate = domain.ToggleOn
	profile.Defaults.TimeBetweenReads = "5"
	h := NewTestHarnessWithProfile(t, profile)

	h.Do(func(a *App) {
		want := map[domain.FieldID]bool{
			domain.FieldRealSimulation:   false,
			domain.FieldTimeBetweenReads: true,
			domain.FieldReadCount:        true,
			domain.FieldSimulationDir:    true,
		}
		for field, enabled := range want {
			if got := a.Controls[field].Enabled(); got != enabled {
				t.Errorf("%s enabled = %v, want %v", field, got, enabled)
			}
			if got := a.Controls[field].Greyed(); got == enabled {
				t.Errorf("%s greyed = %v, want %v", field, got, !enabled)
			}
		}
	})
}

func TestResetRestoresDefaults(t *testing.T) {
	h := NewTestHarness(t)

	var before domain.Snapshot
	h.Do(func(a *App) {
		var err error
		before, err = a.Controller.Snapshot()
		if err != nil {
			t.Errorf("Snapshot() error: %v", err)
		}
		a.Bindings.Format.SelectOption(2)
		a.Bindings.ReadCount.SetText("99")
		a.Bindings.Simulate.SetChecked(true)
		a.Bindings.TimeoutValue.SetText("12")
	})

	h.PressCtrl('r')
	h.AssertScreenContains("Defaults applied")

	h.Do(func(a *App) {
		after, err := a.Controller.Snapshot()
		if err != nil {
			t.Errorf("Snapshot() error: %v", err)
			return
		}
		if diff := cmp.Diff(before, after); diff != "" {
			t.Errorf("snapshot after reset mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestResetButtonIsIdempotent(t *testing.T) {
	h := NewTestHarness(t)

	var first, second domain.Snapshot
	h.Do(func(a *App) {
		a.pressButton(domain.ResetDefaultLabel, "")
		first, _ = a.Controller.Snapshot()
		a.pressButton(domain.ResetDefaultLabel, "")
		second, _ = a.Controller.Snapshot()
	})
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second reset changed state (-first +second):\n%s", diff)
	}
}

func TestInfoModalOpensAndCloses(t *testing.T) {
	h := NewTestHarness(t)
	h.AssertScreenNotContains("Replay reads")

	h.Do(func(a *App) { a.pressButton(domain.InfoLabel, "sim") })
	h.AssertScreenContains("Replay reads")
	h.Do(func(a *App) {
		if got := a.Controller.Modals().OpenIDs(); !cmp.Equal(got, []string{"sim"}) {
			t.Errorf("open modals = %v, want [sim]", got)
		}
	})

	// Focus sits on the close element.
	h.PressEnter()
	h.AssertScreenNotContains("Replay reads")
	h.Do(func(a *App) {
		if a.Controller.Modals().Visible("sim") {
			t.Error("modal still visible after close")
		}
		if !a.Form.HasFocus() {
			t.Error("focus should return to the form")
		}
	})
}

func TestInfoModalIgnoresEscape(t *testing.T) {
	h := NewTestHarness(t)

	h.Do(func(a *App) { a.pressButton(domain.InfoLabel, "format") })
	h.AssertScreenContains("Format flag handed")

	// Only the close element or the backdrop close a modal.
	h.PressEscape()
	h.AssertScreenContains("Format flag handed")
}

func TestInfoButtonClickAndBackdrop(t *testing.T) {
	h := NewTestHarness(t)

	var x, y int
	h.Do(func(a *App) {
		x, y, _, _ = a.infoButtons[len(a.infoButtons)-1].GetRect()
	})
	h.ClickAt(x+1, y)
	h.AssertScreenContains("Replay reads")

	// A click inside the modal content does not close it.
	h.ClickAt(50, 14)
	h.AssertScreenContains("Replay reads")

	// A click on the backdrop does.
	h.ClickAt(2, 2)
	h.AssertScreenNotContains("Replay reads")
	h.Do(func(a *App) {
		if a.Controller.Modals().Visible("sim") {
			t.Error("modal still visible after backdrop click")
		}
	})
}

func TestBackdropClickDoesNotReachForm(t *testing.T) {
	h := NewTestHarness(t)

	var x, y int
	h.Do(func(a *App) {
		x, y, _, _ = a.Form.GetButton(0).GetRect()
		a.Bindings.ReadCount.SetText("7")
		a.pressButton(domain.InfoLabel, "dir")
	})

	// The reset button lies under the backdrop; clicking there only closes
	// the modal.
	h.ClickAt(x+1, y)
	h.Do(func(a *App) {
		if a.Controller.Modals().Visible("dir") {
			t.Error("modal still visible after backdrop click")
		}
		if got := a.Bindings.ReadCount.Text(); got != "7" {
			t.Errorf("read count = %q, the click went through to the reset button", got)
		}
	})
}

func TestSwitchPanelOpensInfoByKeyboard(t *testing.T) {
	h := NewTestHarness(t)

	h.PressCtrl('t')
	h.PressKey(tcell.KeyDown, 0, tcell.ModNone)
	h.PressEnter()
	h.AssertScreenContains("Directory watched")

	h.PressEnter()
	h.AssertScreenNotContains("Directory watched")

	h.PressCtrl('t')
	h.Do(func(a *App) {
		if !a.Form.HasFocus() {
			t.Error("expected focus back on the form")
		}
	})
}

func TestGlobalKeysIgnoredWhileModalOpen(t *testing.T) {
	h := NewTestHarness(t)

	h.Do(func(a *App) {
		a.Bindings.ReadCount.SetText("3")
		a.pressButton(domain.InfoLabel, "timeout")
	})
	h.PressCtrl('r')
	h.Do(func(a *App) {
		if got := a.Bindings.ReadCount.Text(); got != "3" {
			t.Errorf("read count = %q, reset ran under the modal", got)
		}
	})
}

func TestPreviewPopup(t *testing.T) {
	h := NewTestHarness(t)

	h.PressCtrl('p')
	h.AssertScreenContains("Markdown Preview")
	h.AssertScreenContains("# EZ-Pipeline")

	h.PressEscape()
	h.AssertScreenNotContains("Markdown Preview")
}

func TestHelpPopup(t *testing.T) {
	h := NewTestHarness(t)

	h.PressKey(tcell.KeyF1, 0, tcell.ModNone)
	h.AssertScreenContains("Keyboard Shortcuts")
	h.AssertScreenContains("Ctrl+R: Reset to default options")

	h.PressEscape()
	h.AssertScreenNotContains("Keyboard Shortcuts")
}

func TestQuitDialogCancel(t *testing.T) {
	h := NewTestHarness(t)

	h.PressCtrl('c')
	h.AssertScreenContains("Do you want to quit?")

	// Cancel has focus.
	h.PressEnter()
	h.AssertScreenNotContains("Do you want to quit?")
}

func TestForceQuit(t *testing.T) {
	h := NewTestHarness(t)

	h.screen.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)
	if err := h.WaitForExit(2 * time.Second); err != nil {
		t.Fatalf("app did not exit: %v", err)
	}
}

func TestFormLabelRender(t *testing.T) {
	var got string
	l := formLabel{text: "Simulate", set: func(s string) { got = s }}

	l.SetGreyed(true)
	if got != "[gray]Simulate" || !l.Greyed() {
		t.Errorf("greyed label = %q", got)
	}
	l.SetGreyed(false)
	if got != "Simulate" || l.Greyed() {
		t.Errorf("plain label = %q", got)
	}
}

func TestDropDownControlIgnoresOutOfRange(t *testing.T) {
	c := newDropDownControl("Output format", []string{"--fast5", "--zebra"})
	c.SelectOption(1)
	c.SelectOption(5)
	c.SelectOption(-1)
	if i, text := c.CurrentOption(); i != 1 || text != "--zebra" {
		t.Errorf("current option = %d %q, want 1 --zebra", i, text)
	}
}

func TestBindControlsCoversEveryField(t *testing.T) {
	b := bindControls(newFormControls(domain.FactoryChoices()))
	if err := b.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	opts := b.NewScript.Options()
	if len(opts) == 0 || opts[0] != domain.NotSelected {
		t.Errorf("uploaded script options = %v, want %q first", opts, domain.NotSelected)
	}
}

func TestWrappedLineCount(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  int
	}{
		{name: "empty", text: "", width: 10, want: 1},
		{name: "zero width", text: "anything", width: 0, want: 1},
		{name: "fits", text: "short", width: 10, want: 1},
		{name: "two lines", text: "one\ntwo", width: 10, want: 2},
		{name: "wraps", text: "aaaa bbbb cccc", width: 5, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrappedLineCount(tt.text, tt.width); got != tt.want {
				t.Errorf("wrappedLineCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
