package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
)

// onGlobalKeyPress handles application-wide shortcuts.
func (a *App) onGlobalKeyPress(event *tcell.EventKey) *tcell.EventKey {
	// Test sentinel: if a sentinel channel is set and the sentinel key is received,
	// signal completion and consume the event.
	if a.SentinelCh != nil && event.Key() == tcell.KeyF63 {
		ch := a.SentinelCh
		a.SentinelCh = nil
		close(ch)
		return nil
	}

	switch event.Key() {
	case tcell.KeyCtrlC:
		if isPageVisible(a.Pages, quitPageName) {
			return nil
		}
		a.lastFocus = a.TviewApp.GetFocus()
		a.Pages.ShowPage(quitPageName)
		a.quitDialog.SetFocus(1)
		a.TviewApp.SetFocus(a.quitDialog)
		return nil
	case tcell.KeyCtrlQ:
		a.TviewApp.Stop()
		return nil
	}

	// Everything below acts on the main page only.
	if a.popupOpen() {
		return event
	}
	switch event.Key() {
	case tcell.KeyCtrlR:
		a.pressButton(domain.ResetDefaultLabel, "")
		return nil
	case tcell.KeyCtrlT:
		a.switchPanel()
		return nil
	case tcell.KeyCtrlP:
		a.showPreviewPopup()
		return nil
	case tcell.KeyF1:
		a.showHelpPopup()
		return nil
	}
	return event
}

// switchPanel moves focus between the form and the info panel.
func (a *App) switchPanel() {
	if len(a.infoButtons) == 0 {
		return
	}
	if a.Form.HasFocus() {
		a.TviewApp.SetFocus(a.infoButtons[a.infoFocus])
		return
	}
	a.TviewApp.SetFocus(a.Form)
}

// wireFormKeys sets up keyboard handling for the main form.
func (a *App) wireFormKeys() {
	a.Form.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		formItemIndex, _ := a.Form.GetFocusedItemIndex()
		if formItemIndex < 0 {
			return event
		}
		if _, ok := a.Form.GetFormItem(formItemIndex).(*tview.Checkbox); ok && event.Key() == tcell.KeyEnter {
			// Toggle checkbox on Enter for better UX.
			return tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone)
		}
		return event
	})
}

// infoButtonKeyPress handles vim-style movement in the info panel.
func (a *App) infoButtonKeyPress(index int, event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyDown:
		a.focusInfoButton(index + 1)
		return nil
	case tcell.KeyUp:
		a.focusInfoButton(index - 1)
		return nil
	case tcell.KeyEscape, tcell.KeyTab, tcell.KeyBacktab:
		a.TviewApp.SetFocus(a.Form)
		return nil
	case tcell.KeyRune:
		switch event.Rune() {
		case 'j':
			a.focusInfoButton(index + 1)
			return nil
		case 'k':
			a.focusInfoButton(index - 1)
			return nil
		}
	}
	return event
}
