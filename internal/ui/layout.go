package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
)

func (a *App) setupLayout(modals *domain.Modals) {
	a.TviewApp = tview.NewApplication()
	a.Pages = tview.NewPages()
	rootFlex := tview.NewFlex().SetDirection(tview.FlexRow)

	a.PositionLine = tview.NewTextView()
	a.PositionLine.SetBorder(true)
	a.PositionLine.SetTitle("Profile")
	a.PositionLine.SetText(a.profileText())
	rootFlex.AddItem(a.PositionLine, 3, 1, false)

	middleFlex := tview.NewFlex().SetDirection(tview.FlexColumn)
	rootFlex.AddItem(middleFlex, 0, 2, false)

	a.Form = tview.NewForm()
	a.Form.SetItemPadding(0)
	a.Form.SetBorder(true).SetTitle("Run Options")
	for _, field := range domain.Fields {
		a.Form.AddFormItem(a.Controls[field].FormItem())
	}
	a.Form.AddButton(domain.ResetDefaultLabel, func() {
		a.pressButton(domain.ResetDefaultLabel, "")
	})
	middleFlex.AddItem(a.Form, 0, 2, true)

	a.DetailsFlex = tview.NewFlex().SetDirection(tview.FlexRow)
	middleFlex.AddItem(a.DetailsFlex, 0, 1, false)

	a.InfoPanel = a.setupInfoPanel()
	a.DetailsFlex.AddItem(a.InfoPanel, 0, 1, false)

	a.KeysLine = tview.NewTextView()
	a.KeysLine.SetBorder(false)
	a.UpdateKeysLine()
	rootFlex.AddItem(a.KeysLine, 1, 1, false)

	a.StatusLine = tview.NewTextView()
	a.StatusLine.SetBorder(true)
	a.StatusLine.SetTitle("Status")
	a.StatusLine.SetWrap(true)
	a.StatusLine.SetWordWrap(true)
	a.StatusLine.SetChangedFunc(func() {
		a.resizeStatusLine()
	})
	a.DetailsFlex.AddItem(a.StatusLine, 3, 0, false)

	a.Pages.AddPage(mainPageName, rootFlex, true, true)

	// Redirect focus from non-interactive panels to the form.
	a.PositionLine.SetFocusFunc(func() { a.TviewApp.SetFocus(a.Form) })
	a.StatusLine.SetFocusFunc(func() { a.TviewApp.SetFocus(a.Form) })
	a.KeysLine.SetFocusFunc(func() { a.TviewApp.SetFocus(a.Form) })

	a.wireFormKeys()
	a.setupInfoModals(modals)

	// Quit dialog.
	{
		a.quitDialog = tview.NewModal().SetText("Do you want to quit?").
			AddButtons([]string{"Quit", "Cancel"}).
			SetDoneFunc(func(buttonIndex int, buttonLabel string) {
				switch buttonLabel {
				case "Quit":
					a.TviewApp.Stop()
				case "Cancel":
					fallthrough
				default:
					a.Pages.HidePage(quitPageName)
					a.restoreFocus()
				}
			})
		a.Pages.AddPage(quitPageName, a.quitDialog, true, false)
	}

	// Root setup.
	a.TviewApp.SetRoot(a.Pages, true)
	a.TviewApp.EnableMouse(true)
	a.TviewApp.SetBeforeDrawFunc(func(screen tcell.Screen) bool {
		a.resizeStatusLine()
		a.UpdateKeysLine()
		return false
	})
	a.TviewApp.SetInputCapture(a.onGlobalKeyPress)
	a.Pages.SwitchToPage(mainPageName)
	a.TviewApp.SetFocus(a.Form)
}

// profileText describes where the defaults came from.
func (a *App) profileText() string {
	if a.ProfilePath == "" {
		return "Factory defaults"
	}
	return a.ProfilePath
}

// popupOpen reports whether any page is layered over the main page.
func (a *App) popupOpen() bool {
	if len(a.openModals) > 0 {
		return true
	}
	for _, name := range []string{quitPageName, helpPageName, previewPageName} {
		if a.Pages.HasPage(name) && isPageVisible(a.Pages, name) {
			return true
		}
	}
	return false
}

func isPageVisible(pages *tview.Pages, name string) bool {
	for _, visible := range pages.GetPageNames(true) {
		if visible == name {
			return true
		}
	}
	return false
}

// createDialogPage wraps a content primitive in a centered dialog overlay.
// Clicks on the surrounding backdrop call onBackdrop when it is set; the
// overlay never lets clicks through to the pages below.
func createDialogPage(content tview.Primitive, width, height int, onBackdrop func()) tview.Primitive {
	flex := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(backdrop(onBackdrop), 0, 1, false).
		AddItem(
			tview.NewFlex().SetDirection(tview.FlexRow).
				AddItem(backdrop(onBackdrop), 0, 1, false).
				AddItem(content, height, 1, true).
				AddItem(backdrop(onBackdrop), 0, 1, false),
			width, 1, true).
		AddItem(backdrop(onBackdrop), 0, 1, false)
	return &dialogPage{Flex: flex}
}

// backdrop returns a box that absorbs mouse events over its own area and
// reports left clicks to onClick.
func backdrop(onClick func()) *tview.Box {
	box := tview.NewBox()
	box.SetMouseCapture(func(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
		if !box.InRect(event.Position()) {
			return action, event
		}
		switch action {
		case tview.MouseLeftClick, tview.MouseLeftDoubleClick:
			if onClick != nil {
				onClick()
			}
		}
		return action, nil
	})
	return box
}

// dialogPage is a full-screen overlay that consumes every mouse event inside
// it, so nothing under the dialog reacts to clicks.
type dialogPage struct {
	*tview.Flex
}

func (d *dialogPage) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	handler := d.Flex.MouseHandler()
	return func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (bool, tview.Primitive) {
		consumed, capture := handler(action, event, setFocus)
		if !consumed && d.InRect(event.Position()) {
			return true, nil
		}
		return consumed, capture
	}
}
