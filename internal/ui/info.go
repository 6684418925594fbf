package ui

import (
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
)

// infoButton is a button carrying the element id the controller dispatches on.
type infoButton struct {
	*tview.Button
	id string
}

func newInfoButton(label, id string, onPress func(label, id string)) *infoButton {
	b := &infoButton{Button: tview.NewButton(label), id: id}
	b.SetSelectedFunc(func() {
		onPress(b.GetLabel(), b.id)
	})
	return b
}

// setupInfoPanel builds the "i" button list shown next to the form.
func (a *App) setupInfoPanel() *tview.Flex {
	panel := tview.NewFlex().SetDirection(tview.FlexRow)
	panel.SetBorder(true).SetTitle("Info")

	for i, topic := range domain.InfoTopics() {
		index := i
		button := newInfoButton(domain.InfoLabel, topic.ID, a.pressButton)
		button.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
			return a.infoButtonKeyPress(index, event)
		})
		button.SetFocusFunc(func() { a.infoFocus = index })
		a.infoButtons = append(a.infoButtons, button)

		title := tview.NewTextView().SetText(" " + topic.Title)
		row := tview.NewFlex().SetDirection(tview.FlexColumn).
			AddItem(title, 0, 1, false).
			AddItem(button, 3, 0, false)
		panel.AddItem(row, 1, 0, false)
	}
	panel.AddItem(tview.NewBox(), 0, 1, false)
	return panel
}

func (a *App) focusInfoButton(index int) {
	if index < 0 || index >= len(a.infoButtons) {
		return
	}
	a.infoFocus = index
	a.TviewApp.SetFocus(a.infoButtons[index])
}

// modalPage is an info modal shown as its own page.
type modalPage struct {
	app         *App
	name        string
	closeButton *infoButton
	visible     bool
	returnFocus tview.Primitive
}

func (m *modalPage) Show() {
	if m.visible {
		return
	}
	m.returnFocus = m.app.TviewApp.GetFocus()
	m.visible = true
	m.app.openModals = append(m.app.openModals, m.name)
	m.app.Pages.ShowPage(m.name)
	m.app.TviewApp.SetFocus(m.closeButton)
}

func (m *modalPage) Hide() {
	if !m.visible {
		return
	}
	m.visible = false
	m.app.Pages.HidePage(m.name)
	if i := slices.Index(m.app.openModals, m.name); i >= 0 {
		m.app.openModals = slices.Delete(m.app.openModals, i, i+1)
	}
	if n := len(m.app.openModals); n > 0 {
		m.app.TviewApp.SetFocus(m.app.modalPages[m.app.openModals[n-1]].closeButton)
		return
	}
	if m.returnFocus != nil {
		m.app.TviewApp.SetFocus(m.returnFocus)
		return
	}
	m.app.TviewApp.SetFocus(m.app.Form)
}

func (m *modalPage) Visible() bool { return m.visible }

// setupInfoModals creates one hidden page per info topic and registers it
// with the modal registry.
func (a *App) setupInfoModals(modals *domain.Modals) {
	for _, topic := range domain.InfoTopics() {
		id := topic.ID
		name := domain.ModalID(id)

		body := tview.NewTextView().
			SetText(topic.Body).
			SetWrap(true).
			SetWordWrap(true).
			SetScrollable(true)

		closeButton := newInfoButton("Close", domain.ModalCloseID(id), a.pressButton)
		content := tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(body, 0, 1, false).
			AddItem(tview.NewFlex().SetDirection(tview.FlexColumn).
				AddItem(tview.NewBox(), 0, 1, false).
				AddItem(closeButton, 9, 0, true).
				AddItem(tview.NewBox(), 0, 1, false), 1, 0, true)
		content.SetBorder(true).SetTitle(topic.Title)

		page := &modalPage{app: a, name: name, closeButton: closeButton}
		a.modalPages[name] = page
		modals.Register(id, page)

		onBackdrop := func() { a.Controller.ClickBackdrop(id) }
		a.Pages.AddPage(name, createDialogPage(content, infoDialogWidth, infoDialogHeight, onBackdrop), true, false)
	}
}
