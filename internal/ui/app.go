package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"go.uber.org/zap"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
	"github.com/plumber-cd/ez-pipeline/internal/export"
)

const (
	mainPageName    = "*main*"
	quitPageName    = "*quit*"
	helpPageName    = "*help*"
	previewPageName = "*preview*"

	FormFieldWidth          = 36
	maxDialogViewportHeight = 23

	infoDialogWidth  = 50
	infoDialogHeight = 12
)

var GlobalKeys = []string{"<ctrl+r> Reset", "<ctrl+t> Switch panel", "<ctrl+p> Preview", "<ctrl+c> Quit"}

// App holds all UI state for the EZ-Pipeline form.
type App struct {
	Profile     domain.Profile
	ProfilePath string
	Log         *zap.Logger

	TviewApp *tview.Application
	Pages    *tview.Pages

	// Layout widgets.
	PositionLine *tview.TextView
	Form         *tview.Form
	InfoPanel    *tview.Flex
	StatusLine   *tview.TextView
	KeysLine     *tview.TextView
	DetailsFlex  *tview.Flex

	// Form state.
	Controls   map[domain.FieldID]formControl
	Bindings   domain.Bindings
	Controller *domain.Controller
	LastResult domain.ApplyResult

	infoButtons []*infoButton
	infoFocus   int
	modalPages  map[string]*modalPage
	openModals  []string
	lastFocus   tview.Primitive

	// Quit dialog reference.
	quitDialog *tview.Modal

	// Test synchronization: if non-nil, closed when a sentinel key is received.
	SentinelCh chan struct{}
}

// New creates a new App for the given profile, sets up the UI and applies
// the defaults once, the same way a reset does.
func New(profile domain.Profile, profilePath string, log *zap.Logger) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	a := &App{
		Profile:     profile,
		ProfilePath: profilePath,
		Log:         log,
		modalPages:  make(map[string]*modalPage),
	}

	a.Controls = newFormControls(profile.Choices)
	a.Bindings = bindControls(a.Controls)

	modals := domain.NewModals()
	a.setupLayout(modals)

	controller, err := domain.NewController(profile.Defaults, a.Bindings, modals, log)
	if err != nil {
		return nil, fmt.Errorf("create controller: %w", err)
	}
	a.Controller = controller
	a.resetDefaults()

	return a, nil
}

// Run starts the tview application loop.
func (a *App) Run() error {
	return a.TviewApp.Run()
}

// Stop stops the application.
func (a *App) Stop() {
	if a.TviewApp != nil {
		a.TviewApp.Stop()
	}
}

// setStatus updates the status line text.
func (a *App) setStatus(text string) {
	a.StatusLine.Clear()
	a.StatusLine.SetText(text)
}

// pressButton routes a button activation through the controller.
func (a *App) pressButton(label, id string) {
	if label == domain.ResetDefaultLabel {
		a.resetDefaults()
		return
	}
	if strings.HasPrefix(id, domain.ModalClosePrefix) || label == domain.InfoLabel {
		if _, err := a.Controller.Press(label, id); err != nil {
			a.setStatus("Error: " + err.Error())
		}
	}
}

// resetDefaults restores every managed control to its default.
func (a *App) resetDefaults() {
	result, err := a.Controller.Reset()
	if err != nil {
		a.setStatus("Error applying defaults: " + err.Error())
		return
	}
	a.LastResult = result
	a.setStatus("Defaults applied")
}

// UpdateKeysLine refreshes the keyboard shortcuts help line.
func (a *App) UpdateKeysLine() {
	if a.KeysLine == nil {
		return
	}

	mandatoryHelpKey := "<f1> Help"
	visibleKeys := append(append([]string{}, GlobalKeys...), mandatoryHelpKey)
	text := " " + strings.Join(visibleKeys, " | ")

	_, _, innerWidth, _ := a.KeysLine.GetInnerRect()
	if innerWidth > 0 {
		for len(visibleKeys) > 1 && len(text) > innerWidth {
			visibleKeys = visibleKeys[:len(visibleKeys)-2]
			visibleKeys = append(visibleKeys, mandatoryHelpKey)
			text = " " + strings.Join(visibleKeys, " | ")
		}
		if len(visibleKeys) == 1 {
			text = " " + mandatoryHelpKey
		}
	}

	a.KeysLine.SetText(text)
}

func (a *App) showHelpPopup() {
	var content strings.Builder
	content.WriteString("Full keyboard shortcuts\n\n")
	content.WriteString("Form\n")
	content.WriteString("- Tab / Shift+Tab: Next or previous option\n")
	content.WriteString("- Enter: Open a selector or press a button\n")
	content.WriteString("- Space: Toggle a checkbox\n\n")
	content.WriteString("Info panel\n")
	content.WriteString("- j / Down Arrow: Next topic\n")
	content.WriteString("- k / Up Arrow: Previous topic\n")
	content.WriteString("- Enter: Open the topic\n\n")
	content.WriteString("Global\n")
	content.WriteString("- Ctrl+R: Reset to default options\n")
	content.WriteString("- Ctrl+T: Switch between form and info panel\n")
	content.WriteString("- Ctrl+P: Preview the options as Markdown\n")
	content.WriteString("- Ctrl+C: Quit (with confirmation)\n")
	content.WriteString("- Ctrl+Q: Force quit\n")
	content.WriteString("- F1: Show this help\n")

	helpText := tview.NewTextView().
		SetText(content.String()).
		SetScrollable(true).
		SetWrap(true).
		SetWordWrap(true)
	helpText.SetBorder(true).SetTitle("Keyboard Shortcuts (scroll: Up/Down, PgUp/PgDn)")
	a.showPopup(helpPageName, helpText, 58, 20)
}

// showPreviewPopup renders the current form state as Markdown.
func (a *App) showPreviewPopup() {
	snapshot, err := a.Controller.Snapshot()
	if err != nil {
		a.setStatus("Error reading options: " + err.Error())
		return
	}
	md, err := export.RenderMarkdown(snapshot, a.LastResult.Rules)
	if err != nil {
		a.setStatus("Error rendering markdown: " + err.Error())
		return
	}

	preview := tview.NewTextView().
		SetText(md).
		SetScrollable(true).
		SetWrap(false)
	preview.SetBorder(true).SetTitle("Markdown Preview (Esc to close)")
	a.showPopup(previewPageName, preview, 76, maxDialogViewportHeight)
}

// showPopup shows a read-only text popup that any of Esc, Enter or
// Backspace dismisses.
func (a *App) showPopup(pageName string, text *tview.TextView, width, height int) {
	a.lastFocus = a.TviewApp.GetFocus()
	text.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyBS, tcell.KeyBackspace2:
			a.dismissPopup(pageName)
			return nil
		}
		return event
	})

	a.Pages.RemovePage(pageName)
	a.Pages.AddPage(pageName, createDialogPage(text, width, height, nil), true, true)
	a.Pages.ShowPage(pageName)
	a.TviewApp.SetFocus(text)
}

func (a *App) dismissPopup(pageName string) {
	a.Pages.RemovePage(pageName)
	a.restoreFocus()
}

// restoreFocus returns focus to whatever had it before a popup opened.
func (a *App) restoreFocus() {
	if a.lastFocus != nil {
		a.TviewApp.SetFocus(a.lastFocus)
		return
	}
	a.TviewApp.SetFocus(a.Form)
}

// resizeStatusLine adjusts the status panel height to fit its text content.
func (a *App) resizeStatusLine() {
	if a.StatusLine == nil || a.DetailsFlex == nil {
		return
	}

	_, _, innerWidth, _ := a.StatusLine.GetInnerRect()
	if innerWidth <= 0 {
		a.DetailsFlex.ResizeItem(a.StatusLine, 3, 0)
		return
	}

	text := a.StatusLine.GetText(false)
	requiredLines := wrappedLineCount(text, innerWidth)
	height := requiredLines + 2 // top and bottom border
	if height < 3 {
		height = 3
	}
	a.DetailsFlex.ResizeItem(a.StatusLine, height, 0)
}

// wrappedLineCount returns the number of visual lines after word wrapping.
func wrappedLineCount(text string, width int) int {
	if width <= 0 {
		return 1
	}
	totalLines := 0
	for _, line := range strings.Split(text, "\n") {
		if line == "" {
			totalLines++
			continue
		}
		wrapped := tview.WordWrap(line, width)
		if len(wrapped) == 0 {
			totalLines++
			continue
		}
		totalLines += len(wrapped)
	}
	if totalLines < 1 {
		return 1
	}
	return totalLines
}
