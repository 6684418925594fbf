package domain

import (
	"slices"
	"strings"
)

// Identifier conventions for info modals.
const (
	InfoLabel         = "i"
	ModalPrefix       = "modal-"
	ModalClosePrefix  = "modal-close-"
	ResetDefaultLabel = "reset to default options"
)

// ModalID returns the modal identifier opened by the info button id.
func ModalID(id string) string { return ModalPrefix + id }

// ModalCloseID returns the close element identifier of the info button id.
func ModalCloseID(id string) string { return ModalClosePrefix + id }

// ModalView is a panel that can be shown and hidden.
type ModalView interface {
	Show()
	Hide()
	Visible() bool
}

// Modals tracks the info modals and their visibility.
type Modals struct {
	views map[string]ModalView
}

func NewModals() *Modals {
	return &Modals{views: make(map[string]ModalView)}
}

// Register binds the modal opened by info button id.
func (m *Modals) Register(id string, view ModalView) {
	m.views[ModalID(id)] = view
}

// Open shows the modal for info button id. It returns false when no such
// modal is registered.
func (m *Modals) Open(id string) bool {
	view, ok := m.views[ModalID(id)]
	if !ok {
		return false
	}
	view.Show()
	return true
}

// Click handles a click whose target is the given element id. A close
// element hides its own modal, and a click on the modal backdrop itself hides
// that modal. Any other target is ignored. It returns true when a modal was
// hidden.
func (m *Modals) Click(target string) bool {
	var modalID string
	switch {
	case strings.HasPrefix(target, ModalClosePrefix):
		modalID = ModalID(strings.TrimPrefix(target, ModalClosePrefix))
	case strings.HasPrefix(target, ModalPrefix):
		modalID = target
	default:
		return false
	}
	view, ok := m.views[modalID]
	if !ok || !view.Visible() {
		return false
	}
	view.Hide()
	return true
}

// Visible reports whether the modal for info button id is shown.
func (m *Modals) Visible(id string) bool {
	view, ok := m.views[ModalID(id)]
	return ok && view.Visible()
}

// OpenIDs returns the info ids of the visible modals, sorted.
func (m *Modals) OpenIDs() []string {
	var ids []string
	for modalID, view := range m.views {
		if view.Visible() {
			ids = append(ids, strings.TrimPrefix(modalID, ModalPrefix))
		}
	}
	slices.Sort(ids)
	return ids
}

// MemoryModal is an in-memory ModalView.
type MemoryModal struct {
	visible bool
}

func (v *MemoryModal) Show()         { v.visible = true }
func (v *MemoryModal) Hide()         { v.visible = false }
func (v *MemoryModal) Visible() bool { return v.visible }

// InfoTopic is the content of one info modal.
type InfoTopic struct {
	ID    string
	Title string
	Body  string
}

// InfoTopics returns the built-in info topics in display order.
func InfoTopics() []InfoTopic {
	return []InfoTopic{
		{
			ID:    "format",
			Title: "Output format",
			Body:  "Format flag handed to the pipeline script for the reads it writes.",
		},
		{
			ID:    "dir",
			Title: "Monitored directory",
			Body:  "Directory watched for new read files. The pipeline picks up every file that appears here.",
		},
		{
			ID:    "script",
			Title: "Pipeline script",
			Body:  "Either pick an existing script or an uploaded one. Only one source is used; the other label is greyed out.",
		},
		{
			ID:    "timeout",
			Title: "Timeout",
			Body:  "Stop monitoring after this long without new reads. Leave empty to monitor until stopped.",
		},
		{
			ID:    "sim",
			Title: "Simulation",
			Body: "Replay reads from a simulation directory instead of a sequencer.\n\n" +
				"Real-time simulation replays reads with their recorded timing, so the time between reads cannot be set. " +
				"Setting a time between reads disables real-time simulation.",
		},
	}
}
