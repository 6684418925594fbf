package ui

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plumber-cd/ez-pipeline/internal/domain"
)

const sentinelSyncKey = tcell.KeyF63

type TestHarness struct {
	t      *testing.T
	app    *App
	screen tcell.SimulationScreen
	runErr chan error
	once   sync.Once
}

func NewTestHarness(t *testing.T) *TestHarness {
	t.Helper()
	return NewTestHarnessWithProfile(t, domain.FactoryProfile())
}

func NewTestHarnessWithProfile(t *testing.T, profile domain.Profile) *TestHarness {
	t.Helper()

	app, err := New(profile, "", zap.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init simulation screen: %v", err)
	}
	screen.SetSize(100, 30)
	app.TviewApp.SetScreen(screen)

	h := &TestHarness{
		t:      t,
		app:    app,
		screen: screen,
		runErr: make(chan error, 1),
	}
	t.Cleanup(h.Close)

	go func() {
		h.runErr <- app.Run()
	}()

	h.WaitForDraw()
	return h
}

func (h *TestHarness) Close() {
	h.once.Do(func() {
		h.app.Stop()
		select {
		case err := <-h.runErr:
			if err != nil {
				h.t.Fatalf("app run failed: %v", err)
			}
		case <-time.After(2 * time.Second):
		}
	})
}

func (h *TestHarness) WaitForDraw() {
	done := make(chan struct{})
	h.app.TviewApp.QueueUpdateDraw(func() {
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timed out waiting for draw")
	}
	h.sync()
}

// Do runs fn on the UI goroutine and waits for the following redraw.
func (h *TestHarness) Do(fn func(a *App)) {
	h.t.Helper()
	done := make(chan struct{})
	h.app.TviewApp.QueueUpdateDraw(func() {
		fn(h.app)
		close(done)
	})
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timed out waiting for update")
	}
	h.sync()
}

// sync waits until every event injected so far has been processed and drawn.
func (h *TestHarness) sync() {
	h.t.Helper()
	armed := make(chan struct{})
	done := make(chan struct{})
	h.app.TviewApp.QueueUpdate(func() {
		h.app.SentinelCh = done
		close(armed)
	})
	select {
	case <-armed:
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timed out arming sentinel")
	}
	h.screen.InjectKey(sentinelSyncKey, 0, tcell.ModNone)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timed out waiting for sync")
	}
	// The sentinel event triggers one more draw; queue behind it.
	drawn := make(chan struct{})
	h.app.TviewApp.QueueUpdateDraw(func() { close(drawn) })
	select {
	case <-drawn:
	case <-time.After(2 * time.Second):
		h.t.Fatalf("timed out waiting for redraw")
	}
}

func (h *TestHarness) PressKey(key tcell.Key, r rune, mod tcell.ModMask) {
	h.t.Helper()
	h.screen.InjectKey(key, r, mod)
	h.sync()
}

func (h *TestHarness) PressEnter() {
	h.PressKey(tcell.KeyEnter, 0, tcell.ModNone)
}

func (h *TestHarness) PressEscape() {
	h.PressKey(tcell.KeyEscape, 0, tcell.ModNone)
}

func (h *TestHarness) PressTab() {
	h.PressKey(tcell.KeyTab, 0, tcell.ModNone)
}

func (h *TestHarness) PressCtrl(r rune) {
	h.t.Helper()
	switch r {
	case 'c', 'C':
		h.PressKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	case 'p', 'P':
		h.PressKey(tcell.KeyCtrlP, 0, tcell.ModNone)
	case 'r', 'R':
		h.PressKey(tcell.KeyCtrlR, 0, tcell.ModNone)
	case 't', 'T':
		h.PressKey(tcell.KeyCtrlT, 0, tcell.ModNone)
	default:
		h.t.Fatalf("unsupported ctrl key: %q", r)
	}
}

// ClickAt presses and releases the left mouse button at x, y.
func (h *TestHarness) ClickAt(x, y int) {
	h.t.Helper()
	h.screen.InjectMouse(x, y, tcell.Button1, tcell.ModNone)
	h.screen.InjectMouse(x, y, tcell.ButtonNone, tcell.ModNone)
	h.sync()
}

func (h *TestHarness) WaitForExit(timeout time.Duration) error {
	select {
	case err := <-h.runErr:
		return err
	case <-time.After(timeout):
		return fmt.Errorf("timeout waiting for app exit")
	}
}

func (h *TestHarness) GetScreenText() string {
	cells, width, height := h.screen.GetContents()
	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			cell := cells[row*width+col]
			if len(cell.Runes) > 0 && cell.Runes[0] != 0 {
				sb.WriteRune(cell.Runes[0])
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteRune('\n')
	}
	return sb.String()
}

func (h *TestHarness) DumpScreen() {
	h.t.Logf("\n%s", h.GetScreenText())
}

func (h *TestHarness) AssertScreenContains(substr string) {
	h.t.Helper()
	text := h.GetScreenText()
	if !strings.Contains(text, substr) {
		h.DumpScreen()
		h.t.Fatalf("screen does not contain %q", substr)
	}
}

func (h *TestHarness) AssertScreenNotContains(substr string) {
	h.t.Helper()
	text := h.GetScreenText()
	if strings.Contains(text, substr) {
		h.DumpScreen()
		h.t.Fatalf("screen unexpectedly contains %q", substr)
	}
}
