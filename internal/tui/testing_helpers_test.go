package tui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kurator/kurator/internal/api"
	"github.com/kurator/kurator/internal/controller"
	"github.com/kurator/kurator/internal/keybinds"
	"github.com/kurator/kurator/internal/types"
)

// testBackend serves a fixed data point list and records every request
type testBackend struct {
	mu       sync.Mutex
	points   []types.DataPoint
	requests []*http.Request
	bodies   []map[string]any
}

func (b *testBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	json.Unmarshal(raw, &body)

	b.mu.Lock()
	b.requests = append(b.requests, r)
	b.bodies = append(b.bodies, body)
	points := b.points
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case api.PathListDataPoints:
		json.NewEncoder(w).Encode(points)
	case api.PathValidateConfigs:
		io.WriteString(w, `{}`)
	case api.PathSuggestInstruction:
		io.WriteString(w, `"rename the service"`)
	default:
		io.WriteString(w, `"ok"`)
	}
}

// paths returns the request paths (with query) in arrival order
func (b *testBackend) paths() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	paths := make([]string, 0, len(b.requests))
	for _, r := range b.requests {
		path := r.URL.Path
		if r.URL.RawQuery != "" {
			path += "?" + r.URL.RawQuery
		}
		paths = append(paths, path)
	}
	return paths
}

// harness drives a Model the way tea.Program does: commands run on their
// own goroutine while messages they send are applied on the test goroutine
type harness struct {
	t       *testing.T
	m       *Model
	backend *testBackend
	sent    chan tea.Msg
	answers []string
}

func newHarness(t *testing.T, points ...types.DataPoint) *harness {
	t.Helper()

	backend := &testBackend{points: points}
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.Options{BaseURL: server.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	sent := make(chan tea.Msg, 64)
	bridge := NewPrompter()
	bridge.send = func(msg tea.Msg) { sent <- msg }

	ctrl := controller.New(controller.Options{
		API:       client,
		Prompter:  bridge,
		Indicator: bridge,
	})

	m := New(context.Background(), ctrl, Options{
		Keybinds: keybinds.NewDefaultRegistry(),
		BaseURL:  server.URL,
	})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	return &harness{t: t, m: m, backend: backend, sent: sent}
}

// press sends one key to the model and runs the resulting command, if any
func (h *harness) press(key string) {
	h.t.Helper()
	_, cmd := h.m.Update(keyMsg(key))
	if cmd != nil {
		h.run(cmd)
	}
}

// typeText sends one key press per rune
func (h *harness) typeText(text string) {
	h.t.Helper()
	for _, r := range text {
		h.press(string(r))
	}
}

// run executes cmd, pumping messages sent meanwhile into Update.
// Confirmations are answered with the queued keys.
func (h *harness) run(cmd tea.Cmd) {
	h.t.Helper()

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	for {
		select {
		case msg := <-h.sent:
			h.apply(msg)
		case msg := <-done:
			h.drain()
			if msg != nil && !isQuit(msg) {
				h.apply(msg)
			}
			return
		case <-time.After(3 * time.Second):
			h.t.Fatal("Command did not finish")
		}
	}
}

func (h *harness) apply(msg tea.Msg) {
	h.m.Update(msg)
	if h.m.confirm != nil && len(h.answers) > 0 {
		answer := h.answers[0]
		h.answers = h.answers[1:]
		h.m.Update(keyMsg(answer))
	}
}

func (h *harness) drain() {
	for {
		select {
		case msg := <-h.sent:
			h.apply(msg)
		default:
			return
		}
	}
}

// load performs the initial data point fetch
func (h *harness) load() {
	h.t.Helper()
	h.run(h.m.runAction("Load", h.m.ctrl.Reload))
}

// dialogBodies returns the queued dialog texts
func (h *harness) dialogBodies() []string {
	bodies := make([]string, 0, len(h.m.dialogs))
	for _, d := range h.m.dialogs {
		bodies = append(bodies, d.body)
	}
	return bodies
}

func isQuit(msg tea.Msg) bool {
	_, ok := msg.(tea.QuitMsg)
	return ok
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"esc":       tea.KeyEscape,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"backspace": tea.KeyBackspace,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	" ":         tea.KeySpace,
	"f1":        tea.KeyF1,
	"f2":        tea.KeyF2,
	"f5":        tea.KeyF5,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+e":    tea.KeyCtrlE,
	"ctrl+g":    tea.KeyCtrlG,
	"ctrl+l":    tea.KeyCtrlL,
	"ctrl+p":    tea.KeyCtrlP,
	"ctrl+q":    tea.KeyCtrlQ,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+s":    tea.KeyCtrlS,
	"ctrl+t":    tea.KeyCtrlT,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+x":    tea.KeyCtrlX,
	"ctrl+z":    tea.KeyCtrlZ,
}

func keyMsg(key string) tea.KeyMsg {
	if t, ok := namedKeys[key]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func point(id int64, username, before, after, instruction string) types.DataPoint {
	return types.DataPoint{
		ID:                     &id,
		Username:               username,
		BeforeEdit:             before,
		AfterEdit:              after,
		HumanChangeInstruction: instruction,
	}
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
