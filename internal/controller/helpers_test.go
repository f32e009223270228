package controller

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/kurator/kurator/internal/api"
	"github.com/kurator/kurator/internal/types"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// fakeBackend is a scripted labeling service
type fakeBackend struct {
	t        *testing.T
	mu       sync.Mutex
	requests []recordedRequest
	points   []types.DataPoint
	status   map[string]int
	bodies   map[string]string
}

func newFakeBackend(t *testing.T) *fakeBackend {
	return &fakeBackend{
		t:      t,
		status: make(map[string]int),
		bodies: make(map[string]string),
	}
}

func (b *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	var body map[string]any
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &body); err != nil {
			b.t.Errorf("Invalid request body %q: %v", raw, err)
		}
	}

	b.mu.Lock()
	b.requests = append(b.requests, recordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Query:  r.URL.RawQuery,
		Body:   body,
	})
	status, overridden := b.status[r.URL.Path]
	payload, scripted := b.bodies[r.URL.Path]
	points := b.points
	b.mu.Unlock()

	if overridden {
		w.WriteHeader(status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if scripted {
		io.WriteString(w, payload)
		return
	}

	switch r.URL.Path {
	case api.PathListDataPoints:
		json.NewEncoder(w).Encode(points)
	case api.PathValidateConfigs:
		io.WriteString(w, `{}`)
	default:
		io.WriteString(w, `"ok"`)
	}
}

func (b *fakeBackend) setPoints(points ...types.DataPoint) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.points = points
}

func (b *fakeBackend) fail(path string, status int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status[path] = status
}

func (b *fakeBackend) respond(path, body string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.bodies[path] = body
}

func (b *fakeBackend) calls(path string) []recordedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()

	var matched []recordedRequest
	for _, req := range b.requests {
		if req.Path == path {
			matched = append(matched, req)
		}
	}
	return matched
}

func (b *fakeBackend) total() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.requests)
}

// scriptedPrompter records dialogs and answers confirmations from a queue
type scriptedPrompter struct {
	mu       sync.Mutex
	alerts   []string
	dialogs  []string
	confirms []string
	answers  []bool
}

func (p *scriptedPrompter) Alert(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.alerts = append(p.alerts, message)
}

func (p *scriptedPrompter) ShowError(title, body string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.dialogs = append(p.dialogs, title+"\n"+body)
}

func (p *scriptedPrompter) Confirm(_ context.Context, message string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.confirms = append(p.confirms, message)
	if len(p.answers) == 0 {
		return false
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer
}

func (p *scriptedPrompter) lastAlert() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.alerts) == 0 {
		return ""
	}
	return p.alerts[len(p.alerts)-1]
}

type countingIndicator struct {
	mu    sync.Mutex
	busy  int
	idle  int
	depth int
}

func (i *countingIndicator) Busy() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.busy++
	i.depth++
}

func (i *countingIndicator) Idle() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.idle++
	i.depth--
}

type fixture struct {
	backend   *fakeBackend
	prompter  *scriptedPrompter
	indicator *countingIndicator
	ctrl      *Controller
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	backend := newFakeBackend(t)
	server := httptest.NewServer(backend)
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.Options{BaseURL: server.URL, Timeout: 2 * time.Second})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}

	prompter := &scriptedPrompter{}
	indicator := &countingIndicator{}
	ctrl := New(Options{
		API:       client,
		Prompter:  prompter,
		Indicator: indicator,
	})

	return &fixture{backend: backend, prompter: prompter, indicator: indicator, ctrl: ctrl}
}

func point(id int64, username, before, after, instruction, note string) types.DataPoint {
	return types.DataPoint{
		ID:                     &id,
		Username:               username,
		BeforeEdit:             before,
		AfterEdit:              after,
		HumanChangeInstruction: instruction,
		Note:                   note,
	}
}
