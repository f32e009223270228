package controller

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/kurator/kurator/internal/buffer"
	"github.com/kurator/kurator/internal/config"
	"github.com/kurator/kurator/internal/types"
)

// Buffer names
const (
	BufferOriginal    = "original"
	BufferModified    = "modified"
	BufferInstruction = "instruction"
	BufferNote        = "note"
)

var (
	// ErrPrecondition is returned when a handler refuses to run on the current input
	ErrPrecondition = errors.New("precondition not met")
	// ErrBusy is returned when another handler holds an editor group this one needs
	ErrBusy = errors.New("another action is already in progress")
	// ErrNoSelection is returned when an action needs a selected, persisted data point
	ErrNoSelection = errors.New("data point id not found")
	// ErrDeclined is returned when the user answered no to a confirmation
	ErrDeclined = errors.New("declined by user")
	// ErrStaleOption is returned when a selector option no longer matches the cache
	ErrStaleOption = errors.New("data point list changed, reopen the selector")
)

// API is the labeling service as seen by the controller
type API interface {
	SuggestInstruction(ctx context.Context, before, after string) (string, error)
	SuggestConfig(ctx context.Context, before, instruction string) (string, error)
	ListDataPoints(ctx context.Context) ([]types.DataPoint, error)
	ValidateConfigs(ctx context.Context, before, after string) (types.Validation, error)
	AddDataPoint(ctx context.Context, req types.AddDataPointRequest) error
	DeleteDataPoint(ctx context.Context, id int64) error
}

// Prompter shows dialogs to the operator
type Prompter interface {
	// Alert shows a short message
	Alert(message string)
	// ShowError shows a rich error dialog
	ShowError(title, body string)
	// Confirm asks a yes/no question; false on "no" or when ctx ends
	Confirm(ctx context.Context, message string) bool
}

// Indicator is the busy indicator shown while a request is in flight
type Indicator interface {
	Busy()
	Idle()
}

// Options configures a Controller
type Options struct {
	API       API
	Prompter  Prompter
	Indicator Indicator
	Username  string
	Logger    *slog.Logger
}

// Controller owns the editor buffers, the data point cache and the selection,
// and implements every user action against the labeling service.
// It is created once per session and shared by the front ends.
type Controller struct {
	api       API
	prompter  Prompter
	indicator Indicator
	username  string
	logger    *slog.Logger

	Original    *buffer.Buffer
	Modified    *buffer.Buffer
	Instruction *buffer.Buffer
	Note        *buffer.Buffer

	mu       sync.RWMutex
	points   []types.DataPoint
	selected int

	locks *groupLocks
}

// New creates a controller with empty buffers and no data points
func New(opts Options) *Controller {
	username := opts.Username
	if username == "" {
		username = config.DefaultUsername
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	indicator := opts.Indicator
	if indicator == nil {
		indicator = noopIndicator{}
	}

	return &Controller{
		api:         opts.API,
		prompter:    opts.Prompter,
		indicator:   indicator,
		username:    username,
		logger:      logger,
		Original:    buffer.New(BufferOriginal, ""),
		Modified:    buffer.New(BufferModified, ""),
		Instruction: buffer.New(BufferInstruction, ""),
		Note:        buffer.New(BufferNote, ""),
		selected:    NoSelection,
		locks:       newGroupLocks(),
	}
}

// Buffers returns the four buffers in display order
func (c *Controller) Buffers() []*buffer.Buffer {
	return []*buffer.Buffer{c.Original, c.Modified, c.Instruction, c.Note}
}

// busy shows the indicator and returns the function hiding it
func (c *Controller) busy() func() {
	c.indicator.Busy()
	return c.indicator.Idle
}

// acquire try-locks the given editor groups, alerting when one is taken
func (c *Controller) acquire(groups ...group) (func(), error) {
	release, ok := c.locks.tryAcquire(groups...)
	if !ok {
		c.prompter.Alert(MsgBusy)
		return nil, ErrBusy
	}
	return release, nil
}

type noopIndicator struct{}

func (noopIndicator) Busy() {}
func (noopIndicator) Idle() {}
