package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kurator/kurator/internal/buffer"
	"github.com/kurator/kurator/internal/controller"
	"github.com/kurator/kurator/internal/filter"
	"github.com/kurator/kurator/internal/journal"
	"github.com/kurator/kurator/internal/session"
	"github.com/kurator/kurator/internal/textdiff"
	"github.com/kurator/kurator/internal/types"
	"gopkg.in/yaml.v3"
)

var (
	// ErrInvalidConfigs is returned by validate and submit when the service rejects a config
	ErrInvalidConfigs = errors.New("config(s) are invalid")
	// ErrNoJournal is returned by journal commands when journal_enabled is false
	ErrNoJournal = errors.New("request journal is disabled")
)

// Options configures a Runner
type Options struct {
	Out io.Writer // command output, defaults to os.Stdout
	Err io.Writer // dialogs and prompts, defaults to os.Stderr
	In  io.Reader // confirmation answers, defaults to os.Stdin

	// Yes answers every confirmation with "yes"
	Yes bool
	// Pick chooses a data point interactively when no id is given
	Pick func(options []controller.Option) (int, error)
}

// Runner executes headless commands with the controller used by the TUI
type Runner struct {
	ctrl    *controller.Controller
	journal *journal.Manager
	out     io.Writer
	pick    func(options []controller.Option) (int, error)
}

// NewRunner creates a runner for an opened session
func NewRunner(sess *session.Manager, opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Pick == nil {
		opts.Pick = PickDataPoint
	}

	prompter := newTerminalPrompter(opts.In, opts.Err, opts.Yes)
	return &Runner{
		ctrl:    sess.NewController(prompter, nil),
		journal: sess.Journal,
		out:     opts.Out,
		pick:    opts.Pick,
	}
}

// ListOptions controls the list command output
type ListOptions struct {
	Query    string // JMESPath expression applied to the JSON list
	JSON     bool
	YAML     bool
	Username string
	Tags     []string
}

// List prints the data points known to the service
func (r *Runner) List(ctx context.Context, opts ListOptions) error {
	if err := r.ctrl.Reload(ctx); err != nil {
		return err
	}

	points := r.ctrl.Points()
	if opts.Username != "" {
		points = filter.ByUsername(points, opts.Username)
	}
	if len(opts.Tags) > 0 {
		points = filter.ByTags(points, opts.Tags)
	}

	switch {
	case opts.Query != "" || opts.JSON:
		if opts.Query != "" && !filter.IsValidJMESPath(opts.Query) {
			return fmt.Errorf("invalid --query expression: %s", opts.Query)
		}
		out, err := filter.Points(points, opts.Query)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, out)
		return nil

	case opts.YAML:
		data, err := yaml.Marshal(points)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Fprint(r.out, string(data))
		return nil
	}

	if len(points) == 0 {
		fmt.Fprintln(r.out, "No data points")
		return nil
	}
	for i, p := range points {
		fmt.Fprintln(r.out, formatPoint(i, p))
	}
	if tags := filter.AllTags(points); len(tags) > 0 {
		fmt.Fprintf(r.out, "\nTags: %s\n", strings.Join(tags, ", "))
	}
	return nil
}

func formatPoint(i int, p types.DataPoint) string {
	parts := []string{fmt.Sprintf("%d - %s", i+1, p.Username)}
	if p.HasID() {
		parts = append(parts, fmt.Sprintf("id=%d", *p.ID))
	}
	if p.Edited {
		parts = append(parts, "edited")
	}
	if p.UpdatedAt != "" {
		parts = append(parts, p.UpdatedAt)
	}
	if instruction := strings.TrimSpace(p.HumanChangeInstruction); instruction != "" {
		if i := strings.IndexByte(instruction, '\n'); i >= 0 {
			instruction = instruction[:i]
		}
		parts = append(parts, instruction)
	}
	return strings.Join(parts, "  ")
}

// SuggestInstruction prints the instruction the service suggests for before -> after
func (r *Runner) SuggestInstruction(ctx context.Context, before, after string) error {
	r.ctrl.Original.Replace(before)
	r.ctrl.Modified.Replace(after)

	if err := r.ctrl.SuggestInstruction(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.ctrl.Instruction.Value())
	return nil
}

// SuggestConfig prints the config the service derives from before and instruction
func (r *Runner) SuggestConfig(ctx context.Context, before, instruction string) error {
	r.ctrl.Original.Replace(before)
	r.ctrl.Instruction.Replace(instruction)

	if err := r.ctrl.SuggestConfig(ctx); err != nil {
		return err
	}
	fmt.Fprintln(r.out, r.ctrl.Modified.Value())
	return nil
}

// Validate checks both configs with the service
func (r *Runner) Validate(ctx context.Context, before, after string) error {
	r.ctrl.Original.Replace(before)
	r.ctrl.Modified.Replace(after)

	verdict, err := r.ctrl.CheckConfigs(ctx)
	if err != nil {
		return err
	}
	if verdict == controller.VerdictBlocked {
		return ErrInvalidConfigs
	}
	return nil
}

// SubmitOptions holds the texts of a submission
type SubmitOptions struct {
	Before      string
	After       string
	Instruction string
	Note        string
	EditID      int64 // 0 creates a new data point
	Validate    bool  // validate first and stop on invalid configs
}

// Submit creates a data point, or updates EditID after confirmation.
// When editing, empty texts keep the stored values.
func (r *Runner) Submit(ctx context.Context, opts SubmitOptions) error {
	edit := opts.EditID != types.NoID
	if edit {
		if err := r.selectID(ctx, opts.EditID); err != nil {
			return err
		}
	}

	for _, field := range []struct {
		buf  *buffer.Buffer
		text string
	}{
		{r.ctrl.Original, opts.Before},
		{r.ctrl.Modified, opts.After},
		{r.ctrl.Instruction, opts.Instruction},
		{r.ctrl.Note, opts.Note},
	} {
		if edit && field.text == "" {
			continue
		}
		field.buf.Replace(field.text)
	}

	if opts.Validate {
		verdict, err := r.ctrl.Validate(ctx)
		if err != nil {
			return err
		}
		if verdict == controller.VerdictBlocked {
			return ErrInvalidConfigs
		}
	}

	return r.ctrl.Submit(ctx, edit)
}

// Delete removes a data point after two confirmations. Without an id the
// data point is picked interactively.
func (r *Runner) Delete(ctx context.Context, id int64) error {
	if id != types.NoID {
		if err := r.selectID(ctx, id); err != nil {
			return err
		}
		return r.ctrl.Delete(ctx)
	}

	if err := r.ctrl.Reload(ctx); err != nil {
		return err
	}
	options := r.ctrl.Options()[1:]
	if len(options) == 0 {
		return fmt.Errorf("no data points to delete")
	}
	index, err := r.pick(options)
	if err != nil {
		return err
	}
	if err := r.ctrl.Select(index); err != nil {
		return err
	}
	return r.ctrl.Delete(ctx)
}

// selectID loads the data points and selects the one with id
func (r *Runner) selectID(ctx context.Context, id int64) error {
	if err := r.ctrl.Reload(ctx); err != nil {
		return err
	}
	index, ok := r.ctrl.IndexOf(id)
	if !ok {
		return fmt.Errorf("data point %d not found", id)
	}
	return r.ctrl.Select(index)
}

// JournalOptions controls the journal command
type JournalOptions struct {
	Limit    int
	Failures bool
	Clear    bool
	Stats    bool
	JSON     bool
}

// Journal prints or clears the recorded API calls
func (r *Runner) Journal(opts JournalOptions) error {
	if r.journal == nil {
		return ErrNoJournal
	}

	if opts.Clear {
		if err := r.journal.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(r.out, "Journal cleared")
		return nil
	}

	if opts.Stats {
		return r.journalStats()
	}

	var entries []types.JournalEntry
	var err error
	if opts.Failures {
		entries, err = r.journal.Failures(opts.Limit)
	} else {
		entries, err = r.journal.List(opts.Limit)
	}
	if err != nil {
		return err
	}

	if opts.JSON {
		if entries == nil {
			entries = []types.JournalEntry{}
		}
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Fprintln(r.out, string(data))
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(r.out, "No requests recorded")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-6s %-28s %3d %6dms  %s  %s",
			e.Timestamp.Format("2006-01-02 15:04:05"), e.Method, e.Path, e.StatusCode, e.DurationMs, e.Operation, e.RequestID)
		if e.Error != "" {
			line += "  error: " + e.Error
		}
		fmt.Fprintln(r.out, line)
	}
	return nil
}

func (r *Runner) journalStats() error {
	stats, err := r.journal.StatsPerOperation()
	if err != nil {
		return err
	}
	if len(stats) == 0 {
		fmt.Fprintln(r.out, "No requests recorded")
		return nil
	}

	fmt.Fprintf(r.out, "%-22s %6s %8s %8s %9s %9s\n", "OPERATION", "CALLS", "SUCCESS", "NETWORK", "AVG(ms)", "MAX(ms)")
	for _, s := range stats {
		fmt.Fprintf(r.out, "%-22s %6d %7.1f%% %8d %9.0f %9d\n",
			s.Operation, s.TotalCalls, s.SuccessRate(), s.NetworkErrors, s.AvgDurationMs, s.MaxDurationMs)
	}
	return nil
}

// Diff prints the local line diff of before and after; it needs no service
func Diff(out io.Writer, before, after string) bool {
	lines := textdiff.Lines(before, after)
	if !textdiff.Changed(lines) {
		fmt.Fprintln(out, "No changes")
		return false
	}

	inserted, deleted := textdiff.Stats(lines)
	fmt.Fprint(out, textdiff.Unified(lines))
	fmt.Fprintf(out, "\n%d insertion(s), %d deletion(s)\n", inserted, deleted)
	return true
}

// ReadInput reads a command input: "-" is stdin, anything else a file path
func ReadInput(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
