package controller

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kurator/kurator/internal/api"
	"github.com/kurator/kurator/internal/types"
)

// NoSelection is the selection index when no data point is selected
const NoSelection = -1

// SentinelLabel is the label of the "select nothing" option
const SentinelLabel = "Select a data point"

// Option is one entry of the data point selector
type Option struct {
	Index int // NoSelection for the sentinel
	Label string
	Point *types.DataPoint
}

// Options returns the sentinel followed by one option per cached data point
func (c *Controller) Options() []Option {
	c.mu.RLock()
	defer c.mu.RUnlock()

	options := make([]Option, 0, len(c.points)+1)
	options = append(options, Option{Index: NoSelection, Label: SentinelLabel})
	for i := range c.points {
		point := c.points[i]
		options = append(options, Option{
			Index: i,
			Label: strconv.Itoa(i+1) + " - " + point.Username,
			Point: &point,
		})
	}
	return options
}

// Points returns a copy of the cached data points
func (c *Controller) Points() []types.DataPoint {
	c.mu.RLock()
	defer c.mu.RUnlock()

	points := make([]types.DataPoint, len(c.points))
	copy(points, c.points)
	return points
}

// Selected returns the selected index or NoSelection
func (c *Controller) Selected() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.selected
}

// SelectedPoint returns the selected data point, if any
func (c *Controller) SelectedPoint() (types.DataPoint, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.selected < 0 || c.selected >= len(c.points) {
		return types.DataPoint{}, false
	}
	return c.points[c.selected], true
}

// IndexOf returns the cache index of the data point with the given id
func (c *Controller) IndexOf(id int64) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i, point := range c.points {
		if point.HasID() && *point.ID == id {
			return i, true
		}
	}
	return NoSelection, false
}

// Select makes index the current selection. An in-range index loads the
// data point into the four buffers, NoSelection clears the selection and
// leaves the buffers alone, anything else is ignored.
func (c *Controller) Select(index int) error {
	release, err := c.acquire(allGroups...)
	if err != nil {
		return err
	}
	defer release()

	c.selectIndex(index)
	return nil
}

// SelectOption selects the data point an option was built from. The option
// may come from an older Options snapshot: persisted points are looked up by
// id, others must still sit at the same index with the same content.
func (c *Controller) SelectOption(option Option) error {
	release, err := c.acquire(allGroups...)
	if err != nil {
		return err
	}
	defer release()

	if option.Point == nil {
		c.selectIndex(NoSelection)
		return nil
	}

	index, ok := c.resolve(*option.Point, option.Index)
	if !ok {
		return ErrStaleOption
	}
	c.selectIndex(index)
	return nil
}

func (c *Controller) resolve(point types.DataPoint, index int) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if point.HasID() {
		for i, candidate := range c.points {
			if candidate.HasID() && *candidate.ID == *point.ID {
				return i, true
			}
		}
		return NoSelection, false
	}

	if index < 0 || index >= len(c.points) {
		return NoSelection, false
	}
	candidate := c.points[index]
	if candidate.HasID() || candidate.Username != point.Username ||
		candidate.BeforeEdit != point.BeforeEdit || candidate.AfterEdit != point.AfterEdit {
		return NoSelection, false
	}
	return index, true
}

// Reload fetches the data point list and restores the selection
func (c *Controller) Reload(ctx context.Context) error {
	release, err := c.acquire(allGroups...)
	if err != nil {
		return err
	}
	defer release()

	done := c.busy()
	defer done()

	return c.reload(ctx)
}

// reload expects the caller to hold every group
func (c *Controller) reload(ctx context.Context) error {
	points, err := c.api.ListDataPoints(ctx)
	if err != nil {
		c.logger.Warn("failed to load data points", "error", err)
		c.prompter.Alert(fmt.Sprintf(MsgLoadFailed, api.Reason(err)))
		return fmt.Errorf("failed to load data points: %w", err)
	}

	c.mu.Lock()
	previous := c.selected
	c.points = points
	c.mu.Unlock()

	c.selectIndex(restoreIndex(previous, len(points)))

	c.logger.Debug("data points loaded", "count", len(points), "selected", c.Selected())
	return nil
}

// restoreIndex keeps the previous index when it is still in range,
// otherwise falls back to the first record, or none for an empty list
func restoreIndex(previous, count int) int {
	switch {
	case count == 0:
		return NoSelection
	case previous >= 0 && previous < count:
		return previous
	default:
		return 0
	}
}

func (c *Controller) selectIndex(index int) {
	c.mu.Lock()
	if index == NoSelection {
		c.selected = NoSelection
		c.mu.Unlock()
		return
	}
	if index < 0 || index >= len(c.points) {
		c.mu.Unlock()
		return
	}
	c.selected = index
	point := c.points[index]
	c.mu.Unlock()

	c.Original.Replace(point.BeforeEdit)
	c.Modified.Replace(point.AfterEdit)
	c.Instruction.Replace(point.HumanChangeInstruction)
	c.Note.Replace(point.Note)
}
