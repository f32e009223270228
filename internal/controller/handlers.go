package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/kurator/kurator/internal/api"
	"github.com/kurator/kurator/internal/types"
)

// ErrCancelled is returned when the in-flight request was cancelled by the user
var ErrCancelled = api.ErrCancelled

// Verdict is the outcome of a validation round
type Verdict int

const (
	// VerdictValid means both configs passed
	VerdictValid Verdict = iota
	// VerdictBlocked means at least one config is invalid
	VerdictBlocked
	// VerdictProceed means the service could not validate; submitting is still allowed
	VerdictProceed
)

func (v Verdict) String() string {
	switch v {
	case VerdictValid:
		return "valid"
	case VerdictBlocked:
		return "blocked"
	case VerdictProceed:
		return "proceed"
	}
	return "unknown"
}

// SuggestInstruction asks the service to describe the edit between the
// original and modified configs and writes the answer into the instruction buffer
func (c *Controller) SuggestInstruction(ctx context.Context) error {
	release, err := c.acquire(groupInstruction)
	if err != nil {
		return err
	}
	defer release()

	before := c.Original.Value()
	after := c.Modified.Value()
	if strings.TrimSpace(before) == strings.TrimSpace(after) {
		c.prompter.Alert(MsgMakeChangesFirst)
		return ErrPrecondition
	}

	done := c.busy()
	defer done()

	instruction, err := c.api.SuggestInstruction(ctx, before, after)
	if err != nil {
		c.logger.Warn("suggest instruction failed", "error", err)
		c.Instruction.Replace(fmt.Sprintf(MsgErrorPlaceholder, api.Reason(err)))
		return fmt.Errorf("failed to suggest instruction: %w", err)
	}

	c.Instruction.Replace(instruction)
	return nil
}

// SuggestConfig asks the service to apply the instruction to the original
// config and writes the answer into the modified buffer
func (c *Controller) SuggestConfig(ctx context.Context) error {
	release, err := c.acquire(groupModified)
	if err != nil {
		return err
	}
	defer release()

	instruction := c.Instruction.Value()
	if strings.TrimSpace(instruction) == "" {
		c.prompter.Alert(MsgWriteInstructionFirst)
		return ErrPrecondition
	}

	done := c.busy()
	defer done()

	config, err := c.api.SuggestConfig(ctx, c.Original.Value(), instruction)
	if err != nil {
		c.logger.Warn("suggest config failed", "error", err)
		c.Modified.Replace(fmt.Sprintf(MsgErrorPlaceholder, api.Reason(err)))
		return fmt.Errorf("failed to suggest config: %w", err)
	}

	c.Modified.Replace(config)
	return nil
}

// Validate sends both configs to the service and reports invalid results
// in a dialog. It returns no verdict when the request itself failed.
func (c *Controller) Validate(ctx context.Context) (Verdict, error) {
	done := c.busy()
	defer done()

	validation, err := c.api.ValidateConfigs(ctx, c.Original.Value(), c.Modified.Value())
	if err != nil {
		c.logger.Warn("validate configs failed", "error", err)
		c.prompter.Alert(fmt.Sprintf(MsgValidateFailed, api.Reason(err)))
		return VerdictBlocked, fmt.Errorf("failed to validate configs: %w", err)
	}

	switch validation.Kind {
	case types.ValidationInvalid:
		c.prompter.ShowError(TitleInvalid, invalidBody(validation))
		return VerdictBlocked, nil
	case types.ValidationFailed:
		c.logger.Warn("validation unavailable", "message", validation.Message)
		c.prompter.ShowError(TitleValidationFailed, MsgValidationFailedBody)
		return VerdictProceed, nil
	}
	return VerdictValid, nil
}

// CheckConfigs runs Validate and confirms a clean result to the user
func (c *Controller) CheckConfigs(ctx context.Context) (Verdict, error) {
	verdict, err := c.Validate(ctx)
	if err == nil && verdict == VerdictValid {
		c.prompter.Alert(MsgValid)
	}
	return verdict, err
}

func invalidBody(v types.Validation) string {
	before := v.BeforeError
	if before == "" {
		before = ValidPlaceholder
	}
	after := v.AfterError
	if after == "" {
		after = ValidPlaceholder
	}
	return fmt.Sprintf(MsgInvalidBody, before, after)
}

// Submit stores the buffers as a new data point, or overwrites the selected
// one when edit is set, then reloads the list
func (c *Controller) Submit(ctx context.Context, edit bool) error {
	release, err := c.acquire(allGroups...)
	if err != nil {
		return err
	}
	defer release()

	before := c.Original.Value()
	after := c.Modified.Value()
	if strings.TrimSpace(before) == strings.TrimSpace(after) {
		c.prompter.Alert(MsgConfigsIdentical)
		return ErrPrecondition
	}
	if c.Instruction.IsBlank() {
		c.prompter.Alert(MsgGenerateInstruction)
		return ErrPrecondition
	}

	var id *int64
	if edit {
		point, ok := c.SelectedPoint()
		if !ok || !point.HasID() {
			c.prompter.Alert(MsgIDNotFound)
			return ErrNoSelection
		}
		if !c.prompter.Confirm(ctx, fmt.Sprintf(MsgConfirmEdit, *point.ID)) {
			return ErrDeclined
		}
		selected := *point.ID
		id = &selected
	}

	done := c.busy()
	defer done()

	req := types.AddDataPointRequest{
		ID:                     id,
		Username:               c.username,
		BeforeEdit:             c.Original.Value(),
		AfterEdit:              c.Modified.Value(),
		HumanChangeInstruction: c.Instruction.Value(),
		Note:                   c.Note.Value(),
	}
	if err := c.api.AddDataPoint(ctx, req); err != nil {
		c.logger.Warn("submit failed", "edit", edit, "error", err)
		c.prompter.Alert(fmt.Sprintf(MsgSubmitFailed, api.Reason(err)))
		return fmt.Errorf("failed to submit data point: %w", err)
	}

	if edit {
		c.logger.Info("data point edited", "id", *id)
		c.prompter.Alert(MsgEdited)
	} else {
		c.logger.Info("data point submitted")
		c.prompter.Alert(MsgSubmitted)
	}

	return c.reload(ctx)
}

// Delete removes the selected data point after two confirmations
func (c *Controller) Delete(ctx context.Context) error {
	release, err := c.acquire(allGroups...)
	if err != nil {
		return err
	}
	defer release()

	if !c.prompter.Confirm(ctx, MsgConfirmDelete) {
		return ErrDeclined
	}
	if !c.prompter.Confirm(ctx, MsgConfirmDeleteAgain) {
		return ErrDeclined
	}

	point, ok := c.SelectedPoint()
	if !ok || !point.HasID() {
		c.prompter.Alert(MsgIDNotFound)
		return ErrNoSelection
	}

	done := c.busy()
	defer done()

	if err := c.api.DeleteDataPoint(ctx, *point.ID); err != nil {
		c.logger.Warn("delete failed", "id", *point.ID, "error", err)
		c.prompter.Alert(fmt.Sprintf(MsgDeleteFailed, api.Reason(err)))
		return fmt.Errorf("failed to delete data point %d: %w", *point.ID, err)
	}

	c.logger.Info("data point deleted", "id", *point.ID)
	c.prompter.Alert(MsgDeleted)

	return c.reload(ctx)
}
