/*
Package types defines the data structures shared by the kurator client.

# Data Points

DataPoint mirrors a record of the labeling service: the original config
(before_edit), the edited config (after_edit), the human change instruction
and an optional note. The id is nil until the server has persisted the
record. Server-managed fields (edited, created_at, ...) are decoded for
display and never sent back.

# Request Bodies

Each endpoint has a dedicated request struct whose JSON tags match the wire
contract exactly:
  - SuggestInstructionRequest: {before, after}
  - SuggestConfigRequest: {before, change_instruction}
  - ValidateRequest: {before, after}
  - AddDataPointRequest: {id, username, before_edit, after_edit,
    human_change_instruction, note}

# Validation

The validate endpoint answers with optional keys. The client decodes that
shape once into Validation, a tagged variant with three cases:

	ValidationValid    no error reported
	ValidationInvalid  BeforeError and/or AfterError set
	ValidationFailed   the server validator itself failed

# Journal

JournalEntry is one row of the local request journal.
*/
package types
