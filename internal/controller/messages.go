package controller

// User-facing dialog texts
const (
	MsgBusy = "Another action is already in progress."

	MsgMakeChangesFirst      = "Please make some changes first."
	MsgWriteInstructionFirst = "Please write change instruction first."
	MsgConfigsIdentical      = "The original and modified configs are the same. Please make a change."
	MsgGenerateInstruction   = "Please generate a change instruction."
	MsgIDNotFound            = "Error: data point id not found."
	MsgConfirmEdit           = "Are you sure you want to edit this data point? ID: %d"
	MsgConfirmDelete         = "Are you sure you want to delete this data point?"
	MsgConfirmDeleteAgain    = "Are you really sure?"

	MsgSubmitted = "Submitted!"
	MsgEdited    = "Edited!"
	MsgDeleted   = "Deleted!"
	MsgValid     = "Config(s) are valid."

	MsgErrorPlaceholder = "Error: %s"
	MsgLoadFailed       = "Error loading data points: %s"
	MsgValidateFailed   = "Error while validating configs: %s"
	MsgSubmitFailed     = "Error submitting: %s"
	MsgDeleteFailed     = "Error deleting: %s"

	TitleInvalid          = "Config(s) are invalid"
	TitleValidationFailed = "Unable to validate configurations"

	MsgInvalidBody          = "Config(s) are invalid. Error:\n\nOriginal Config:\n%s\n\nModified Config:\n%s"
	MsgValidationFailedBody = "Unable to validate configurations. The issue has been logged on the server and will be fixed shortly.\nPlease submit your data point anyway."

	// ValidPlaceholder stands in for the side of an invalid pair that has no error
	ValidPlaceholder = "Valid"
)
