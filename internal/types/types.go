package types

import "time"

// NoID marks a data point that has not been persisted yet.
const NoID int64 = 0

// DataPoint is one labeled example: an original config, the edited config,
// the natural-language instruction describing the edit and an optional note.
type DataPoint struct {
	ID                     *int64 `json:"id"`
	Username               string `json:"username"`
	BeforeEdit             string `json:"before_edit"`
	AfterEdit              string `json:"after_edit"`
	HumanChangeInstruction string `json:"human_change_instruction"`
	Note                   string `json:"note"`

	// Server-managed fields, decoded for display only
	GPT3ChangeInstruction string `json:"gpt3_change_instruction,omitempty"`
	Edited                bool   `json:"edited,omitempty"`
	Deleted               bool   `json:"deleted,omitempty"`
	CreatedAt             string `json:"created_at,omitempty"`
	UpdatedAt             string `json:"updated_at,omitempty"`
	Tags                  string `json:"tags,omitempty"`
}

// HasID reports whether the data point carries a persisted id
func (d DataPoint) HasID() bool {
	return d.ID != nil && *d.ID != NoID
}

// SuggestInstructionRequest is the body of POST /api/query_gpt3
type SuggestInstructionRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// SuggestConfigRequest is the body of POST /api/query_gpt3_new_config
type SuggestConfigRequest struct {
	Before            string `json:"before"`
	ChangeInstruction string `json:"change_instruction"`
}

// ValidateRequest is the body of POST /api/validate_configs
type ValidateRequest struct {
	Before string `json:"before"`
	After  string `json:"after"`
}

// AddDataPointRequest is the body of POST /api/add_data_point.
// A nil ID creates a new record, otherwise the record is updated.
type AddDataPointRequest struct {
	ID                     *int64 `json:"id"`
	Username               string `json:"username"`
	BeforeEdit             string `json:"before_edit"`
	AfterEdit              string `json:"after_edit"`
	HumanChangeInstruction string `json:"human_change_instruction"`
	Note                   string `json:"note"`
}

// ValidationKind discriminates the three outcomes of a validation call
type ValidationKind int

const (
	// ValidationValid means neither config reported an error
	ValidationValid ValidationKind = iota
	// ValidationInvalid means the original and/or modified config is invalid
	ValidationInvalid
	// ValidationFailed means the server could not run its validator
	ValidationFailed
)

func (k ValidationKind) String() string {
	switch k {
	case ValidationValid:
		return "valid"
	case ValidationInvalid:
		return "invalid"
	case ValidationFailed:
		return "validation_failed"
	}
	return "unknown"
}

// Validation is the decoded response of POST /api/validate_configs
type Validation struct {
	Kind        ValidationKind
	BeforeError string // set only when Kind == ValidationInvalid
	AfterError  string // set only when Kind == ValidationInvalid
	Message     string // server message when Kind == ValidationFailed
}

// JournalEntry records one API call made by the client
type JournalEntry struct {
	ID         int64     `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
	Operation  string    `json:"operation"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	DurationMs int64     `json:"duration_ms"`
	Error      string    `json:"error,omitempty"`
}
