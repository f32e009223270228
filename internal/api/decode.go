package api

import (
	"encoding/json"
	"fmt"

	"github.com/kurator/kurator/internal/types"
)

// decodeText unwraps a JSON string body; anything else is used verbatim
func decodeText(body []byte) string {
	var s string
	if err := json.Unmarshal(body, &s); err == nil {
		return s
	}
	return string(body)
}

// decodeValidation turns the optional-key payload into the tagged variant.
// A key counts as present when its value is truthy (non-empty string,
// non-zero number, true, or any object/array); the service sends null for
// configs without error.
func decodeValidation(body []byte) (types.Validation, error) {
	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err != nil {
		return types.Validation{}, fmt.Errorf("failed to decode validation response: %w", err)
	}

	beforeErr, hasBefore := field(payload, "before_error")
	afterErr, hasAfter := field(payload, "after_error")
	if hasBefore || hasAfter {
		return types.Validation{
			Kind:        types.ValidationInvalid,
			BeforeError: beforeErr,
			AfterError:  afterErr,
		}, nil
	}

	if msg, ok := field(payload, "validation_error"); ok {
		return types.Validation{Kind: types.ValidationFailed, Message: msg}, nil
	}

	return types.Validation{Kind: types.ValidationValid}, nil
}

func field(payload map[string]any, key string) (string, bool) {
	v, ok := payload[key]
	if !ok || !truthy(v) {
		return "", false
	}
	if s, ok := v.(string); ok {
		return s, true
	}
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v), true
	}
	return string(data), true
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case string:
		return val != ""
	case bool:
		return val
	case float64:
		return val != 0
	}
	return true
}
