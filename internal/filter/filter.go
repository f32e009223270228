package filter

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jmespath/go-jmespath"
	"github.com/kurator/kurator/internal/types"
)

// Apply runs filter then query over a JSON document. Either may be empty.
// Filter narrows results (e.g. [?edited]), query selects fields (e.g. [].username).
func Apply(body string, filter string, query string) (string, error) {
	result := body

	if filter != "" {
		filtered, err := applyJMESPath(result, filter)
		if err != nil {
			return "", fmt.Errorf("failed to apply filter: %w", err)
		}
		result = filtered
	}

	if query != "" {
		queried, err := applyJMESPath(result, query)
		if err != nil {
			return "", fmt.Errorf("failed to apply query: %w", err)
		}
		result = queried
	}

	return result, nil
}

// Points encodes the data points as JSON and applies the query to them
func Points(points []types.DataPoint, query string) (string, error) {
	if points == nil {
		points = []types.DataPoint{}
	}
	data, err := json.MarshalIndent(points, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode data points: %w", err)
	}
	return Apply(string(data), "", query)
}

// applyJMESPath applies a JMESPath expression to a JSON string
func applyJMESPath(jsonStr string, expression string) (string, error) {
	var data interface{}
	if err := json.Unmarshal([]byte(jsonStr), &data); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}

	jp, err := jmespath.Compile(expression)
	if err != nil {
		return "", fmt.Errorf("invalid JMESPath expression '%s': %w", expression, err)
	}

	result, err := jp.Search(data)
	if err != nil {
		return "", fmt.Errorf("JMESPath search failed: %w", err)
	}

	if result == nil {
		return "null", nil
	}

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	return string(output), nil
}

// IsValidJMESPath checks if an expression is valid JMESPath syntax
func IsValidJMESPath(expression string) bool {
	_, err := jmespath.Compile(expression)
	return err == nil
}

// ByUsername keeps the data points labeled by username (case-insensitive)
func ByUsername(points []types.DataPoint, username string) []types.DataPoint {
	if username == "" {
		return points
	}

	var filtered []types.DataPoint
	for _, point := range points {
		if strings.EqualFold(point.Username, username) {
			filtered = append(filtered, point)
		}
	}
	return filtered
}

// ByTags keeps the data points carrying ANY of the given tags
func ByTags(points []types.DataPoint, tags []string) []types.DataPoint {
	if len(tags) == 0 {
		return points
	}

	var filtered []types.DataPoint
	for _, point := range points {
		if hasAnyTag(SplitTags(point.Tags), tags) {
			filtered = append(filtered, point)
		}
	}
	return filtered
}

// SplitTags splits the comma separated tag field of a data point
func SplitTags(raw string) []string {
	var tags []string
	for _, tag := range strings.Split(raw, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// AllTags returns the sorted unique tags across the data points
func AllTags(points []types.DataPoint) []string {
	tagSet := make(map[string]bool)
	for _, point := range points {
		for _, tag := range SplitTags(point.Tags) {
			tagSet[tag] = true
		}
	}

	tags := make([]string, 0, len(tagSet))
	for tag := range tagSet {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

func hasAnyTag(pointTags, filterTags []string) bool {
	for _, filterTag := range filterTags {
		for _, pointTag := range pointTags {
			if strings.EqualFold(pointTag, filterTag) {
				return true
			}
		}
	}
	return false
}
