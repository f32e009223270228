package journal

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Stats aggregates the journal entries of one operation
type Stats struct {
	Operation     string
	Method        string
	TotalCalls    int
	SuccessCount  int
	ErrorCount    int
	NetworkErrors int // no response: timeouts, cancels, refused connections (status code 0)
	AvgDurationMs float64
	MinDurationMs int64
	MaxDurationMs int64
	StatusCodes   map[int]int
	LastCalled    time.Time
}

// SuccessRate returns the share of 2xx calls in percent
func (s Stats) SuccessRate() float64 {
	if s.TotalCalls == 0 {
		return 0
	}
	return float64(s.SuccessCount) * 100 / float64(s.TotalCalls)
}

// StatsPerOperation returns one aggregate per operation, most recently called first
func (m *Manager) StatsPerOperation() ([]Stats, error) {
	query := `
		WITH status_codes_agg AS (
			SELECT
				operation,
				json_group_object(CAST(status_code AS TEXT), count) as status_codes_json
			FROM (
				SELECT operation, status_code, COUNT(*) as count
				FROM journal
				GROUP BY operation, status_code
			)
			GROUP BY operation
		)
		SELECT
			j.operation,
			MAX(j.method),
			COUNT(*) as total_calls,
			SUM(CASE WHEN j.status_code >= 200 AND j.status_code < 300 THEN 1 ELSE 0 END) as success_count,
			SUM(CASE WHEN j.status_code >= 400 THEN 1 ELSE 0 END) as error_count,
			SUM(CASE WHEN j.status_code = 0 THEN 1 ELSE 0 END) as network_errors,
			AVG(j.duration_ms) as avg_duration,
			MIN(j.duration_ms) as min_duration,
			MAX(j.duration_ms) as max_duration,
			MAX(j.timestamp) as last_called,
			COALESCE(s.status_codes_json, '{}') as status_codes_json
		FROM journal j
		LEFT JOIN status_codes_agg s ON j.operation = s.operation
		GROUP BY j.operation
		ORDER BY last_called DESC
	`

	rows, err := m.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to get journal stats: %w", err)
	}
	defer rows.Close()

	var statsList []Stats
	for rows.Next() {
		var s Stats
		var lastCalled string
		var statusCodesJSON string

		err := rows.Scan(
			&s.Operation,
			&s.Method,
			&s.TotalCalls,
			&s.SuccessCount,
			&s.ErrorCount,
			&s.NetworkErrors,
			&s.AvgDurationMs,
			&s.MinDurationMs,
			&s.MaxDurationMs,
			&lastCalled,
			&statusCodesJSON,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal stats: %w", err)
		}

		if parsed, err := time.ParseInLocation(timestampLayout, lastCalled, time.Local); err == nil {
			s.LastCalled = parsed
		}

		s.StatusCodes, err = parseStatusCodes(statusCodesJSON)
		if err != nil {
			return nil, err
		}

		statsList = append(statsList, s)
	}

	return statsList, rows.Err()
}

func parseStatusCodes(raw string) (map[int]int, error) {
	codes := make(map[int]int)
	if raw == "{}" {
		return codes, nil
	}

	var byText map[string]int
	if err := json.Unmarshal([]byte(raw), &byText); err != nil {
		return nil, fmt.Errorf("failed to unmarshal status codes: %w", err)
	}
	for text, count := range byText {
		if code, err := strconv.Atoi(text); err == nil {
			codes[code] = count
		}
	}
	return codes, nil
}
