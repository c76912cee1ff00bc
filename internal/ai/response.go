package ai

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// StripCodeFences removes markdown fences such as ```json ... ``` around a model answer.
func StripCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)

	if strings.HasPrefix(trimmed, "```") {
		if firstNewline := strings.Index(trimmed, "\n"); firstNewline != -1 {
			if lastFence := strings.LastIndex(trimmed, "```"); lastFence > firstNewline {
				return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
			}
		}
	}

	trimmed = strings.ReplaceAll(trimmed, "```json", "")
	trimmed = strings.ReplaceAll(trimmed, "```", "")
	return strings.TrimSpace(trimmed)
}

// ParseIndexList decodes a JSON array of non-negative indices. Integers, integral
// floats and numeric strings are accepted; other elements are skipped.
// Text around the outermost brackets is ignored.
func ParseIndexList(text string) ([]int, error) {
	cleaned := StripCodeFences(text)
	start := strings.Index(cleaned, "[")
	end := strings.LastIndex(cleaned, "]")
	if start == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON array in %q", ErrMalformedResponse, truncate(cleaned, 80))
	}

	var raw []any
	if err := json.Unmarshal([]byte(cleaned[start:end+1]), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	indices := make([]int, 0, len(raw))
	for _, item := range raw {
		switch v := item.(type) {
		case float64:
			if v >= 0 && v == math.Trunc(v) {
				indices = append(indices, int(v))
			}
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n >= 0 {
				indices = append(indices, n)
			}
		}
	}
	return indices, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
