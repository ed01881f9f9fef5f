package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority defines the allowed task priorities.
type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"

	DefaultPriority = PriorityMedium
)

var validPriorities = []Priority{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

func IsValidPriority(value Priority) bool {
	for _, p := range validPriorities {
		if p == value {
			return true
		}
	}
	return false
}

// ParsePriority resolves a case-insensitive priority name. Empty input yields
// the default priority.
func ParsePriority(raw string) (Priority, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return DefaultPriority, nil
	}
	for _, p := range validPriorities {
		if strings.EqualFold(string(p), value) {
			return p, nil
		}
	}
	return "", fmt.Errorf("invalid priority: %s", value)
}

func PriorityStrings() []string {
	out := make([]string, 0, len(validPriorities))
	for _, p := range validPriorities {
		out = append(out, string(p))
	}
	return out
}

func unmarshalJSON(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
