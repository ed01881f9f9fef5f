package main

import (
	"fmt"
	"strconv"
	"strings"
)

// parseTaskID accepts "12" or "#12".
func parseTaskID(raw string) (int64, error) {
	value := strings.TrimPrefix(strings.TrimSpace(raw), "#")
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

func stringPtr(value string) *string {
	return &value
}
