package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"aventra/internal/api"
	"aventra/internal/models"
)

var listItemRegex = regexp.MustCompile(`^\s*[-*]\s+(.*)$`)

func parseMarkdown(input string) (map[string]any, []string, error) {
	frontMatter := map[string]any{}
	content := input

	lines := strings.Split(input, "\n")
	if len(lines) >= 3 && strings.TrimSpace(lines[0]) == "---" {
		end := -1
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				end = i
				break
			}
		}
		if end == -1 {
			return nil, nil, fmt.Errorf("front matter not closed")
		}
		frontText := strings.Join(lines[1:end], "\n")
		if err := yaml.Unmarshal([]byte(frontText), &frontMatter); err != nil {
			return nil, nil, err
		}
		content = strings.Join(lines[end+1:], "\n")
	}

	items := []string{}
	for _, line := range strings.Split(content, "\n") {
		match := listItemRegex.FindStringSubmatch(line)
		if len(match) == 2 {
			item := strings.TrimSpace(match[1])
			if item != "" {
				items = append(items, item)
			}
		}
	}

	return frontMatter, items, nil
}

// frontMatterToRequest reads the defaults shared by every list item.
func frontMatterToRequest(frontMatter map[string]any) (api.TaskCreateRequest, error) {
	req := api.TaskCreateRequest{}

	if value, ok := frontMatter["priority"].(string); ok {
		priority, err := models.ParsePriority(value)
		if err != nil {
			return req, fmt.Errorf("front matter priority: %w", err)
		}
		req.Priority = priority
	}
	if value, ok := frontMatter["status"].(string); ok {
		req.Status = value
	}
	if value, ok := frontMatter["description"].(string); ok {
		req.Description = &value
	}
	if value, ok := frontMatter["assignee"].(string); ok {
		req.Assignee = &value
	}
	if value, ok := frontMatter["hours"]; ok {
		hours, err := toFloat(value)
		if err != nil {
			return req, fmt.Errorf("front matter hours: %w", err)
		}
		req.EstimatedHours = &hours
	}
	if value, ok := frontMatter["project"]; ok {
		id, err := toInt64(value)
		if err != nil {
			return req, fmt.Errorf("front matter project: %w", err)
		}
		req.ProjectID = &id
	}
	if value, ok := frontMatter["due"]; ok {
		due, err := toDate(value)
		if err != nil {
			return req, fmt.Errorf("front matter due: %w", err)
		}
		req.DueDate = &due
	}

	return req, nil
}

func toFloat(value any) (float64, error) {
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case float64:
		return v, nil
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	}
	return 0, fmt.Errorf("unsupported value %v", value)
}

func toInt64(value any) (int64, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int64:
		return v, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	}
	return 0, fmt.Errorf("unsupported value %v", value)
}

// toDate accepts both quoted strings and YAML timestamps.
func toDate(value any) (models.Date, error) {
	switch v := value.(type) {
	case string:
		return models.ParseDate(v)
	case interface{ Format(string) string }:
		return models.ParseDate(v.Format("2006-01-02"))
	}
	return models.Date{}, fmt.Errorf("unsupported value %v", value)
}
