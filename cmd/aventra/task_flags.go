package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aventra/internal/api"
	"aventra/internal/board"
	"aventra/internal/models"
)

type taskFlagOptions struct {
	title       string
	description string
	priority    string
	status      string
	hours       float64
	due         string
	projectID   int64
	assignee    string
}

func bindTaskFlags(cmd *cobra.Command, opts *taskFlagOptions, withTitle bool) {
	if withTitle {
		cmd.Flags().StringVar(&opts.title, "title", "", "task title")
	}
	cmd.Flags().StringVarP(&opts.description, "description", "d", "", "task description")
	cmd.Flags().StringVarP(&opts.priority, "priority", "p", "", "priority ("+strings.Join(models.PriorityStrings(), ", ")+")")
	cmd.Flags().StringVarP(&opts.status, "status", "s", "", "initial status")
	cmd.Flags().Float64Var(&opts.hours, "hours", 0, "estimated hours")
	cmd.Flags().StringVar(&opts.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().Int64Var(&opts.projectID, "project", 0, "project id")
	cmd.Flags().StringVar(&opts.assignee, "assignee", "", "assignee")
}

func buildCreateRequest(cmd *cobra.Command, opts *taskFlagOptions, args []string) (api.TaskCreateRequest, error) {
	if len(args) == 0 {
		return api.TaskCreateRequest{}, errors.New("title is required")
	}

	req := api.TaskCreateRequest{
		Title:  strings.Join(args, " "),
		Status: opts.status,
	}
	if cmd.Flags().Changed("priority") {
		priority, err := parsePriorityFlag(opts.priority)
		if err != nil {
			return api.TaskCreateRequest{}, err
		}
		req.Priority = priority
	}
	if opts.description != "" {
		req.Description = &opts.description
	}
	if cmd.Flags().Changed("hours") {
		req.EstimatedHours = &opts.hours
	}
	if opts.due != "" {
		due, err := models.ParseDate(opts.due)
		if err != nil {
			return api.TaskCreateRequest{}, err
		}
		req.DueDate = &due
	}
	if cmd.Flags().Changed("project") {
		req.ProjectID = &opts.projectID
	}
	if opts.assignee != "" {
		req.Assignee = &opts.assignee
	}
	return req, nil
}

func buildUpdateRequest(cmd *cobra.Command, opts *taskFlagOptions) (api.TaskUpdateRequest, error) {
	req := api.TaskUpdateRequest{}
	flags := cmd.Flags()

	if flags.Changed("title") {
		req.Title = stringPtr(opts.title)
	}
	if flags.Changed("description") {
		req.Description = stringPtr(opts.description)
	}
	if flags.Changed("priority") {
		priority, err := parsePriorityFlag(opts.priority)
		if err != nil {
			return api.TaskUpdateRequest{}, err
		}
		req.Priority = &priority
	}
	if flags.Changed("status") {
		req.Status = stringPtr(opts.status)
	}
	if flags.Changed("hours") {
		hours := opts.hours
		req.EstimatedHours = &hours
	}
	if flags.Changed("due") {
		due, err := models.ParseDate(opts.due)
		if err != nil {
			return api.TaskUpdateRequest{}, err
		}
		req.DueDate = &due
	}
	if flags.Changed("project") {
		projectID := opts.projectID
		req.ProjectID = &projectID
	}
	if flags.Changed("assignee") {
		req.Assignee = stringPtr(opts.assignee)
	}

	if !req.HasFields() {
		return req, fmt.Errorf("nothing to update; pass at least one field flag")
	}
	return req, nil
}

func parsePriorityFlag(raw string) (models.Priority, error) {
	priority, err := models.ParsePriority(raw)
	if err != nil {
		return "", &board.ValidationError{Field: "priority", Message: err.Error()}
	}
	return priority, nil
}
