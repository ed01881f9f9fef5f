package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aventra/internal/api"
	"aventra/internal/board"
	"aventra/internal/config"
	"aventra/internal/models"
)

func newAddCmd(cfg *config.Config, flags *globalFlags) *cobra.Command {
	opts := &taskFlagOptions{}
	var filePath string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task to the board",
		RunE: func(cmd *cobra.Command, args []string) error {
			var requests []api.TaskCreateRequest
			if filePath != "" {
				reqs, err := requestsFromFile(filePath)
				if err != nil {
					return err
				}
				requests = reqs
			} else {
				req, err := buildCreateRequest(cmd, opts, args)
				if err != nil {
					return err
				}
				requests = []api.TaskCreateRequest{req}
			}

			return withBoard(cmd.Context(), cfg, flags, loadSkip, func(b *board.Reconciler) error {
				created, err := createAll(cmd.Context(), b, requests)
				if err != nil {
					return err
				}
				return writeCreated(created, filePath != "")
			})
		},
	}

	bindTaskFlags(cmd, opts, false)
	cmd.Flags().StringVarP(&filePath, "file", "f", "", "markdown file for batch add")
	return cmd
}

func requestsFromFile(filePath string) ([]api.TaskCreateRequest, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	frontMatter, items, err := parseMarkdown(string(data))
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("no list items found in %s", filePath)
	}

	defaults, err := frontMatterToRequest(frontMatter)
	if err != nil {
		return nil, err
	}
	requests := make([]api.TaskCreateRequest, 0, len(items))
	for _, item := range items {
		req := defaults
		req.Title = item
		requests = append(requests, req)
	}
	return requests, nil
}

// createAll stops at the first failure; earlier tasks stay created.
func createAll(ctx context.Context, b *board.Reconciler, requests []api.TaskCreateRequest) ([]models.Task, error) {
	created := make([]models.Task, 0, len(requests))
	for _, req := range requests {
		task, err := b.Create(ctx, req)
		if err != nil {
			if len(created) > 0 {
				return created, fmt.Errorf("created %d of %d tasks: %w", len(created), len(requests), err)
			}
			return nil, err
		}
		created = append(created, task)
	}
	return created, nil
}

func writeCreated(created []models.Task, batch bool) error {
	if structuredOutput() {
		if batch {
			return writeStructured(created)
		}
		return writeStructured(created[0])
	}
	for _, task := range created {
		if err := writePlain("%d\n", task.ID); err != nil {
			return err
		}
	}
	return nil
}
