package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"aventra/internal/api"
	"aventra/internal/board"
	"aventra/internal/models"
)

// errorHint adds guidance lines for errors matched by match. The first
// matching hint wins.
type errorHint struct {
	match func(error) bool
	lines []string
}

var errorHints = []errorHint{
	{match: board.IsValidation},
	{
		match: is(board.ErrTaskNotFound),
		lines: []string{"hint: run 'aventra board' to list the task ids for the current user."},
	},
	{
		match: is(board.ErrInvalidColumn),
		lines: []string{"hint: columns are " + strings.Join(models.ColumnStrings(), ", ") + "."},
	},
	{
		match: api.IsNotFound,
		lines: []string{"hint: verify AVENTRA_API_URL points to an Aventra API and that the task exists."},
	},
	{
		match: apiStatus(func(s int) bool { return s == http.StatusUnauthorized || s == http.StatusForbidden }),
		lines: []string{"hint: verify AVENTRA_API_TOKEN configuration."},
	},
	{
		match: apiStatus(func(s int) bool { return s == http.StatusConflict }),
		lines: []string{"hint: the task changed on the server; run 'aventra board' and retry."},
	},
	{
		match: apiStatus(func(s int) bool { return s >= http.StatusInternalServerError }),
		lines: []string{"hint: server returned an internal error; check server logs for details."},
	},
	{
		match: is(context.DeadlineExceeded),
		lines: []string{"hint: request timed out; check server health or increase AVENTRA_HTTP_TIMEOUT."},
	},
	{
		match: func(err error) bool {
			var netErr net.Error
			return errors.As(err, &netErr)
		},
		lines: []string{
			"hint: ensure the Aventra API is running at AVENTRA_API_URL.",
			"hint: you can increase AVENTRA_HTTP_TIMEOUT for slower environments.",
		},
	},
}

// formatCLIError renders err for stderr followed by any matching hints.
func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}
	lines := []string{err.Error()}
	for _, hint := range errorHints {
		if hint.match(err) {
			return append(lines, hint.lines...)
		}
	}
	return lines
}

func is(target error) func(error) bool {
	return func(err error) bool { return errors.Is(err, target) }
}

func apiStatus(match func(int) bool) func(error) bool {
	return func(err error) bool {
		var apiErr *api.APIError
		return errors.As(err, &apiErr) && match(apiErr.Status)
	}
}
