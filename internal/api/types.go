package api

import "strings"

// ErrorResponse covers both the plain {error, code} envelope and ASP.NET
// problem-details bodies.
type ErrorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code,omitempty"`
	Title  string `json:"title,omitempty"`
	Detail string `json:"detail,omitempty"`
}

func (r ErrorResponse) message() string {
	for _, candidate := range []string{r.Error, r.Detail, r.Title} {
		if value := strings.TrimSpace(candidate); value != "" {
			return value
		}
	}
	return ""
}
