package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPTimeoutFromEnv(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "")
		if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
			t.Fatalf("expected default timeout %v, got %v", defaultHTTPTimeout, got)
		}
	})

	t.Run("duration format", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "45s")
		if got := httpTimeoutFromEnv(); got != 45*time.Second {
			t.Fatalf("expected 45s timeout, got %v", got)
		}
	})

	t.Run("integer seconds", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "25")
		if got := httpTimeoutFromEnv(); got != 25*time.Second {
			t.Fatalf("expected 25s timeout, got %v", got)
		}
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "invalid")
		if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
			t.Fatalf("expected default timeout %v, got %v", defaultHTTPTimeout, got)
		}
	})
}

func TestClient_ListTasks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/api/Tasks/user/7" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get(requestIDHeader) == "" {
			t.Error("expected request id header")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"a","status":"todo"},{"id":2,"title":"b","status":null,"projectId":4}]`))
	}))
	defer srv.Close()

	tasks, err := NewClient(srv.URL + "/").ListTasks(context.Background(), 7)
	if err != nil {
		t.Fatalf("list tasks: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[1].ProjectID == nil || *tasks[1].ProjectID != 4 {
		t.Fatalf("expected project 4 on second task, got %v", tasks[1].ProjectID)
	}
}

func TestClient_UpdateTaskStatus(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/api/Tasks/1/status" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected json content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).UpdateTaskStatus(context.Background(), 1, "done"); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if len(gotBody) != 1 || gotBody["status"] != "done" {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestClient_UpdateTaskEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	title := "renamed"
	task, err := NewClient(srv.URL).UpdateTask(context.Background(), 5, TaskUpdateRequest{Title: &title})
	if err != nil {
		t.Fatalf("update task: %v", err)
	}
	if task.ID != 0 {
		t.Fatalf("expected zero task for empty body, got %+v", task)
	}
}

func TestClient_CreateTaskSendsUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req TaskCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.UserID != 3 || req.Title != "Plan trip" {
			t.Errorf("unexpected create request %+v", req)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 11, "title": req.Title, "status": req.Status})
	}))
	defer srv.Close()

	task, err := NewClient(srv.URL).CreateTask(context.Background(), TaskCreateRequest{Title: "Plan trip", Status: "todo", UserID: 3})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.ID != 11 || task.Status != "todo" {
		t.Fatalf("unexpected created task %+v", task)
	}
}

func TestClient_DecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		code    string
		message string
	}{
		{name: "envelope", status: http.StatusBadRequest, body: `{"error":"title required","code":"invalid_argument"}`, code: "invalid_argument", message: "title required"},
		{name: "problem details", status: http.StatusNotFound, body: `{"title":"Not Found","status":404}`, message: "Not Found"},
		{name: "plain text", status: http.StatusInternalServerError, body: "boom", message: "boom"},
		{name: "empty", status: http.StatusBadGateway, body: "", message: "api error: 502 Bad Gateway"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			err := NewClient(srv.URL).DeleteTask(context.Background(), 9)
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("expected APIError, got %T (%v)", err, err)
			}
			if apiErr.Status != tt.status {
				t.Fatalf("expected status %d, got %d", tt.status, apiErr.Status)
			}
			if apiErr.Code != tt.code {
				t.Fatalf("expected code %q, got %q", tt.code, apiErr.Code)
			}
			if apiErr.Message != tt.message {
				t.Fatalf("expected message %q, got %q", tt.message, apiErr.Message)
			}
		})
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(&APIError{Status: http.StatusNotFound}) {
		t.Fatal("expected 404 to be not found")
	}
	if IsNotFound(errors.New("other")) {
		t.Fatal("expected plain error not to be not found")
	}
}

func TestClient_AuthHeader(t *testing.T) {
	t.Setenv(apiTokenEnvKey, "secret")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer secret" {
			t.Errorf("unexpected authorization header %q", got)
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).ListProjects(context.Background(), 1); err != nil {
		t.Fatalf("list projects: %v", err)
	}
}
