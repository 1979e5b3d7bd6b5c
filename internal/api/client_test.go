package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetRunSendsAuthAndBetaHeaders(t *testing.T) {
	var gotPath, gotAuth, gotBeta string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBeta = r.Header.Get("OpenAI-Beta")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"run_1","thread_id":"thread_1","status":"completed","model":"gpt-4o","created_at":100,"started_at":101,"completed_at":160}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk-test")
	run, err := c.GetRun(context.Background(), "thread_1", "run_1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}

	if gotPath != "/threads/thread_1/runs/run_1" {
		t.Errorf("path = %q", gotPath)
	}
	if gotAuth != "Bearer sk-test" {
		t.Errorf("authorization header = %q", gotAuth)
	}
	if gotBeta != "assistants=v2" {
		t.Errorf("beta header = %q", gotBeta)
	}
	if run.ID != "run_1" || run.Status != "completed" {
		t.Errorf("run decoded wrong: %#v", run)
	}
	if run.CompletedAt == nil || *run.CompletedAt != 160 {
		t.Errorf("completed_at = %v, want 160", run.CompletedAt)
	}
}

func TestListRunStepsRequestsFirstPage(t *testing.T) {
	var gotPath, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"step_1","run_id":"run_1","type":"tool_calls","status":"completed","created_at":100,"completed_at":103},
			{"id":"step_2","run_id":"run_1","type":"message_creation","status":"completed","created_at":105,"completed_at":108}
		]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk-test")
	steps, err := c.ListRunSteps(context.Background(), "thread_1", "run_1")
	if err != nil {
		t.Fatalf("ListRunSteps: %v", err)
	}

	if gotPath != "/threads/thread_1/runs/run_1/steps" {
		t.Errorf("path = %q", gotPath)
	}
	if gotLimit != "100" {
		t.Errorf("limit = %q, want %q", gotLimit, "100")
	}
	if len(steps) != 2 || steps[0].ID != "step_1" || steps[1].Type != "message_creation" {
		t.Errorf("steps decoded wrong: %#v", steps)
	}
}

func TestStatusErrorDecodesPlatformEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"message":"No run found with id 'run_x'.","type":"invalid_request_error"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk-test")
	_, err := c.GetRun(context.Background(), "thread_1", "run_x")
	if err == nil {
		t.Fatal("expected error")
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if se.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", se.StatusCode)
	}
	if se.Message != "No run found with id 'run_x'." {
		t.Errorf("message = %q", se.Message)
	}
}

func TestStatusErrorKeepsRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream exploded"))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk-test")
	_, err := c.GetRun(context.Background(), "thread_1", "run_1")

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("error type = %T, want *StatusError", err)
	}
	if se.Message != "" {
		t.Errorf("message should be empty for a non-JSON body, got %q", se.Message)
	}
	if se.Body != "upstream exploded" {
		t.Errorf("body = %q", se.Body)
	}
}

func TestDecodeErrorKeepsRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>totally not json</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk-test")
	_, err := c.GetRun(context.Background(), "thread_1", "run_1")

	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("error type = %T, want *DecodeError", err)
	}
	if de.Body != "<html>totally not json</html>" {
		t.Errorf("body = %q", de.Body)
	}
}

func TestSetAPIKeyDuringActiveRequest(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	auths := make(chan string, 2)
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auths <- r.Header.Get("Authorization")
		if atomic.AddInt32(&calls, 1) == 1 {
			close(started)
			<-release
		}
		_, _ = w.Write([]byte(`{"id":"run_1","created_at":100}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk-old")
	done := make(chan error, 1)
	go func() {
		_, err := c.GetRun(context.Background(), "thread_1", "run_1")
		done <- err
	}()

	// Swap the credential while the first request is still outstanding.
	<-started
	c.SetAPIKey("sk-new")
	close(release)
	if err := <-done; err != nil {
		t.Fatalf("GetRun: %v", err)
	}

	if _, err := c.GetRun(context.Background(), "thread_1", "run_1"); err != nil {
		t.Fatalf("GetRun after swap: %v", err)
	}
	if got := <-auths; got != "Bearer sk-old" {
		t.Fatalf("first request auth = %q, want %q", got, "Bearer sk-old")
	}
	if got := <-auths; got != "Bearer sk-new" {
		t.Fatalf("second request auth = %q, want %q", got, "Bearer sk-new")
	}
}

func TestTraceObservesRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"run_1","created_at":100}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "sk-test")
	var gotMethod string
	var gotStatus int
	c.Trace = func(method, url string, status int, elapsed time.Duration, err error) {
		gotMethod = method
		gotStatus = status
	}

	if _, err := c.GetRun(context.Background(), "thread_1", "run_1"); err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if gotMethod != http.MethodGet || gotStatus != http.StatusOK {
		t.Errorf("trace saw %q %d, want GET 200", gotMethod, gotStatus)
	}
}
