package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/task"
)

func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	client, err := NewClient(server.URL, "bin-1", "test-access-key",
		WithHTTPClient(server.Client()))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestNewClient_RequiresBaseURLAndBinID(t *testing.T) {
	if _, err := NewClient("", "bin-1", "key"); err == nil {
		t.Error("expected error for empty base URL")
	}
	if _, err := NewClient("https://api.example.com/v3/b", "", "key"); err == nil {
		t.Error("expected error for empty bin ID")
	}
}

func TestClient_Fetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/bin-1" {
			t.Errorf("expected path /bin-1, got %s", r.URL.Path)
		}
		if r.Header.Get("X-Access-Key") != "test-access-key" {
			t.Error("missing or invalid access key header")
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"record":[{"id":"a","name":"A","description":"d","project":"OM","deadline":"2025-01-01","status":"pending"}]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	tasks, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("got %d tasks, want 1", len(tasks))
	}
	if tasks[0].ID != "a" || tasks[0].Project != "OM" {
		t.Errorf("task = %+v, want id=a project=OM", tasks[0])
	}
	if tasks[0].Deadline.String() != "2025-01-01" {
		t.Errorf("deadline = %q, want 2025-01-01", tasks[0].Deadline.String())
	}
}

func TestClient_Fetch_MissingBinIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"Bin not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	tasks, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil for missing bin", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want empty collection", len(tasks))
	}
}

func TestClient_Fetch_NullRecordIsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"record":null}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	tasks, err := client.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error = %v, want nil for null record", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want empty collection", len(tasks))
	}
}

func TestClient_Fetch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	_, err := client.Fetch(context.Background())
	if err == nil {
		t.Fatal("Fetch() = nil error, want StoreError")
	}

	var storeErr *errors.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error type = %T, want *StoreError", err)
	}
	if storeErr.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", storeErr.StatusCode)
	}
}

func TestClient_Fetch_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // Close immediately so requests fail to connect

	client, err := NewClient(server.URL, "bin-1", "key", WithTimeout(time.Second))
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}

	_, err = client.Fetch(context.Background())
	var storeErr *errors.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error type = %T, want *StoreError", err)
	}
	if storeErr.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 when no response was received", storeErr.StatusCode)
	}
}

func TestClient_Overwrite_Success(t *testing.T) {
	var received []task.Task
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT, got %s", r.Method)
		}
		if r.Header.Get("Content-Type") != "application/json" {
			t.Error("missing content type header")
		}
		if r.Header.Get("X-Access-Key") != "test-access-key" {
			t.Error("missing access key header")
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("body is not a task array: %v", err)
		}
		_, _ = w.Write([]byte(`{"record":[]}`))
	}))
	defer server.Close()

	client := newTestClient(t, server)

	tasks := []task.Task{
		{ID: "a", Name: "A", Description: "d", Project: "OM", Deadline: task.NewDate(2025, time.January, 1), Status: task.StatusPending},
	}
	if err := client.Overwrite(context.Background(), tasks); err != nil {
		t.Fatalf("Overwrite() error = %v", err)
	}
	if len(received) != 1 || received[0].ID != "a" {
		t.Errorf("server received %+v, want the full collection", received)
	}
}

func TestClient_Overwrite_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server)

	err := client.Overwrite(context.Background(), []task.Task{})
	if err == nil {
		t.Fatal("Overwrite() = nil error, want StoreError")
	}
	var storeErr *errors.StoreError
	if !errors.As(err, &storeErr) {
		t.Fatalf("error type = %T, want *StoreError", err)
	}
	if storeErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", storeErr.StatusCode)
	}
}

func TestClient_Fetch_ContextCancellation(t *testing.T) {
	block := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer server.Close()
	defer close(block)

	client := newTestClient(t, server)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Fetch(ctx)
	if err == nil {
		t.Fatal("Fetch() = nil error, want cancellation error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("error should wrap context.DeadlineExceeded, got %v", err)
	}
}
