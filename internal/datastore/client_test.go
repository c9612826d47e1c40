package datastore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDatasetteClient_InsertRows_Success(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("failed to decode request body: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "staging", "testtoken")
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	rows := [][]string{{"1", "2"}, {"3", "4"}}
	if err := client.InsertRows("test_table", []string{"a", "b"}, rowSource(rows)); err != nil {
		t.Errorf("expected no error, got %v", err)
	}

	if gotPath != "/-/insert/staging/test_table" {
		t.Errorf("request path = %q, want %q", gotPath, "/-/insert/staging/test_table")
	}

	sent, ok := gotBody["rows"].([]any)
	if !ok || len(sent) != 2 {
		t.Fatalf("expected 2 rows in payload, got %v", gotBody["rows"])
	}
}

func TestDatasetteClient_InsertRows_APIError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		if err := json.NewEncoder(w).Encode(map[string]any{"error": "forbidden"}); err != nil {
			t.Errorf("Failed to encode error response: %v", err)
		}
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "staging", "testtoken")
	if err := client.Connect(); err != nil {
		t.Fatalf("connect failed: %v", err)
	}

	rows := [][]string{{"1", "2"}}
	if err := client.InsertRows("test_table", []string{"a", "b"}, rowSource(rows)); err == nil {
		t.Errorf("expected error, got nil")
	}
}

func TestDatasetteClient_InsertRows_NoRows(t *testing.T) {
	requested := false
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requested = true
	}))
	defer ts.Close()

	client := NewDatasetteClient(ts.URL, "staging", "")
	if err := client.InsertRows("test_table", []string{"a"}, rowSource(nil)); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if requested {
		t.Errorf("expected no request for empty row source")
	}
}
