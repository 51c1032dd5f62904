package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAssignGuestToTableSendsExplicitNull(t *testing.T) {
	var gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if err := c.AssignGuestToTable(context.Background(), 12, nil); err != nil {
		t.Fatalf("AssignGuestToTable: %v", err)
	}
	if gotPath != "/v1/guests/12/assign-table" {
		t.Fatalf("path = %q", gotPath)
	}
	// null unassigns; omitting the field would be a different request.
	if gotBody != `{"tableId":null}` {
		t.Fatalf("body = %q, want {\"tableId\":null}", gotBody)
	}
}

func TestAssignGuestToTableSendsID(t *testing.T) {
	var gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	id := uint64(5)
	if err := c.AssignGuestToTable(context.Background(), 12, &id); err != nil {
		t.Fatalf("AssignGuestToTable: %v", err)
	}
	if gotBody != `{"tableId":5}` {
		t.Fatalf("body = %q", gotBody)
	}
}

func TestErrorBodyBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "table is full"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	id := uint64(5)
	err := c.AssignGuestToTable(context.Background(), 12, &id)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v (%T), want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusConflict || apiErr.Message != "table is full" {
		t.Fatalf("apiErr = %+v", apiErr)
	}
	if !apiErr.Validation() {
		t.Error("409 should classify as validation failure")
	}
}

func TestServerFaultIsNotValidation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "query failed"})
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	_, err := c.TablesStats(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.Validation() {
		t.Error("500 classified as validation failure")
	}
}

func TestTransportFailureIsPlainError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL, 200*time.Millisecond)
	_, err := c.TablesSummary(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure decoded as APIError: %v", err)
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	c.SetToken("tok123")
	if _, err := c.TablesSummary(context.Background()); err != nil {
		t.Fatalf("TablesSummary: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}

func TestGuestsForAssignmentQueryParams(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data":[],"pagination":{"currentPage":2,"pageSize":10,"totalItems":0,"totalPages":0}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	page, err := c.GuestsForAssignment(context.Background(), 2, 10, "garcía")
	if err != nil {
		t.Fatalf("GuestsForAssignment: %v", err)
	}
	if page.Pagination.CurrentPage != 2 {
		t.Fatalf("currentPage = %d", page.Pagination.CurrentPage)
	}
	if gotQuery != "filter=garc%C3%ADa&page=2&pageSize=10" {
		t.Fatalf("query = %q", gotQuery)
	}
}

func TestLoginStoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/auth/login" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"access":{"token":"abc"},"refresh":{"token":"def"}}`))
	}))
	defer srv.Close()

	c := New(srv.URL, time.Second)
	if err := c.Login(context.Background(), "a@b.c", "pw"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.token != "abc" {
		t.Fatalf("token = %q, want abc", c.token)
	}
}
