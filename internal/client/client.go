// Package client is a typed HTTP client for the wedding-planner REST API.
// It is the transport behind the planner coordinator: every call either
// succeeds, fails with an *APIError carrying the server's message
// (validation failure), or fails with a plain error (transport failure).
// Both failure classes trigger the same rollback on the caller's side.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/iliyamo/wedding-planner/internal/model"
)

// APIError is a structured rejection from the server: the request reached
// it and was refused with a machine-readable message (table full, guest not
// found, ...).
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %s (status %d)", e.Message, e.StatusCode)
}

// Validation reports whether the error is a client-side validation failure
// rather than a server fault.  The distinction only affects how the message
// is surfaced; rollback happens either way.
func (e *APIError) Validation() bool {
	return e.StatusCode >= 400 && e.StatusCode < 500
}

// Client calls the remote API.  A zero timeout on the underlying HTTP
// client would let a dead server hang an assignment forever, so requests
// are always bounded; a timeout surfaces as a transport failure.
type Client struct {
	baseURL string
	token   string
	hc      *http.Client
}

// New builds a client for the given base URL (e.g. "http://localhost:8080").
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{Timeout: timeout},
	}
}

// SetToken sets the bearer token attached to subsequent requests.
func (c *Client) SetToken(token string) { c.token = token }

// errorBody matches the server's {"error": "..."} convention; message is
// accepted as a fallback for success-shaped bodies on error statuses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do executes one request and decodes the response into out (when non-nil).
// Non-2xx responses with a decodable body become *APIError; everything else
// is returned as-is and counts as a transport failure.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body *bytes.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if decErr := json.NewDecoder(resp.Body).Decode(&eb); decErr == nil {
			msg := eb.Error
			if msg == "" {
				msg = eb.Message
			}
			if msg != "" {
				return &APIError{StatusCode: resp.StatusCode, Message: msg}
			}
		}
		return fmt.Errorf("api: unexpected status %d for %s %s", resp.StatusCode, method, path)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResp struct {
	Access struct {
		Token string `json:"token"`
	} `json:"access"`
}

// Login exchanges credentials for an access token and attaches it to
// subsequent requests.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var out loginResp
	if err := c.do(ctx, http.MethodPost, "/v1/auth/login", loginBody{Email: email, Password: password}, &out); err != nil {
		return err
	}
	c.token = out.Access.Token
	return nil
}

// TablesSummary fetches the full table snapshot used to (re)initialize the
// registry.
func (c *Client) TablesSummary(ctx context.Context) ([]model.TableSummary, error) {
	var out []model.TableSummary
	if err := c.do(ctx, http.MethodGet, "/v1/tables/summary", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TablesAvailable fetches the tables that still have free seats.
func (c *Client) TablesAvailable(ctx context.Context) ([]model.AvailableTable, error) {
	var out []model.AvailableTable
	if err := c.do(ctx, http.MethodGet, "/v1/tables/available", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// TablesStats fetches the aggregate statistics snapshot.
func (c *Client) TablesStats(ctx context.Context) (model.TableStats, error) {
	var out model.TableStats
	if err := c.do(ctx, http.MethodGet, "/v1/tables/stats", nil, &out); err != nil {
		return model.TableStats{}, err
	}
	return out, nil
}

// TableGuests fetches the roster of a single table.
func (c *Client) TableGuests(ctx context.Context, tableID uint64) (model.TableRoster, error) {
	var out model.TableRoster
	path := "/v1/tables/" + strconv.FormatUint(tableID, 10) + "/guests"
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return model.TableRoster{}, err
	}
	return out, nil
}

// GuestsForAssignment fetches one page of the assignment view, optionally
// filtered by guest or family name.
func (c *Client) GuestsForAssignment(ctx context.Context, page, pageSize int, filter string) (model.GuestAssignmentPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))
	if filter != "" {
		q.Set("filter", filter)
	}
	var out model.GuestAssignmentPage
	if err := c.do(ctx, http.MethodGet, "/v1/families/guests-for-assignment?"+q.Encode(), nil, &out); err != nil {
		return model.GuestAssignmentPage{}, err
	}
	return out, nil
}

// assignBody carries the nullable table reference: an explicit null
// unassigns the guest, which is why the field must not be omitempty.
type assignBody struct {
	TableID *uint64 `json:"tableId"`
}

// AssignGuestToTable issues the sole mutating seating operation.  It
// satisfies planner.AssignmentAPI.
func (c *Client) AssignGuestToTable(ctx context.Context, guestID uint64, tableID *uint64) error {
	path := "/v1/guests/" + strconv.FormatUint(guestID, 10) + "/assign-table"
	return c.do(ctx, http.MethodPut, path, assignBody{TableID: tableID}, nil)
}
