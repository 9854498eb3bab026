// Package olymp is the client for the Olymp entry server.
//
// Every call is checked twice: arguments are verified before anything is
// sent, and the response status must match the one success code the
// operation accepts. These checks give callers early feedback; the server
// still validates everything on its own.
package olymp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gildedernacht/olymp/internal/model"
)

// Transport is the subset of transport.Client the resource client needs
type Transport interface {
	Get(ctx context.Context, path string) (string, int, error)
	Post(ctx context.Context, path string, body []byte) (string, int, error)
}

// StatusPayload is the body of GET /status
type StatusPayload struct {
	Version string    `json:"version"`
	Time    time.Time `json:"time"`
}

// AddEntryRequest is the body of POST /resources/{uid}/entries
type AddEntryRequest struct {
	PublicBody  json.RawMessage `json:"publicBody"`
	PrivateBody json.RawMessage `json:"privateBody"`
}

// Client wraps a Transport with parameter and response verification
type Client struct {
	transport Transport
	logger    *slog.Logger
}

// NewClient creates a new resource client
func NewClient(transport Transport, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return &Client{
		transport: transport,
		logger:    logger,
	}
}

// Status checks the server health and returns its status payload
func (c *Client) Status(ctx context.Context) (*StatusPayload, error) {
	const op = "status"
	path := "/status"

	body, err := c.call(ctx, op, http.MethodGet, path, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var status StatusPayload
	if err := json.Unmarshal([]byte(body), &status); err != nil {
		return nil, &ResponseError{Op: op, Path: path, Expected: http.StatusOK, Status: http.StatusOK, Body: body, Err: err}
	}
	return &status, nil
}

// AddEntry appends an entry to a resource. Both bodies must encode to JSON objects.
func (c *Client) AddEntry(ctx context.Context, resourceUID string, publicBody, privateBody any) error {
	const op = "add entry"

	if err := verifyUID(op, resourceUID); err != nil {
		return err
	}
	public, err := encodeObject(op, "publicBody", publicBody)
	if err != nil {
		return err
	}
	private, err := encodeObject(op, "privateBody", privateBody)
	if err != nil {
		return err
	}

	data, err := json.Marshal(AddEntryRequest{PublicBody: public, PrivateBody: private})
	if err != nil {
		return fmt.Errorf("%s: failed to marshal request: %w", op, err)
	}

	_, err = c.call(ctx, op, http.MethodPost, entriesPath(resourceUID), data, http.StatusCreated)
	return err
}

// ListEntries returns the raw entries of a resource in server order
func (c *Client) ListEntries(ctx context.Context, resourceUID string) ([]model.Entry, error) {
	const op = "list entries"

	if err := verifyUID(op, resourceUID); err != nil {
		return nil, err
	}

	path := entriesPath(resourceUID)
	body, err := c.call(ctx, op, http.MethodGet, path, nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var entries []model.Entry
	if err := json.Unmarshal([]byte(body), &entries); err != nil {
		return nil, &ResponseError{Op: op, Path: path, Expected: http.StatusOK, Status: http.StatusOK, Body: body, Err: err}
	}
	return entries, nil
}

// call performs the request and enforces the expected status
func (c *Client) call(ctx context.Context, op, method, path string, data []byte, expected int) (string, error) {
	start := time.Now()

	var (
		body   string
		status int
		err    error
	)
	switch method {
	case http.MethodPost:
		body, status, err = c.transport.Post(ctx, path, data)
	default:
		body, status, err = c.transport.Get(ctx, path)
	}

	if err != nil {
		c.logger.Debug("olymp call failed",
			slog.String("op", op),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
		return "", err
	}

	c.logger.Debug("olymp call",
		slog.String("op", op),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", time.Since(start)),
	)

	if status != expected {
		return "", &ResponseError{Op: op, Path: path, Expected: expected, Status: status, Body: body}
	}
	return body, nil
}

func entriesPath(resourceUID string) string {
	return "/resources/" + resourceUID + "/entries"
}

func verifyUID(op, uid string) error {
	if !model.ValidUID(uid) {
		return &ParameterError{Op: op, Param: "resourceUid", Reason: "must be 64 lowercase hex characters"}
	}
	return nil
}

// encodeObject marshals v and requires the result to be a JSON object
func encodeObject(op, param string, v any) (json.RawMessage, error) {
	if v == nil {
		return nil, &ParameterError{Op: op, Param: param, Reason: "must be an object, got null"}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &ParameterError{Op: op, Param: param, Reason: err.Error()}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return nil, &ParameterError{Op: op, Param: param, Reason: fmt.Sprintf("must be an object, got %s", truncate(string(data), 40))}
	}
	return data, nil
}
