package workflow

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"fulfillment-backend/internal/models"
)

// Client speaks the admin API contracts on behalf of one screen session.
// Every call attaches the bearer credential from the TokenStore; a missing
// credential fails before any request is dispatched.
type Client struct {
	BaseURL string
	Tokens  TokenStore
	HTTP    *http.Client
}

func NewClient(baseURL string, tokens TokenStore) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Tokens:  tokens,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	token := c.Tokens.Token()
	if token == "" {
		return AuthMissingError{}
	}

	endpoint := c.BaseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return TransportError{Cause: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return TransportError{Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return TransportError{Cause: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportError{Cause: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return ServerError{StatusCode: resp.StatusCode, Message: serverMessage(data)}
	}
	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return TransportError{Cause: err}
		}
	}
	return nil
}

// serverMessage extracts the server's own text from an error body so it can
// be shown verbatim. Handlers answer with either a JSON envelope or a plain
// text line.
func serverMessage(data []byte) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	if msg := strings.TrimSpace(string(data)); msg != "" {
		return msg
	}
	return "The server rejected the request."
}

// ListByStage fetches the authoritative unit list for a stage.
func (c *Client) ListByStage(ctx context.Context, stage string, f FilterSpec) (*models.UnitListResponse, error) {
	q := f.Values()
	q.Set("stage", stage)

	var out models.UnitListResponse
	if err := c.do(ctx, http.MethodGet, "/api/units", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetStatus issues the one batch write for a status tag. The plural id-list
// form is always used; a single-unit tag is a one-element batch.
func (c *Client) SetStatus(ctx context.Context, orderIDs []string, target models.Status) (*models.SetStatusResponse, error) {
	var out models.SetStatusResponse
	err := c.do(ctx, http.MethodPost, "/api/units/status", nil,
		models.SetStatusRequest{OrderIDs: orderIDs, Status: target}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, ServerError{StatusCode: http.StatusOK, Message: serverFallback(out.Error)}
	}
	return &out, nil
}

// AssignContainer issues the one grouping write, for one unit or a whole
// selection alike.
func (c *Client) AssignContainer(ctx context.Context, req *models.AssignContainerRequest) (*models.AssignContainerResponse, error) {
	var out models.AssignContainerResponse
	if err := c.do(ctx, http.MethodPost, "/api/containers/assign", nil, req, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, ServerError{StatusCode: http.StatusOK, Message: serverFallback(out.Error)}
	}
	return &out, nil
}

// LookupContainer materializes a container detail screen from a human-entered
// or scanned code.
func (c *Client) LookupContainer(ctx context.Context, kind models.ContainerKind, code string) (*models.ContainerDetail, error) {
	path := fmt.Sprintf("/api/containers/%s/%s/units", kind, url.PathEscape(code))
	var out models.ContainerDetail
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GenerateLabels renders one label per id. A response whose label count does
// not match the request is a total failure, never a partial batch.
func (c *Client) GenerateLabels(ctx context.Context, orderIDs []string) (*models.GenerateLabelsResponse, error) {
	var out models.GenerateLabelsResponse
	err := c.do(ctx, http.MethodPost, "/api/labels/generate", nil,
		models.GenerateLabelsRequest{OrderIDs: orderIDs}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, ServerError{StatusCode: http.StatusOK, Message: serverFallback(out.Error)}
	}
	if len(out.Labels) != len(orderIDs) {
		return nil, ServerError{
			StatusCode: http.StatusOK,
			Message:    fmt.Sprintf("Label batch incomplete: got %d of %d labels.", len(out.Labels), len(orderIDs)),
		}
	}
	return &out, nil
}

// EmailLabels dispatches the batch to the print desk mailbox.
func (c *Client) EmailLabels(ctx context.Context, orderIDs []string) (*models.EmailLabelsResponse, error) {
	var out models.EmailLabelsResponse
	err := c.do(ctx, http.MethodPost, "/api/labels/email", nil,
		models.EmailLabelsRequest{OrderIDs: orderIDs}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, ServerError{StatusCode: http.StatusOK, Message: serverFallback(out.Error)}
	}
	return &out, nil
}

// ListCreditRequests fetches one page of claims.
func (c *Client) ListCreditRequests(ctx context.Context, page, limit int) (*models.CreditListResponse, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var out models.CreditListResponse
	if err := c.do(ctx, http.MethodGet, "/api/credit-requests", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ReviewCredit records a decision on one claim and returns the reviewed row.
func (c *Client) ReviewCredit(ctx context.Context, id int, decision models.CreditDecision, notes string) (*models.CreditRequest, error) {
	path := fmt.Sprintf("/api/credit-requests/%d/review", id)
	var out models.CreditRequest
	err := c.do(ctx, http.MethodPost, path, nil,
		models.ReviewDecisionRequest{Decision: decision, Notes: notes}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func serverFallback(msg string) string {
	if msg == "" {
		return "The server rejected the request."
	}
	return msg
}
