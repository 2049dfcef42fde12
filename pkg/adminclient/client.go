// Package adminclient is the typed Go client for the amoria admin backend.
// It speaks the envelope protocol, keeps an operator session, and preserves
// HTTP statuses so callers can drive their own retry and messaging policy.
package adminclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 30 * time.Second

// Option configures the Client.
type Option func(*Client)

// Client talks to the admin backend on behalf of one operator.
type Client struct {
	http    *resty.Client
	session *Session
}

// New creates a client for the given backend base URL. The client performs no
// automatic retries: selection and payment commands are not idempotent, and
// retry policy belongs to the caller.
func New(baseURL string, opts ...Option) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	c := &Client{
		http:    httpClient,
		session: &Session{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(timeout)
	}
}

// WithHTTPClient swaps the underlying HTTP client, mainly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		base := c.http.BaseURL
		c.http = resty.NewWithClient(httpClient).
			SetBaseURL(base).
			SetHeader("Content-Type", "application/json").
			SetHeader("Accept", "application/json")
	}
}

// Session returns the current operator session.
func (c *Client) Session() *Session {
	return c.session
}

// Login authenticates the operator and starts a session. Any previous session
// is replaced.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/admin/login", body, &resp); err != nil {
		return err
	}
	c.session.set(resp.Token, resp.ExpiresAt, resp.OperatorID)
	return nil
}

// Logout destroys the session. Purely client-side: tokens expire on their own.
func (c *Client) Logout() {
	c.session.invalidate()
}

// TriggerSearch runs a person search for the user and returns the batch.
func (c *Client) TriggerSearch(ctx context.Context, userID string) (*SearchResult, error) {
	var result SearchResult
	path := fmt.Sprintf("/admin/users/%s/background-check/search", userID)
	if err := c.do(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SelectPerson commits the candidate at index within the batch identified by
// checkID. The index refers to the order in the SearchResult as received.
func (c *Client) SelectPerson(ctx context.Context, checkID string, index int) (*PersonCandidate, error) {
	var resp selectPersonResponse
	body := selectPersonRequest{CheckID: checkID, SelectedPersonIndex: index}
	if err := c.do(ctx, http.MethodPost, "/admin/background-check/select-person", body, &resp); err != nil {
		return nil, err
	}
	return &resp.SelectedPerson, nil
}

// SelectPersonManual commits a selection through the manual-verify flow and
// returns the backend's confirmation message.
func (c *Client) SelectPersonManual(ctx context.Context, checkID string, index int) (string, error) {
	body := selectPersonRequest{CheckID: checkID, SelectedPersonIndex: index}
	message, err := c.doMessage(ctx, http.MethodPost, "/admin/background-check/manual-verify/select-person", body)
	if err != nil {
		return "", err
	}
	return message, nil
}

// FetchReport expands one candidate into a full report.
func (c *Client) FetchReport(ctx context.Context, checkID, reportToken string) (*BackgroundReport, error) {
	var report BackgroundReport
	body := map[string]string{"checkId": checkID, "reportToken": reportToken}
	if err := c.do(ctx, http.MethodPost, "/admin/background-check/report", body, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// History lists the user's past search batches, newest first.
func (c *Client) History(ctx context.Context, userID string) ([]HistoryEntry, error) {
	var resp historyResponse
	path := fmt.Sprintf("/admin/users/%s/background-checks", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.BackgroundChecks, nil
}

// Verification fetches the user's background verification state.
func (c *Client) Verification(ctx context.Context, userID string) (*VerificationState, error) {
	var state VerificationState
	path := fmt.Sprintf("/admin/users/%s/background-verification", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// MarkVerificationPaid moves an unpaid verification to pending.
func (c *Client) MarkVerificationPaid(ctx context.Context, userID, notes string) (*VerificationState, error) {
	var state VerificationState
	path := fmt.Sprintf("/admin/users/%s/background-verification/mark-paid", userID)
	body := map[string]string{"notes": notes}
	if err := c.do(ctx, http.MethodPost, path, body, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// SetVerification transitions the verification state machine.
func (c *Client) SetVerification(ctx context.Context, userID, status, notes string) (*VerificationState, error) {
	var state VerificationState
	path := fmt.Sprintf("/admin/users/%s/background-verification", userID)
	body := map[string]string{"status": status, "notes": notes}
	if err := c.do(ctx, http.MethodPut, path, body, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// MarkPlanPaid grants the named plan to the user.
func (c *Client) MarkPlanPaid(ctx context.Context, userID, planName, notes string) (*Purchase, error) {
	var purchase Purchase
	path := fmt.Sprintf("/admin/users/%s/plan/mark-paid", userID)
	body := map[string]string{"planName": planName, "notes": notes}
	if err := c.do(ctx, http.MethodPost, path, body, &purchase); err != nil {
		return nil, err
	}
	return &purchase, nil
}

// Purchases lists the user's purchase history, newest first.
func (c *Client) Purchases(ctx context.Context, userID string) ([]Purchase, error) {
	var purchases []Purchase
	path := fmt.Sprintf("/admin/users/%s/purchases", userID)
	if err := c.do(ctx, http.MethodGet, path, nil, &purchases); err != nil {
		return nil, err
	}
	return purchases, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	env, err := c.execute(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode response data: %w", err)
	}
	return nil
}

func (c *Client) doMessage(ctx context.Context, method, path string, body any) (string, error) {
	env, err := c.execute(ctx, method, path, body)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *Client) execute(ctx context.Context, method, path string, body any) (*envelope, error) {
	req := c.http.R().SetContext(ctx)
	if token := c.session.bearerToken(); token != "" {
		req.SetAuthToken(token)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &TransportError{Err: err}
	}

	var env envelope
	if len(resp.Body()) > 0 {
		if err := json.Unmarshal(resp.Body(), &env); err != nil {
			if resp.IsError() {
				return nil, &APIError{StatusCode: resp.StatusCode()}
			}
			return nil, fmt.Errorf("decode response envelope: %w", err)
		}
	}

	if resp.StatusCode() == http.StatusUnauthorized {
		c.session.invalidate()
	}
	if resp.IsError() || !env.Success {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Code:       env.Code,
			Message:    env.Message,
		}
	}
	return &env, nil
}
