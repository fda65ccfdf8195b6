package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/aradsms/compose_service/internal/compose_service/domain"
)

const (
	apiAccessTokenHeader = "api_access_token"
	requestIDHeader      = "X-Request-Id"
	maxErrorBodyLogged   = 200
)

// Client talks to the support backend's REST API. It implements
// domain.ContactTransport.
type Client struct {
	logger     *slog.Logger
	httpClient *http.Client
	baseURL    string
	accountID  int64
	apiToken   string
	limiter    *rate.Limiter
}

// ClientOption configures optional Client behaviour.
type ClientOption func(*Client)

// WithRateLimit caps outbound requests at rps with the given burst. A
// non-positive rps leaves the client unlimited.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

var _ domain.ContactTransport = (*Client)(nil)

// NewClient creates a backend client. A nil httpClient gets a 10s timeout client.
func NewClient(logger *slog.Logger, baseURL string, accountID int64, apiToken string, httpClient *http.Client, opts ...ClientOption) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	c := &Client{
		logger:     logger.With("adapter", "backend"),
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		accountID:  accountID,
		apiToken:   apiToken,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend API error: status %d, message: %s", e.StatusCode, e.Message)
}

// Unwrap maps the status to a domain error so callers can use errors.Is.
func (e *StatusError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusNotFound:
		return domain.ErrNotFound
	case e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden:
		return domain.ErrAccessDenied
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return domain.ErrRejected
	default:
		return nil
	}
}

type errorResponseBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// --- Wire types (snake_case as sent by the backend) ---

type inboxWire struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	ChannelType string `json:"channel_type"`
}

type contactInboxWire struct {
	Inbox    inboxWire `json:"inbox"`
	SourceID string    `json:"source_id"`
}

// Filter runs a contact filter query.
func (c *Client) Filter(ctx context.Context, page int, sortKey string, expr domain.FilterExpression) (*domain.Response[[]domain.Record], error) {
	query := url.Values{}
	query.Set("include_contacts", "true")
	if sortKey != "" {
		query.Set("sort", sortKey)
	}
	if page > 0 {
		query.Set("page", strconv.Itoa(page))
	}

	var body struct {
		Payload []domain.Record `json:"payload"`
	}
	if err := c.do(ctx, "contacts_filter", http.MethodPost, c.accountPath("contacts/filter")+"?"+query.Encode(), expr, &body); err != nil {
		return nil, err
	}
	return domain.NewResponse(body.Payload), nil
}

// Create creates a contact.
func (c *Client) Create(ctx context.Context, attrs domain.NewContactAttributes) (*domain.Response[domain.CreatedContact], error) {
	var body struct {
		Payload domain.CreatedContact `json:"payload"`
	}
	if err := c.do(ctx, "contacts_create", http.MethodPost, c.accountPath("contacts"), attrs, &body); err != nil {
		return nil, err
	}
	return domain.NewResponse(body.Payload), nil
}

// GetContactableInboxes lists the inboxes a contact can be reached through.
func (c *Client) GetContactableInboxes(ctx context.Context, contactID int64) (*domain.Response[[]domain.ContactInbox], error) {
	var body struct {
		Payload []contactInboxWire `json:"payload"`
	}
	path := c.accountPath(fmt.Sprintf("contacts/%d/contactable_inboxes", contactID))
	if err := c.do(ctx, "contactable_inboxes", http.MethodGet, path, nil, &body); err != nil {
		return nil, err
	}

	inboxes := make([]domain.ContactInbox, 0, len(body.Payload))
	for _, w := range body.Payload {
		inboxes = append(inboxes, domain.ContactInbox{
			Inbox: domain.Inbox{
				ID:          w.Inbox.ID,
				Name:        w.Inbox.Name,
				Email:       w.Inbox.Email,
				PhoneNumber: w.Inbox.PhoneNumber,
				ChannelType: domain.ChannelType(w.Inbox.ChannelType),
			},
			SourceID: w.SourceID,
		})
	}
	return domain.NewResponse(inboxes), nil
}

// CreateConversation starts a conversation. The payload's top-level keys are
// sent in snake_case; nested values (template params) are left untouched.
func (c *Client) CreateConversation(ctx context.Context, payload domain.MessagePayload) (*domain.Response[domain.Record], error) {
	wire, err := snakeTopLevelKeys(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode conversation payload: %w", err)
	}

	var body domain.Record
	if err := c.do(ctx, "conversations_create", http.MethodPost, c.accountPath("conversations"), wire, &body); err != nil {
		return nil, err
	}
	return domain.NewResponse(body), nil
}

func (c *Client) accountPath(suffix string) string {
	return fmt.Sprintf("%s/api/v1/accounts/%d/%s", c.baseURL, c.accountID, suffix)
}

func (c *Client) do(ctx context.Context, endpoint, method, target string, in, out any) error {
	start := time.Now()
	requestID := chimiddleware.GetReqID(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
	}
	logger := c.logger.With("endpoint", endpoint, "request_id", requestID)

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			logger.WarnContext(ctx, "Backend rate limit wait aborted", "error", err)
			return fmt.Errorf("backend rate limit: %w", err)
		}
	}

	var reqBody io.Reader
	if in != nil {
		reqBytes, err := json.Marshal(in)
		if err != nil {
			logger.ErrorContext(ctx, "Failed to marshal backend request", "error", err)
			return fmt.Errorf("failed to marshal request for backend: %w", err)
		}
		reqBody = bytes.NewReader(reqBytes)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to create backend HTTP request", "error", err)
		return fmt.Errorf("failed to create HTTP request for backend: %w", err)
	}
	if in != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(apiAccessTokenHeader, c.apiToken)
	httpReq.Header.Set(requestIDHeader, requestID)

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		observeBackendRequest(endpoint, 0, start)
		logger.ErrorContext(ctx, "Failed to send request to backend", "error", err)
		return fmt.Errorf("failed to send request to backend: %w", err)
	}
	defer httpResp.Body.Close()
	observeBackendRequest(endpoint, httpResp.StatusCode, start)

	respBodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read backend response body", "status_code", httpResp.StatusCode, "error", err)
		return fmt.Errorf("failed to read backend response body (status %d): %w", httpResp.StatusCode, err)
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		statusErr := &StatusError{StatusCode: httpResp.StatusCode}
		var errBody errorResponseBody
		if json.Unmarshal(respBodyBytes, &errBody) == nil {
			statusErr.Message = errBody.Message
			if statusErr.Message == "" {
				statusErr.Message = errBody.Error
			}
		} else if len(respBodyBytes) > 0 && len(respBodyBytes) < maxErrorBodyLogged {
			statusErr.Message = string(respBodyBytes)
		}
		logger.WarnContext(ctx, "Backend request failed", "status_code", httpResp.StatusCode, "message", statusErr.Message)
		return statusErr
	}

	if out == nil || len(bytes.TrimSpace(respBodyBytes)) == 0 {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(respBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(out); err != nil {
		logger.ErrorContext(ctx, "Failed to decode backend response", "status_code", httpResp.StatusCode, "error", err)
		return fmt.Errorf("failed to decode backend response: %w", err)
	}
	logger.DebugContext(ctx, "Backend request completed", "status_code", httpResp.StatusCode, "duration", time.Since(start))
	return nil
}

func snakeTopLevelKeys(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	out := make(map[string]any, len(m))
	for k, val := range m {
		out[domain.SnakeCase(k)] = val
	}
	return out, nil
}
