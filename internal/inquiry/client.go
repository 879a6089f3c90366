// Package inquiry submits price inquiries to the remote inquiry service.
package inquiry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asb-digital/storefront-engine/internal/observability"
)

// Inquiry types.
const (
	TypePersonal = "personal"
	TypeCompany  = "company"
)

// MaxMessageLength bounds the free-text message.
const MaxMessageLength = 100

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrSubmissionFailed indicates the inquiry service rejected the request.
var ErrSubmissionFailed = errors.New("inquiry submission failed")

// Item is one inquired cart line.
type Item struct {
	CatalogueID          string `json:"catalogueId"`
	VariantCombinationID string `json:"variantCombinationId,omitempty"`
	Quantity             int    `json:"quantity"`
}

// Request is a bundle price inquiry: the inquired items plus contact
// fields.
type Request struct {
	Items       []Item `json:"items"`
	InquiryType string `json:"inquiryType"`
	Name        string `json:"name"`
	CompanyName string `json:"companyName,omitempty"`
	Gender      string `json:"gender,omitempty"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Message     string `json:"message,omitempty"`
}

// Validate checks the request the way the storefront form does.
func (r *Request) Validate() error {
	if len(r.Items) == 0 {
		return errors.New("at least one item is required")
	}
	for _, item := range r.Items {
		if item.CatalogueID == "" {
			return errors.New("item catalogue id is required")
		}
		if item.Quantity < 1 {
			return errors.New("item quantity must be positive")
		}
	}
	if r.InquiryType != TypePersonal && r.InquiryType != TypeCompany {
		return fmt.Errorf("invalid inquiry type: %s", r.InquiryType)
	}
	if strings.TrimSpace(r.Name) == "" {
		return errors.New("name is required")
	}
	if r.InquiryType == TypeCompany && strings.TrimSpace(r.CompanyName) == "" {
		return errors.New("company name is required")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		return errors.New("invalid email address")
	}
	if strings.TrimSpace(r.Phone) == "" {
		return errors.New("phone is required")
	}
	if len(strings.TrimSpace(r.Message)) > MaxMessageLength {
		return fmt.Errorf("message cannot exceed %d characters", MaxMessageLength)
	}
	return nil
}

// Normalize trims whitespace and drops the company name for personal
// inquiries.
func (r *Request) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Message = strings.TrimSpace(r.Message)
	if r.InquiryType == TypeCompany {
		r.CompanyName = strings.TrimSpace(r.CompanyName)
	} else {
		r.CompanyName = ""
	}
}

// Response is the opaque outcome of a submission.
type Response struct {
	InquiryID string `json:"inquiryId"`
	Success   bool   `json:"success"`
	Message   string `json:"message,omitempty"`
}

// Client submits inquiries over HTTP.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *observability.Logger
}

// ClientConfig holds inquiry client configuration.
type ClientConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// NewClient creates an inquiry submission client. An empty endpoint
// yields a client that accepts inquiries locally, for development.
func NewClient(cfg ClientConfig, logger *observability.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// Submit validates and sends the inquiry. The response is opaque
// success/failure; callers clear the cart only on success.
func (c *Client) Submit(ctx context.Context, req Request) (*Response, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if c.endpoint == "" {
		// No remote service configured: accept locally so development
		// flows still exercise the full path.
		resp := &Response{InquiryID: uuid.New().String(), Success: true}
		c.logger.Info().Str("inquiry_id", resp.InquiryID).Int("items", len(req.Items)).Msg("Inquiry accepted locally")
		return resp, nil
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal inquiry: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build inquiry request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("submit inquiry: %w", err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		c.logger.Warn().Int("status", httpResp.StatusCode).Msg("Inquiry service returned error status")
		return nil, fmt.Errorf("%w: status %d", ErrSubmissionFailed, httpResp.StatusCode)
	}

	var resp Response
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		// Body shape is the collaborator's business; a 2xx is a success
		// even when the body does not parse.
		resp = Response{Success: true}
	}
	if !resp.Success {
		return nil, fmt.Errorf("%w: %s", ErrSubmissionFailed, resp.Message)
	}
	return &resp, nil
}
