// Package searchbug is the REST client for the third-party person-lookup
// provider. Every search may be billable upstream, so the client performs no
// automatic retries; retry policy belongs to the operator workflow.
package searchbug

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"amoria/internal/screening/models"
	dErrors "amoria/pkg/domain-errors"
)

// Client wraps the provider API with typed requests and responses.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
	tracer trace.Tracer
}

// New creates a provider client. Returns nil when no base URL is configured
// so the search capability degrades to "not available".
func New(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	if baseURL == "" {
		return nil
	}
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetAuthToken(apiKey)

	return &Client{
		http:   httpClient,
		logger: logger,
		tracer: otel.Tracer("searchbug"),
	}
}

type searchResponse struct {
	People  []models.PersonCandidate `json:"people"`
	Source  models.Source            `json:"source"`
	Message string                   `json:"message"`
}

// SearchPerson runs a person lookup for the derived criteria. The candidate
// order in the response is authoritative and preserved as-is.
func (c *Client) SearchPerson(ctx context.Context, criteria models.SearchCriteria) (*models.SearchResult, error) {
	ctx, span := c.tracer.Start(ctx, "searchbug.SearchPerson")
	defer span.End()

	var body searchResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(criteria).
		SetResult(&body).
		Post("/api/person/search")
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(dErrors.CodeUpstreamUnavailable, "person lookup provider unreachable", err)
	}
	if err := statusError(resp); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("searchbug.candidates", len(body.People)))

	source := body.Source
	if !source.IsValid() {
		source = models.SourceSearchBugAPI
	}
	result := &models.SearchResult{
		People:  body.People,
		Source:  source,
		Message: body.Message,
	}
	result.Normalize()
	return result, nil
}

// FetchReport expands one candidate into a full detail report.
func (c *Client) FetchReport(ctx context.Context, reportToken string) (*models.BackgroundReport, error) {
	ctx, span := c.tracer.Start(ctx, "searchbug.FetchReport")
	defer span.End()

	var report models.BackgroundReport
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{"reportToken": reportToken}).
		SetResult(&report).
		Post("/api/person/report")
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, dErrors.Wrap(dErrors.CodeUpstreamUnavailable, "person lookup provider unreachable", err)
	}
	if err := statusError(resp); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	report.ReportToken = reportToken
	report.RetrievedAt = time.Now()
	return &report, nil
}

// statusError maps provider HTTP failures onto stable domain codes.
func statusError(resp *resty.Response) error {
	if resp.IsSuccess() {
		return nil
	}
	status := resp.StatusCode()
	switch {
	case status == http.StatusNotFound:
		return dErrors.New(dErrors.CodeNotFound, "person record not found upstream")
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return dErrors.New(dErrors.CodeUpstreamUnavailable, "person lookup provider rejected credentials")
	case status == http.StatusTooManyRequests:
		return dErrors.New(dErrors.CodeUpstreamUnavailable, "person lookup provider rate limited")
	case status >= 500:
		return dErrors.New(dErrors.CodeUpstreamUnavailable, fmt.Sprintf("person lookup provider error (%d)", status))
	default:
		return dErrors.New(dErrors.CodeBadRequest, fmt.Sprintf("person lookup rejected request (%d)", status))
	}
}
