// Package cache keeps expanded background reports in Redis so repeated
// report views do not trigger repeated billable provider calls.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"amoria/internal/screening/models"
)

// Reports caches background reports by report token. A nil *Reports is a
// no-op cache so callers need no configuration checks.
type Reports struct {
	client *redis.Client
	ttl    time.Duration
}

// NewReports constructs a report cache. Returns nil when Redis is not
// configured.
func NewReports(client *redis.Client, ttl time.Duration) *Reports {
	if client == nil {
		return nil
	}
	return &Reports{client: client, ttl: ttl}
}

func key(reportToken string) string {
	return "screening:report:" + reportToken
}

// Get returns the cached report or nil on a miss.
func (c *Reports) Get(ctx context.Context, reportToken string) (*models.BackgroundReport, error) {
	if c == nil {
		return nil, nil
	}
	payload, err := c.client.Get(ctx, key(reportToken)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cached report: %w", err)
	}
	var report models.BackgroundReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("decode cached report: %w", err)
	}
	return &report, nil
}

// Put stores the report for the configured TTL.
func (c *Reports) Put(ctx context.Context, report *models.BackgroundReport) error {
	if c == nil || report == nil {
		return nil
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := c.client.Set(ctx, key(report.ReportToken), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}
