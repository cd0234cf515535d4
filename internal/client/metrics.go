package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// reviewMetricName is the metric Klaviyo Reviews records for each
// submitted review.
const reviewMetricName = "Submitted review"

// Metric is one account metric from the metrics endpoint.
type Metric struct {
	ID          string
	Name        string
	Integration string
	Created     string
}

type metricResource struct {
	Type       string `json:"type"`
	ID         string `json:"id"`
	Attributes struct {
		Name        string `json:"name"`
		Created     string `json:"created"`
		Integration struct {
			Name string `json:"name"`
		} `json:"integration"`
	} `json:"attributes"`
}

type metricPage struct {
	Data  []metricResource `json:"data"`
	Links pageLinks        `json:"links"`
}

// ListMetrics fetches every metric defined on the account.
func (c *Client) ListMetrics(ctx context.Context) ([]Metric, error) {
	var metrics []Metric

	next := c.baseURL + "/metrics"
	for next != "" {
		resp, err := c.get(ctx, next)
		if err != nil {
			return nil, fmt.Errorf("fetch metrics: %w", err)
		}

		page, err := decodeMetricPage(resp)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}

		for _, m := range page.Data {
			metrics = append(metrics, Metric{
				ID:          m.ID,
				Name:        m.Attributes.Name,
				Integration: m.Attributes.Integration.Name,
				Created:     m.Attributes.Created,
			})
		}
		next = page.Links.Next
	}
	return metrics, nil
}

// ResolveReviewMetricID looks up the metric ID for submitted reviews. The
// metric only exists on accounts with Klaviyo Reviews enabled.
func (c *Client) ResolveReviewMetricID(ctx context.Context) (string, error) {
	metrics, err := c.ListMetrics(ctx)
	if err != nil {
		return "", err
	}
	for _, m := range metrics {
		if m.Name == reviewMetricName {
			return m.ID, nil
		}
	}
	return "", fmt.Errorf("metric %q not found: check that Klaviyo Reviews is enabled", reviewMetricName)
}

func decodeMetricPage(resp *http.Response) (*metricPage, error) {
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, &AuthError{Status: resp.StatusCode, Detail: errorDetail(resp)}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apiError(resp)
	}

	var page metricPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, &ParseError{Err: err}
	}
	return &page, nil
}
