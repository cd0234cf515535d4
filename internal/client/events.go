package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// maxPageSize is the largest page the events endpoint accepts.
const maxPageSize = 200

// EventQuery filters the event feed to one metric within a date range.
type EventQuery struct {
	MetricID string
	Range    DateRange
}

// filter renders the JSON:API filter expression for the query.
func (q EventQuery) filter() string {
	return strings.Join([]string{
		fmt.Sprintf("equals(metric_id,'%s')", q.MetricID),
		fmt.Sprintf("greater-or-equal(datetime,%s)", q.Range.startDatetime()),
		fmt.Sprintf("less-or-equal(datetime,%s)", q.Range.endDatetime()),
	}, ",")
}

// StreamEvents pages through all events matching the query in datetime
// order, invoking fn for each one. Pages are fetched lazily: the next page
// is requested only after every event of the current page has been
// consumed. The sequence is finite and single-pass; an error from fn stops
// the stream immediately. Returns the number of events delivered.
func (c *Client) StreamEvents(ctx context.Context, q EventQuery, fn func(RawEvent) error) (int, error) {
	params := url.Values{}
	params.Set("filter", q.filter())
	params.Set("page[size]", strconv.Itoa(maxPageSize))
	params.Set("sort", "datetime")
	params.Set("include", "metric")

	next := c.baseURL + "/events?" + params.Encode()

	count := 0
	for next != "" {
		page, err := c.getEventPage(ctx, next)
		if err != nil {
			return count, err
		}
		for _, ev := range page.Data {
			if err := fn(ev); err != nil {
				return count, err
			}
			count++
		}
		next = page.Links.Next
	}
	return count, nil
}

// getEventPage fetches one page, retrying the identical URL on 429 so the
// cursor never advances past a rate-limited request.
func (c *Client) getEventPage(ctx context.Context, pageURL string) (*eventPage, error) {
	for attempt := 0; ; attempt++ {
		resp, err := c.get(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("fetch events: %w", err)
		}

		if resp.StatusCode == http.StatusTooManyRequests {
			after := retryAfter(resp)
			resp.Body.Close()
			if attempt >= c.limiter.MaxRetries() {
				return nil, &RateLimitError{Retries: attempt}
			}
			c.limiter.Backoff(attempt, after)
			continue
		}

		defer resp.Body.Close()

		if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
			return nil, &AuthError{Status: resp.StatusCode, Detail: errorDetail(resp)}
		}
		if resp.StatusCode != http.StatusOK {
			return nil, apiError(resp)
		}

		var page eventPage
		if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
			return nil, &ParseError{Err: err}
		}
		if len(page.Errors) > 0 {
			e := page.Errors[0]
			return nil, &APIError{Status: resp.StatusCode, Code: e.Code, Detail: e.Detail}
		}
		return &page, nil
	}
}

// GetEvent fetches a single event by ID with its full event properties.
func (c *Client) GetEvent(ctx context.Context, id string) (RawEvent, error) {
	resp, err := c.get(ctx, c.baseURL+"/events/"+url.PathEscape(id)+"?include=metric")
	if err != nil {
		return RawEvent{}, fmt.Errorf("fetch event %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return RawEvent{}, &AuthError{Status: resp.StatusCode, Detail: errorDetail(resp)}
	}
	if resp.StatusCode != http.StatusOK {
		return RawEvent{}, apiError(resp)
	}

	var doc eventDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return RawEvent{}, &ParseError{Err: err}
	}
	return doc.Data, nil
}

// retryAfter reads the Retry-After header, if the server sent one.
func retryAfter(resp *http.Response) time.Duration {
	v := resp.Header.Get("Retry-After")
	if v == "" {
		return 0
	}
	secs, err := strconv.Atoi(v)
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// errorDetail extracts the first JSON:API error detail from a failure body.
func errorDetail(resp *http.Response) string {
	var body jsonAPIErrors
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || len(body.Errors) == 0 {
		return ""
	}
	return body.Errors[0].Detail
}

// apiError builds an APIError from a non-success response.
func apiError(resp *http.Response) error {
	var body jsonAPIErrors
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && len(body.Errors) > 0 {
		e := body.Errors[0]
		return &APIError{Status: resp.StatusCode, Code: e.Code, Detail: e.Detail}
	}
	return &APIError{Status: resp.StatusCode}
}
