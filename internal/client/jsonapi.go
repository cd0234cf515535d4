package client

// RawEvent represents a single JSON:API event resource as returned by the
// Klaviyo events endpoint. Attributes are kept as a nested map because the
// event properties carry an open-ended set of keys (custom questions are
// named dynamically with a "CQ:" prefix).
type RawEvent struct {
	Type       string                 `json:"type"`
	ID         string                 `json:"id"`
	Attributes map[string]interface{} `json:"attributes"`
}

// eventPage is one page of the events collection, with the continuation
// link used for cursor pagination.
type eventPage struct {
	Data   []RawEvent     `json:"data"`
	Links  pageLinks      `json:"links"`
	Errors []jsonAPIError `json:"errors,omitempty"`
}

// eventDocument wraps a single event resource.
type eventDocument struct {
	Data   RawEvent       `json:"data"`
	Errors []jsonAPIError `json:"errors,omitempty"`
}

// pageLinks holds pagination links. Next is a complete URL, or empty on the
// last page.
type pageLinks struct {
	Self string `json:"self"`
	Next string `json:"next"`
}

// jsonAPIError represents a JSON:API error object.
type jsonAPIError struct {
	Status string `json:"status"`
	Code   string `json:"code"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// jsonAPIErrors is the top-level error document returned on failures.
type jsonAPIErrors struct {
	Errors []jsonAPIError `json:"errors"`
}
