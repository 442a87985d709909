// Package dto holds the request and response bodies of the v1 API.
package dto

// IntervalRequestAttributes describes one range to partition.
type IntervalRequestAttributes struct {
	Begin       string `json:"begin"`
	End         string `json:"end"`
	Granularity string `json:"granularity"`
	Count       *int   `json:"count,omitempty"`
	Fixed       bool   `json:"fixed,omitempty"`
	WeekStart   string `json:"week_start,omitempty"`
}

// IntervalRequestData represents one request in JSON:API format.
type IntervalRequestData struct {
	Type       string                    `json:"type"`
	Attributes IntervalRequestAttributes `json:"attributes"`
}

// BatchRequest represents a JSON:API batch generation request.
type BatchRequest struct {
	Data []IntervalRequestData `json:"data"`
}

// BatchResponse holds one schedule document per request, in request order.
type BatchResponse struct {
	Data []any `json:"data"`
}

// HealthResponse is returned by the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
