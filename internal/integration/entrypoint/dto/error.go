// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`

	// ImpactCount carries the rebuild impact when the safety guard rejects
	// an unconfirmed retroactive write.
	ImpactCount *int64 `json:"impact_count,omitempty"`
}
