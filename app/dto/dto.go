// Package dto contains data transfer objects for API requests and responses with validation tags
package dto

// APIResponse is the envelope every endpoint returns. Status reports
// whether the operation succeeded and Data carries the payload, or an
// ErrorDetail when Status is false.
type APIResponse struct {
	Status bool `json:"status"`
	Data   any  `json:"data,omitempty"`
}

// ErrorDetail carries machine-readable error information in failed responses
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// NewSuccessResponse creates a successful envelope around data
func NewSuccessResponse(data any) APIResponse {
	return APIResponse{
		Status: true,
		Data:   data,
	}
}

// NewErrorResponse creates a failed envelope carrying an error detail
func NewErrorResponse(code, message string, details any) APIResponse {
	return APIResponse{
		Status: false,
		Data: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	}
}
