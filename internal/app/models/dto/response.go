package dto

// APIResponse is the envelope every endpoint returns: a success carries
// {status_code, message, data}, a failure {status_code, message, error}.
type APIResponse struct {
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// NewSuccessResponse builds a success envelope.
func NewSuccessResponse(statusCode int, message string, data interface{}) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Message:    message,
		Data:       data,
	}
}

// NewErrorResponse builds a failure envelope.
func NewErrorResponse(statusCode int, message, cause string) APIResponse {
	return APIResponse{
		StatusCode: statusCode,
		Message:    message,
		Error:      cause,
	}
}

// PaginationInfo carries list paging metadata.
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListData wraps list endpoint payloads with pagination metadata.
type ListData struct {
	Items      interface{}    `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}
