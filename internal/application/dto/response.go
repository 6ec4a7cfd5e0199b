package dto

import "time"

// Response is the uniform envelope returned by every API endpoint.
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorInfo  `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

// ErrorInfo carries a machine-readable code alongside the human message.
type ErrorInfo struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// SuccessResponse wraps data in a successful envelope.
func SuccessResponse(data interface{}, message string) *Response {
	return &Response{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UTC(),
	}
}

// ErrorResponse wraps an error code and message in a failed envelope.
func ErrorResponse(code, message string, details map[string]interface{}) *Response {
	return &Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
			Details: details,
		},
		Timestamp: time.Now().UTC(),
	}
}

// PaginatedData wraps list payloads with paging metadata.
type PaginatedData struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Limit      int         `json:"limit"`
	Offset     int         `json:"offset"`
	HasMore    bool        `json:"has_more"`
	NextOffset int         `json:"next_offset,omitempty"`
}

// NewPaginatedData builds the paging metadata from a fetched page.
func NewPaginatedData(items interface{}, total int64, limit, offset, fetched int) *PaginatedData {
	data := &PaginatedData{
		Items:  items,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	if int64(offset+fetched) < total {
		data.HasMore = true
		data.NextOffset = offset + fetched
	}
	return data
}
