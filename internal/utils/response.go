package utils

// exposeDetails controls whether raw error text is returned to clients.
var exposeDetails bool

// SetExposeDetails turns on the "details" field of error responses.
// Only development deployments should enable it.
func SetExposeDetails(enabled bool) {
	exposeDetails = enabled
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Success bool   `json:"success" example:"false"`
	Error   string `json:"error" example:"Schema not found"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is returned by operations that have no payload.
type MessageResponse struct {
	Success bool   `json:"success" example:"true"`
	Message string `json:"message" example:"Schema deleted successfully"`
}

// NewErrorResponse builds an error envelope. err is attached as details
// only when details are exposed.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Success: false,
		Error:   message,
	}
	if exposeDetails && err != nil {
		resp.Details = err.Error()
	}
	return resp
}

func NewMessageResponse(message string) MessageResponse {
	return MessageResponse{
		Success: true,
		Message: message,
	}
}
