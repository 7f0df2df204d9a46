package domain

// GuidanceRequest is the body of POST /api/travel-guidance/.
// UserMessage is a pointer so that a missing field can be told apart from "".
type GuidanceRequest struct {
	UserMessage *string    `json:"user_message"`
	Messages    Transcript `json:"messages"`
}

// GuidanceResponse is returned for every outcome of a guidance call.
type GuidanceResponse struct {
	Response string     `json:"response"`
	Messages Transcript `json:"messages"`
}

// FieldError describes one invalid request field.
type FieldError struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

// ValidationErrorResponse is returned with 422 Unprocessable Entity.
type ValidationErrorResponse struct {
	Detail []FieldError `json:"detail"`
}

// ErrorResponse is returned for requests that could not be read at all.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status string `json:"status"`
}

// APIInfo describes the JSON API.
type APIInfo struct {
	Title       string `json:"title"`
	Version     string `json:"version"`
	Description string `json:"description"`
}
