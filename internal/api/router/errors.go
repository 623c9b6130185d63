package router

// ErrorResponse is the body written by the global error handler.
type ErrorResponse struct {
	Error string `json:"error"`
	Title string `json:"title,omitempty"`
}
