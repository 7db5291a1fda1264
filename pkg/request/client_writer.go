package request

import "net/http"

// ClientWriter is a http.ResponseWriter that records the status code written to the client.
type ClientWriter struct {
	http.ResponseWriter

	// statusCode is the status code written to the client.
	statusCode int
}

// NewClientWriter wraps w.
func NewClientWriter(w http.ResponseWriter) *ClientWriter {
	return &ClientWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

// WriteHeader records the status code and writes it to the client.
func (c *ClientWriter) WriteHeader(code int) {
	c.statusCode = code
	c.ResponseWriter.WriteHeader(code)
}

// StatusCode returns the status code written to the client. Defaults to 200.
func (c *ClientWriter) StatusCode() int {
	return c.statusCode
}
