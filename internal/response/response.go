// Package response provides the uniform API envelope wrapping every result,
// success or failure: {message, data, timestamp}.
package response

import (
	"time"

	"github.com/labstack/echo/v4"
)

// Envelope is the wire format shared by all endpoints.
type Envelope struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data"`
	Timestamp time.Time   `json:"timestamp"`
}

// JSON writes the envelope with the given status code. Data may be nil; the
// field is still emitted as null so clients see a stable shape.
func JSON(c echo.Context, status int, message string, data interface{}) error {
	return c.JSON(status, Envelope{
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	})
}
