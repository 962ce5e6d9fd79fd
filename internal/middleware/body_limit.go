package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes matches the JSON limit of earlier releases.
const DefaultMaxBodyBytes int64 = 10 << 20

// MaxBody caps the request body. Reads past the limit fail with
// *http.MaxBytesError, which the binding helpers report as 413.
func MaxBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
