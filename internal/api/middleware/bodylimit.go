package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes is the request body cap applied by BodyLimit.
const DefaultMaxBodyBytes int64 = 1 << 20

// BodyLimit wraps request bodies in a size-capped reader. Reads past the
// cap fail inside the handler and surface through its normal error path.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
