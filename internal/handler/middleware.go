package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDHeader = "X-Request-ID"

// CORS allows every origin.
func CORS() gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{requestIDHeader},
		MaxAge:          12 * time.Hour,
	})
}

// Middleware is the chain every route runs through. RequestLogger sits
// outside Recovery so panics still produce a request line.
func Middleware() []gin.HandlerFunc {
	return []gin.HandlerFunc{RequestLogger(), gin.Recovery(), CORS()}
}

// RequestLogger tags each request with an id and logs it once it completes,
// along with any errors the handler recorded.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := c.GetHeader(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Header(requestIDHeader, reqID)

		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"ip", c.ClientIP(),
			"request_id", reqID,
		}
		if len(c.Errors) > 0 {
			slog.Error("HTTP Request", append(attrs, "error", c.Errors.String())...)
			return
		}
		slog.Info("HTTP Request", attrs...)
	}
}

// Liveness answers GET /.
func Liveness(c *gin.Context) {
	c.String(http.StatusOK, "server was running")
}
