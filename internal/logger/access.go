package logger

import (
	"io"

	ginlog "github.com/gin-contrib/logger"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RequestIDKey is the gin context key the request id middleware stores under.
const RequestIDKey = "request_id"

// AccessLog writes one zerolog line per request to w, skipping health checks.
func AccessLog(w io.Writer) gin.HandlerFunc {
	return ginlog.SetLogger(
		ginlog.WithSkipPath([]string{"/health"}),
		ginlog.WithUTC(true),
		ginlog.WithLogger(func(c *gin.Context, l zerolog.Logger) zerolog.Logger {
			l = l.Output(w)
			if id := c.GetString(RequestIDKey); id != "" {
				l = l.With().Str(RequestIDKey, id).Logger()
			}
			return l
		}),
	)
}
