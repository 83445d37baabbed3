package server

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/basel-ax/reimagine/internal/domain"
	"github.com/basel-ax/reimagine/internal/repository"
)

const (
	sessionCookie     = "reimagine_session"
	sessionContextKey = "session"
)

// WithSession loads the browser's session, creating one when the cookie is missing or stale
func WithSession(sessions repository.SessionRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, _ := c.Cookie(sessionCookie)
		sess, ok := sessions.Get(id)
		if !ok {
			sess = sessions.Create()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(sessionCookie, sess.ID, 0, "/", "", false, true)
		}
		c.Set(sessionContextKey, sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *domain.Session {
	return c.MustGet(sessionContextKey).(*domain.Session)
}

// AccessLog logs every request; failed ones at error level with the collected gin errors
func AccessLog(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.Int("status", status),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}

		if len(c.Errors) > 0 {
			fields = append(fields, zap.Strings("errors", c.Errors.Errors()))
		}

		if status >= http.StatusInternalServerError || len(c.Errors) > 0 {
			logger.Error("[ACCESS]", fields...)
			return
		}
		logger.Debug("[ACCESS]", fields...)
	}
}

// Recovery turns panics into 500 responses and logs them
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, recovered any) {
		logger.Error("panic recovered",
			zap.Any("panic", recovered),
			zap.String("path", c.Request.URL.Path),
		)
		c.AbortWithStatus(http.StatusInternalServerError)
	})
}
