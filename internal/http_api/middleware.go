package http_api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/argab/lottery/internal/auth"
	"github.com/argab/lottery/pkg/logger"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestID ensures every request has an ID for tracing and logs.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(requestIDHeader)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set(requestIDKey, rid)
		c.Writer.Header().Set(requestIDHeader, rid)
		c.Next()
	}
}

// requestLogger logs every request once it has been served.
func requestLogger(log *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Infow("HTTP request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"ip", c.ClientIP(),
		)
	}
}

// corsMiddleware allows the JSON endpoints to be called from the listed origins.
func corsMiddleware(origins []string) gin.HandlerFunc {
	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", requestIDHeader},
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}

func (s *HTTPServer) authorized(c *gin.Context) bool {
	token, err := c.Cookie(auth.CookieName)
	if err != nil {
		return false
	}
	return s.gate.Authorized(token)
}

// requireAdmin sends visitors without an admin session to the login page.
func (s *HTTPServer) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.authorized(c) {
			s.logger.Debugw("Unauthorized admin request", "path", c.Request.URL.Path)
			c.Redirect(http.StatusFound, "/admin-login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// requireAdminAPI rejects JSON requests without an admin session.
func (s *HTTPServer) requireAdminAPI() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.authorized(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"valid":   false,
				"message": "Unauthorized",
			})
			return
		}
		c.Next()
	}
}

func (s *HTTPServer) setSessionCookie(c *gin.Context, token string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     auth.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https",
		// Admin actions are plain GET links; a strict cookie keeps them same-site.
		SameSite: http.SameSiteStrictMode,
	})
}
