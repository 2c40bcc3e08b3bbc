package middleware

import (
	"net/http"

	"github.com/coachportal/portalproxy/internal/config"
	"github.com/gin-gonic/gin"
)

// CORSMiddleware only admits the storefront origin from config
func CORSMiddleware(cfg *config.Configuration) gin.HandlerFunc {
	allowed := cfg.CORS.AllowedOrigin

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && origin == allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowed)
			c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
			c.Writer.Header().Set("Access-Control-Max-Age", "86400")
		}
		c.Writer.Header().Add("Vary", "Origin")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
