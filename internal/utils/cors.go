package utils

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewCORS allows the given origins with credentials. A "*" entry allows any
// origin by echoing it back, since a literal wildcard is rejected by browsers
// on credentialed requests. Every requested header is allowed on preflight.
func NewCORS(origins []string) gin.HandlerFunc {
	policy := newCORSPolicy(origins)
	return func(c *gin.Context) {
		reflectRequestedHeaders(c)
		policy(c)
	}
}

// reflectRequestedHeaders answers a preflight with the headers it asked for.
// cors.New leaves Access-Control-Allow-Headers alone when AllowHeaders is empty.
func reflectRequestedHeaders(c *gin.Context) {
	if c.Request.Method != http.MethodOptions || c.GetHeader("Origin") == "" {
		return
	}
	if requested := c.GetHeader("Access-Control-Request-Headers"); requested != "" {
		c.Header("Access-Control-Allow-Headers", requested)
	}
}

func newCORSPolicy(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o == "*" {
			cfg.AllowOriginFunc = func(string) bool { return true }
			return cors.New(cfg)
		}
		if o != "" {
			allowed = append(allowed, strings.TrimSuffix(o, "/"))
		}
	}

	if len(allowed) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
	} else {
		cfg.AllowOrigins = allowed
	}
	return cors.New(cfg)
}
