package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/crmdeck/crmdeck/internal/common/config"
)

// CORS allows the configured browser origins to call the API. An empty
// list allows any origin, which suits local development.
func CORS(cfg *config.CORSConfig) gin.HandlerFunc {
	allowed := map[string]bool{}
	for _, o := range cfg.AllowOrigins {
		allowed[o] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && (len(allowed) == 0 || allowed[origin]) {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, Accept-Language, user_id")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
