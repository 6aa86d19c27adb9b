package app

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// corsMiddleware builds the CORS policy from the configured origin list.
// Entries may carry a leading wildcard ("*.alwasl.fr") matched by suffix.
func corsMiddleware(origins []string, dev bool) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	if dev && len(origins) == 0 {
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cors.New(cfg)
	}

	cfg.AllowOriginFunc = func(origin string) bool {
		for _, pattern := range origins {
			if originMatches(origin, pattern) {
				return true
			}
		}
		return false
	}
	return cors.New(cfg)
}

func originMatches(origin, pattern string) bool {
	if pattern == "*" {
		return true
	}
	if strings.HasPrefix(pattern, "*.") {
		host := strings.TrimPrefix(strings.TrimPrefix(origin, "https://"), "http://")
		return strings.HasSuffix(host, pattern[1:]) || host == pattern[2:]
	}
	return origin == pattern
}
