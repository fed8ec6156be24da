package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/seanazu/value-hunter/config"
)

func CORS(cfg *config.ConfigManager) gin.HandlerFunc {
	origins := cfg.GetConfig().FrontendUrls
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	return cors.New(cors.Config{
		// Exact front end origins; "*" is not allowed together with credentials
		AllowOrigins: origins,

		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},

		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Requested-With",
		},

		ExposeHeaders: []string{"Content-Length"},

		// The session cookie travels with cross-origin form requests
		AllowCredentials: true,

		MaxAge: 12 * time.Hour,
	})
}
