package middleware

import (
	"strconv"
	"time"

	"artscore_backend/internal/config"
	"artscore_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CSRFMiddleware verifies the X-CSRF-Token header on browser-form
// mutations. Tokens are bound to the authenticated user, so it must run
// after AuthMiddleware.
func CSRFMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == "GET" || c.Request.Method == "HEAD" || c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		claims := util.GetUserFromContext(c)
		if claims == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		token := c.GetHeader("X-CSRF-Token")
		if token == "" {
			token = c.PostForm("csrf_token")
		}
		if token == "" {
			util.Forbidden(c)
			c.Abort()
			return
		}

		subject := strconv.FormatUint(uint64(claims.UserID), 10)
		if err := util.VerifyCSRFToken(token, subject, cfg.CSRF.Secret, cfg.CSRF.TTL, time.Now()); err != nil {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Next()
	}
}
