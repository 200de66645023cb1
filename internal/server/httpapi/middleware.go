package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akosarev/taskvault/internal/common"
	"github.com/akosarev/taskvault/internal/server/models"
)

const (
	ctxUserKey  = "auth.user"
	ctxTokenKey = "auth.token"
)

// authRequired guards a route group: it extracts the session token from the
// X-Auth header and resolves it to a user before any handler runs. A missing
// header short-circuits to 401 without touching the identity service.
func (s *HTTPServer) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(common.AccessTokenHeaderName)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		user, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorInternal) {
				c.AbortWithStatus(http.StatusInternalServerError)
			} else {
				c.AbortWithStatus(http.StatusUnauthorized)
			}
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxTokenKey, token)
		c.Next()
	}
}

func authedUser(c *gin.Context) *models.User {
	v, _ := c.Get(ctxUserKey)
	user, _ := v.(*models.User)
	return user
}

func authedToken(c *gin.Context) string {
	v, _ := c.Get(ctxTokenKey)
	token, _ := v.(string)
	return token
}
