package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akosarev/taskvault/internal/common"
	"github.com/akosarev/taskvault/internal/server/models"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userResponse is the only shape in which a user leaves the server: the
// password hash and the session list stay internal.
type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email}
}

func (s *HTTPServer) registerUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	user, token, err := s.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Registered user", "email", user.Email)

	c.Header(common.AccessTokenHeaderName, token)
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) loginUser(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	user, token, err := s.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.Header(common.AccessTokenHeaderName, token)
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (s *HTTPServer) currentUser(c *gin.Context) {
	c.JSON(http.StatusOK, toUserResponse(authedUser(c)))
}

func (s *HTTPServer) logoutUser(c *gin.Context) {
	user := authedUser(c)

	if err := s.users.Logout(c.Request.Context(), user.ID, authedToken(c)); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (s *HTTPServer) deleteAccount(c *gin.Context) {
	user := authedUser(c)

	if err := s.users.DeleteAccount(c.Request.Context(), user.ID); err != nil {
		s.writeError(c, err)
		return
	}

	s.logger.Info(c.Request.Context(), "Deleted account", "email", user.Email)

	c.Status(http.StatusOK)
}
