// Package httpapi exposes the task and account services over HTTP. Every
// route maps service errors onto plain status codes; response bodies never
// carry internal error details.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akosarev/taskvault/internal/common"
	"github.com/akosarev/taskvault/internal/logging"
	"github.com/akosarev/taskvault/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type HTTPServer struct {
	address string
	logger  logging.Logger
	users   *services.UserService
	tasks   *services.TaskService
}

func NewHTTPServer(address string, l logging.Logger, us *services.UserService, ts *services.TaskService) *HTTPServer {
	return &HTTPServer{
		address: address,
		logger:  l.With("module", "http_server"),
		users:   us,
		tasks:   ts,
	}
}

func (s *HTTPServer) setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "OK"})
	})

	r.POST("/users", s.registerUser)
	r.POST("/users/login", s.loginUser)

	authorized := r.Group("/", s.authRequired())
	authorized.GET("/users/me", s.currentUser)
	authorized.DELETE("/users/me/token", s.logoutUser)
	authorized.DELETE("/users/me", s.deleteAccount)

	authorized.POST("/tasks", s.createTask)
	authorized.GET("/tasks", s.listTasks)
	authorized.GET("/tasks/:id", s.getTask)
	authorized.PATCH("/tasks/:id", s.updateTask)
	authorized.DELETE("/tasks/:id", s.deleteTask)

	authorized.POST("/tasks/:id/files", s.requestAttachmentUpload)
	authorized.GET("/tasks/:id/files", s.listAttachments)
	authorized.POST("/tasks/:id/files/:fileID/complete", s.completeAttachmentUpload)

	return r
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.setupRouter(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// writeError translates a service error into a bare status code. Anything
// unrecognized is logged and reported as a 500 without leaking detail.
func (s *HTTPServer) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation),
		errors.Is(err, common.ErrorAlreadyExists),
		errors.Is(err, common.ErrorInvalidCredentials):
		c.AbortWithStatus(http.StatusBadRequest)
	case errors.Is(err, common.ErrorUnauthorized):
		c.AbortWithStatus(http.StatusUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		c.AbortWithStatus(http.StatusNotFound)
	default:
		s.logger.Error(c.Request.Context(), err.Error())
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}
