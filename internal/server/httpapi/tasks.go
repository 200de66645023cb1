package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akosarev/taskvault/internal/server/models"
	"github.com/akosarev/taskvault/internal/server/repositories/tasks"
)

type taskResponse struct {
	ID          string     `json:"id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTaskResponse(t *models.Task) taskResponse {
	return taskResponse{
		ID:          t.ID,
		Text:        t.Text,
		Completed:   t.Completed,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// pathID validates the :id segment. A malformed id cannot match any stored
// row, so it gets the same 404 as an absent or foreign one.
func pathID(c *gin.Context, name string) (string, bool) {
	id := c.Param(name)
	if _, err := uuid.Parse(id); err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return "", false
	}
	return id, true
}

func (s *HTTPServer) createTask(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), authedUser(c).ID, req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *HTTPServer) listTasks(c *gin.Context) {
	list, err := s.tasks.List(c.Request.Context(), authedUser(c).ID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]taskResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTaskResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"tasks": out})
}

func (s *HTTPServer) getTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := s.tasks.Get(c.Request.Context(), authedUser(c).ID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *HTTPServer) updateTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		Text      *string `json:"text"`
		Completed *bool   `json:"completed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	task, err := s.tasks.Update(c.Request.Context(), authedUser(c).ID, id,
		tasks.TaskUpdate{Text: req.Text, Completed: req.Completed})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *HTTPServer) deleteTask(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	task, err := s.tasks.Delete(c.Request.Context(), authedUser(c).ID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTaskResponse(task))
}

func (s *HTTPServer) requestAttachmentUpload(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	up, err := s.tasks.RequestAttachmentUpload(c.Request.Context(), authedUser(c).ID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":  up.FileID,
		"key": up.StorageKey,
		"url": up.URL,
	})
}

func (s *HTTPServer) listAttachments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	links, err := s.tasks.ListAttachments(c.Request.Context(), authedUser(c).ID, id)
	if err != nil {
		s.writeError(c, err)
		return
	}

	type fileResponse struct {
		ID     string `json:"id"`
		Key    string `json:"key"`
		Status string `json:"status"`
		URL    string `json:"url,omitempty"`
	}
	out := make([]fileResponse, 0, len(links))
	for _, l := range links {
		out = append(out, fileResponse{ID: l.FileID, Key: l.StorageKey, Status: l.Status, URL: l.URL})
	}
	c.JSON(http.StatusOK, gin.H{"files": out})
}

func (s *HTTPServer) completeAttachmentUpload(c *gin.Context) {
	taskID, ok := pathID(c, "id")
	if !ok {
		return
	}
	fileID, ok := pathID(c, "fileID")
	if !ok {
		return
	}

	if err := s.tasks.CompleteAttachmentUpload(c.Request.Context(), authedUser(c).ID, taskID, fileID); err != nil {
		s.writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}
