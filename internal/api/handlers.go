package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nishant152030/Project-manager-2/internal/auth"
	"github.com/nishant152030/Project-manager-2/internal/scheduler"
	"github.com/nishant152030/Project-manager-2/pkg/models"
)

const (
	msgProjectNotFound = "Project not found"
	msgTaskNotFound    = "Task not found"
)

// healthBody is returned by GET /.
type healthBody struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Timestamp time.Time `json:"timestamp"`
}

// healthPingTimeout bounds the database check in the health endpoint.
const healthPingTimeout = 2 * time.Second

func (h *handler) health(c *gin.Context) {
	body := healthBody{
		Status:    "healthy",
		Service:   ServiceName,
		Timestamp: h.now().UTC(),
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), healthPingTimeout)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		_ = c.Error(err)
		body.Status = "unhealthy"
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}

	c.JSON(http.StatusOK, body)
}

// Auth

func (h *handler) register(c *gin.Context) {
	var req models.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.auth.Register(c.Request.Context(), &req)
	if errors.Is(err, auth.ErrUsernameTaken) {
		abortMessage(c, http.StatusBadRequest, "Username already exists")
		return
	}
	if errors.Is(err, auth.ErrPasswordTooLong) {
		abortMessage(c, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		abortInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Token: token})
}

func (h *handler) login(c *gin.Context) {
	var req models.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, err := h.auth.Login(c.Request.Context(), &req)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		abortMessage(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		abortInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, models.AuthResponse{Token: token})
}

// Projects

func (h *handler) listProjects(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}

	projects, err := h.store.ListProjects(c.Request.Context(), uid)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *handler) createProject(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	var req models.CreateProjectRequest
	if !bindJSON(c, &req) {
		return
	}

	p := &models.Project{UserID: uid, Title: req.Title}
	if req.Description != "" {
		desc := req.Description
		p.Description = &desc
	}
	if err := h.store.CreateProject(c.Request.Context(), p); err != nil {
		abortInternal(c, err)
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+strconv.FormatInt(p.ID, 10))
	c.JSON(http.StatusCreated, p)
}

func (h *handler) getProject(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}

	p, err := h.store.GetProject(c.Request.Context(), uid, id)
	if err != nil {
		abortStoreError(c, err, msgProjectNotFound)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) deleteProject(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return
	}

	if err := h.store.DeleteProject(c.Request.Context(), uid, id); err != nil {
		abortStoreError(c, err, msgProjectNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireProject resolves :id to a project owned by the caller.
func (h *handler) requireProject(c *gin.Context) (int64, bool) {
	uid, ok := mustUserID(c)
	if !ok {
		return 0, false
	}
	id, ok := pathID(c, "id", msgProjectNotFound)
	if !ok {
		return 0, false
	}

	exists, err := h.store.ProjectExists(c.Request.Context(), uid, id)
	if err != nil {
		abortInternal(c, err)
		return 0, false
	}
	if !exists {
		abortMessage(c, http.StatusNotFound, msgProjectNotFound)
		return 0, false
	}
	return id, true
}

// Tasks

func (h *handler) listTasks(c *gin.Context) {
	projectID, ok := h.requireProject(c)
	if !ok {
		return
	}

	tasks, err := h.store.ListTasks(c.Request.Context(), projectID)
	if err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *handler) createTask(c *gin.Context) {
	projectID, ok := h.requireProject(c)
	if !ok {
		return
	}
	var req models.CreateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	t := &models.Task{ProjectID: projectID, Title: req.Title, DueDate: req.DueDate}
	if err := h.store.CreateTask(c.Request.Context(), t); err != nil {
		abortInternal(c, err)
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (h *handler) updateTask(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", msgTaskNotFound)
	if !ok {
		return
	}
	var req models.UpdateTaskRequest
	if !bindJSON(c, &req) {
		return
	}

	t, err := h.store.UpdateTaskForUser(c.Request.Context(), uid, id, func(t *models.Task) {
		t.Apply(req)
	})
	if err != nil {
		abortStoreError(c, err, msgTaskNotFound)
		return
	}
	c.JSON(http.StatusOK, t)
}

func (h *handler) deleteTask(c *gin.Context) {
	uid, ok := mustUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id", msgTaskNotFound)
	if !ok {
		return
	}

	if err := h.store.DeleteTaskForUser(c.Request.Context(), uid, id); err != nil {
		abortStoreError(c, err, msgTaskNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}

// Scheduling

func (h *handler) schedule(c *gin.Context) {
	if _, ok := h.requireProject(c); !ok {
		return
	}

	var req models.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.metrics.observeSchedule(0, err)
		abortMessage(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		h.metrics.observeSchedule(len(req.Tasks), err)
		abortMessage(c, http.StatusBadRequest, models.ValidationMessage(err))
		return
	}
	req.Normalize()

	result, err := h.scheduler.ComputeSchedule(req)
	h.metrics.observeSchedule(len(req.Tasks), err)
	if err != nil {
		if scheduler.IsRequestError(err) {
			abortMessage(c, http.StatusBadRequest, err.Error())
			return
		}
		abortInternal(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
