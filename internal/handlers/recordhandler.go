package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/applytrack/applytrack/internal/dtos"
	"github.com/applytrack/applytrack/internal/store"
)

// RecordHandler exposes the record store over HTTP. It is the only
// path the presentation layer has to data.
type RecordHandler struct {
	Store *store.Store
}

func NewRecordHandler(s *store.Store) *RecordHandler {
	return &RecordHandler{Store: s}
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		// An unparseable id can't reference anything; same as missing.
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return uuid.Nil, false
	}
	return id, true
}

const dueDateLayout = "2006-01-02"

func (h *RecordHandler) ListApplications(c *gin.Context) {
	apps, err := h.Store.ListApplications(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

func (h *RecordHandler) CreateApplication(c *gin.Context) {
	var req dtos.ApplicationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.Store.CreateApplication(c.Request.Context(), store.ApplicationInput{
		Company:  req.Company,
		Position: req.Position,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, app)
}

func (h *RecordHandler) GetApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	app, err := h.Store.GetApplication(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *RecordHandler) UpdateApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dtos.ApplicationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	app, err := h.Store.UpdateApplication(c.Request.Context(), id, store.ApplicationUpdate{
		Company:  req.Company,
		Position: req.Position,
		Status:   req.Status,
		Notes:    req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, app)
}

func (h *RecordHandler) DeleteApplication(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteApplication(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecordHandler) ListTasks(c *gin.Context) {
	tasks, err := h.Store.ListTasks(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

func (h *RecordHandler) CreateTask(c *gin.Context) {
	var req dtos.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	appID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	in := store.TaskInput{Title: req.Title, Notes: req.Notes}
	if req.DueDate != "" {
		due, err := time.Parse(dueDateLayout, req.DueDate)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "validation failed: due_date must be YYYY-MM-DD", "field": "due_date",
			})
			return
		}
		in.DueDate = &due
	}
	task, err := h.Store.CreateTask(c.Request.Context(), appID, in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

func (h *RecordHandler) GetTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.Store.GetTask(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *RecordHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dtos.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}
	upd := store.TaskUpdate{
		Title:     req.Title,
		Completed: req.Completed,
		Notes:     req.Notes,
	}
	if req.ApplicationID != nil {
		appID, err := uuid.Parse(*req.ApplicationID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		upd.ApplicationID = &appID
	}
	if req.DueDate != nil {
		if *req.DueDate == "" {
			upd.ClearDueDate = true
		} else {
			due, err := time.Parse(dueDateLayout, *req.DueDate)
			if err != nil {
				c.JSON(http.StatusUnprocessableEntity, gin.H{
					"error": "validation failed: due_date must be YYYY-MM-DD", "field": "due_date",
				})
				return
			}
			upd.DueDate = &due
		}
	}
	task, err := h.Store.UpdateTask(c.Request.Context(), id, upd)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *RecordHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteTask(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RecordHandler) ToggleTaskCompleted(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	task, err := h.Store.ToggleTaskCompleted(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
