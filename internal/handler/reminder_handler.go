package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/xxxsen/remindme/internal/model"
	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
	"github.com/xxxsen/remindme/internal/pkg/response"
	"github.com/xxxsen/remindme/internal/service"
)

type ReminderHandler struct {
	reminders *service.ReminderService
}

func NewReminderHandler(reminders *service.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

func (h *ReminderHandler) List(c *gin.Context) {
	items, err := h.reminders.List(c.Request.Context(), getUserID(c), c.Query("search"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, items)
}

func (h *ReminderHandler) Create(c *gin.Context) {
	var req service.ReminderCreateInput
	if err := bindJSON(c, &req); err != nil {
		handleError(c, err)
		return
	}
	item, err := h.reminders.Create(c.Request.Context(), getUserID(c), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Created(c, item)
}

func (h *ReminderHandler) Update(c *gin.Context) {
	id, err := reminderID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	var patch model.ReminderPatch
	if err := bindJSON(c, &patch); err != nil {
		handleError(c, err)
		return
	}
	item, err := h.reminders.Update(c.Request.Context(), getUserID(c), id, patch)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, item)
}

func (h *ReminderHandler) Delete(c *gin.Context) {
	id, err := reminderID(c)
	if err != nil {
		handleError(c, err)
		return
	}
	if err := h.reminders.Delete(c.Request.Context(), getUserID(c), id); err != nil {
		handleError(c, err)
		return
	}
	response.Message(c, "Reminder deleted successfully")
}

// reminderID reads ?id=. A missing id yields zero, which the service rejects.
func reminderID(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.Query("id"))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, appErr.Invalid("id", "reminder id must be a positive integer")
	}
	return id, nil
}
