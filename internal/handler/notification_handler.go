package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xxxsen/remindme/internal/pkg/response"
	"github.com/xxxsen/remindme/internal/service"
)

type NotificationHandler struct {
	notifications *service.NotificationService
}

func NewNotificationHandler(notifications *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) Send(c *gin.Context) {
	var req service.Notification
	if err := bindJSON(c, &req); err != nil {
		handleError(c, err)
		return
	}
	if err := h.notifications.Send(c.Request.Context(), req); err != nil {
		handleError(c, err)
		return
	}
	response.Message(c, "Notification sent successfully")
}
