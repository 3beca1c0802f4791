package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/remindme/internal/middleware"
	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
	"github.com/xxxsen/remindme/internal/pkg/response"
)

func getUserID(c *gin.Context) int64 {
	return c.GetInt64(middleware.ContextUserIDKey)
}

// bindJSON decodes the request body into dst. An empty body leaves dst
// untouched so validation can name the missing fields.
func bindJSON(c *gin.Context, dst interface{}) error {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return appErr.Invalid(typeErr.Field, typeErr.Field+": has the wrong type")
	}
	return appErr.Invalid("", "invalid request body")
}

func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	status, msg := classify(err)
	logger := logutil.GetLogger(c.Request.Context()).With(
		zap.String("request_id", c.GetString(middleware.ContextRequestIDKey)),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int64("user_id", getUserID(c)),
		zap.Int("status", status),
		zap.Error(err),
	)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed")
	} else {
		logger.Debug("request rejected")
	}
	var e *appErr.Error
	if errors.As(err, &e) && e.Field() != "" {
		response.FieldError(c, status, msg, e.Field())
		return
	}
	response.Error(c, status, msg)
}

func classify(err error) (int, string) {
	var status int
	switch {
	case errors.Is(err, appErr.ErrInvalid), errors.Is(err, appErr.ErrConflict):
		status = http.StatusBadRequest
	case errors.Is(err, appErr.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, appErr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, appErr.ErrConfig):
		status = http.StatusInternalServerError
	case errors.Is(err, appErr.ErrDelivery):
		status = http.StatusBadGateway
	default:
		return http.StatusInternalServerError, "internal error"
	}
	var e *appErr.Error
	if errors.As(err, &e) {
		return status, e.Message()
	}
	return status, err.Error()
}
