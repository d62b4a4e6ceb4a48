package api

import (
	"errors"
	"net/http"
	"strconv"

	"bagbuilder-go/internal/store"
	"bagbuilder-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Ok writes a 200 envelope.
func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

// Created writes a 201 envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, apiResponse{
		Code:    0,
		Message: "created",
		Data:    data,
	})
}

// Error writes an error envelope with status as its code.
func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// Fail maps a tracker or store error to a status code.
func Fail(c *gin.Context, logger *zap.Logger, err error) {
	var verr *tracker.ValidationError
	var perr *store.PersistenceError
	switch {
	case errors.As(err, &verr):
		Error(c, http.StatusBadRequest, err.Error(), map[string]any{"field": verr.Field})
	case errors.Is(err, store.ErrUnauthenticated):
		Error(c, http.StatusUnauthorized, err.Error(), nil)
	case errors.Is(err, store.ErrNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.As(err, &perr):
		logger.Error("Storage backend failed", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, http.StatusBadGateway, "storage backend unavailable", nil)
	default:
		logger.Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		Error(c, http.StatusInternalServerError, "internal error", nil)
	}
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		Error(c, http.StatusBadRequest, "invalid id", nil)
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		Error(c, http.StatusBadRequest, "invalid request body", map[string]any{"error": err.Error()})
		return false
	}
	return true
}
