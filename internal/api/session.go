package api

import (
	"net/http"

	"bagbuilder-go/internal/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SessionHandler hands out anonymous sessions. Each session owns a fresh,
// empty journal.
type SessionHandler struct {
	JWT    auth.JWT
	Logger *zap.Logger
}

// Register mounts the anonymous sign-in route on r.
func (h *SessionHandler) Register(r gin.IRouter) {
	r.POST("/api/auth/anonymous", h.anonymous)
}

func (h *SessionHandler) anonymous(c *gin.Context) {
	s, err := h.JWT.IssueAnonymous()
	if err != nil {
		h.Logger.Error("Failed to issue session", zap.Error(err))
		Error(c, http.StatusInternalServerError, "failed to issue session", nil)
		return
	}
	h.Logger.Info("Issued anonymous session", zap.String("user_id", s.UserID))
	Created(c, s)
}
