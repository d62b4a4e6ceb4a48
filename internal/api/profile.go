package api

import (
	"bagbuilder-go/internal/auth"
	"bagbuilder-go/internal/onboarding"
	"bagbuilder-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProfileHandler serves onboarding and the user settings.
type ProfileHandler struct {
	Tracker *tracker.Service
	Logger  *zap.Logger
}

type emergencyRequest struct {
	EmergencyFund *float64 `json:"emergency_fund" binding:"required"`
}

// Register mounts the onboarding and settings routes on r.
func (h *ProfileHandler) Register(r gin.IRouter) {
	r.GET("/onboarding/questions", h.questions)
	r.POST("/onboarding", h.onboard)
	r.GET("/settings", h.settings)
	r.PUT("/settings", h.updateSettings)
}

func (h *ProfileHandler) questions(c *gin.Context) {
	Ok(c, onboarding.Questions, nil)
}

func (h *ProfileHandler) onboard(c *gin.Context) {
	var answers onboarding.Answers
	if !bindJSON(c, &answers) {
		return
	}
	plan, err := h.Tracker.Onboard(c.Request.Context(), auth.UserID(c), answers)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, plan)
}

func (h *ProfileHandler) settings(c *gin.Context) {
	settings, err := h.Tracker.Settings(c.Request.Context(), auth.UserID(c))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, settings, nil)
}

func (h *ProfileHandler) updateSettings(c *gin.Context) {
	var req emergencyRequest
	if !bindJSON(c, &req) {
		return
	}
	settings, err := h.Tracker.SetEmergencyFund(c.Request.Context(), auth.UserID(c), *req.EmergencyFund)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, settings, nil)
}
