package api

import (
	"bagbuilder-go/internal/auth"
	"bagbuilder-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// WalletHandler serves stablecoin balances and contributions.
type WalletHandler struct {
	Tracker *tracker.Service
	Logger  *zap.Logger
}

type stableRequest struct {
	Label  string  `json:"label"`
	Amount float64 `json:"amount"`
}

type amountRequest struct {
	Amount *float64 `json:"amount" binding:"required"`
}

// Register mounts the stable balance and contribution routes on r.
func (h *WalletHandler) Register(r gin.IRouter) {
	r.GET("/stables", h.listStables)
	r.POST("/stables", h.createStable)
	r.PUT("/stables/:id", h.updateStable)
	r.DELETE("/stables/:id", h.deleteStable)
	r.GET("/contributions", h.listContributions)
	r.POST("/contributions", h.createContribution)
}

func (h *WalletHandler) listStables(c *gin.Context) {
	stables, err := h.Tracker.Stables(c.Request.Context(), auth.UserID(c))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, stables, nil)
}

func (h *WalletHandler) createStable(c *gin.Context) {
	var req stableRequest
	if !bindJSON(c, &req) {
		return
	}
	sb, err := h.Tracker.AddStable(c.Request.Context(), auth.UserID(c), req.Label, req.Amount)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, sb)
}

func (h *WalletHandler) updateStable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req amountRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Tracker.SetStableAmount(c.Request.Context(), auth.UserID(c), id, *req.Amount); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, gin.H{"id": id, "amount": *req.Amount}, nil)
}

func (h *WalletHandler) deleteStable(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Tracker.RemoveStable(c.Request.Context(), auth.UserID(c), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}

func (h *WalletHandler) listContributions(c *gin.Context) {
	contribs, err := h.Tracker.Contributions(c.Request.Context(), auth.UserID(c))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	total := 0.0
	for _, ct := range contribs {
		total += ct.Amount
	}
	Ok(c, contribs, map[string]any{"total": total})
}

func (h *WalletHandler) createContribution(c *gin.Context) {
	var in tracker.ContributionInput
	if !bindJSON(c, &in) {
		return
	}
	ct, err := h.Tracker.AddContribution(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, ct)
}
