package api

import (
	"bagbuilder-go/internal/auth"
	"bagbuilder-go/internal/format"
	"bagbuilder-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler serves the computed views. Nothing here is cached.
type ReportHandler struct {
	Tracker *tracker.Service
	Logger  *zap.Logger
}

// Register mounts the dashboard, stats and rules routes on r.
func (h *ReportHandler) Register(r gin.IRouter) {
	r.GET("/dashboard", h.dashboard)
	r.GET("/stats", h.stats)
	r.GET("/rules", h.rules)
}

func (h *ReportHandler) dashboard(c *gin.Context) {
	d, err := h.Tracker.Dashboard(c.Request.Context(), auth.UserID(c))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	s := d.Summary
	Ok(c, d, map[string]any{
		"display": map[string]string{
			"total_portfolio": format.USD(s.TotalPortfolio),
			"net_worth":       format.USD(s.NetWorth),
			"total_pnl":       format.USD(s.TotalPnL),
			"roi":             format.Pct(s.ROI),
			"win_rate":        format.WholePct(s.WinRate),
			"streak":          format.Streak(s.Streak),
		},
	})
}

func (h *ReportHandler) stats(c *gin.Context) {
	s, err := h.Tracker.Stats(c.Request.Context(), auth.UserID(c))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, s, nil)
}

func (h *ReportHandler) rules(c *gin.Context) {
	r, err := h.Tracker.Rules(c.Request.Context(), auth.UserID(c))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, r, nil)
}
