package api

import (
	"bagbuilder-go/internal/auth"
	"bagbuilder-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TradeHandler serves the trade journal routes.
type TradeHandler struct {
	Tracker *tracker.Service
	Logger  *zap.Logger
}

// Register mounts the trade journal routes on r.
func (h *TradeHandler) Register(r gin.IRouter) {
	r.GET("/trades", h.list)
	r.POST("/trades", h.create)
	r.POST("/trades/preview", h.preview)
	r.PUT("/trades/:id", h.update)
	r.DELETE("/trades/:id", h.delete)
}

func (h *TradeHandler) list(c *gin.Context) {
	trades, err := h.Tracker.Trades(c.Request.Context(), auth.UserID(c))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, trades, map[string]any{"count": len(trades)})
}

func (h *TradeHandler) create(c *gin.Context) {
	var in tracker.TradeInput
	if !bindJSON(c, &in) {
		return
	}
	trade, err := h.Tracker.LogTrade(c.Request.Context(), auth.UserID(c), in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, trade)
}

func (h *TradeHandler) preview(c *gin.Context) {
	var in tracker.TradeInput
	if !bindJSON(c, &in) {
		return
	}
	Ok(c, h.Tracker.Preview(in), nil)
}

func (h *TradeHandler) update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var in tracker.TradeInput
	if !bindJSON(c, &in) {
		return
	}
	trade, err := h.Tracker.UpdateTrade(c.Request.Context(), auth.UserID(c), id, in)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, trade, nil)
}

func (h *TradeHandler) delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.Tracker.DeleteTrade(c.Request.Context(), auth.UserID(c), id); err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, gin.H{"id": id}, nil)
}
