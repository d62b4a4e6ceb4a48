package api

import (
	"bagbuilder-go/internal/auth"
	"bagbuilder-go/internal/tracker"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JournalHandler serves the journal entry routes.
type JournalHandler struct {
	Tracker *tracker.Service
	Logger  *zap.Logger
}

type journalRequest struct {
	Text string `json:"text"`
}

// Register mounts the journal entry routes on r.
func (h *JournalHandler) Register(r gin.IRouter) {
	r.GET("/journal", h.list)
	r.POST("/journal", h.create)
}

func (h *JournalHandler) list(c *gin.Context) {
	entries, err := h.Tracker.Journal(c.Request.Context(), auth.UserID(c))
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Ok(c, entries, nil)
}

func (h *JournalHandler) create(c *gin.Context) {
	var req journalRequest
	if !bindJSON(c, &req) {
		return
	}
	entry, err := h.Tracker.AddJournalEntry(c.Request.Context(), auth.UserID(c), req.Text)
	if err != nil {
		Fail(c, h.Logger, err)
		return
	}
	Created(c, entry)
}
