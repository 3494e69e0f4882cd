package handler

import (
	"net/http"

	"artdex/internal/service"
	"artdex/internal/ws"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves the bot-facing moderation operations. The front end
// enforces the staff gate before calling; the core still rejects redundant
// transitions on its own.
type ReviewHandler struct {
	artSvc    *service.ArtService
	notifSvc  *service.NotificationService
	reviewHub *ws.ReviewHub
}

func NewReviewHandler(artSvc *service.ArtService, notifSvc *service.NotificationService, reviewHub *ws.ReviewHub) *ReviewHandler {
	return &ReviewHandler{artSvc: artSvc, notifSvc: notifSvc, reviewHub: reviewHub}
}

// Pending handles GET /art/review/pending — the queue, oldest first.
func (h *ReviewHandler) Pending(c *gin.Context) {
	entries, err := h.artSvc.PendingQueue(0)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load queue"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entriesJSON(entries), "count": len(entries)})
}

// Approve handles POST /art/entries/:id/approve.
func (h *ReviewHandler) Approve(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	var req struct {
		ReviewerDiscordID string `json:"reviewer_discord_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reviewerID, okID := parseDiscordID(req.ReviewerDiscordID)
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reviewer_discord_id"})
		return
	}
	entry, err := h.artSvc.Approve(id, reviewerID)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	_ = h.notifSvc.NotifyApproved(entry)
	h.reviewHub.Publish(ws.EventApproved, entry)
	c.JSON(http.StatusOK, gin.H{"entry": entryJSON(entry)})
}

// Reject handles POST /art/entries/:id/reject.
func (h *ReviewHandler) Reject(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	var req struct {
		ReviewerDiscordID string `json:"reviewer_discord_id" binding:"required"`
		Reason            string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	reviewerID, okID := parseDiscordID(req.ReviewerDiscordID)
	if !okID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid reviewer_discord_id"})
		return
	}
	entry, err := h.artSvc.Reject(id, reviewerID, req.Reason)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	_ = h.notifSvc.NotifyRejected(entry)
	h.reviewHub.Publish(ws.EventRejected, entry)
	c.JSON(http.StatusOK, gin.H{"entry": entryJSON(entry)})
}
