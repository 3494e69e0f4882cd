package handler

import (
	"net/http"
	"strconv"

	"artdex/internal/repository"
	"artdex/internal/service"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	repo   *repository.NotificationRepository
	artSvc *service.ArtService
}

func NewNotificationHandler(repo *repository.NotificationRepository, artSvc *service.ArtService) *NotificationHandler {
	return &NotificationHandler{repo: repo, artSvc: artSvc}
}

// List handles GET /art/notifications — a player's notice history.
func (h *NotificationHandler) List(c *gin.Context) {
	discordID, ok := parseDiscordID(c.Query("discord_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discord_id"})
		return
	}
	p, err := h.artSvc.EnsurePlayer(discordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	list, err := h.repo.ListByPlayerID(p.ID, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": list})
}

// MarkRead handles PUT /art/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	discordID, ok := parseDiscordID(c.Query("discord_id"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discord_id"})
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification id"})
		return
	}
	p, err := h.artSvc.EnsurePlayer(discordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "lookup failed"})
		return
	}
	if err := h.repo.MarkRead(uint(id), p.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
