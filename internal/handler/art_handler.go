package handler

import (
	"net/http"
	"strconv"

	"artdex/internal/domain"
	"artdex/internal/repository"
	"artdex/internal/service"
	"artdex/internal/ws"

	"github.com/gin-gonic/gin"
)

// ArtHandler serves the bot-facing player operations. The chat front end
// resolves Discord users and the staff verdict itself and passes both along.
type ArtHandler struct {
	artSvc    *service.ArtService
	ballRepo  *repository.BallRepository
	reviewHub *ws.ReviewHub
}

func NewArtHandler(artSvc *service.ArtService, ballRepo *repository.BallRepository, reviewHub *ws.ReviewHub) *ArtHandler {
	return &ArtHandler{artSvc: artSvc, ballRepo: ballRepo, reviewHub: reviewHub}
}

// Submit handles POST /art/submissions.
func (h *ArtHandler) Submit(c *gin.Context) {
	var req struct {
		DiscordID   string `json:"discord_id" binding:"required"`
		BallID      uint   `json:"ball_id" binding:"required"`
		MediaURL    string `json:"media_url" binding:"required"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	discordID, ok := parseDiscordID(req.DiscordID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid discord_id"})
		return
	}
	entry, err := h.artSvc.Submit(discordID, req.BallID, req.MediaURL, req.Title, req.Description)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	if entry.IsPending() {
		h.reviewHub.Publish(ws.EventPending, entry)
	}
	c.JSON(http.StatusCreated, gin.H{
		"entry":            entryJSON(entry),
		"pending_approval": entry.IsPending(),
	})
}

// ListForBall handles GET /art/balls/:id/entries — approved, enabled entries.
func (h *ArtHandler) ListForBall(c *gin.Context) {
	ballID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ball id"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(domain.DefaultVisibleLimit)))
	entries, svcErr := h.artSvc.ListVisible(uint(ballID), limit)
	if svcErr != nil {
		writeWorkflowError(c, svcErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entriesJSON(entries)})
}

// Resolve handles GET /art/entries/:id — one entry with the visibility rule
// applied. Requester identity and staff verdict come from the front end.
func (h *ArtHandler) Resolve(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	discordID, _ := parseDiscordID(c.Query("discord_id"))
	isStaff := c.Query("is_staff") == "true"
	entry, err := h.artSvc.ResolveByID(id, discordID, isStaff)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entryJSON(entry)})
}

// Search handles GET /art/entries — autocomplete over hex id, title or ball name.
func (h *ArtHandler) Search(c *gin.Context) {
	discordID, _ := parseDiscordID(c.Query("discord_id"))
	isStaff := c.Query("is_staff") == "true"
	entries, err := h.artSvc.SearchEntries(c.Query("q"), discordID, isStaff, domain.AutocompleteLimit)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entries": entriesJSON(entries)})
}

// Settings handles GET /art/settings.
func (h *ArtHandler) Settings(c *gin.Context) {
	cfg, err := h.artSvc.GetOrCreateSettings()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// Balls handles GET /art/balls — entity directory search for autocomplete.
func (h *ArtHandler) Balls(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "25"))
	if limit < 1 || limit > 100 {
		limit = 25
	}
	balls, err := h.ballRepo.Search(c.Query("q"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "search failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"balls": balls})
}
