package handler

import (
	"net/http"
	"strconv"

	"artdex/internal/domain"
	"artdex/internal/middleware"
	"artdex/internal/models"
	"artdex/internal/repository"
	"artdex/internal/service"
	"artdex/internal/ws"

	"github.com/gin-gonic/gin"
)

// AdminHandler serves the back-office moderation view: the same entity store
// the bot API uses, browsed and moderated by authenticated staff.
type AdminHandler struct {
	artSvc       *service.ArtService
	artRepo      *repository.ArtRepository
	settingsRepo *repository.SettingsRepository
	userRepo     *repository.UserRepository
	notifSvc     *service.NotificationService
	reviewHub    *ws.ReviewHub
}

func NewAdminHandler(
	artSvc *service.ArtService,
	artRepo *repository.ArtRepository,
	settingsRepo *repository.SettingsRepository,
	userRepo *repository.UserRepository,
	notifSvc *service.NotificationService,
	reviewHub *ws.ReviewHub,
) *AdminHandler {
	return &AdminHandler{
		artSvc:       artSvc,
		artRepo:      artRepo,
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		notifSvc:     notifSvc,
		reviewHub:    reviewHub,
	}
}

// reviewerDiscordID resolves the acting staff user's linked Discord identity.
// Moderation from the back office needs it to stamp the reviewer player.
func (h *AdminHandler) reviewerDiscordID(c *gin.Context) (uint64, bool) {
	u, err := h.userRepo.GetByID(middleware.GetUserID(c))
	if err != nil || u.DiscordID == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "your account has no linked Discord identity; sign in with Discord once before reviewing"})
		return 0, false
	}
	return *u.DiscordID, true
}

// Dashboard handles GET /admin/dashboard — entry counts by status.
func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats := gin.H{}
	for _, status := range []string{domain.StatusPending, domain.StatusApproved, domain.StatusRejected} {
		n, err := h.artRepo.CountByStatus(status)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load stats"})
			return
		}
		stats[status] = n
	}
	stats["review_feed_clients"] = h.reviewHub.ClientCount()
	c.JSON(http.StatusOK, stats)
}

// GetSettings handles GET /admin/settings.
func (h *AdminHandler) GetSettings(c *gin.Context) {
	cfg, err := h.settingsRepo.GetOrCreate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// UpdateSettings handles PATCH /admin/settings.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	current, err := h.settingsRepo.GetOrCreate()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load settings"})
		return
	}
	req := struct {
		Enabled              *bool `json:"enabled"`
		RequireApproval      *bool `json:"require_approval"`
		MaxSubmissionsPerDay *uint `json:"max_submissions_per_day"`
	}{}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	enabled := current.Enabled
	if req.Enabled != nil {
		enabled = *req.Enabled
	}
	requireApproval := current.RequireApproval
	if req.RequireApproval != nil {
		requireApproval = *req.RequireApproval
	}
	maxPerDay := current.MaxSubmissionsPerDay
	if req.MaxSubmissionsPerDay != nil {
		maxPerDay = *req.MaxSubmissionsPerDay
	}
	updated, err := h.settingsRepo.Update(enabled, requireApproval, maxPerDay)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// ListEntries handles GET /admin/entries with status/ball/artist filters.
func (h *AdminHandler) ListEntries(c *gin.Context) {
	page, limit := parsePagination(c)
	ballID, _ := strconv.ParseUint(c.Query("ball_id"), 10, 64)
	artistID, _ := strconv.ParseUint(c.Query("artist_id"), 10, 64)
	list, total, err := h.artRepo.ListFiltered(repository.EntryFilter{
		Status:   c.Query("status"),
		BallID:   uint(ballID),
		ArtistID: uint(artistID),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list entries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": entriesJSON(list), "total": total, "page": page, "limit": limit})
}

// GetEntry handles GET /admin/entries/:id.
func (h *AdminHandler) GetEntry(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	entry, err := h.artRepo.GetByID(id)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entryJSON(entry)})
}

// Approve handles POST /admin/entries/:id/approve.
func (h *AdminHandler) Approve(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	reviewerID, ok := h.reviewerDiscordID(c)
	if !ok {
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

// Reject handles POST /admin/entries/:id/reject.
func (h *AdminHandler) Reject(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	reviewerID, ok := h.reviewerDiscordID(c)
	if !ok {
		return
	}
	var req struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&req)
	entry, err := h.artSvc.Reject(id, reviewerID, req.Reason)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	_ = h.notifSvc.NotifyRejected(entry)
	h.reviewHub.Publish(ws.EventRejected, entry)
	c.JSON(http.StatusOK, gin.H{"entry": entryJSON(entry)})
}

// UpdateEntry handles PATCH /admin/entries/:id — currently only the enabled
// visibility override.
func (h *AdminHandler) UpdateEntry(c *gin.Context) {
	id, ok := parseEntryID(c)
	if !ok {
		return
	}
	var req struct {
		Enabled *bool `json:"enabled" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := h.artRepo.GetByID(id); err != nil {
		writeWorkflowError(c, err)
		return
	}
	if err := h.artRepo.SetEnabled(id, *req.Enabled); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "update failed"})
		return
	}
	entry, err := h.artRepo.GetByID(id)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": entryJSON(entry)})
}

// BulkApprove handles POST /admin/bulk-approve. Only PENDING entries are
// touched, mirroring the old back-office bulk action.
func (h *AdminHandler) BulkApprove(c *gin.Context) {
	h.bulkReview(c, domain.StatusApproved)
}

// BulkReject handles POST /admin/bulk-reject.
func (h *AdminHandler) BulkReject(c *gin.Context) {
	h.bulkReview(c, domain.StatusRejected)
}

func (h *AdminHandler) bulkReview(c *gin.Context, target string) {
	reviewerID, ok := h.reviewerDiscordID(c)
	if !ok {
		return
	}
	var req struct {
		IDs    []string `json:"ids" binding:"required"`
		Reason string   `json:"reason"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if target == domain.StatusRejected && req.Reason == "" {
		req.Reason = "Bulk rejected via admin panel"
	}
	count := 0
	skipped := make([]string, 0)
	for _, raw := range req.IDs {
		id, err := parseBulkID(raw)
		if err != nil {
			skipped = append(skipped, raw)
			continue
		}
		entry, err := h.artRepo.GetByID(id)
		if err != nil || !entry.IsPending() {
			skipped = append(skipped, raw)
			continue
		}
		var reviewed *models.ArtEntry
		if target == domain.StatusApproved {
			reviewed, err = h.artSvc.Approve(id, reviewerID)
		} else {
			reviewed, err = h.artSvc.Reject(id, reviewerID, req.Reason)
		}
		if err != nil {
			skipped = append(skipped, raw)
			continue
		}
		if target == domain.StatusApproved {
			_ = h.notifSvc.NotifyApproved(reviewed)
			h.reviewHub.Publish(ws.EventApproved, reviewed)
		} else {
			_ = h.notifSvc.NotifyRejected(reviewed)
			h.reviewHub.Publish(ws.EventRejected, reviewed)
		}
		count++
	}
	c.JSON(http.StatusOK, gin.H{"reviewed": count, "skipped": skipped})
}
