package handler

import (
	"errors"
	"net/http"
	"strconv"

	"artdex/internal/models"
	"artdex/internal/service"
	"artdex/pkg/hexid"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// entryJSON is the wire shape for an art entry; ids are also rendered in the
// hex form players see in chat.
func entryJSON(e *models.ArtEntry) gin.H {
	out := gin.H{
		"id":                e.ID,
		"hex_id":            hexid.Format(e.ID),
		"ball_id":           e.BallID,
		"ball":              e.Ball.Country,
		"artist_id":         e.ArtistID,
		"artist_discord_id": strconv.FormatUint(e.Artist.DiscordID, 10),
		"title":             e.Title,
		"description":       e.Description,
		"media_url":         e.MediaURL,
		"status":            e.Status,
		"rejection_reason":  e.RejectionReason,
		"enabled":           e.Enabled,
		"created_at":        e.CreatedAt,
		"updated_at":        e.UpdatedAt,
	}
	if e.ReviewedByID != nil {
		out["reviewed_by_id"] = *e.ReviewedByID
		out["reviewed_at"] = e.ReviewedAt
		if e.ReviewedBy != nil {
			out["reviewer_discord_id"] = strconv.FormatUint(e.ReviewedBy.DiscordID, 10)
		}
	}
	return out
}

func entriesJSON(list []models.ArtEntry) []gin.H {
	out := make([]gin.H, 0, len(list))
	for i := range list {
		out = append(out, entryJSON(&list[i]))
	}
	return out
}

// parseEntryID reads and parses the hex :id path param, replying 400 on a
// malformed id before any lookup happens.
func parseEntryID(c *gin.Context) (uint, bool) {
	id, err := hexid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entry id format, expected e.g. #1A2B", "code": "invalid_id"})
		return 0, false
	}
	return id, true
}

// writeWorkflowError translates service errors into HTTP replies.
func writeWorkflowError(c *gin.Context, err error) {
	var quota *service.QuotaError
	switch {
	case errors.As(err, &quota):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error": quota.Error(),
			"code":  "quota_exceeded",
			"limit": quota.Limit,
		})
	case errors.Is(err, service.ErrSubmissionsDisabled):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "art submissions are currently disabled", "code": "disabled"})
	case errors.Is(err, service.ErrInvalidMedia):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "invalid media URL, provide an absolute HTTP or HTTPS URL", "code": "invalid_media"})
	case errors.Is(err, service.ErrAlreadyApproved):
		c.JSON(http.StatusConflict, gin.H{"error": "this art entry is already approved", "code": "already_approved"})
	case errors.Is(err, service.ErrAlreadyRejected):
		c.JSON(http.StatusConflict, gin.H{"error": "this art entry is already rejected", "code": "already_rejected"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "you don't have permission to view this art entry", "code": "forbidden"})
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found", "code": "not_found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// parseBulkID parses one hex id out of a bulk request body.
func parseBulkID(s string) (uint, error) {
	return hexid.Parse(s)
}

func parseDiscordID(s string) (uint64, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	return id, err == nil && id != 0
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
