package handler

import (
	"net/http"
	"strings"

	"artdex/pkg/cloudinary"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	cloud cloudinary.Client
}

func NewUploadHandler(cloud cloudinary.Client) *UploadHandler {
	return &UploadHandler{cloud: cloud}
}

// UploadArtwork handles POST /art/upload. The front end forwards a Discord
// attachment here and submits the returned URL as the entry's media reference.
func (h *UploadHandler) UploadArtwork(c *gin.Context) {
	if h.cloud == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "media uploads not configured"})
		return
	}
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file required"})
		return
	}
	f, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()

	publicID := "art_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:16]
	contentType := file.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "video/") {
		url, err := h.cloud.UploadVideo(c.Request.Context(), f, "artdex/art", publicID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"url": url})
		return
	}
	url, thumb, err := h.cloud.UploadImage(c.Request.Context(), f, "artdex/art", publicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "upload failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url, "thumbnail_url": thumb})
}
