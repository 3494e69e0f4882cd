package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"artdex/config"
	"artdex/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// DiscordOAuthHandler signs staff into the back office with their Discord
// identity, which also links their account to the player row used as the
// reviewer on moderation actions.
type DiscordOAuthHandler struct {
	cfg     *config.Config
	authSvc *service.AuthService
}

func NewDiscordOAuthHandler(cfg *config.Config, authSvc *service.AuthService) *DiscordOAuthHandler {
	return &DiscordOAuthHandler{cfg: cfg, authSvc: authSvc}
}

func (h *DiscordOAuthHandler) OAuth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.cfg.OAuth.DiscordClientID,
		ClientSecret: h.cfg.OAuth.DiscordClientSecret,
		RedirectURL:  h.cfg.OAuth.DiscordRedirectURL,
		Scopes:       []string{"identify", "email"},
		Endpoint:     endpoints.Discord,
	}
}

// Redirect sends the browser to the Discord consent screen.
func (h *DiscordOAuthHandler) Redirect(c *gin.Context) {
	if h.cfg.OAuth.DiscordClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Discord OAuth not configured"})
		return
	}
	url := h.OAuth2Config().AuthCodeURL("state")
	c.Redirect(http.StatusFound, url)
}

type discordUserInfo struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Avatar   string `json:"avatar"`
}

// Callback exchanges the code, fetches the Discord user, creates/links the
// staff account and returns JWTs.
func (h *DiscordOAuthHandler) Callback(c *gin.Context) {
	if h.cfg.OAuth.DiscordClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Discord OAuth not configured"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code"})
		return
	}
	ctx := c.Request.Context()
	conf := h.OAuth2Config()
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exchange failed"})
		return
	}
	client := conf.Client(ctx, tok)
	resp, err := client.Get("https://discord.com/api/users/@me")
	if err != nil || resp.StatusCode != http.StatusOK {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get user info"})
		return
	}
	defer resp.Body.Close()
	var info discordUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode user info"})
		return
	}
	discordID, err := strconv.ParseUint(info.ID, 10, 64)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unexpected user id"})
		return
	}
	avatarURL := ""
	if info.Avatar != "" {
		avatarURL = "https://cdn.discordapp.com/avatars/" + info.ID + "/" + info.Avatar + ".png"
	}
	u, access, refresh, err := h.authSvc.LoginWithDiscord(discordID, info.Username, info.Email, avatarURL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":          u,
		"access_token":  access,
		"refresh_token": refresh,
	})
}
