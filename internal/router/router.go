package router

import (
	"time"

	"artdex/config"
	"artdex/internal/handler"
	"artdex/internal/middleware"
	"artdex/internal/repository"
	"artdex/internal/service"
	"artdex/internal/ws"
	"artdex/pkg/cloudinary"
	"artdex/pkg/discord"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Setup wires repositories, services and handlers into the gin engine.
// The returned hub is shared with anything else that publishes review events.
func Setup(cfg *config.Config, db *gorm.DB, cloud cloudinary.Client, dm discord.Notifier, loc *time.Location) (*gin.Engine, *ws.ReviewHub) {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	artRepo := repository.NewArtRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	ballRepo := repository.NewBallRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	reviewHub := ws.NewReviewHub()

	// Services
	artSvc := service.NewArtService(artRepo, settingsRepo, playerRepo, ballRepo, loc)
	authSvc := service.NewAuthService(cfg, userRepo)
	notifSvc := service.NewNotificationService(notificationRepo, playerRepo, dm)

	// Handlers
	artHandler := handler.NewArtHandler(artSvc, ballRepo, reviewHub)
	reviewHandler := handler.NewReviewHandler(artSvc, notifSvc, reviewHub)
	uploadHandler := handler.NewUploadHandler(cloud)
	notificationHandler := handler.NewNotificationHandler(notificationRepo, artSvc)
	authHandler := handler.NewAuthHandler(authSvc)
	oauthHandler := handler.NewDiscordOAuthHandler(cfg, authSvc)
	adminHandler := handler.NewAdminHandler(artSvc, artRepo, settingsRepo, userRepo, notifSvc, reviewHub)

	botMw := middleware.APIKeyRequired(cfg.Server.APIKey)
	authMw := middleware.AuthRequired(&cfg.JWT)
	staffMw := middleware.StaffRequired()

	api := r.Group("/api/v1")
	{
		art := api.Group("/art")
		art.Use(botMw)
		{
			art.POST("/submissions", artHandler.Submit)
			art.GET("/balls", artHandler.Balls)
			art.GET("/balls/:id/entries", artHandler.ListForBall)
			art.GET("/entries", artHandler.Search)
			art.GET("/entries/:id", artHandler.Resolve)
			art.POST("/entries/:id/approve", reviewHandler.Approve)
			art.POST("/entries/:id/reject", reviewHandler.Reject)
			art.GET("/review/pending", reviewHandler.Pending)
			art.GET("/settings", artHandler.Settings)
			art.POST("/upload", uploadHandler.UploadArtwork)
			art.GET("/notifications", notificationHandler.List)
			art.PUT("/notifications/:id/read", notificationHandler.MarkRead)
		}

		admin := api.Group("/admin")
		{
			admin.POST("/login", authHandler.Login)
			admin.POST("/refresh", authHandler.Refresh)
			admin.GET("/auth/discord", oauthHandler.Redirect)
			admin.GET("/auth/discord/callback", oauthHandler.Callback)

			protected := admin.Group("", authMw, staffMw)
			{
				protected.GET("/dashboard", adminHandler.Dashboard)
				protected.GET("/settings", adminHandler.GetSettings)
				protected.PATCH("/settings", adminHandler.UpdateSettings)
				protected.GET("/entries", adminHandler.ListEntries)
				protected.GET("/entries/:id", adminHandler.GetEntry)
				protected.POST("/entries/:id/approve", adminHandler.Approve)
				protected.POST("/entries/:id/reject", adminHandler.Reject)
				protected.PATCH("/entries/:id", adminHandler.UpdateEntry)
				protected.POST("/bulk-approve", adminHandler.BulkApprove)
				protected.POST("/bulk-reject", adminHandler.BulkReject)
			}
		}
	}

	r.GET("/ws/review", ws.UpgradeReviewWS(&cfg.JWT, reviewHub))

	return r, reviewHub
}
