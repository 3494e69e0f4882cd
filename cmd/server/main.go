package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"artdex/config"
	"artdex/internal/database"
	"artdex/internal/repository"
	"artdex/internal/router"
	"artdex/internal/scheduler"
	"artdex/internal/service"
	"artdex/pkg/cloudinary"
	"artdex/pkg/discord"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if cfg.Server.Env == "production" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	loc, err := cfg.Art.Location()
	if err != nil {
		logrus.Fatalf("timezone: %v", err)
	}

	db, err := database.NewDB(&cfg.Database)
	if err != nil {
		logrus.Fatalf("database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		logrus.Fatalf("migrate: %v", err)
	}
	database.SeedAdmin(db, cfg.Art.AdminEmail, cfg.Art.AdminPassword)

	var cloud cloudinary.Client
	if cfg.Cloudinary.CloudName != "" {
		cloud, err = cloudinary.NewClientFromParams(cfg.Cloudinary.CloudName, cfg.Cloudinary.APIKey, cfg.Cloudinary.APISecret)
		if err != nil {
			logrus.Fatalf("cloudinary: %v", err)
		}
	} else {
		logrus.Info("media uploads disabled: set cloudinary credentials to enable")
	}

	dm, err := discord.NewClient(cfg.Discord.BotToken)
	if err != nil {
		logrus.Fatalf("discord: %v", err)
	}
	if dm == nil {
		logrus.Info("dm notifications disabled: set discord.bot_token to enable")
	}

	engine, _ := router.Setup(cfg, db, cloud, dm, loc)

	artRepo := repository.NewArtRepository(db)
	userRepo := repository.NewUserRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	ballRepo := repository.NewBallRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	notifSvc := service.NewNotificationService(repository.NewNotificationRepository(db), playerRepo, dm)
	artSvc := service.NewArtService(artRepo, settingsRepo, playerRepo, ballRepo, loc)
	sched := scheduler.New(artRepo, userRepo, artSvc, notifSvc, loc)
	if err := sched.Start(cfg.Art.DigestHour); err != nil {
		logrus.Fatalf("scheduler: %v", err)
	}
	defer sched.Stop()

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		logrus.Infof("server listening on :%s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("listen: %v", err)
		}
	}()
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Fatalf("server shutdown: %v", err)
	}
	logrus.Info("server stopped")
}
