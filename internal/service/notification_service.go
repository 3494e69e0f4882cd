package service

import (
	"encoding/json"
	"strconv"

	"artdex/internal/domain"
	"artdex/internal/models"
	"artdex/internal/repository"
	"artdex/pkg/discord"
	"artdex/pkg/hexid"

	"github.com/bwmarrin/discordgo"
	"github.com/sirupsen/logrus"
)

const (
	colorGreen = 0x2ecc71
	colorRed   = 0xe74c3c
)

// NotificationService records notifications and pushes best-effort Discord DMs.
// Delivery failures (DMs closed, unknown user) are logged and swallowed; they
// never surface as workflow errors.
type NotificationService struct {
	repo       *repository.NotificationRepository
	playerRepo *repository.PlayerRepository
	dm         discord.Notifier
}

func NewNotificationService(repo *repository.NotificationRepository, playerRepo *repository.PlayerRepository, dm discord.Notifier) *NotificationService {
	return &NotificationService{repo: repo, playerRepo: playerRepo, dm: dm}
}

func (s *NotificationService) Notify(playerID uint, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		PlayerID: playerID,
		Type:     notifType,
		Title:    title,
		Body:     body,
		Data:     dataJSON,
	})
	if err != nil {
		return err
	}
	s.sendDM(playerID, &discordgo.MessageEmbed{Title: title, Description: body})
	return nil
}

func (s *NotificationService) sendDM(playerID uint, embed *discordgo.MessageEmbed) {
	if s.dm == nil || s.playerRepo == nil {
		return
	}
	p, err := s.playerRepo.GetByID(playerID)
	if err != nil {
		return
	}
	if err := s.dm.SendDM(p.DiscordID, embed); err != nil {
		logrus.WithError(err).WithField("discord_id", p.DiscordID).Debug("dm delivery failed")
	}
}

// NotifyApproved tells the artist their submission went live.
func (s *NotificationService) NotifyApproved(entry *models.ArtEntry) error {
	err := s.repo.Create(&models.Notification{
		PlayerID: entry.ArtistID,
		Type:     domain.NotifArtApproved,
		Title:    "Your artwork was approved!",
		Body:     "Your artwork for " + entry.Ball.Country + " has been approved and is now visible to everyone!",
		Data:     entryData(entry),
	})
	if err != nil {
		return err
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Your artwork was approved!",
		Description: "Your artwork for **" + entry.Ball.Country + "** has been approved and is now visible to everyone!",
		Color:       colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Entry ID", Value: hexid.Format(entry.ID), Inline: true},
			{Name: "Media", Value: "[View](" + entry.MediaURL + ")", Inline: true},
		},
	}
	s.sendDM(entry.ArtistID, embed)
	return nil
}

// NotifyRejected tells the artist their submission was declined.
func (s *NotificationService) NotifyRejected(entry *models.ArtEntry) error {
	err := s.repo.Create(&models.Notification{
		PlayerID: entry.ArtistID,
		Type:     domain.NotifArtRejected,
		Title:    "Your artwork was rejected",
		Body:     "Your artwork for " + entry.Ball.Country + " has been rejected.",
		Data:     entryData(entry),
	})
	if err != nil {
		return err
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Your artwork was rejected",
		Description: "Your artwork for **" + entry.Ball.Country + "** has been rejected.",
		Color:       colorRed,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Entry ID", Value: hexid.Format(entry.ID), Inline: true},
		},
	}
	if entry.RejectionReason != "" {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name: "Reason", Value: truncate(entry.RejectionReason, 1024),
		})
	}
	s.sendDM(entry.ArtistID, embed)
	return nil
}

// NotifyReviewBacklog nudges a staff player about pending submissions.
func (s *NotificationService) NotifyReviewBacklog(playerID uint, pending int64) error {
	return s.Notify(playerID, domain.NotifReviewBacklog,
		"Art review backlog",
		strconv.FormatInt(pending, 10)+" art submission(s) are waiting for review.",
		map[string]interface{}{"pending": pending})
}

func entryData(entry *models.ArtEntry) string {
	b, _ := json.Marshal(map[string]interface{}{
		"entry_id": entry.ID,
		"hex_id":   hexid.Format(entry.ID),
		"ball_id":  entry.BallID,
	})
	return string(b)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
