package scheduler

import (
	"fmt"
	"time"

	"artdex/internal/domain"
	"artdex/internal/repository"
	"artdex/internal/service"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// Scheduler runs the recurring housekeeping jobs. Currently one: a daily
// digest that nudges staff with linked players about the review backlog.
type Scheduler struct {
	cron     *cron.Cron
	artRepo  *repository.ArtRepository
	userRepo *repository.UserRepository
	artSvc   *service.ArtService
	notifSvc *service.NotificationService
}

func New(
	artRepo *repository.ArtRepository,
	userRepo *repository.UserRepository,
	artSvc *service.ArtService,
	notifSvc *service.NotificationService,
	loc *time.Location,
) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		artRepo:  artRepo,
		userRepo: userRepo,
		artSvc:   artSvc,
		notifSvc: notifSvc,
	}
}

// Start registers the digest job at the given local hour and starts the cron loop.
func (s *Scheduler) Start(digestHour int) error {
	if digestHour < 0 || digestHour > 23 {
		digestHour = 9
	}
	if _, err := s.cron.AddFunc(fmt.Sprintf("0 %d * * *", digestHour), s.pendingDigest); err != nil {
		return err
	}
	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// pendingDigest notifies each staff member with a linked Discord identity
// about entries waiting for review. Nothing is sent when the queue is empty.
func (s *Scheduler) pendingDigest() {
	pending, err := s.artRepo.CountByStatus(domain.StatusPending)
	if err != nil {
		logrus.WithError(err).Warn("pending digest: count failed")
		return
	}
	if pending == 0 {
		return
	}
	staff, err := s.userRepo.ListStaff()
	if err != nil {
		logrus.WithError(err).Warn("pending digest: staff lookup failed")
		return
	}
	notified := 0
	for _, u := range staff {
		if u.DiscordID == nil {
			continue
		}
		p, err := s.artSvc.EnsurePlayer(*u.DiscordID)
		if err != nil {
			continue
		}
		if err := s.notifSvc.NotifyReviewBacklog(p.ID, pending); err != nil {
			logrus.WithError(err).WithField("user_id", u.ID).Warn("pending digest: notify failed")
			continue
		}
		notified++
	}
	logrus.WithFields(logrus.Fields{"pending": pending, "notified": notified}).Info("pending review digest sent")
}
