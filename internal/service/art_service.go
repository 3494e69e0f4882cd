package service

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"artdex/internal/domain"
	"artdex/internal/models"
	"artdex/internal/repository"
	"artdex/pkg/hexid"
)

var (
	ErrSubmissionsDisabled = errors.New("art submissions are disabled")
	ErrQuotaExceeded       = errors.New("daily submission limit reached")
	ErrInvalidMedia        = errors.New("invalid media URL")
	ErrAlreadyApproved     = errors.New("entry is already approved")
	ErrAlreadyRejected     = errors.New("entry is already rejected")
	ErrForbidden           = errors.New("not allowed to view this entry")
)

// QuotaError carries the configured cap so callers can report it.
type QuotaError struct {
	Limit uint
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("daily submission limit of %d reached", e.Limit)
}

func (e *QuotaError) Is(target error) bool { return target == ErrQuotaExceeded }

// ArtService implements the submission and moderation workflow.
type ArtService struct {
	artRepo      *repository.ArtRepository
	settingsRepo *repository.SettingsRepository
	playerRepo   *repository.PlayerRepository
	ballRepo     *repository.BallRepository
	loc          *time.Location

	// Serializes the quota check-then-insert per artist so racing submissions
	// cannot both pass the count. Single-instance guarantee; see DESIGN.md.
	mu          sync.Mutex
	artistLocks map[uint]*sync.Mutex
}

func NewArtService(
	artRepo *repository.ArtRepository,
	settingsRepo *repository.SettingsRepository,
	playerRepo *repository.PlayerRepository,
	ballRepo *repository.BallRepository,
	loc *time.Location,
) *ArtService {
	if loc == nil {
		loc = time.Local
	}
	return &ArtService{
		artRepo:      artRepo,
		settingsRepo: settingsRepo,
		playerRepo:   playerRepo,
		ballRepo:     ballRepo,
		loc:          loc,
		artistLocks:  make(map[uint]*sync.Mutex),
	}
}

// GetOrCreateSettings returns the singleton settings row, creating defaults on
// first read.
func (s *ArtService) GetOrCreateSettings() (*models.ArtSettings, error) {
	return s.settingsRepo.GetOrCreate()
}

// EnsurePlayer resolves or creates the player row for a Discord user.
func (s *ArtService) EnsurePlayer(discordID uint64) (*models.Player, error) {
	return s.playerRepo.GetOrCreateByDiscordID(discordID)
}

// ValidateMediaURL checks that ref is an absolute HTTP(S) URL of storable length.
func ValidateMediaURL(ref string) error {
	if ref == "" || len(ref) > domain.MaxMediaURLLen {
		return ErrInvalidMedia
	}
	if !strings.HasPrefix(ref, "http://") && !strings.HasPrefix(ref, "https://") {
		return ErrInvalidMedia
	}
	u, err := url.Parse(ref)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return ErrInvalidMedia
	}
	return nil
}

// Submit creates a new art entry for the given ball. The initial status is
// PENDING unless settings waive approval. The daily cap counts entries created
// at or after local midnight in the configured zone.
func (s *ArtService) Submit(discordID uint64, ballID uint, mediaURL, title, description string) (*models.ArtEntry, error) {
	cfg, err := s.settingsRepo.GetOrCreate()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrSubmissionsDisabled
	}
	if _, err := s.ballRepo.GetByID(ballID); err != nil {
		return nil, err
	}
	artist, err := s.playerRepo.GetOrCreateByDiscordID(discordID)
	if err != nil {
		return nil, err
	}

	lock := s.artistLock(artist.ID)
	lock.Lock()
	defer lock.Unlock()

	since := s.startOfDay(time.Now())
	count, err := s.artRepo.CountByArtistSince(artist.ID, since)
	if err != nil {
		return nil, err
	}
	if count >= int64(cfg.MaxSubmissionsPerDay) {
		return nil, &QuotaError{Limit: cfg.MaxSubmissionsPerDay}
	}
	if err := ValidateMediaURL(mediaURL); err != nil {
		return nil, err
	}

	status := domain.StatusPending
	if !cfg.RequireApproval {
		status = domain.StatusApproved
	}
	entry := &models.ArtEntry{
		BallID:      ballID,
		ArtistID:    artist.ID,
		Title:       title,
		Description: description,
		MediaURL:    mediaURL,
		Status:      status,
		Enabled:     true,
	}
	err = s.artRepo.Transaction(func(tx *repository.ArtRepository) error {
		// Re-count inside the transaction so the insert and the check commit
		// together even if the outer count raced a review-side mutation.
		c, err := tx.CountByArtistSince(artist.ID, since)
		if err != nil {
			return err
		}
		if c >= int64(cfg.MaxSubmissionsPerDay) {
			return &QuotaError{Limit: cfg.MaxSubmissionsPerDay}
		}
		return tx.Create(entry)
	})
	if err != nil {
		return nil, err
	}
	return s.artRepo.GetByID(entry.ID)
}

// Approve transitions an entry to APPROVED, stamping the reviewer and clearing
// any previous rejection reason. Approving an already-approved entry fails.
func (s *ArtService) Approve(entryID uint, reviewerDiscordID uint64) (*models.ArtEntry, error) {
	entry, err := s.artRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsApproved() {
		return nil, ErrAlreadyApproved
	}
	reviewer, err := s.playerRepo.GetOrCreateByDiscordID(reviewerDiscordID)
	if err != nil {
		return nil, err
	}
	if err := s.artRepo.SetReview(entry.ID, domain.StatusApproved, reviewer.ID, time.Now(), ""); err != nil {
		return nil, err
	}
	return s.artRepo.GetByID(entry.ID)
}

// Reject transitions an entry to REJECTED with an optional reason. Rejecting
// an already-rejected entry fails.
func (s *ArtService) Reject(entryID uint, reviewerDiscordID uint64, reason string) (*models.ArtEntry, error) {
	entry, err := s.artRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if entry.IsRejected() {
		return nil, ErrAlreadyRejected
	}
	reviewer, err := s.playerRepo.GetOrCreateByDiscordID(reviewerDiscordID)
	if err != nil {
		return nil, err
	}
	if err := s.artRepo.SetReview(entry.ID, domain.StatusRejected, reviewer.ID, time.Now(), reason); err != nil {
		return nil, err
	}
	return s.artRepo.GetByID(entry.ID)
}

// ListVisible returns approved, enabled entries for a ball, newest first.
// The settings master switch gates viewing as well as submitting.
func (s *ArtService) ListVisible(ballID uint, limit int) ([]models.ArtEntry, error) {
	cfg, err := s.settingsRepo.GetOrCreate()
	if err != nil {
		return nil, err
	}
	if !cfg.Enabled {
		return nil, ErrSubmissionsDisabled
	}
	if limit <= 0 {
		limit = domain.DefaultVisibleLimit
	}
	return s.artRepo.ListVisible(ballID, limit)
}

// ResolveByID loads one entry and applies the visibility rule: staff see
// everything, others only approved entries or their own.
func (s *ArtService) ResolveByID(entryID uint, requesterDiscordID uint64, isStaff bool) (*models.ArtEntry, error) {
	entry, err := s.artRepo.GetByID(entryID)
	if err != nil {
		return nil, err
	}
	if !isStaff && !entry.IsApproved() && entry.Artist.DiscordID != requesterDiscordID {
		return nil, ErrForbidden
	}
	return entry, nil
}

// PendingQueue lists entries awaiting review, oldest first.
func (s *ArtService) PendingQueue(limit int) ([]models.ArtEntry, error) {
	if limit <= 0 {
		limit = domain.ReviewListLimit
	}
	return s.artRepo.ListPending(limit)
}

// SearchEntries resolves autocomplete queries: a parseable hex id matches that
// entry, anything else matches title or ball name substrings. Non-staff only
// see their own entries.
func (s *ArtService) SearchEntries(q string, requesterDiscordID uint64, isStaff bool, limit int) ([]models.ArtEntry, error) {
	if limit <= 0 {
		limit = domain.AutocompleteLimit
	}
	var artistID uint
	if !isStaff {
		p, err := s.playerRepo.GetOrCreateByDiscordID(requesterDiscordID)
		if err != nil {
			return nil, err
		}
		artistID = p.ID
	}
	if q != "" {
		if id, err := hexid.Parse(q); err == nil {
			entry, err := s.artRepo.GetByID(id)
			if err != nil {
				return []models.ArtEntry{}, nil
			}
			if artistID != 0 && entry.ArtistID != artistID {
				return []models.ArtEntry{}, nil
			}
			return []models.ArtEntry{*entry}, nil
		}
	}
	return s.artRepo.Search(q, artistID, limit)
}

func (s *ArtService) startOfDay(t time.Time) time.Time {
	t = t.In(s.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func (s *ArtService) artistLock(artistID uint) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.artistLocks[artistID]
	if !ok {
		m = &sync.Mutex{}
		s.artistLocks[artistID] = m
	}
	return m
}
