package repository

import (
	"errors"
	"testing"
	"time"

	"artdex/internal/domain"
	"artdex/internal/models"

	"gorm.io/gorm"
)

func seedArtist(t *testing.T, db *gorm.DB, discordID uint64) *models.Player {
	t.Helper()
	p := &models.Player{DiscordID: discordID}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return p
}

func seedBall(t *testing.T, db *gorm.DB, country string) *models.Ball {
	t.Helper()
	b := &models.Ball{Country: country, Enabled: true}
	if err := db.Create(b).Error; err != nil {
		t.Fatalf("seed ball: %v", err)
	}
	return b
}

func seedEntry(t *testing.T, db *gorm.DB, ballID, artistID uint, status string, createdAt time.Time) *models.ArtEntry {
	t.Helper()
	e := &models.ArtEntry{
		BallID:   ballID,
		ArtistID: artistID,
		MediaURL: "https://cdn.example.com/a.png",
		Status:   status,
		Enabled:  true,
	}
	if err := db.Create(e).Error; err != nil {
		t.Fatalf("seed entry: %v", err)
	}
	if !createdAt.IsZero() {
		if err := db.Model(e).Update("created_at", createdAt).Error; err != nil {
			t.Fatalf("set created_at: %v", err)
		}
	}
	return e
}

func TestCountByArtistSince(t *testing.T) {
	db := newRepoDB(t)
	repo := NewArtRepository(db)
	ball := seedBall(t, db, "Atlantis")
	artist := seedArtist(t, db, 42)
	other := seedArtist(t, db, 43)

	since := time.Now().Add(-time.Hour)
	seedEntry(t, db, ball.ID, artist.ID, domain.StatusPending, since.Add(-time.Minute))
	seedEntry(t, db, ball.ID, artist.ID, domain.StatusPending, since)
	seedEntry(t, db, ball.ID, artist.ID, domain.StatusApproved, since.Add(time.Minute))
	seedEntry(t, db, ball.ID, other.ID, domain.StatusPending, since.Add(time.Minute))

	// The window is inclusive of the boundary and spans all statuses, but
	// only the given artist.
	count, err := repo.CountByArtistSince(artist.ID, since)
	if err != nil {
		t.Fatalf("CountByArtistSince: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestGetByIDPreloads(t *testing.T) {
	db := newRepoDB(t)
	repo := NewArtRepository(db)
	ball := seedBall(t, db, "Atlantis")
	artist := seedArtist(t, db, 42)
	reviewer := seedArtist(t, db, 99)
	entry := seedEntry(t, db, ball.ID, artist.ID, domain.StatusPending, time.Time{})

	if err := repo.SetReview(entry.ID, domain.StatusApproved, reviewer.ID, time.Now(), ""); err != nil {
		t.Fatalf("SetReview: %v", err)
	}
	got, err := repo.GetByID(entry.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Ball.Country != "Atlantis" {
		t.Errorf("ball not loaded: %+v", got.Ball)
	}
	if got.Artist.DiscordID != 42 {
		t.Errorf("artist not loaded: %+v", got.Artist)
	}
	if got.ReviewedBy == nil || got.ReviewedBy.DiscordID != 99 {
		t.Errorf("reviewer not loaded: %+v", got.ReviewedBy)
	}
	if got.ReviewedAt == nil {
		t.Error("reviewed_at not set")
	}
}

func TestGetByIDMissing(t *testing.T) {
	db := newRepoDB(t)
	repo := NewArtRepository(db)
	if _, err := repo.GetByID(777); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("err = %v, want ErrRecordNotFound", err)
	}
}

func TestListFiltered(t *testing.T) {
	db := newRepoDB(t)
	repo := NewArtRepository(db)
	ball := seedBall(t, db, "Atlantis")
	otherBall := seedBall(t, db, "Lemuria")
	artist := seedArtist(t, db, 42)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 4; i++ {
		seedEntry(t, db, ball.ID, artist.ID, domain.StatusPending, base.Add(time.Duration(i)*time.Minute))
	}
	seedEntry(t, db, otherBall.ID, artist.ID, domain.StatusApproved, base.Add(10*time.Minute))

	list, total, err := repo.ListFiltered(EntryFilter{Status: domain.StatusPending, Page: 1, Limit: 3})
	if err != nil {
		t.Fatalf("ListFiltered: %v", err)
	}
	if total != 4 {
		t.Errorf("total = %d, want 4", total)
	}
	if len(list) != 3 {
		t.Errorf("page 1 len = %d, want 3", len(list))
	}

	page2, _, err := repo.ListFiltered(EntryFilter{Status: domain.StatusPending, Page: 2, Limit: 3})
	if err != nil {
		t.Fatalf("page 2: %v", err)
	}
	if len(page2) != 1 {
		t.Errorf("page 2 len = %d, want 1", len(page2))
	}

	byBall, total, err := repo.ListFiltered(EntryFilter{BallID: otherBall.ID})
	if err != nil {
		t.Fatalf("by ball: %v", err)
	}
	if total != 1 || len(byBall) != 1 || byBall[0].BallID != otherBall.ID {
		t.Errorf("by ball = %d entries, total %d", len(byBall), total)
	}
}

func TestSearchByTitleAndCountry(t *testing.T) {
	db := newRepoDB(t)
	repo := NewArtRepository(db)
	ball := seedBall(t, db, "Atlantis")
	artist := seedArtist(t, db, 42)

	withTitle := seedEntry(t, db, ball.ID, artist.ID, domain.StatusApproved, time.Time{})
	if err := db.Model(withTitle).Update("title", "midnight dragon").Error; err != nil {
		t.Fatalf("set title: %v", err)
	}
	seedEntry(t, db, ball.ID, artist.ID, domain.StatusApproved, time.Time{})

	byTitle, err := repo.Search("dragon", 0, 25)
	if err != nil {
		t.Fatalf("search by title: %v", err)
	}
	if len(byTitle) != 1 || byTitle[0].ID != withTitle.ID {
		t.Errorf("title search = %+v", byTitle)
	}

	byCountry, err := repo.Search("Atlant", 0, 25)
	if err != nil {
		t.Fatalf("search by country: %v", err)
	}
	if len(byCountry) != 2 {
		t.Errorf("country search len = %d, want 2", len(byCountry))
	}
}
