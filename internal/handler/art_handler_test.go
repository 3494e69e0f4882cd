package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"artdex/internal/models"
	"artdex/internal/repository"
	"artdex/internal/service"
	"artdex/internal/ws"
	"artdex/pkg/hexid"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestAPI(t *testing.T) (*gin.Engine, *gorm.DB, *models.Ball) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Player{}, &models.Ball{}, &models.User{},
		&models.ArtSettings{}, &models.ArtEntry{}, &models.Notification{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	ball := &models.Ball{Country: "Atlantis", Enabled: true}
	if err := db.Create(ball).Error; err != nil {
		t.Fatalf("seed ball: %v", err)
	}

	ballRepo := repository.NewBallRepository(db)
	artSvc := service.NewArtService(
		repository.NewArtRepository(db),
		repository.NewSettingsRepository(db),
		repository.NewPlayerRepository(db),
		ballRepo,
		time.Local,
	)
	h := NewArtHandler(artSvc, ballRepo, ws.NewReviewHub())

	r := gin.New()
	art := r.Group("/art")
	{
		art.POST("/submissions", h.Submit)
		art.GET("/entries", h.Search)
		art.GET("/entries/:id", h.Resolve)
		art.GET("/balls/:id/entries", h.ListForBall)
	}
	return r, db, ball
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	out := map[string]interface{}{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, out
}

func submitBody(ballID uint) map[string]interface{} {
	return map[string]interface{}{
		"discord_id": "100000000000000001",
		"ball_id":    ballID,
		"media_url":  "https://cdn.example.com/a.png",
		"title":      "test piece",
	}
}

func TestSubmitCreatesPendingEntry(t *testing.T) {
	r, _, ball := newTestAPI(t)
	w, out := doJSON(t, r, http.MethodPost, "/art/submissions", submitBody(ball.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if out["pending_approval"] != true {
		t.Errorf("pending_approval = %v, want true", out["pending_approval"])
	}
	entry, ok := out["entry"].(map[string]interface{})
	if !ok {
		t.Fatalf("no entry in response: %v", out)
	}
	if entry["status"] != "PENDING" {
		t.Errorf("status = %v, want PENDING", entry["status"])
	}
	if entry["hex_id"] != hexid.Format(1) {
		t.Errorf("hex_id = %v, want %s", entry["hex_id"], hexid.Format(1))
	}
}

func TestSubmitQuotaExceeded(t *testing.T) {
	r, db, ball := newTestAPI(t)
	if _, err := repository.NewSettingsRepository(db).Update(true, true, 1); err != nil {
		t.Fatalf("settings: %v", err)
	}
	if w, _ := doJSON(t, r, http.MethodPost, "/art/submissions", submitBody(ball.ID)); w.Code != http.StatusCreated {
		t.Fatalf("first submission status = %d", w.Code)
	}
	w, out := doJSON(t, r, http.MethodPost, "/art/submissions", submitBody(ball.ID))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if out["code"] != "quota_exceeded" {
		t.Errorf("code = %v, want quota_exceeded", out["code"])
	}
	if out["limit"] != float64(1) {
		t.Errorf("limit = %v, want 1", out["limit"])
	}
}

func TestSubmitDisabled(t *testing.T) {
	r, db, ball := newTestAPI(t)
	if _, err := repository.NewSettingsRepository(db).Update(false, true, 5); err != nil {
		t.Fatalf("settings: %v", err)
	}
	w, out := doJSON(t, r, http.MethodPost, "/art/submissions", submitBody(ball.ID))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if out["code"] != "disabled" {
		t.Errorf("code = %v, want disabled", out["code"])
	}
}

func TestSubmitInvalidMedia(t *testing.T) {
	r, _, ball := newTestAPI(t)
	body := submitBody(ball.ID)
	body["media_url"] = "ftp://cdn.example.com/a.png"
	w, out := doJSON(t, r, http.MethodPost, "/art/submissions", body)
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", w.Code)
	}
	if out["code"] != "invalid_media" {
		t.Errorf("code = %v, want invalid_media", out["code"])
	}
}

// A malformed hex id is rejected outright, before any lookup.
func TestResolveMalformedID(t *testing.T) {
	r, _, _ := newTestAPI(t)
	w, out := doJSON(t, r, http.MethodGet, "/art/entries/zzz", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if out["code"] != "invalid_id" {
		t.Errorf("code = %v, want invalid_id", out["code"])
	}
}

func TestResolveNotFound(t *testing.T) {
	r, _, _ := newTestAPI(t)
	w, out := doJSON(t, r, http.MethodGet, "/art/entries/1A", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
	if out["code"] != "not_found" {
		t.Errorf("code = %v, want not_found", out["code"])
	}
}

func TestResolveVisibility(t *testing.T) {
	r, _, ball := newTestAPI(t)
	w, out := doJSON(t, r, http.MethodPost, "/art/submissions", submitBody(ball.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status = %d", w.Code)
	}
	hexID := out["entry"].(map[string]interface{})["hex_id"].(string)
	path := "/art/entries/" + hexID[1:]

	// A stranger cannot see a pending entry.
	w, out = doJSON(t, r, http.MethodGet, path+"?discord_id=200000000000000009", nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("stranger status = %d, want 403, body %v", w.Code, out)
	}
	// The submitter can.
	w, _ = doJSON(t, r, http.MethodGet, path+"?discord_id=100000000000000001", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("owner status = %d, want 200", w.Code)
	}
	// Staff can, whoever they are.
	w, out = doJSON(t, r, http.MethodGet, path+"?discord_id=200000000000000009&is_staff=true", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("staff status = %d, want 200", w.Code)
	}
	entry := out["entry"].(map[string]interface{})
	if entry["hex_id"] != hexID {
		t.Errorf("hex_id = %v, want %s", entry["hex_id"], hexID)
	}
}

func TestListForBallShowsOnlyApproved(t *testing.T) {
	r, db, ball := newTestAPI(t)
	w, _ := doJSON(t, r, http.MethodPost, "/art/submissions", submitBody(ball.ID))
	if w.Code != http.StatusCreated {
		t.Fatalf("submit status = %d", w.Code)
	}
	path := fmt.Sprintf("/art/balls/%d/entries", ball.ID)

	w, out := doJSON(t, r, http.MethodGet, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	if entries := out["entries"].([]interface{}); len(entries) != 0 {
		t.Fatalf("pending entry leaked into public list: %v", entries)
	}

	if err := db.Model(&models.ArtEntry{}).Where("1 = 1").Update("status", "APPROVED").Error; err != nil {
		t.Fatalf("approve: %v", err)
	}
	_, out = doJSON(t, r, http.MethodGet, path, nil)
	if entries := out["entries"].([]interface{}); len(entries) != 1 {
		t.Fatalf("approved entries = %d, want 1", len(entries))
	}
}
