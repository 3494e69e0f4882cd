package service

import (
	"errors"

	"artdex/config"
	"artdex/internal/auth"
	"artdex/internal/domain"
	"artdex/internal/models"
	"artdex/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var ErrInvalidCreds = errors.New("invalid email or password")

// AuthService handles back-office staff authentication.
type AuthService struct {
	cfg      *config.Config
	userRepo *repository.UserRepository
}

func NewAuthService(cfg *config.Config, userRepo *repository.UserRepository) *AuthService {
	return &AuthService{cfg: cfg, userRepo: userRepo}
}

func (s *AuthService) Login(email, password string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", "", ErrInvalidCreds
		}
		return nil, "", "", err
	}
	if u.PasswordHash == "" {
		return nil, "", "", ErrInvalidCreds
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, "", "", ErrInvalidCreds
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// LoginWithDiscord finds or creates the staff account linked to a Discord
// identity and returns tokens. New accounts start as MODERATOR.
func (s *AuthService) LoginWithDiscord(discordID uint64, username, email, avatarURL string) (*models.User, string, string, error) {
	u, err := s.userRepo.GetByDiscordID(discordID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", "", err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Link by email when the account was seeded by password first.
		if email != "" {
			if existing, lookupErr := s.userRepo.GetByEmail(email); lookupErr == nil {
				did := discordID
				existing.DiscordID = &did
				if avatarURL != "" {
					existing.AvatarURL = avatarURL
				}
				if err := s.userRepo.Update(existing); err != nil {
					return nil, "", "", err
				}
				u = existing
			}
		}
		if u == nil {
			did := discordID
			u = &models.User{
				Email:     email,
				Username:  username,
				Role:      domain.RoleModerator,
				DiscordID: &did,
				AvatarURL: avatarURL,
			}
			if err := s.userRepo.Create(u); err != nil {
				return nil, "", "", err
			}
		}
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}

// Refresh validates a refresh token and issues a fresh pair.
func (s *AuthService) Refresh(refreshToken string) (*models.User, string, string, error) {
	userID, err := auth.ParseRefreshToken(&s.cfg.JWT, refreshToken)
	if err != nil {
		return nil, "", "", err
	}
	u, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, "", "", err
	}
	access, err := auth.GenerateAccessToken(&s.cfg.JWT, u.ID, u.Email, u.Role)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.GenerateRefreshToken(&s.cfg.JWT, u.ID)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}
