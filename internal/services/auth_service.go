// internal/services/auth_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/powersport/inventory-backend/internal/config"
	"github.com/powersport/inventory-backend/internal/models"
	"github.com/powersport/inventory-backend/internal/utils"
)

// ErrInvalidAccessCode is returned when a login code matches neither role.
var ErrInvalidAccessCode = errors.New("invalid access code")

// AuthService implements the static access-code gate: one code grants the
// admin role, the other the viewer role. Both resolve to the single
// configured store; the dataset key is derived from config, never from the
// literal the user typed.
type AuthService struct {
	cfg *config.Config
}

type LoginRequest struct {
	AccessCode string `json:"access_code" validate:"required"`
}

type AuthResponse struct {
	Token       string             `json:"token"`
	TokenType   string             `json:"token_type"`
	ExpiresIn   int                `json:"expires_in"` // in seconds
	Role        models.UserRole    `json:"role"`
	StoreCode   string             `json:"store_code"`
	DisplayMode models.DisplayMode `json:"display_mode"`
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{cfg: cfg}
}

func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.AccessCode))

	var role models.UserRole
	switch {
	case s.matches(code, s.cfg.Store.AdminCode, s.cfg.Store.AdminCodeHash):
		role = models.RoleAdmin
	case s.matches(code, s.cfg.Store.ViewerCode, s.cfg.Store.ViewerCodeHash):
		role = models.RoleViewer
	default:
		return nil, ErrInvalidAccessCode
	}

	sessionID := uuid.NewString()
	token, err := utils.GenerateJWT(sessionID, s.cfg.Store.Code, string(role), s.cfg.JWT.AccessTokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &AuthResponse{
		Token:       token,
		TokenType:   "Bearer",
		ExpiresIn:   s.cfg.JWT.AccessTokenTTL * 3600,
		Role:        role,
		StoreCode:   s.cfg.Store.Code,
		DisplayMode: models.DefaultDisplayMode(role),
	}, nil
}

// matches prefers a bcrypt hash when configured, falling back to a plain
// upper-cased comparison.
func (s *AuthService) matches(code, plain, hash string) bool {
	if hash != "" {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(code)) == nil
	}
	return plain != "" && code == strings.ToUpper(plain)
}
