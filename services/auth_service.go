package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/barrelborn/digital-menu/database"
	"github.com/barrelborn/digital-menu/models"
	"github.com/barrelborn/digital-menu/utils"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthConfig holds the single admin credential and token settings.
type AuthConfig struct {
	Username string
	Password string
	Secret   []byte
	TTL      time.Duration
}

// AuthService checks the configured admin credential verbatim. The users
// collection is bookkeeping only and never consulted for the decision.
type AuthService struct {
	store database.Store
	cfg   AuthConfig
	now   func() time.Time
}

func NewAuthService(store database.Store, cfg AuthConfig) *AuthService {
	return &AuthService{store: store, cfg: cfg, now: time.Now}
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if !s.matches(in) {
		return nil, ErrInvalidCredentials
	}

	if err := s.recordUser(ctx, in); err != nil {
		return nil, err
	}

	token, expiresAt, err := utils.GenerateToken(s.cfg.Secret, in.Username, s.cfg.TTL, s.now())
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}
	utils.InfoLogger.Infof("Admin login: %s", in.Username)
	return &LoginResult{Token: token, ExpiresAt: expiresAt}, nil
}

// Authorize validates a bearer token issued by Login.
func (s *AuthService) Authorize(token string) (*utils.AdminClaims, error) {
	return utils.ParseToken(s.cfg.Secret, token)
}

func (s *AuthService) matches(in LoginInput) bool {
	if s.cfg.Username == "" || s.cfg.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(in.Username), []byte(s.cfg.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(in.Password), []byte(s.cfg.Password)) == 1
	return userOK && passOK
}

// recordUser lazily creates the users row on first successful login.
func (s *AuthService) recordUser(ctx context.Context, in LoginInput) error {
	_, err := s.store.UserByUsername(ctx, in.Username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("find user: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	now := s.now().UTC()
	if _, err := s.store.CreateUserIfAbsent(ctx, &models.User{
		Username:  in.Username,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}
