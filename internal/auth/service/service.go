package service

import (
	"context"
	"strconv"
	"time"

	"cerrajeria_backend/internal/auth/password"
	"cerrajeria_backend/internal/auth/repository"
	"cerrajeria_backend/internal/auth/token"
	"cerrajeria_backend/platform/apperr"
	"cerrajeria_backend/platform/config"
	"cerrajeria_backend/platform/logger"

	"github.com/golang-jwt/jwt/v5"
)

const accessTokenType = "access"

// Service provides account and session logic for the dashboard.
type Service struct {
	repo *repository.Repository
	cfg  config.AuthServiceConfig
	log  *logger.Logger
}

// New creates a new auth service
func New(repo *repository.Repository, cfg config.AuthServiceConfig, log *logger.Logger) *Service {
	return &Service{repo: repo, cfg: cfg, log: log}
}

// SignUp registers the initial dashboard account. Once any account exists,
// registration is closed and new accounts are provisioned out of band.
func (s *Service) SignUp(ctx context.Context, email, plainPassword string) error {
	count, err := s.repo.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.log.AuthEvent("sign_up", email, false, "registration closed")
		return apperr.Conflict("registration is closed")
	}

	hash, err := password.Hash(plainPassword)
	if err != nil {
		return err
	}

	if _, err := s.repo.CreateUser(ctx, email, hash); err != nil {
		return err
	}

	s.log.AuthEvent("sign_up", email, true, "")
	return nil
}

// SignIn verifies credentials and issues an access/refresh token pair.
func (s *Service) SignIn(ctx context.Context, email, plainPassword string) (string, string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		s.log.AuthEvent("sign_in", email, false, "unknown account")
		return "", "", apperr.Unauthorized("invalid credentials")
	}

	if err := password.Compare(user.PasswordHash, plainPassword); err != nil {
		s.log.AuthEvent("sign_in", email, false, "wrong password")
		return "", "", apperr.Unauthorized("invalid credentials")
	}

	s.log.AuthEvent("sign_in", email, true, "")
	return s.issueTokens(ctx, user.ID)
}

// Refresh rotates a refresh token and issues a fresh pair.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	hash := token.HashSHA256(refreshToken)
	userID, expiresAt, err := s.repo.GetRefreshToken(ctx, hash)
	if err != nil {
		return "", "", apperr.Unauthorized("invalid refresh token")
	}

	if time.Now().After(expiresAt) {
		_ = s.repo.RevokeRefreshToken(ctx, hash)
		return "", "", apperr.Unauthorized("refresh token expired")
	}

	if err := s.repo.RevokeRefreshToken(ctx, hash); err != nil {
		return "", "", err
	}
	return s.issueTokens(ctx, userID)
}

// SignOut revokes a refresh token.
func (s *Service) SignOut(ctx context.Context, refreshToken string) error {
	return s.repo.RevokeRefreshToken(ctx, token.HashSHA256(refreshToken))
}

// GetMe returns the account behind an authenticated request.
func (s *Service) GetMe(ctx context.Context, userID int64) (repository.User, error) {
	return s.repo.GetUser(ctx, userID)
}

func (s *Service) issueTokens(ctx context.Context, userID int64) (string, string, error) {
	accessToken, err := s.signJWT(userID)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := token.GenerateRandomToken(48)
	if err != nil {
		return "", "", err
	}

	hash := token.HashSHA256(refreshToken)
	expiresAt := time.Now().Add(s.cfg.GetRefreshTokenTTL())
	if err := s.repo.CreateRefreshToken(ctx, userID, hash, expiresAt); err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (s *Service) signJWT(userID int64) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"typ": accessTokenType,
		"exp": now.Add(s.cfg.GetAccessTokenTTL()).Unix(),
		"iat": now.Unix(),
	}

	tokenObj := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenObj.SignedString([]byte(s.cfg.GetJWTAccessSecret()))
}
