package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/josesepulvedapino/astra-consulting-sub000/internal/lib/jwt"
	"github.com/josesepulvedapino/astra-consulting-sub000/internal/lib/logger/sl"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates the single configured admin account and issues
// tokens for the admin API group. There is no user store; credentials come
// from configuration.
type AuthService struct {
	log          *slog.Logger
	email        string
	passwordHash string
	jwtSecret    string
	tokenTTL     time.Duration
}

func NewAuthService(log *slog.Logger, email, passwordHash, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		log:          log,
		email:        email,
		passwordHash: passwordHash,
		jwtSecret:    jwtSecret,
		tokenTTL:     tokenTTL,
	}
}

func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	const op = "auth_service.Login"

	log := a.log.With(
		slog.String("op", op),
		slog.String("email", email),
	)

	log.Info("attempting admin login")

	if email != a.email {
		log.Warn("unknown admin email")
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(a.passwordHash), []byte(password)); err != nil {
		log.Info("invalid credentials", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token, err := jwt.NewAdminToken(email, a.jwtSecret, a.tokenTTL)
	if err != nil {
		log.Error("failed to issue token", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	log.Info("admin logged in successfully")

	return token, nil
}
