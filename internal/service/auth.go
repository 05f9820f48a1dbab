package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abu-huda81/shop_backend/internal/apperr"
	"github.com/abu-huda81/shop_backend/internal/hash"
	"github.com/abu-huda81/shop_backend/internal/logging"
	"github.com/abu-huda81/shop_backend/internal/models"
	"github.com/abu-huda81/shop_backend/internal/repo"
	"github.com/abu-huda81/shop_backend/internal/tokens"
	"github.com/abu-huda81/shop_backend/internal/transport"
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	Producer  EventPublisher
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	Role        models.Role
}

func (s *AuthService) Register(ctx context.Context, req transport.RegisterRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if err := req.Validate(); err != nil {
		return nil, err
	}

	pwHash, err := hash.HashPassword(req.Password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash the password", "error", err)
		return nil, fmt.Errorf("%w: %v", apperr.ErrIntegrity, err)
	}

	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
		Active:       true,
	}

	if err := s.Repo.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			l.Warn("register_failed", "reason", "username or email already exists")
		}
		return nil, err
	}

	publish(ctx, s.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_registered",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return &user, nil
}

// Login verifies the credentials and issues a bearer token. A failed login
// mutates nothing: there is no counter, no lockout row, no token row.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", req.Username)

	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.Repo.UserByCredentials(ctx, req.Username)
	if err != nil {
		if errors.Is(err, apperr.ErrUnauthenticated) {
			l.Warn("login_failed", "reason", "unknown username")
		}
		return nil, err
	}

	if !hash.CheckPassword(user.PasswordHash, req.Password) {
		l.Warn("login_failed", "reason", "wrong password")
		return nil, apperr.ErrUnauthenticated
	}
	if !user.Active {
		l.Warn("login_failed", "reason", "inactive user")
		return nil, apperr.ErrUnauthenticated
	}

	token, exp, err := tokens.Sign(user.ID, user.Role.String(), s.JWTSecret, tokens.AccessTTL)
	if err != nil {
		l.Error("login_error", "reason", "cannot sign token", "error", err)
		return nil, fmt.Errorf("%w: %v", apperr.ErrIntegrity, err)
	}

	publish(ctx, s.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":     "user_logged_in",
		"user_id":  user.ID,
		"username": user.Username,
	})

	return &LoginResult{AccessToken: token, ExpiresAt: exp, Role: user.Role}, nil
}

// UpdateRole validates against the closed role set before touching storage.
func (s *AuthService) UpdateRole(ctx context.Context, id uint, newRole string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.update_role", "user_id", id)

	role := models.Role(newRole)
	if !role.Valid() {
		l.Warn("update_role_failed", "reason", "invalid role", "role", newRole)
		return nil, fmt.Errorf("%w: invalid role %q", apperr.ErrValidation, newRole)
	}

	user, err := s.Repo.UpdateUserRole(ctx, id, role)
	if err != nil {
		return nil, err
	}

	publish(ctx, s.Producer, "user_events", fmt.Sprint(user.ID), map[string]any{
		"type":    "user_role_updated",
		"user_id": user.ID,
		"role":    user.Role,
	})

	return user, nil
}

func (s *AuthService) DeleteUser(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.Producer, "user_events", fmt.Sprint(id), map[string]any{
		"type":    "user_deleted",
		"user_id": id,
	})

	return nil
}

func (s *AuthService) ListUsers(ctx context.Context, offset, limit int) ([]models.User, error) {
	return s.Repo.ListUsers(ctx, offset, limit)
}
