package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stockroom/inventory-api/internal/events"
	"github.com/stockroom/inventory-api/internal/hash"
	"github.com/stockroom/inventory-api/internal/logging"
	"github.com/stockroom/inventory-api/internal/metrics"
	"github.com/stockroom/inventory-api/internal/models"
	"github.com/stockroom/inventory-api/internal/repo"
	"github.com/stockroom/inventory-api/internal/tokens"
)

const (
	loginMinLen    = 3
	loginMaxLen    = 50
	passwordMinLen = 3
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
	TokenTTL  time.Duration
	Producer  *events.Producer
	Metrics   *metrics.Metrics
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *models.User
}

// Register creates a new account. The role is always "user", there is no
// escalation path through registration. Password length 3 is the documented
// business rule of this API, not a recommendation.
func (s *AuthService) Register(ctx context.Context, login, password, name, email string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrValidation)
	}
	if len(login) < loginMinLen || len(login) > loginMaxLen {
		return nil, fmt.Errorf("%w: login must be between 3 and 50 characters", ErrValidation)
	}
	if len(password) < passwordMinLen {
		return nil, fmt.Errorf("%w: password must be at least 3 characters", ErrValidation)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = login
	}
	email = strings.ToLower(strings.TrimSpace(email))

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_failed", "reason", "cannot hash the password", "error", err)
		return nil, err
	}

	user := models.User{
		Login:        login,
		Email:        email,
		Name:         name,
		PasswordHash: pwHash,
		Role:         models.RoleUser,
	}

	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_failed", "reason", "login already taken")
			return nil, err
		}
		l.Error("register_failed", "error", err)
		return nil, err
	}

	if s.Metrics != nil {
		s.Metrics.UsersRegistered.Inc()
	}
	s.publish(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":    "user_registered",
		"user_id": user.ID,
		"login":   user.Login,
	})

	l.Info("register_success", "user_id", user.ID)
	return &user, nil
}

// Login verifies credentials and issues a session token. Unknown login and
// wrong password are indistinguishable in the result, and a corrupt stored
// hash counts as a wrong password, never as a server error.
func (s *AuthService) Login(ctx context.Context, login, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrValidation)
	}

	user, err := s.Repo.FindUserByLogin(ctx, login)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			l.Error("login_failed", "error", err)
			return nil, err
		}
		s.countLogin("failure")
		l.Warn("login_failed", "reason", "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		s.countLogin("failure")
		l.Warn("login_failed", "reason", "invalid credentials")
		return nil, ErrInvalidCredentials
	}

	token, exp, err := tokens.SignAccessToken(user.ID, user.Login, user.Role, s.JWTSecret, s.TokenTTL)
	if err != nil {
		l.Error("login_failed", "reason", "cannot sign token", "error", err)
		return nil, err
	}

	s.countLogin("success")
	s.publish(ctx, events.TopicUserEvents, fmt.Sprint(user.ID), map[string]any{
		"type":    "user_logged_in",
		"user_id": user.ID,
		"login":   user.Login,
	})

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

// DeleteUser removes an account by id. An admin cannot delete their own
// identity through this path.
func (s *AuthService) DeleteUser(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return ErrSelfDelete
	}
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.TopicUserEvents, fmt.Sprint(id), map[string]any{
		"type":    "user_deleted",
		"user_id": id,
	})
	return nil
}

func (s *AuthService) countLogin(outcome string) {
	if s.Metrics != nil {
		s.Metrics.Logins.WithLabelValues(outcome).Inc()
	}
}

func (s *AuthService) publish(ctx context.Context, topic, key string, event map[string]any) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.Producer.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("kafka publish error", "topic", topic, "error", err)
	}
}
