package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/emartsoft/login-service/internal/domain/entity"
	repo "github.com/emartsoft/login-service/internal/domain/repository"
	"github.com/emartsoft/login-service/internal/infrastructure/elastic"
	"github.com/emartsoft/login-service/pkg/helpers"
	"github.com/emartsoft/login-service/pkg/mailer"
)

// maxLoginAttempts is the failed-attempt threshold at which an account
// is locked. The lock is a one-way latch: no auto-unlock, no decay.
const maxLoginAttempts = 5

// PasswordHasher is the one-way credential hash the engine depends on.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

// TokenIssuer signs a claims set into an opaque bearer token with a
// fixed lifetime (seconds).
type TokenIssuer interface {
	Issue(accountID string, roles []string) (token string, expiresIn int64, err error)
}

// Service orchestrates signup and login. It is stateless between
// requests; all durable state lives in the repository. Redis, Pub and
// Audit are optional collaborators and may be nil.
type Service struct {
	Repo   repo.AccountRepository
	Hasher PasswordHasher
	Tokens TokenIssuer
	Logger *logrus.Logger
	Redis  *redis.Client
	Pub    *helpers.RabbitPublisher
	Audit  *elastic.AuditIndexer
}

func NewService(r repo.AccountRepository, hasher PasswordHasher, tokens TokenIssuer, logger *logrus.Logger, rdb *redis.Client, pub *helpers.RabbitPublisher, audit *elastic.AuditIndexer) *Service {
	return &Service{
		Repo:   r,
		Hasher: hasher,
		Tokens: tokens,
		Logger: logger,
		Redis:  rdb,
		Pub:    pub,
		Audit:  audit,
	}
}

// RegisterInput carries the signup fields. Syntactic validation (field
// formats, lengths) happens at the HTTP boundary; the engine performs
// the semantic checks.
type RegisterInput struct {
	Name            string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
	City            string
}

// AuthResult is the success payload of Register and Authenticate. The
// Account snapshot is taken after the durable post-transition state has
// been persisted.
type AuthResult struct {
	Token     string
	TokenType string
	ExpiresIn int64
	Account   *entity.Account
}

// Register creates a new account and issues a token for it.
//
// The password confirmation is compared verbatim, before any
// normalization. Email is checked before phone, so a request
// duplicating both keys reports the email conflict. The repository
// remains the final arbiter of uniqueness: a unique violation on the
// insert (a concurrent signup racing the pre-checks) also surfaces as a
// DuplicateError.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if in.Password != in.ConfirmPassword {
		return nil, &ValidationError{Message: "passwords do not match"}
	}

	email := entity.NormalizeEmail(in.Email)
	exists, err := s.Repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		s.warn("signup attempt with existing email", email)
		return nil, &DuplicateError{Field: "email"}
	}

	phone := entity.NormalizePhone(in.Phone)
	exists, err = s.Repo.ExistsByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if exists {
		s.warn("signup attempt with existing phone", email)
		return nil, &DuplicateError{Field: "phone"}
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	acc := &entity.Account{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		City:         strings.TrimSpace(in.City),
		Roles:        []string{entity.RoleUser},
		Enabled:      true,
	}
	if err := s.Repo.Create(ctx, acc); err != nil {
		var dup *repo.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, &DuplicateError{Field: dup.Field}
		}
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"account_id": acc.ID, "email": acc.Email}).Info("account registered")
	}
	s.Audit.Record(ctx, acc.ID, acc.Email, elastic.ActionSignup)
	s.enqueueEmail(ctx, acc, mailer.TemplateWelcome)

	return s.issue(acc)
}

// Authenticate verifies credentials and returns a token.
//
// Unknown email and wrong password produce the same error value, so the
// two failures are indistinguishable to the caller; the unknown-email
// path performs no write. Locked and disabled accounts are refused
// before the password is checked and never mutate the attempt counter.
// A failed verification increments the counter and, on reaching the
// threshold, sets the lock in the same persisted update; the triggering
// attempt itself still reports invalid credentials, and the lock only
// becomes visible on the next attempt.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*AuthResult, error) {
	normalized := entity.NormalizeEmail(email)
	acc, err := s.Repo.GetByEmail(ctx, normalized)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			s.warn("login attempt for unknown email", normalized)
			s.Audit.Record(ctx, "", normalized, elastic.ActionLoginFailure)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if acc.Locked {
		s.warn("login attempt for locked account", acc.Email)
		return nil, ErrAccountLocked
	}
	if !acc.Enabled {
		s.warn("login attempt for disabled account", acc.Email)
		return nil, ErrAccountDisabled
	}

	if !s.Hasher.Verify(password, acc.PasswordHash) {
		acc.LoginAttempts++
		if acc.LoginAttempts >= maxLoginAttempts {
			acc.Locked = true
		}
		if err := s.Repo.Update(ctx, acc); err != nil {
			return nil, err
		}
		s.warn("invalid password", acc.Email)
		s.Audit.Record(ctx, acc.ID, acc.Email, elastic.ActionLoginFailure)
		if acc.Locked {
			s.warn("account locked after too many failed attempts", acc.Email)
			s.Audit.Record(ctx, acc.ID, acc.Email, elastic.ActionLockout)
			s.enqueueEmail(ctx, acc, mailer.TemplateAccountLocked)
		}
		return nil, ErrInvalidCredentials
	}

	acc.LoginAttempts = 0
	now := time.Now().UTC()
	acc.LastLogin = &now
	if err := s.Repo.Update(ctx, acc); err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithField("account_id", acc.ID).Info("login successful")
	}
	s.Audit.Record(ctx, acc.ID, acc.Email, elastic.ActionLoginSuccess)
	s.recordSession(ctx, acc)

	return s.issue(acc)
}

// GetProfile returns the account for a validated token subject.
func (s *Service) GetProfile(ctx context.Context, accountID string) (*entity.Account, error) {
	acc, err := s.Repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Service) issue(acc *entity.Account) (*AuthResult, error) {
	token, expiresIn, err := s.Tokens.Issue(acc.ID, acc.Roles)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("account_id", acc.ID).Error("token issue failed")
		}
		return nil, err
	}
	return &AuthResult{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: expiresIn,
		Account:   acc,
	}, nil
}

// recordSession caches the logged-in account in Redis. Best effort: a
// cache failure never fails the login.
func (s *Service) recordSession(ctx context.Context, acc *entity.Account) {
	if s.Redis == nil {
		return
	}
	key := "account:session:" + acc.ID
	fields := map[string]any{
		"account_id": acc.ID,
		"email":      acc.Email,
		"name":       acc.Name,
		"login_at":   time.Now().UTC().Format(time.RFC3339Nano),
	}
	pipe := s.Redis.Pipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, 24*time.Hour)
	if _, err := pipe.Exec(ctx); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("key", key).Warn("redis pipeline failed")
	}
}

func (s *Service) enqueueEmail(ctx context.Context, acc *entity.Account, template string) {
	if s.Pub == nil {
		return
	}
	job := mailer.EmailJob{
		To:       acc.Email,
		Template: template,
		Data:     map[string]any{"Name": acc.Name},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("template", template).Warn("failed to publish email job")
	}
}

func (s *Service) warn(msg, email string) {
	if s.Logger == nil {
		return
	}
	s.Logger.WithField("email", email).Warn(msg)
}
