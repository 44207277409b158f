// Package auth owns accounts, credentials and persisted sessions.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	minPasswordLength = 6
	maxResetAttempts  = 5
)

var usernamePattern = regexp.MustCompile(`^[A-Za-z0-9_.]{3,30}$`)

// SignUpInput carries the sign-up form.
type SignUpInput struct {
	Email    string
	Password string
	FullName string
	Username string
}

// SignInResult is a new session.
type SignInResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Account   *models.Account `json:"account"`
}

// Service implements sign-up, sign-in, sessions and password management.
type Service struct {
	db         *gorm.DB
	logger     *zap.Logger
	mailer     Mailer
	sessionTTL time.Duration
	resetTTL   time.Duration
	cost       int
	now        func() time.Time
}

// NewService creates an auth service.
func NewService(db *gorm.DB, cfg *config.Auth, mailer Mailer, logger *zap.Logger) *Service {
	cost := cfg.BcryptCost
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	return &Service{
		db:         db,
		logger:     logger.Named("auth"),
		mailer:     mailer,
		sessionTTL: cfg.SessionTTL,
		resetTTL:   cfg.ResetCodeTTL,
		cost:       cost,
		now:        time.Now,
	}
}

// SignUp creates a free account. The username is checked for uniqueness
// before the account is written; the unique index catches any race.
func (s *Service) SignUp(ctx context.Context, in SignUpInput) (*models.Account, error) {
	email, err := normalizeEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if len(in.Password) < minPasswordLength {
		return nil, ErrWeakPassword
	}
	username := strings.TrimSpace(in.Username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	available, err := s.UsernameAvailable(ctx, username)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	key := strings.ToLower(username)
	acc := &models.Account{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     &username,
		UsernameKey:  &key,
		FullName:     strings.TrimSpace(in.FullName),
		PasswordHash: string(hash),
		Tier:         models.TierFree,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Account{}).Where("email = ?", email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check email: %w", err)
		}
		if count > 0 {
			return ErrEmailTaken
		}
		if err := tx.Create(acc).Error; err != nil {
			if taken := uniqueViolation(err); taken != nil {
				return taken
			}
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Account created", zap.String("user_id", acc.ID))
	return acc, nil
}

// UsernameAvailable reports whether no account uses username.
func (s *Service) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Account{}).
		Where("username_key = ?", strings.ToLower(strings.TrimSpace(username))).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count == 0, nil
}

// SignIn verifies credentials and opens a persisted session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var acc models.Account
	if err := s.db.WithContext(ctx).First(&acc, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := randomToken()
	if err != nil {
		return nil, err
	}
	session := models.Session{
		Token:     hashToken(token),
		UserID:    acc.ID,
		ExpiresAt: s.now().Add(s.sessionTTL),
	}
	if err := s.db.WithContext(ctx).Create(&session).Error; err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.logger.Info("Signed in", zap.String("user_id", acc.ID))
	return &SignInResult{Token: token, ExpiresAt: session.ExpiresAt, Account: &acc}, nil
}

// SignOut ends the session behind token. Unknown tokens are ignored.
func (s *Service) SignOut(ctx context.Context, token string) error {
	if err := s.db.WithContext(ctx).Where("token = ?", hashToken(token)).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Authenticate resolves a session token to its account. The account is read
// fresh on every call so tier changes are visible immediately.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.Account, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	var session models.Session
	err := s.db.WithContext(ctx).First(&session, "token = ?", hashToken(token)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !s.now().Before(session.ExpiresAt) {
		s.db.WithContext(ctx).Delete(&session)
		return nil, ErrUnauthenticated
	}

	acc, err := s.Account(ctx, session.UserID)
	if errors.Is(err, ErrAccountNotFound) {
		return nil, ErrUnauthenticated
	}
	return acc, err
}

// Account loads an account by id.
func (s *Service) Account(ctx context.Context, userID string) (*models.Account, error) {
	var acc models.Account
	if err := s.db.WithContext(ctx).First(&acc, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	return &acc, nil
}

// RequestPasswordReset mails a six digit one-time code. Unknown addresses
// succeed silently so the endpoint does not reveal which addresses have accounts.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))

	var acc models.Account
	err := s.db.WithContext(ctx).First(&acc, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Debug("Password reset for unknown email")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load account: %w", err)
	}

	code, err := resetCode()
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash reset code: %w", err)
	}

	reset := models.PasswordReset{
		UserID:    acc.ID,
		CodeHash:  string(hash),
		ExpiresAt: s.now().Add(s.resetTTL),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Only the newest code is live.
		err := tx.Model(&models.PasswordReset{}).
			Where("user_id = ? AND used = ?", acc.ID, false).
			Update("used", true).Error
		if err != nil {
			return err
		}
		return tx.Create(&reset).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store reset code: %w", err)
	}

	if err := s.mailer.SendResetCode(ctx, acc.Email, code); err != nil {
		return fmt.Errorf("failed to send reset code: %w", err)
	}
	return nil
}

// ResetPassword sets a new password using a code from RequestPasswordReset.
// All sessions of the account are ended.
func (s *Service) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	if len(newPassword) < minPasswordLength {
		return ErrWeakPassword
	}
	email = strings.ToLower(strings.TrimSpace(email))

	// A wrong code is recorded in the committed transaction and reported after it.
	wrong := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var acc models.Account
		if err := tx.First(&acc, "email = ?", email).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvalidResetCode
			}
			return fmt.Errorf("failed to load account: %w", err)
		}

		var resets []models.PasswordReset
		err := tx.Where("user_id = ? AND used = ? AND expires_at > ?", acc.ID, false, s.now()).
			Order("created_at desc").
			Find(&resets).Error
		if err != nil {
			return fmt.Errorf("failed to load reset codes: %w", err)
		}

		var match *models.PasswordReset
		for i := range resets {
			if bcrypt.CompareHashAndPassword([]byte(resets[i].CodeHash), []byte(code)) == nil {
				match = &resets[i]
				break
			}
		}
		if match == nil {
			if len(resets) > 0 {
				wrong = true
				return s.recordFailedReset(tx, acc.ID)
			}
			return ErrInvalidResetCode
		}

		res := tx.Model(&models.PasswordReset{}).Where("id = ? AND used = ?", match.ID, false).Update("used", true)
		if res.Error != nil {
			return fmt.Errorf("failed to consume reset code: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrInvalidResetCode
		}

		if err := s.setPassword(tx, acc.ID, newPassword); err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", acc.ID).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("failed to end sessions: %w", err)
		}
		s.logger.Info("Password reset", zap.String("user_id", acc.ID))
		return nil
	})
	if err != nil {
		return err
	}
	if wrong {
		return ErrInvalidResetCode
	}
	return nil
}

// recordFailedReset counts a wrong guess against the live codes of a user
// and burns every code that reached maxResetAttempts.
func (s *Service) recordFailedReset(tx *gorm.DB, userID string) error {
	err := tx.Model(&models.PasswordReset{}).
		Where("user_id = ? AND used = ?", userID, false).
		Update("attempts", gorm.Expr("attempts + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to count reset attempt: %w", err)
	}
	res := tx.Model(&models.PasswordReset{}).
		Where("user_id = ? AND used = ? AND attempts >= ?", userID, false, maxResetAttempts).
		Update("used", true)
	if res.Error != nil {
		return fmt.Errorf("failed to expire reset code: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.logger.Warn("Reset code burned after repeated failures", zap.String("user_id", userID))
	}
	return nil
}

// ChangePassword replaces the password of a signed-in account.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < minPasswordLength {
		return ErrWeakPassword
	}
	acc, err := s.Account(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}
	return s.setPassword(s.db.WithContext(ctx), userID, next)
}

// UpdateUsername changes the username of an account.
func (s *Service) UpdateUsername(ctx context.Context, userID, username string) (*models.Account, error) {
	username = strings.TrimSpace(username)
	if !usernamePattern.MatchString(username) {
		return nil, ErrInvalidUsername
	}

	key := strings.ToLower(username)
	var acc models.Account
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Account{}).
			Where("username_key = ? AND id <> ?", key, userID).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check username: %w", err)
		}
		if count > 0 {
			return ErrUsernameTaken
		}

		res := tx.Model(&models.Account{}).Where("id = ?", userID).
			Updates(map[string]any{"username": username, "username_key": key})
		if res.Error != nil {
			if taken := uniqueViolation(res.Error); taken != nil {
				return taken
			}
			return fmt.Errorf("failed to update username: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrAccountNotFound
		}
		return tx.First(&acc, "id = ?", userID).Error
	})
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func (s *Service) setPassword(tx *gorm.DB, userID, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	res := tx.Model(&models.Account{}).Where("id = ?", userID).Update("password_hash", string(hash))
	if res.Error != nil {
		return fmt.Errorf("failed to update password: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// uniqueViolation maps a unique index failure to the taken error of the
// violated column, or returns nil for any other error. sqlite names the
// column ("accounts.email") and postgres the index ("idx_accounts_email").
func uniqueViolation(err error) error {
	msg := strings.ToLower(err.Error())
	if !errors.Is(err, gorm.ErrDuplicatedKey) &&
		!strings.Contains(msg, "unique") && !strings.Contains(msg, "duplicate") {
		return nil
	}
	switch {
	case strings.Contains(msg, "email"):
		return ErrEmailTaken
	case strings.Contains(msg, "username"):
		return ErrUsernameTaken
	}
	return nil
}

func randomToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func resetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate reset code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
