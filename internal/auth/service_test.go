package auth

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"borsa-dashboard-go/internal/config"
	"borsa-dashboard-go/internal/database"
	"borsa-dashboard-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// captureMailer records the last code sent per address.
type captureMailer struct {
	mu    sync.Mutex
	codes map[string]string
}

func (m *captureMailer) SendResetCode(_ context.Context, email, code string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[email] = code
	return nil
}

func (m *captureMailer) code(email string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.codes[email]
}

func setupTest(t *testing.T) (*Service, *captureMailer, *gorm.DB) {
	t.Helper()
	db := database.NewTestDatabase(t)
	mailer := &captureMailer{codes: map[string]string{}}
	cfg := &config.Auth{SessionTTL: time.Hour, ResetCodeTTL: 15 * time.Minute, BcryptCost: bcrypt.MinCost}
	return NewService(db, cfg, mailer, zap.NewNop()), mailer, db
}

func signUp(t *testing.T, s *Service, email, username string) *models.Account {
	t.Helper()
	acc, err := s.SignUp(context.Background(), SignUpInput{
		Email:    email,
		Password: "secret1",
		FullName: "Test User",
		Username: username,
	})
	require.NoError(t, err)
	return acc
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesFreeAccount", func(t *testing.T) {
		s, _, _ := setupTest(t)

		acc := signUp(t, s, " Ada@Example.com ", "ada")

		assert.Equal(t, "ada@example.com", acc.Email)
		assert.Equal(t, models.TierFree, acc.Tier)
		assert.False(t, acc.IsAdmin)
		require.NotNil(t, acc.Username)
		assert.Equal(t, "ada", *acc.Username)
		assert.NotEqual(t, "secret1", acc.PasswordHash)
	})

	t.Run("Validation", func(t *testing.T) {
		s, _, _ := setupTest(t)

		testCases := []struct {
			name    string
			input   SignUpInput
			wantErr error
		}{
			{"BadEmail", SignUpInput{Email: "nope", Password: "secret1", Username: "bob"}, ErrInvalidEmail},
			{"ShortPassword", SignUpInput{Email: "b@example.com", Password: "12345", Username: "bob"}, ErrWeakPassword},
			{"ShortUsername", SignUpInput{Email: "b@example.com", Password: "secret1", Username: "bo"}, ErrInvalidUsername},
			{"UsernameWithSpaces", SignUpInput{Email: "b@example.com", Password: "secret1", Username: "bob smith"}, ErrInvalidUsername},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := s.SignUp(ctx, tc.input)
				assert.ErrorIs(t, err, tc.wantErr)
			})
		}
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		s, _, _ := setupTest(t)
		signUp(t, s, "first@example.com", "trader")

		_, err := s.SignUp(ctx, SignUpInput{Email: "second@example.com", Password: "secret1", Username: "Trader"})

		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		s, _, _ := setupTest(t)
		signUp(t, s, "same@example.com", "one")

		_, err := s.SignUp(ctx, SignUpInput{Email: "same@example.com", Password: "secret1", Username: "two"})

		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestUniqueViolation(t *testing.T) {
	ptr := func(s string) *string { return &s }
	insert := func(db *gorm.DB, id, email, username string) error {
		key := strings.ToLower(username)
		return db.Create(&models.Account{
			ID: id, Email: email, Username: ptr(username), UsernameKey: &key,
			PasswordHash: "x", Tier: models.TierFree,
		}).Error
	}

	t.Run("EmailIndex", func(t *testing.T) {
		// Arrange
		_, _, db := setupTest(t)
		require.NoError(t, insert(db, "a", "same@example.com", "alice"))

		// Act
		err := insert(db, "b", "same@example.com", "bob")

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, uniqueViolation(err), ErrEmailTaken)
	})

	t.Run("UsernameIndexIgnoresCase", func(t *testing.T) {
		// Arrange
		_, _, db := setupTest(t)
		require.NoError(t, insert(db, "a", "a@example.com", "Alice"))

		// Act
		err := insert(db, "b", "b@example.com", "ALICE")

		// Assert
		require.Error(t, err)
		assert.ErrorIs(t, uniqueViolation(err), ErrUsernameTaken)
	})

	t.Run("DriverMessages", func(t *testing.T) {
		tests := []struct {
			msg  string
			want error
		}{
			{"UNIQUE constraint failed: accounts.email", ErrEmailTaken},
			{"UNIQUE constraint failed: accounts.username_key", ErrUsernameTaken},
			{`ERROR: duplicate key value violates unique constraint "idx_accounts_email" (SQLSTATE 23505)`, ErrEmailTaken},
			{`ERROR: duplicate key value violates unique constraint "idx_accounts_username_key" (SQLSTATE 23505)`, ErrUsernameTaken},
			{"no such table: accounts", nil},
		}
		for _, tt := range tests {
			t.Run(tt.msg, func(t *testing.T) {
				assert.Equal(t, tt.want, uniqueViolation(errors.New(tt.msg)))
			})
		}
	})
}

func TestSignInAuthenticateSignOut(t *testing.T) {
	ctx := context.Background()
	s, _, _ := setupTest(t)
	acc := signUp(t, s, "ada@example.com", "ada")

	_, err := s.SignIn(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.SignIn(ctx, "ghost@example.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	res, err := s.SignIn(ctx, "ADA@example.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, acc.ID, res.Account.ID)

	got, err := s.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, acc.ID, got.ID)

	require.NoError(t, s.SignOut(ctx, res.Token))
	_, err = s.Authenticate(ctx, res.Token)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	_, err = s.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticate_ExpiredSession(t *testing.T) {
	ctx := context.Background()
	s, _, _ := setupTest(t)
	signUp(t, s, "ada@example.com", "ada")

	now := time.Now()
	s.now = func() time.Time { return now }
	res, err := s.SignIn(ctx, "ada@example.com", "secret1")
	require.NoError(t, err)

	s.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = s.Authenticate(ctx, res.Token)

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestPasswordReset(t *testing.T) {
	ctx := context.Background()

	t.Run("ResetWithMailedCode", func(t *testing.T) {
		// Arrange
		s, mailer, _ := setupTest(t)
		signUp(t, s, "ada@example.com", "ada")
		session, err := s.SignIn(ctx, "ada@example.com", "secret1")
		require.NoError(t, err)

		// Act
		require.NoError(t, s.RequestPasswordReset(ctx, "ada@example.com"))
		code := mailer.code("ada@example.com")
		require.Len(t, code, 6)
		err = s.ResetPassword(ctx, "ada@example.com", code, "brand-new")

		// Assert
		require.NoError(t, err)
		_, err = s.SignIn(ctx, "ada@example.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
		_, err = s.SignIn(ctx, "ada@example.com", "brand-new")
		assert.NoError(t, err)
		_, err = s.Authenticate(ctx, session.Token)
		assert.ErrorIs(t, err, ErrUnauthenticated, "old sessions are ended")

		// The code is single use.
		assert.ErrorIs(t, s.ResetPassword(ctx, "ada@example.com", code, "another1"), ErrInvalidResetCode)
	})

	t.Run("WrongCode", func(t *testing.T) {
		s, mailer, _ := setupTest(t)
		signUp(t, s, "ada@example.com", "ada")
		require.NoError(t, s.RequestPasswordReset(ctx, "ada@example.com"))

		wrong := "000000"
		if mailer.code("ada@example.com") == wrong {
			wrong = "111111"
		}
		assert.ErrorIs(t, s.ResetPassword(ctx, "ada@example.com", wrong, "brand-new"), ErrInvalidResetCode)
	})

	t.Run("CodeBurnedAfterRepeatedFailures", func(t *testing.T) {
		// Arrange
		s, mailer, db := setupTest(t)
		signUp(t, s, "ada@example.com", "ada")
		require.NoError(t, s.RequestPasswordReset(ctx, "ada@example.com"))
		code := mailer.code("ada@example.com")
		wrong := "000000"
		if code == wrong {
			wrong = "111111"
		}

		// Act
		for i := 0; i < maxResetAttempts; i++ {
			require.ErrorIs(t, s.ResetPassword(ctx, "ada@example.com", wrong, "brand-new"), ErrInvalidResetCode)
		}
		err := s.ResetPassword(ctx, "ada@example.com", code, "brand-new")

		// Assert
		assert.ErrorIs(t, err, ErrInvalidResetCode)
		var reset models.PasswordReset
		require.NoError(t, db.First(&reset).Error)
		assert.True(t, reset.Used)
		assert.Equal(t, maxResetAttempts, reset.Attempts)
	})

	t.Run("FailuresBelowLimitKeepCode", func(t *testing.T) {
		s, mailer, _ := setupTest(t)
		signUp(t, s, "ada@example.com", "ada")
		require.NoError(t, s.RequestPasswordReset(ctx, "ada@example.com"))
		code := mailer.code("ada@example.com")
		wrong := "000000"
		if code == wrong {
			wrong = "111111"
		}

		for i := 0; i < maxResetAttempts-1; i++ {
			require.ErrorIs(t, s.ResetPassword(ctx, "ada@example.com", wrong, "brand-new"), ErrInvalidResetCode)
		}

		assert.NoError(t, s.ResetPassword(ctx, "ada@example.com", code, "brand-new"))
	})

	t.Run("NewCodeReplacesOld", func(t *testing.T) {
		s, mailer, _ := setupTest(t)
		signUp(t, s, "ada@example.com", "ada")
		require.NoError(t, s.RequestPasswordReset(ctx, "ada@example.com"))
		first := mailer.code("ada@example.com")
		require.NoError(t, s.RequestPasswordReset(ctx, "ada@example.com"))
		second := mailer.code("ada@example.com")
		if first == second {
			t.Skip("both codes collided")
		}

		assert.ErrorIs(t, s.ResetPassword(ctx, "ada@example.com", first, "brand-new"), ErrInvalidResetCode)
		assert.NoError(t, s.ResetPassword(ctx, "ada@example.com", second, "brand-new"))
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		s, mailer, _ := setupTest(t)
		signUp(t, s, "ada@example.com", "ada")
		now := time.Now()
		s.now = func() time.Time { return now }
		require.NoError(t, s.RequestPasswordReset(ctx, "ada@example.com"))

		s.now = func() time.Time { return now.Add(time.Hour) }
		err := s.ResetPassword(ctx, "ada@example.com", mailer.code("ada@example.com"), "brand-new")

		assert.ErrorIs(t, err, ErrInvalidResetCode)
	})

	t.Run("UnknownEmailIsSilent", func(t *testing.T) {
		s, mailer, _ := setupTest(t)

		assert.NoError(t, s.RequestPasswordReset(ctx, "ghost@example.com"))
		assert.Empty(t, mailer.code("ghost@example.com"))
	})

	t.Run("WeakNewPassword", func(t *testing.T) {
		s, _, _ := setupTest(t)
		assert.ErrorIs(t, s.ResetPassword(ctx, "ada@example.com", "123456", "123"), ErrWeakPassword)
	})
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	s, _, _ := setupTest(t)
	acc := signUp(t, s, "ada@example.com", "ada")

	assert.ErrorIs(t, s.ChangePassword(ctx, acc.ID, "wrong", "newpass1"), ErrInvalidCredentials)
	assert.ErrorIs(t, s.ChangePassword(ctx, acc.ID, "secret1", "short"), ErrWeakPassword)
	require.NoError(t, s.ChangePassword(ctx, acc.ID, "secret1", "newpass1"))

	_, err := s.SignIn(ctx, "ada@example.com", "newpass1")
	assert.NoError(t, err)
}

func TestUpdateUsername(t *testing.T) {
	ctx := context.Background()
	s, _, _ := setupTest(t)
	ada := signUp(t, s, "ada@example.com", "ada")
	signUp(t, s, "bob@example.com", "bob")

	_, err := s.UpdateUsername(ctx, ada.ID, "BOB")
	assert.ErrorIs(t, err, ErrUsernameTaken)

	// Keeping your own name is not a conflict.
	_, err = s.UpdateUsername(ctx, ada.ID, "ada")
	assert.NoError(t, err)

	acc, err := s.UpdateUsername(ctx, ada.ID, "ada.lovelace")
	require.NoError(t, err)
	assert.Equal(t, "ada.lovelace", *acc.Username)

	available, err := s.UsernameAvailable(ctx, "ada")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = s.UpdateUsername(ctx, "missing", "someone")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}
