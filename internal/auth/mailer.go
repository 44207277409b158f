package auth

import (
	"context"

	"go.uber.org/zap"
)

// Mailer delivers one-time password reset codes out of band.
type Mailer interface {
	SendResetCode(ctx context.Context, email, code string) error
}

// LogMailer writes reset codes to the log. It stands in for a mail service
// in development.
type LogMailer struct {
	logger *zap.Logger
}

var _ Mailer = (*LogMailer)(nil)

// NewLogMailer creates a LogMailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger.Named("mailer")}
}

func (m *LogMailer) SendResetCode(_ context.Context, email, code string) error {
	m.logger.Info("Password reset code issued", zap.String("email", email), zap.String("code", code))
	return nil
}
