package models

// All lists every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&Account{},
		&Session{},
		&PasswordReset{},
		&PaymentRequest{},
		&AccessCode{},
		&WishlistEntry{},
		&NotificationEntry{},
		&AuditEvent{},
		&TraderSettings{},
		&PaperPosition{},
		&PaperTrade{},
	}
}
