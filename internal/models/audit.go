package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Audit event kinds.
const (
	AuditRequestSubmitted = "payment_request.submitted"
	AuditRequestApproved  = "payment_request.approved"
	AuditRequestRejected  = "payment_request.rejected"
	AuditCodeRedeemed     = "access_code.redeemed"
	AuditCodeRedeemFailed = "access_code.redeem_failed"
	AuditPlanDowngraded   = "plan.downgraded"
	AuditPlanExpired      = "plan.expired"
)

// AuditEvent records an entitlement change for manual reconciliation.
type AuditEvent struct {
	gorm.Model
	Kind    string         `gorm:"index;not null" json:"kind"`
	UserID  string         `gorm:"index;type:varchar(36)" json:"user_id"`
	Subject string         `json:"subject"` // request id or access code
	Details datatypes.JSON `json:"details"`
}
