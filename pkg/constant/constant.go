package constant

import "time"

// MinPasswordLength is the canonical password policy applied at every entry
// point that accepts a new password.
const MinPasswordLength = 8

// Recovery token parameters.
const (
	RecoveryTokenBytes = 32
	RecoveryTokenTTL   = time.Hour
)

// Audit actions recorded in the audit_log table.
const (
	AuditLogin           = "login"
	AuditLoginFailed     = "login_failed"
	AuditLogout          = "logout"
	AuditPasswordReset   = "password_reset"
	AuditRecoveryRequest = "recovery_request"
)
