// Package audit records security-relevant actions as structured log events.
package audit

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Actions recorded by the HTTP surface.
const (
	ActionLogin          = "login"
	ActionLogout         = "logout"
	ActionRefresh        = "refresh"
	ActionForcedLogout   = "forced_logout"
	ActionRevokeSessions = "revoke_sessions"
	ActionUserCreate     = "user_create"
	ActionLeaveDecision  = "leave_decision"
	ActionAllowlistEdit  = "allowlist_edit"
)

var auditLogger = log.With().Str("channel", "audit").Logger()

// Log records one audit event. user is the acting account, target the
// affected resource; either may be empty when unknown.
func Log(action, user, target string, success bool, err error) {
	ev := auditLogger.Info()
	if !success {
		ev = auditLogger.Warn()
	}
	ev.Time("at", time.Now().UTC()).
		Str("action", action).
		Str("user", user).
		Str("target", target).
		Bool("success", success)
	if err != nil {
		ev = ev.Err(err)
	}
	ev.Msg("audit event")
}
