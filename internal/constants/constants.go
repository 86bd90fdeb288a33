package constants

const (
	// ContextKeyUserID is the key under which the authenticated user ID is
	// stored in both the session and the gin context.
	ContextKeyUserID = "user_id"

	// ContextKeyCurrentUser is the key under which the loaded user record is
	// stored in the gin context by RequireActiveUser.
	ContextKeyCurrentUser = "current_user"

	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "team_task_session"

	MinPasswordLength = 8

	// Pagination
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// ResetTokenTTLMinutes is how long a password reset token stays valid.
	ResetTokenTTLMinutes = 60
)
