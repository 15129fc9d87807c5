package constants

// Session / context keys
const (
	ContextKeyUserID = "user_id"
	ContextKeyCaller = "caller"
	ContextKeyFamily = "family"
	ContextKeyTask   = "task"
)

// Authentication
const (
	MinPasswordLength = 8
	SessionCookieName = "taskhome_session"
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Family join codes: "FAM" + zero-padded sequence ("FAM001", "FAM002", ...).
const (
	FamilyCodePrefix = "FAM"
	FamilyCodeDigits = 3
)

// Chore suggestion limits
const (
	MaxChoreSuggestions = 20
)

// Assignment progress bounds
const (
	MinProgressPercent = 0
	MaxProgressPercent = 100
)
