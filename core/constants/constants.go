package constants

// Database pool settings
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Redis key prefixes
const (
	RedisKeyTokenBlacklist  = "blacklist:token:"
	RedisKeyPublicDirectory = "directory:public"
)

// Asynq queue and task names
const (
	QueueDefault               = "default"
	TaskEmailWelcome           = "email:welcome"
	TaskEmailConnectionRequest = "email:connection_request"
)

// Attendee lifecycle statuses
const (
	AttendeeStatusPending  = "Pending"
	AttendeeStatusApproved = "Approved"
)

// CredentialAlphabet excludes I/1/O/0 so emailed credentials read
// unambiguously.
const CredentialAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const CredentialLength = 6

const SlugTokenLength = 8
