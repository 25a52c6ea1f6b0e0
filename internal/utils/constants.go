package utils

import "time"

// Application Constants
const (
	AppName    = "RideDispatch"
	AppVersion = "1.0.0"

	DefaultTimeZone = "UTC"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour
	PasswordMinLength = 8
	PasswordMaxLength = 128

	// Ride Constants
	DefaultEstimatedMinutes = 15
	MaxRideDistance         = 500.0 // kilometers

	// Driver Constants
	MinDriverRating = 1.0
	MaxDriverRating = 5.0

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5
)

// Date layout used by the vehicle registry API for license expiry.
const LicenseExpiryLayout = "02-01-2006"

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	MsgInvalidCredentials = "invalid credentials"
	MsgInvalidToken       = "invalid token"
	MsgInternalServer     = "internal server error"
	MsgUnauthorized       = "unauthorized"
	MsgForbidden          = "forbidden"
	MsgValidationFailed   = "validation failed"
)

// Cache Keys
const (
	CacheUserPrefix    = "user:"
	CacheDriverPrefix  = "driver:"
	CacheRidePrefix    = "ride:"
	CacheSessionPrefix = "session:"
)

// Event Types
const (
	EventUserRegistered = "user_registered"
	EventUserLogin      = "user_login"
	EventRideRequested  = "ride_requested"
	EventRideAssigned   = "ride_assigned"
	EventRideStarted    = "ride_started"
	EventRideCompleted  = "ride_completed"
	EventRideCancelled  = "ride_cancelled"
	EventDriverOnline   = "driver_online"
	EventDriverOffline  = "driver_offline"
)
