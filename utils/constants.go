package utils

// Game economy constants
const (
	// DefaultStartingBalance is the balance credited to every new account
	DefaultStartingBalance = 1000

	// CreditsCurrency is the in-game currency label
	CreditsCurrency = "CR"
)

// Session constants
const (
	// SessionTokenBytes is the number of random bytes in a session token
	// (hex-encoded, so tokens are twice as long on the wire)
	SessionTokenBytes = 32

	// SessionCookieName is the cookie the session token travels in
	SessionCookieName = "session"
)

// CORS and security constants
const (
	// CORSMaxAge is the maximum age for CORS preflight requests (24 hours)
	CORSMaxAge = 86400
)
