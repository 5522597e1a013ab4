// Package common contains shared constants and sentinel errors used across
// gophcatalog components.
package common

// Durable storage keys holding the persisted session.
const (
	StorageKeyAccessToken  = "auth.token"
	StorageKeyRefreshToken = "auth.refreshToken"
	StorageKeyUser         = "auth.user"
)

// SessionKeys lists every durable key owned by the session.
var SessionKeys = []string{StorageKeyAccessToken, StorageKeyRefreshToken, StorageKeyUser}

// Outbound HTTP header names.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
	UserAgentHeaderName     = "User-Agent"
)

// DefaultSessionMinutes is the access token lifetime requested at login.
const DefaultSessionMinutes = 60
