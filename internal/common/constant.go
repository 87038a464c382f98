package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// Messages returned to callers on successful authentication.
const (
	MessageRegistered = "Registration successful"
	MessageLoggedIn   = "Login successful"
)
