package common

// AuthorizationHeaderName is the gRPC metadata key used to carry the
// bearer token on outbound requests.
const AuthorizationHeaderName = "authorization"

// BearerPrefix precedes the token inside the authorization header value.
const BearerPrefix = "Bearer "
