// Package common contains shared constants and sentinel errors used across
// taskvault components.
package common

// AccessTokenHeaderName is the HTTP header that carries the access token
// on requests to protected routes.
const AccessTokenHeaderName = "X-Auth"

// AccessIntentAuth is the intent string embedded in every access token.
// Only one token kind exists today; the claim keeps room for future kinds.
const AccessIntentAuth = "auth"
