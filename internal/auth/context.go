package auth

import "context"

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying a verified identity. Identity
// is attached per request; there is no process-wide current user.
func WithIdentity(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, identityKey, claims)
}

// IdentityFromContext returns the verified identity attached to the
// context, if any. Absent identity means the request is anonymous.
func IdentityFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(identityKey).(*Claims)
	return claims, ok
}
