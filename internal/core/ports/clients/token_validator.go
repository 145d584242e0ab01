package clients

import "context"

// TokenValidator resolves a bearer token to a user ID.
// Invalid or expired tokens yield apperrors.ErrUnauthorized.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (string, error)
}
