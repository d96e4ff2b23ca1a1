package http

import (
	"context"
	"fmt"

	"github.com/go-chi/jwtauth/v5"
)

// identityFromContext pulls the caller's user and organization IDs out of the
// verified access-token claims. Handlers hand these to services explicitly;
// nothing below the handler layer reads the token.
func identityFromContext(ctx context.Context) (userID string, orgID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	orgID, ok = claims["organization_id"].(string)
	if !ok || orgID == "" {
		return "", "", fmt.Errorf("organization_id claim is missing or invalid")
	}

	return userID, orgID, nil
}
