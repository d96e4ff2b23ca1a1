package auth

import "context"

type AuthService interface {
	// Register creates an organization and its owner account in one
	// transaction and returns a logged-in session.
	Register(ctx context.Context, req RegisterRequest, session SessionTrackingRequest) (TokenResponse, error)

	Login(ctx context.Context, req LoginRequest, session SessionTrackingRequest) (TokenResponse, error)

	// LoginWithGoogle logs in (or links) a Google-verified email.
	LoginWithGoogle(ctx context.Context, googleEmail string, googleID string, session SessionTrackingRequest) (TokenResponse, error)

	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)

	Logout(ctx context.Context, refreshToken string) error
}
