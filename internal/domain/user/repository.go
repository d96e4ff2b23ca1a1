package user

import "context"

type UserRepository interface {
	Create(ctx context.Context, newUser User) (User, error)

	GetByID(ctx context.Context, id string) (User, error)

	GetByEmail(ctx context.Context, email string) (User, error)

	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// LinkGoogleAccount attaches a Google identity to an existing email
	// account so the user can log in either way.
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)
}
