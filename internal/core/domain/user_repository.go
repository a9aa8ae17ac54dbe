package domain

import "context"

type UserRepository interface {
	Create(ctx context.Context, user *User) error

	GetByID(ctx context.Context, id string) (*User, error)

	GetByEmail(ctx context.Context, email string) (*User, error)

	// UpdateProfile persists the preference fields only.
	UpdateProfile(ctx context.Context, user *User) error
}
