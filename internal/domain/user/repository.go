package user

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("user not found")

type Repository interface {
	Create(ctx context.Context, u User) (int64, error)
	GetByID(ctx context.Context, id int64) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	UpdateFullName(ctx context.Context, id int64, fullName string) error
	ListByIDs(ctx context.Context, ids []int64) ([]User, error)
}

type ProfileRepository interface {
	Get(ctx context.Context, userID int64) (Profile, error)
	Upsert(ctx context.Context, p Profile) error
}
