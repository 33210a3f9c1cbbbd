package usecase

import (
	"context"

	"jobconnect/internal/domain/user"
	ucuser "jobconnect/internal/usecase/user"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, userID int64) (ucuser.ProfileView, error)
	SaveProfile(ctx context.Context, userID int64, in ucuser.SaveProfileInput) (ucuser.ProfileView, error)
}

type Profile struct {
	svc *ucuser.Service
}

func NewProfileUsecase(users user.Repository, profiles user.ProfileRepository) *Profile {
	return &Profile{svc: ucuser.NewService(users, profiles)}
}

func (u *Profile) GetProfile(ctx context.Context, userID int64) (ucuser.ProfileView, error) {
	return u.svc.GetProfile(ctx, userID)
}

func (u *Profile) SaveProfile(ctx context.Context, userID int64, in ucuser.SaveProfileInput) (ucuser.ProfileView, error) {
	return u.svc.SaveProfile(ctx, userID, in)
}
