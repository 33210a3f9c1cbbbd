package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"jobconnect/internal/domain/user"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrUserNotFound = errors.New("user not found")
	ErrInternal     = errors.New("internal error")
)

// ProfileView is a user together with their profile.
type ProfileView struct {
	User    user.User    `json:"user"`
	Profile user.Profile `json:"profile"`
}

// SaveProfileInput carries the editable profile fields. Nil fields are left
// unchanged.
type SaveProfileInput struct {
	FullName        *string
	Skills          *string
	Company         *string
	AboutMe         *string
	Headline        *string
	Location        *string
	ExperienceYears *int
}

type Service struct {
	users    user.Repository
	profiles user.ProfileRepository
	now      func() time.Time
}

func NewService(users user.Repository, profiles user.ProfileRepository) *Service {
	return &Service{users: users, profiles: profiles, now: time.Now}
}

// GetProfile returns an empty, incomplete profile for users who have not
// saved one yet.
func (s *Service) GetProfile(ctx context.Context, userID int64) (ProfileView, error) {
	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return ProfileView{}, ErrUserNotFound
		}
		return ProfileView{}, ErrInternal
	}

	p, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			return ProfileView{}, ErrInternal
		}
		p = user.Profile{UserID: userID}
	}

	return ProfileView{User: sanitizeUser(usr), Profile: p}, nil
}

func (s *Service) SaveProfile(ctx context.Context, userID int64, in SaveProfileInput) (ProfileView, error) {
	view, err := s.GetProfile(ctx, userID)
	if err != nil {
		return ProfileView{}, err
	}
	usr, p := view.User, view.Profile

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return ProfileView{}, ErrInvalidInput
		}
		if name != usr.FullName {
			if err := s.users.UpdateFullName(ctx, userID, name); err != nil {
				return ProfileView{}, ErrInternal
			}
			usr.FullName = name
		}
	}
	if in.ExperienceYears != nil {
		if *in.ExperienceYears < 0 {
			return ProfileView{}, ErrInvalidInput
		}
		p.ExperienceYears = *in.ExperienceYears
	}
	if in.Skills != nil {
		p.Skills = normalizeList(*in.Skills)
	}
	if in.Company != nil {
		p.Company = strings.TrimSpace(*in.Company)
	}
	if in.AboutMe != nil {
		p.AboutMe = strings.TrimSpace(*in.AboutMe)
	}
	if in.Headline != nil {
		p.Headline = strings.TrimSpace(*in.Headline)
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}

	p.UserID = userID
	p.IsComplete = p.Complete(usr.Role)
	p.UpdatedAt = s.now().UTC()

	if err := s.profiles.Upsert(ctx, p); err != nil {
		return ProfileView{}, ErrInternal
	}
	return ProfileView{User: usr, Profile: p}, nil
}

// normalizeList trims each entry of a comma-joined list and drops blanks.
func normalizeList(s string) string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}

func sanitizeUser(u user.User) user.User {
	u.PasswordHash = ""
	return u
}
