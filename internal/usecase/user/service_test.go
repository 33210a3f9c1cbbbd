package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobconnect/internal/domain/user"
)

type stubUsers struct {
	user.Repository
	users map[int64]user.User
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := s.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (s *stubUsers) UpdateFullName(_ context.Context, id int64, name string) error {
	u := s.users[id]
	u.FullName = name
	s.users[id] = u
	return nil
}

type stubProfiles struct {
	profiles map[int64]user.Profile
	err      error
}

func (s *stubProfiles) Get(_ context.Context, id int64) (user.Profile, error) {
	p, ok := s.profiles[id]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (s *stubProfiles) Upsert(_ context.Context, p user.Profile) error {
	if s.err != nil {
		return s.err
	}
	s.profiles[p.UserID] = p
	return nil
}

func newTestService() (*Service, *stubUsers, *stubProfiles) {
	users := &stubUsers{users: map[int64]user.User{
		1: {ID: 1, FullName: "Ada", Role: user.RoleJobSeeker, PasswordHash: "x"},
		2: {ID: 2, FullName: "Bob", Role: user.RoleEmployer},
	}}
	profiles := &stubProfiles{profiles: map[int64]user.Profile{}}
	s := NewService(users, profiles)
	s.now = func() time.Time { return time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC) }
	return s, users, profiles
}

func ptr[T any](v T) *T { return &v }

func TestGetProfile_MissingIsEmptyAndIncomplete(t *testing.T) {
	s, _, _ := newTestService()
	v, err := s.GetProfile(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Profile.UserID != 1 || v.Profile.IsComplete {
		t.Fatalf("unexpected profile %+v", v.Profile)
	}
	if v.User.PasswordHash != "" {
		t.Fatalf("expected password hash stripped")
	}
}

func TestSaveProfile_CompletesSeekerWithSkills(t *testing.T) {
	s, users, profiles := newTestService()
	v, err := s.SaveProfile(context.Background(), 1, SaveProfileInput{
		FullName: ptr("Ada Lovelace"),
		Skills:   ptr(" Go , ,SQL "),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !v.Profile.IsComplete || v.Profile.Skills != "Go,SQL" {
		t.Fatalf("unexpected profile %+v", v.Profile)
	}
	if users.users[1].FullName != "Ada Lovelace" || !profiles.profiles[1].IsComplete {
		t.Fatalf("expected name and profile persisted")
	}
}

func TestSaveProfile_EmployerNeedsCompany(t *testing.T) {
	s, _, _ := newTestService()
	v, err := s.SaveProfile(context.Background(), 2, SaveProfileInput{Skills: ptr("Go")})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v.Profile.IsComplete {
		t.Fatalf("expected employer without company incomplete")
	}
	v, _ = s.SaveProfile(context.Background(), 2, SaveProfileInput{Company: ptr("Acme")})
	if !v.Profile.IsComplete || v.Profile.Skills != "Go" {
		t.Fatalf("expected complete profile keeping skills, got %+v", v.Profile)
	}
}

func TestSaveProfile_Errors(t *testing.T) {
	s, _, profiles := newTestService()
	ctx := context.Background()

	if _, err := s.SaveProfile(ctx, 9, SaveProfileInput{}); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := s.SaveProfile(ctx, 1, SaveProfileInput{ExperienceYears: ptr(-1)}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	profiles.err = errors.New("db down")
	if _, err := s.SaveProfile(ctx, 1, SaveProfileInput{Skills: ptr("Go")}); !errors.Is(err, ErrInternal) {
		t.Fatalf("expected ErrInternal, got %v", err)
	}
}
