package dto

import (
	"time"

	"jobconnect/internal/domain/user"
)

type UserResponse struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type ProfileResponse struct {
	User            UserResponse `json:"user"`
	Skills          []string     `json:"skills"`
	Company         string       `json:"company"`
	AboutMe         string       `json:"about_me"`
	Headline        string       `json:"headline"`
	Location        string       `json:"location"`
	ExperienceYears int          `json:"experience_years"`
	IsComplete      bool         `json:"is_complete"`
}

type AuthResponse struct {
	User         *UserResponse `json:"user,omitempty"`
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
}

func NewUserResponse(u user.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}
}

func NewProfileResponse(u user.User, p user.Profile) ProfileResponse {
	skills := splitSkills(p.Skills)
	return ProfileResponse{
		User:            NewUserResponse(u),
		Skills:          skills,
		Company:         p.Company,
		AboutMe:         p.AboutMe,
		Headline:        p.Headline,
		Location:        p.Location,
		ExperienceYears: p.ExperienceYears,
		IsComplete:      p.IsComplete,
	}
}
