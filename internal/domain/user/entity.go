package user

import "time"

type Role string

const (
	RoleJobSeeker Role = "job_seeker"
	RoleEmployer  Role = "employer"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleJobSeeker, "":
		return RoleJobSeeker, true
	case RoleEmployer:
		return RoleEmployer, true
	default:
		return "", false
	}
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Role         Role      `json:"role"`
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is one-to-one with User. Skills is stored comma-joined.
type Profile struct {
	UserID          int64     `json:"user_id"`
	Skills          string    `json:"skills"`
	Company         string    `json:"company"`
	AboutMe         string    `json:"about_me"`
	Headline        string    `json:"headline"`
	Location        string    `json:"location"`
	ExperienceYears int       `json:"experience_years"`
	IsComplete      bool      `json:"is_complete"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Complete reports whether the profile satisfies onboarding for role:
// job seekers need at least one skill, employers need a company.
func (p Profile) Complete(role Role) bool {
	switch role {
	case RoleEmployer:
		return hasText(p.Company)
	default:
		return hasText(p.Skills)
	}
}

func hasText(s string) bool {
	for _, r := range s {
		if r != ' ' && r != ',' && r != '\t' && r != '\n' {
			return true
		}
	}
	return false
}
