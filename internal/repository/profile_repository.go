package repository

import (
	"context"

	"jobconnect/internal/database"
	"jobconnect/internal/domain/user"
)

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) Get(ctx context.Context, userID int64) (user.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, skills, company, about_me, headline, location, experience_years, is_complete, updated_at
		 FROM user_profiles
		 WHERE user_id = $1`,
		userID,
	)

	var p user.Profile
	if err := row.Scan(&p.UserID, &p.Skills, &p.Company, &p.AboutMe, &p.Headline, &p.Location, &p.ExperienceYears, &p.IsComplete, &p.UpdatedAt); err != nil {
		if database.IsNoRows(err) {
			return user.Profile{}, user.ErrNotFound
		}
		return user.Profile{}, err
	}
	return p, nil
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p user.Profile) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO user_profiles (user_id, skills, company, about_me, headline, location, experience_years, is_complete)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 ON CONFLICT (user_id) DO UPDATE SET
			skills = EXCLUDED.skills,
			company = EXCLUDED.company,
			about_me = EXCLUDED.about_me,
			headline = EXCLUDED.headline,
			location = EXCLUDED.location,
			experience_years = EXCLUDED.experience_years,
			is_complete = EXCLUDED.is_complete,
			updated_at = now()`,
		p.UserID, p.Skills, p.Company, p.AboutMe, p.Headline, p.Location, p.ExperienceYears, p.IsComplete,
	)
	return err
}
