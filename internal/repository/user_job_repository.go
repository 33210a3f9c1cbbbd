package repository

import (
	"context"

	"jobconnect/internal/database"
	"jobconnect/internal/domain/job"
)

const userJobColumns = `id, user_id, original_job_id, title, company, location, salary, job_type, category,
	required_skills, description, is_saved, is_applied, created_at, updated_at`

type PostgresUserJobRepository struct {
	db database.DB
}

func NewPostgresUserJobRepository(db database.DB) *PostgresUserJobRepository {
	return &PostgresUserJobRepository{db: db}
}

func (r *PostgresUserJobRepository) FindByUserAndOriginal(ctx context.Context, userID, originalJobID int64) (job.UserJob, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userJobColumns+` FROM user_jobs WHERE user_id = $1 AND original_job_id = $2`,
		userID, originalJobID,
	)
	uj, err := scanUserJob(row)
	if err != nil {
		if database.IsNoRows(err) {
			return job.UserJob{}, job.ErrUserJobNotFound
		}
		return job.UserJob{}, err
	}
	return uj, nil
}

func (r *PostgresUserJobRepository) Create(ctx context.Context, uj job.UserJob) (int64, error) {
	j := uj.Job
	var id int64
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_jobs (user_id, original_job_id, title, company, location, salary, job_type, category,
			required_skills, description, is_saved, is_applied)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING id`,
		uj.UserID, j.OriginalJobID, j.Title, j.Company, j.Location, j.Salary, j.JobType, j.Category,
		j.RequiredSkills, j.Description, uj.IsSaved, uj.IsApplied,
	)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresUserJobRepository) UpdateFlags(ctx context.Context, id int64, saved, applied bool) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE user_jobs SET is_saved = $1, is_applied = $2, updated_at = now() WHERE id = $3`,
		saved, applied, id,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrUserJobNotFound
	}
	return nil
}

func (r *PostgresUserJobRepository) ListByUser(ctx context.Context, userID int64) ([]job.UserJob, error) {
	return r.list(ctx, `SELECT `+userJobColumns+` FROM user_jobs WHERE user_id = $1 ORDER BY updated_at DESC`, userID)
}

func (r *PostgresUserJobRepository) ListSaved(ctx context.Context, userID int64) ([]job.UserJob, error) {
	return r.list(ctx, `SELECT `+userJobColumns+` FROM user_jobs WHERE user_id = $1 AND is_saved ORDER BY updated_at DESC`, userID)
}

func (r *PostgresUserJobRepository) ListApplied(ctx context.Context, userID int64) ([]job.UserJob, error) {
	return r.list(ctx, `SELECT `+userJobColumns+` FROM user_jobs WHERE user_id = $1 AND is_applied ORDER BY updated_at DESC`, userID)
}

func (r *PostgresUserJobRepository) list(ctx context.Context, query string, args ...any) ([]job.UserJob, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.UserJob, 0)
	for rows.Next() {
		uj, err := scanUserJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, uj)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanUserJob(row database.Row) (job.UserJob, error) {
	var uj job.UserJob
	j := &uj.Job
	err := row.Scan(
		&uj.ID, &uj.UserID, &j.OriginalJobID, &j.Title, &j.Company, &j.Location, &j.Salary, &j.JobType, &j.Category,
		&j.RequiredSkills, &j.Description, &uj.IsSaved, &uj.IsApplied, &uj.CreatedAt, &uj.UpdatedAt,
	)
	return uj, err
}
