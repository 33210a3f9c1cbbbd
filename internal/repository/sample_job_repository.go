package repository

import (
	"context"

	"jobconnect/internal/database"
	"jobconnect/internal/domain/job"
)

type PostgresSampleJobRepository struct {
	db database.DB
}

func NewPostgresSampleJobRepository(db database.DB) *PostgresSampleJobRepository {
	return &PostgresSampleJobRepository{db: db}
}

func (r *PostgresSampleJobRepository) List(ctx context.Context) ([]job.Job, error) {
	rows, err := r.db.Query(ctx,
		`SELECT original_job_id, title, company, location, salary, job_type, category, required_skills, description
		 FROM sample_jobs
		 ORDER BY original_job_id ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.Job, 0)
	for rows.Next() {
		var j job.Job
		if err := rows.Scan(&j.OriginalJobID, &j.Title, &j.Company, &j.Location, &j.Salary, &j.JobType, &j.Category, &j.RequiredSkills, &j.Description); err != nil {
			return nil, err
		}
		out = append(out, j)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
