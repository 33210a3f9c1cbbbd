package repository

import (
	"context"

	"jobconnect/internal/database"
	"jobconnect/internal/domain/job"
)

const employerJobColumns = `id, employer_id, title, company, location, salary, job_type, category,
	required_skills, description, applicants, created_at`

type PostgresEmployerJobRepository struct {
	db database.DB
}

func NewPostgresEmployerJobRepository(db database.DB) *PostgresEmployerJobRepository {
	return &PostgresEmployerJobRepository{db: db}
}

func (r *PostgresEmployerJobRepository) Create(ctx context.Context, p job.EmployerJobPost) (int64, error) {
	j := p.Job
	var id int64
	row := r.db.QueryRow(ctx,
		`INSERT INTO employer_job_posts (employer_id, title, company, location, salary, job_type, category,
			required_skills, description, applicants)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id`,
		p.EmployerID, j.Title, j.Company, j.Location, j.Salary, j.JobType, j.Category,
		j.RequiredSkills, j.Description, p.Applicants,
	)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresEmployerJobRepository) GetByID(ctx context.Context, id int64) (job.EmployerJobPost, error) {
	row := r.db.QueryRow(ctx, `SELECT `+employerJobColumns+` FROM employer_job_posts WHERE id = $1`, id)
	p, err := scanEmployerJob(row)
	if err != nil {
		if database.IsNoRows(err) {
			return job.EmployerJobPost{}, job.ErrEmployerPostNotFound
		}
		return job.EmployerJobPost{}, err
	}
	return p, nil
}

func (r *PostgresEmployerJobRepository) ListAll(ctx context.Context) ([]job.EmployerJobPost, error) {
	return r.list(ctx, `SELECT `+employerJobColumns+` FROM employer_job_posts ORDER BY created_at DESC, id DESC`)
}

func (r *PostgresEmployerJobRepository) ListByEmployer(ctx context.Context, employerID int64) ([]job.EmployerJobPost, error) {
	return r.list(ctx,
		`SELECT `+employerJobColumns+` FROM employer_job_posts WHERE employer_id = $1 ORDER BY created_at DESC, id DESC`,
		employerID,
	)
}

func (r *PostgresEmployerJobRepository) UpdateApplicants(ctx context.Context, id int64, applicants string) error {
	affected, err := r.db.Exec(ctx, `UPDATE employer_job_posts SET applicants = $1 WHERE id = $2`, applicants, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrEmployerPostNotFound
	}
	return nil
}

func (r *PostgresEmployerJobRepository) Delete(ctx context.Context, id int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM employer_job_posts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return job.ErrEmployerPostNotFound
	}
	return nil
}

func (r *PostgresEmployerJobRepository) list(ctx context.Context, query string, args ...any) ([]job.EmployerJobPost, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]job.EmployerJobPost, 0)
	for rows.Next() {
		p, err := scanEmployerJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanEmployerJob(row database.Row) (job.EmployerJobPost, error) {
	var p job.EmployerJobPost
	j := &p.Job
	err := row.Scan(
		&p.ID, &p.EmployerID, &j.Title, &j.Company, &j.Location, &j.Salary, &j.JobType, &j.Category,
		&j.RequiredSkills, &j.Description, &p.Applicants, &p.CreatedAt,
	)
	return p, err
}
