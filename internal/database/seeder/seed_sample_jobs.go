package seeder

import (
	"context"
	"fmt"

	"jobconnect/internal/database"
	"jobconnect/internal/domain/job"
)

// SampleJobsSeeder mirrors the embedded catalog into sample_jobs.
type SampleJobsSeeder struct {
	Jobs []job.Job
}

func (SampleJobsSeeder) Name() string { return "sample_jobs" }

func (s SampleJobsSeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "sample_jobs",
		"original_job_id", "title", "company", "location", "salary", "job_type", "category", "required_skills", "description",
	); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, j := range s.Jobs {
		if !j.IsSample() {
			return fmt.Errorf("job %d is not a sample job", j.OriginalJobID)
		}
		_, err := tx.Exec(
			ctx,
			`INSERT INTO sample_jobs (original_job_id, title, company, location, salary, job_type, category, required_skills, description)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			 ON CONFLICT (original_job_id) DO UPDATE SET
				title = EXCLUDED.title,
				company = EXCLUDED.company,
				location = EXCLUDED.location,
				salary = EXCLUDED.salary,
				job_type = EXCLUDED.job_type,
				category = EXCLUDED.category,
				required_skills = EXCLUDED.required_skills,
				description = EXCLUDED.description`,
			j.OriginalJobID, j.Title, j.Company, j.Location, j.Salary, j.JobType, j.Category, j.RequiredSkills, j.Description,
		)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
