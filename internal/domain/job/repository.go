package job

import (
	"context"
	"errors"
)

var (
	ErrUserJobNotFound      = errors.New("user job not found")
	ErrEmployerPostNotFound = errors.New("employer job post not found")
)

type UserJobRepository interface {
	FindByUserAndOriginal(ctx context.Context, userID, originalJobID int64) (UserJob, error)
	Create(ctx context.Context, uj UserJob) (int64, error)
	UpdateFlags(ctx context.Context, id int64, saved, applied bool) error
	ListByUser(ctx context.Context, userID int64) ([]UserJob, error)
	ListSaved(ctx context.Context, userID int64) ([]UserJob, error)
	ListApplied(ctx context.Context, userID int64) ([]UserJob, error)
}

type EmployerJobRepository interface {
	Create(ctx context.Context, p EmployerJobPost) (int64, error)
	GetByID(ctx context.Context, id int64) (EmployerJobPost, error)
	ListAll(ctx context.Context) ([]EmployerJobPost, error)
	ListByEmployer(ctx context.Context, employerID int64) ([]EmployerJobPost, error)
	UpdateApplicants(ctx context.Context, id int64, applicants string) error
	Delete(ctx context.Context, id int64) error
}

type SampleJobRepository interface {
	List(ctx context.Context) ([]Job, error)
}
