package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"jobconnect/internal/domain/job"
	"jobconnect/internal/domain/post"
	ucjob "jobconnect/internal/usecase/job"
)

// JobView is a listing annotated with the viewer's saved/applied state.
type JobView struct {
	job.Job
	IsSaved   bool `json:"is_saved"`
	IsApplied bool `json:"is_applied"`
}

type JobsUsecase interface {
	ListJobs(ctx context.Context, userID int64) ([]JobView, error)
	SaveJob(ctx context.Context, userID, originalJobID int64, saved bool) (JobView, error)
	ApplyJob(ctx context.Context, userID, originalJobID int64) (JobView, error)
	SavedJobs(ctx context.Context, userID int64) ([]JobView, error)
	AppliedJobs(ctx context.Context, userID int64) ([]JobView, error)
}

type Jobs struct {
	candidates *ucjob.CandidateService
	userJobs   job.UserJobRepository
	employer   job.EmployerJobRepository
	logger     *log.Logger
	now        func() time.Time
}

func NewJobsUsecase(candidates *ucjob.CandidateService, userJobs job.UserJobRepository, employer job.EmployerJobRepository, logger *log.Logger) *Jobs {
	return &Jobs{candidates: candidates, userJobs: userJobs, employer: employer, logger: logger, now: time.Now}
}

func (u *Jobs) ListJobs(ctx context.Context, userID int64) ([]JobView, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}
	all := u.candidates.Load(ctx).All()

	flags := map[int64]job.UserJob{}
	rows, err := u.userJobs.ListByUser(ctx, userID)
	if err != nil {
		logf(u.logger, "[Jobs] User job load failed user_id=%d err=%v", userID, err)
	}
	for _, r := range rows {
		flags[r.Job.OriginalJobID] = r
	}

	out := make([]JobView, 0, len(all))
	for _, j := range all {
		r := flags[j.OriginalJobID]
		out = append(out, JobView{Job: j, IsSaved: r.IsSaved, IsApplied: r.IsApplied})
	}
	return out, nil
}

// SaveJob sets or clears the saved flag, leaving the applied flag as is.
func (u *Jobs) SaveJob(ctx context.Context, userID, originalJobID int64, saved bool) (JobView, error) {
	return u.mark(ctx, userID, originalJobID, func(r *job.UserJob) { r.IsSaved = saved })
}

// ApplyJob marks the job applied. Applying to an employer listing also adds
// the user to that post's applicants.
func (u *Jobs) ApplyJob(ctx context.Context, userID, originalJobID int64) (JobView, error) {
	v, err := u.mark(ctx, userID, originalJobID, func(r *job.UserJob) { r.IsApplied = true })
	if err != nil {
		return JobView{}, err
	}

	postID, ok := job.EmployerPostIDFromOriginal(originalJobID)
	if !ok {
		return v, nil
	}
	p, err := u.employer.GetByID(ctx, postID)
	if err != nil {
		logf(u.logger, "[Jobs] Applicant append skipped post_id=%d err=%v", postID, err)
		return v, nil
	}
	applicants, added := post.AppendMember(p.Applicants, userID)
	if !added {
		return v, nil
	}
	if err := u.employer.UpdateApplicants(ctx, postID, applicants); err != nil {
		logf(u.logger, "[Jobs] Applicant append failed post_id=%d user_id=%d err=%v", postID, userID, err)
		return JobView{}, ErrInternal
	}
	return v, nil
}

func (u *Jobs) SavedJobs(ctx context.Context, userID int64) ([]JobView, error) {
	return u.listRows(ctx, userID, u.userJobs.ListSaved)
}

func (u *Jobs) AppliedJobs(ctx context.Context, userID int64) ([]JobView, error) {
	return u.listRows(ctx, userID, u.userJobs.ListApplied)
}

func (u *Jobs) listRows(ctx context.Context, userID int64, list func(context.Context, int64) ([]job.UserJob, error)) ([]JobView, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}
	rows, err := list(ctx, userID)
	if err != nil {
		logf(u.logger, "[Jobs] User job list failed user_id=%d err=%v", userID, err)
		return []JobView{}, nil
	}
	out := make([]JobView, 0, len(rows))
	for _, r := range rows {
		out = append(out, JobView{Job: r.Job, IsSaved: r.IsSaved, IsApplied: r.IsApplied})
	}
	return out, nil
}

// mark looks up the user's copy of the job and updates it in place, or
// inserts a snapshot of the listing when there is none yet.
func (u *Jobs) mark(ctx context.Context, userID, originalJobID int64, apply func(*job.UserJob)) (JobView, error) {
	if userID <= 0 {
		return JobView{}, ErrUnauthorized
	}
	if originalJobID <= 0 {
		return JobView{}, ErrInvalidInput
	}

	row, err := u.userJobs.FindByUserAndOriginal(ctx, userID, originalJobID)
	switch {
	case err == nil:
		apply(&row)
		if err := u.userJobs.UpdateFlags(ctx, row.ID, row.IsSaved, row.IsApplied); err != nil {
			logf(u.logger, "[Jobs] User job update failed id=%d err=%v", row.ID, err)
			return JobView{}, ErrInternal
		}
		return JobView{Job: row.Job, IsSaved: row.IsSaved, IsApplied: row.IsApplied}, nil
	case !errors.Is(err, job.ErrUserJobNotFound):
		logf(u.logger, "[Jobs] User job lookup failed user_id=%d job_id=%d err=%v", userID, originalJobID, err)
		return JobView{}, ErrInternal
	}

	j, err := u.candidates.Resolve(ctx, originalJobID)
	if err != nil {
		if errors.Is(err, ucjob.ErrJobNotFound) {
			return JobView{}, ErrNotFound
		}
		logf(u.logger, "[Jobs] Job resolve failed job_id=%d err=%v", originalJobID, err)
		return JobView{}, ErrInternal
	}

	now := u.now().UTC()
	row = job.UserJob{UserID: userID, Job: j, CreatedAt: now, UpdatedAt: now}
	apply(&row)
	if !row.IsSaved && !row.IsApplied {
		// Nothing to record for an unsave of a job never touched.
		return JobView{Job: j}, nil
	}
	if _, err := u.userJobs.Create(ctx, row); err != nil {
		logf(u.logger, "[Jobs] User job insert failed user_id=%d job_id=%d err=%v", userID, originalJobID, err)
		return JobView{}, ErrInternal
	}
	return JobView{Job: j, IsSaved: row.IsSaved, IsApplied: row.IsApplied}, nil
}
