package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobconnect/internal/domain/job"
	"jobconnect/internal/domain/post"
	"jobconnect/internal/domain/user"
)

type CreateJobPostInput struct {
	Title          string
	Company        string
	Location       string
	Salary         string
	JobType        string
	Category       string
	RequiredSkills string
	Description    string
}

// Applicant is a user who applied to an employer's listing.
type Applicant struct {
	User    user.User    `json:"user"`
	Profile user.Profile `json:"profile"`
}

type EmployerUsecase interface {
	CreateJobPost(ctx context.Context, employerID int64, in CreateJobPostInput) (job.EmployerJobPost, error)
	ListMyJobPosts(ctx context.Context, employerID int64) ([]job.EmployerJobPost, error)
	ListApplicants(ctx context.Context, employerID, postID int64) ([]Applicant, error)
	DeleteJobPost(ctx context.Context, userID, postID int64) error
}

type Employer struct {
	posts    job.EmployerJobRepository
	users    user.Repository
	profiles user.ProfileRepository
	cache    Cache
	logger   *log.Logger
}

func NewEmployerUsecase(posts job.EmployerJobRepository, users user.Repository, profiles user.ProfileRepository, cache Cache, logger *log.Logger) *Employer {
	return &Employer{posts: posts, users: users, profiles: profiles, cache: cache, logger: logger}
}

func (u *Employer) CreateJobPost(ctx context.Context, employerID int64, in CreateJobPostInput) (job.EmployerJobPost, error) {
	usr, err := u.user(ctx, employerID)
	if err != nil {
		return job.EmployerJobPost{}, err
	}
	if usr.Role != user.RoleEmployer {
		return job.EmployerJobPost{}, ErrForbidden
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return job.EmployerJobPost{}, ErrInvalidInput
	}
	company := strings.TrimSpace(in.Company)
	if company == "" {
		if p, err := u.profiles.Get(ctx, employerID); err == nil {
			company = p.Company
		}
	}

	p := job.EmployerJobPost{
		EmployerID: employerID,
		Job: job.Job{
			Title:          title,
			Company:        company,
			Location:       strings.TrimSpace(in.Location),
			Salary:         strings.TrimSpace(in.Salary),
			JobType:        strings.TrimSpace(in.JobType),
			Category:       strings.TrimSpace(in.Category),
			RequiredSkills: strings.Join(job.SplitList(in.RequiredSkills), ","),
			Description:    strings.TrimSpace(in.Description),
		},
	}

	id, err := u.posts.Create(ctx, p)
	if err != nil {
		logf(u.logger, "[Employer] Job post create failed employer_id=%d err=%v", employerID, err)
		return job.EmployerJobPost{}, ErrInternal
	}
	p.ID = id
	p.Job = p.AsJob()

	u.invalidateRecommendations(ctx)
	logf(u.logger, "[Employer] Job post created id=%d employer_id=%d", id, employerID)
	return p, nil
}

func (u *Employer) ListMyJobPosts(ctx context.Context, employerID int64) ([]job.EmployerJobPost, error) {
	if employerID <= 0 {
		return nil, ErrUnauthorized
	}
	posts, err := u.posts.ListByEmployer(ctx, employerID)
	if err != nil {
		logf(u.logger, "[Employer] Job post list failed employer_id=%d err=%v", employerID, err)
		return []job.EmployerJobPost{}, nil
	}
	for i := range posts {
		posts[i].Job = posts[i].AsJob()
	}
	return posts, nil
}

func (u *Employer) ListApplicants(ctx context.Context, employerID, postID int64) ([]Applicant, error) {
	p, err := u.ownedPost(ctx, employerID, postID, false)
	if err != nil {
		return nil, err
	}

	ids := post.Members(p.Applicants)
	if len(ids) == 0 {
		return []Applicant{}, nil
	}
	users, err := u.users.ListByIDs(ctx, ids)
	if err != nil {
		logf(u.logger, "[Employer] Applicant load failed post_id=%d err=%v", postID, err)
		return []Applicant{}, nil
	}

	out := make([]Applicant, 0, len(users))
	for _, usr := range users {
		usr.PasswordHash = ""
		prof, err := u.profiles.Get(ctx, usr.ID)
		if err != nil {
			prof = user.Profile{UserID: usr.ID}
		}
		out = append(out, Applicant{User: usr, Profile: prof})
	}
	return out, nil
}

// DeleteJobPost removes a listing. Only its owner or an admin may do so.
func (u *Employer) DeleteJobPost(ctx context.Context, userID, postID int64) error {
	if _, err := u.ownedPost(ctx, userID, postID, true); err != nil {
		return err
	}
	if err := u.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, job.ErrEmployerPostNotFound) {
			return ErrNotFound
		}
		logf(u.logger, "[Employer] Job post delete failed id=%d err=%v", postID, err)
		return ErrInternal
	}
	u.invalidateRecommendations(ctx)
	return nil
}

func (u *Employer) ownedPost(ctx context.Context, userID, postID int64, allowAdmin bool) (job.EmployerJobPost, error) {
	if postID <= 0 {
		return job.EmployerJobPost{}, ErrInvalidInput
	}
	usr, err := u.user(ctx, userID)
	if err != nil {
		return job.EmployerJobPost{}, err
	}
	p, err := u.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, job.ErrEmployerPostNotFound) {
			return job.EmployerJobPost{}, ErrNotFound
		}
		logf(u.logger, "[Employer] Job post load failed id=%d err=%v", postID, err)
		return job.EmployerJobPost{}, ErrInternal
	}
	if p.EmployerID != usr.ID && !(allowAdmin && usr.IsAdmin) {
		return job.EmployerJobPost{}, ErrForbidden
	}
	return p, nil
}

func (u *Employer) user(ctx context.Context, id int64) (user.User, error) {
	if id <= 0 {
		return user.User{}, ErrUnauthorized
	}
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthorized
		}
		return user.User{}, ErrInternal
	}
	return usr, nil
}

func (u *Employer) invalidateRecommendations(ctx context.Context) {
	if u.cache == nil {
		return
	}
	if err := u.cache.DeleteByPattern(ctx, recommendationsPattern()); err != nil {
		logf(u.logger, "[Employer] Recommendation cache invalidation failed err=%v", err)
	}
}
