package job

import (
	"context"
	"errors"
	"log"

	"jobconnect/internal/catalog"
	"jobconnect/internal/domain/job"

	"golang.org/x/sync/errgroup"
)

var ErrJobNotFound = errors.New("job not found")

// Candidates is the full listing offered to users: the sample catalog
// followed by employer submissions.
type Candidates struct {
	Sample   []job.Job
	Employer []job.Job
}

func (c Candidates) All() []job.Job {
	out := make([]job.Job, 0, len(c.Sample)+len(c.Employer))
	out = append(out, c.Sample...)
	return append(out, c.Employer...)
}

// Find returns the candidate with the given original ID.
func (c Candidates) Find(originalJobID int64) (job.Job, bool) {
	for _, list := range [][]job.Job{c.Sample, c.Employer} {
		for _, j := range list {
			if j.OriginalJobID == originalJobID {
				return j, true
			}
		}
	}
	return job.Job{}, false
}

type CandidateService struct {
	samples  job.SampleJobRepository
	employer job.EmployerJobRepository
	catalog  []job.Job
	logger   *log.Logger
}

// NewCandidateService reads the seeded sample table and falls back to the
// embedded catalog when the table is empty or unreadable.
func NewCandidateService(samples job.SampleJobRepository, employer job.EmployerJobRepository, catalog []job.Job, logger *log.Logger) *CandidateService {
	return &CandidateService{samples: samples, employer: employer, catalog: catalog, logger: logger}
}

// Catalog is the embedded sample catalog in file order.
func (s *CandidateService) Catalog() []job.Job {
	return s.catalog
}

// Load never fails: a store error leaves that half of the listing at its
// fallback and is logged.
func (s *CandidateService) Load(ctx context.Context) Candidates {
	var out Candidates
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out.Sample = s.sampleJobs(gctx)
		return nil
	})

	g.Go(func() error {
		if s.employer == nil {
			return nil
		}
		posts, err := s.employer.ListAll(gctx)
		if err != nil {
			s.logf("[Jobs] Employer job load failed err=%v", err)
			return nil
		}
		jobs := make([]job.Job, 0, len(posts))
		for _, p := range posts {
			jobs = append(jobs, p.AsJob())
		}
		out.Employer = jobs
		return nil
	})

	_ = g.Wait()
	return out
}

// Resolve finds a job by original ID. Unknown IDs yield ErrJobNotFound.
func (s *CandidateService) Resolve(ctx context.Context, originalJobID int64) (job.Job, error) {
	if job.IsSampleJob(originalJobID) {
		if j, ok := catalog.Lookup(s.sampleJobs(ctx), originalJobID); ok {
			return j, nil
		}
		return job.Job{}, ErrJobNotFound
	}
	postID, ok := job.EmployerPostIDFromOriginal(originalJobID)
	if !ok || s.employer == nil {
		return job.Job{}, ErrJobNotFound
	}
	p, err := s.employer.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, job.ErrEmployerPostNotFound) {
			return job.Job{}, ErrJobNotFound
		}
		return job.Job{}, err
	}
	return p.AsJob(), nil
}

func (s *CandidateService) sampleJobs(ctx context.Context) []job.Job {
	if s.samples == nil {
		return s.catalog
	}
	jobs, err := s.samples.List(ctx)
	if err != nil {
		s.logf("[Jobs] Sample job load failed, using embedded catalog err=%v", err)
		return s.catalog
	}
	if len(jobs) == 0 {
		return s.catalog
	}
	return jobs
}

func (s *CandidateService) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
