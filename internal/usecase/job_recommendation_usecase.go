package usecase

import (
	"context"
	"errors"
	"log"

	"jobconnect/internal/domain/job"
	"jobconnect/internal/domain/matching"
	"jobconnect/internal/domain/user"
	ucjob "jobconnect/internal/usecase/job"
)

type JobRecommendationUsecase interface {
	GetRecommendations(ctx context.Context, userID int64) ([]job.Job, error)
}

type JobRecommendation struct {
	candidates *ucjob.CandidateService
	profiles   user.ProfileRepository
	cache      Cache
	logger     *log.Logger
}

func NewJobRecommendationUsecase(candidates *ucjob.CandidateService, profiles user.ProfileRepository, cache Cache, logger *log.Logger) *JobRecommendation {
	return &JobRecommendation{candidates: candidates, profiles: profiles, cache: cache, logger: logger}
}

// GetRecommendations matches the user's profile skills against every
// listing. Users without skills, or whose skills match nothing, get the
// first entries of the sample catalog.
func (u *JobRecommendation) GetRecommendations(ctx context.Context, userID int64) ([]job.Job, error) {
	if userID <= 0 {
		return nil, ErrUnauthorized
	}

	skills := ""
	p, err := u.profiles.Get(ctx, userID)
	switch {
	case err == nil:
		skills = p.Skills
	case !errors.Is(err, user.ErrNotFound):
		logf(u.logger, "[Recommend] Profile load failed user_id=%d err=%v", userID, err)
	}

	key := RecommendationsCacheKey(userID, skills)
	if u.cache != nil {
		var cached []job.Job
		hit, err := u.cache.GetJSON(ctx, key, &cached)
		if err == nil && hit {
			logf(u.logger, "[Recommend] Cache HIT: %s", key)
			return cached, nil
		}
		logf(u.logger, "[Recommend] Cache MISS: %s", key)
	}

	fallback := matching.DefaultTop(u.candidates.Catalog())
	out := matching.MatchJobs(skills, u.candidates.Load(ctx).All(), fallback)
	if out == nil {
		out = []job.Job{}
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, key, out, recommendationsCacheTTL); err != nil {
			logf(u.logger, "[Recommend] Cache store failed key=%s err=%v", key, err)
		}
	}
	return out, nil
}
