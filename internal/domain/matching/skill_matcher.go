// Package matching filters job candidates against a user's skills.
package matching

import (
	"strings"

	"jobconnect/internal/domain/job"
)

// DefaultRecommendationCount is how many catalog entries are offered when
// nothing matches.
const DefaultRecommendationCount = 3

// ParseSkills lower-cases and splits a comma-separated skill list.
func ParseSkills(skills string) []string {
	parts := strings.Split(strings.ToLower(skills), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// MatchJobs keeps every candidate whose title, category or required skills
// contain any of the given skills, in candidate order. When nothing
// matches, fallback is returned instead.
func MatchJobs(skills string, candidates []job.Job, fallback []job.Job) []job.Job {
	needles := ParseSkills(skills)
	if len(needles) == 0 {
		return fallback
	}

	out := make([]job.Job, 0, len(candidates))
	for _, c := range candidates {
		text := strings.ToLower(c.MatchText())
		for _, n := range needles {
			if strings.Contains(text, n) {
				out = append(out, c)
				break
			}
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

// DefaultTop returns the first DefaultRecommendationCount jobs.
func DefaultTop(catalog []job.Job) []job.Job {
	if len(catalog) <= DefaultRecommendationCount {
		return catalog
	}
	return catalog[:DefaultRecommendationCount]
}
