// Package catalog holds the fixed sample job catalog shipped with the
// service.
package catalog

import (
	_ "embed"
	"fmt"

	"jobconnect/internal/domain/job"

	"gopkg.in/yaml.v3"
)

//go:embed sample_jobs.yaml
var sampleJobsYAML []byte

type document struct {
	Jobs []job.Job `yaml:"jobs"`
}

// Parse decodes a catalog document and checks that every ID is a unique
// sample ID.
func Parse(b []byte) ([]job.Job, error) {
	var doc document
	if err := yaml.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode sample catalog: %w", err)
	}

	seen := make(map[int64]struct{}, len(doc.Jobs))
	for _, j := range doc.Jobs {
		if !job.IsSampleJob(j.OriginalJobID) {
			return nil, fmt.Errorf("sample job %q has out-of-range id %d", j.Title, j.OriginalJobID)
		}
		if _, ok := seen[j.OriginalJobID]; ok {
			return nil, fmt.Errorf("duplicate sample job id %d", j.OriginalJobID)
		}
		seen[j.OriginalJobID] = struct{}{}
	}
	return doc.Jobs, nil
}

// SampleJobs returns a copy of the embedded catalog in file order.
func SampleJobs() []job.Job {
	jobs, err := Parse(sampleJobsYAML)
	if err != nil {
		panic(err)
	}
	return jobs
}

// Lookup finds a sample job by its original ID.
func Lookup(jobs []job.Job, originalJobID int64) (job.Job, bool) {
	for _, j := range jobs {
		if j.OriginalJobID == originalJobID {
			return j, true
		}
	}
	return job.Job{}, false
}
