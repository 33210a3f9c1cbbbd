package job

import (
	"strings"
	"time"
)

// SampleJobIDLimit separates the fixed sample catalog from employer
// submissions: catalog IDs are below it, employer posts are surfaced at
// SampleJobIDLimit + post ID.
const SampleJobIDLimit int64 = 10000

type Job struct {
	OriginalJobID  int64  `json:"original_job_id" yaml:"id"`
	Title          string `json:"title" yaml:"title"`
	Company        string `json:"company" yaml:"company"`
	Location       string `json:"location" yaml:"location"`
	Salary         string `json:"salary" yaml:"salary"`
	JobType        string `json:"job_type" yaml:"job_type"`
	Category       string `json:"category" yaml:"category"`
	RequiredSkills string `json:"required_skills" yaml:"required_skills"`
	Description    string `json:"description" yaml:"description"`
	PostedBy       *int64 `json:"posted_by,omitempty" yaml:"-"`
}

// MatchText is the text the skill matcher searches.
func (j Job) MatchText() string {
	return j.Title + " " + j.Category + " " + j.RequiredSkills
}

func (j Job) IsSample() bool {
	return IsSampleJob(j.OriginalJobID)
}

func IsSampleJob(originalJobID int64) bool {
	return originalJobID > 0 && originalJobID < SampleJobIDLimit
}

func OriginalIDForEmployerPost(postID int64) int64 {
	return SampleJobIDLimit + postID
}

// EmployerPostIDFromOriginal reverses OriginalIDForEmployerPost.
func EmployerPostIDFromOriginal(originalJobID int64) (int64, bool) {
	if originalJobID <= SampleJobIDLimit {
		return 0, false
	}
	return originalJobID - SampleJobIDLimit, true
}

// UserJob is the user-scoped copy of a job carrying saved/applied state,
// keyed by (UserID, OriginalJobID).
type UserJob struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Job       Job       `json:"job"`
	IsSaved   bool      `json:"is_saved"`
	IsApplied bool      `json:"is_applied"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EmployerJobPost struct {
	ID         int64     `json:"id"`
	EmployerID int64     `json:"employer_id"`
	Job        Job       `json:"job"`
	Applicants string    `json:"applicants"`
	CreatedAt  time.Time `json:"created_at"`
}

// AsJob returns the listing view of the post.
func (p EmployerJobPost) AsJob() Job {
	j := p.Job
	j.OriginalJobID = OriginalIDForEmployerPost(p.ID)
	employer := p.EmployerID
	j.PostedBy = &employer
	return j
}

// SplitList splits a comma-joined list, trimming blanks.
func SplitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
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
