package dto

import (
	"time"

	"jobconnect/internal/domain/job"
	"jobconnect/internal/usecase"
)

type JobResponse struct {
	ID             int64    `json:"id"`
	Title          string   `json:"title"`
	Company        string   `json:"company"`
	Location       string   `json:"location"`
	Salary         string   `json:"salary"`
	JobType        string   `json:"job_type"`
	Category       string   `json:"category"`
	RequiredSkills []string `json:"required_skills"`
	Description    string   `json:"description"`
	PostedBy       *int64   `json:"posted_by"`
	IsSample       bool     `json:"is_sample"`
	IsSaved        bool     `json:"is_saved"`
	IsApplied      bool     `json:"is_applied"`
}

type EmployerJobPostResponse struct {
	JobResponse
	ApplicantCount int       `json:"applicant_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type ApplicantResponse struct {
	Profile ProfileResponse `json:"profile"`
}

func NewJobResponse(j job.Job) JobResponse {
	return JobResponse{
		ID:             j.OriginalJobID,
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		Salary:         j.Salary,
		JobType:        j.JobType,
		Category:       j.Category,
		RequiredSkills: splitSkills(j.RequiredSkills),
		Description:    j.Description,
		PostedBy:       j.PostedBy,
		IsSample:       j.IsSample(),
	}
}

func NewJobViewResponse(v usecase.JobView) JobResponse {
	r := NewJobResponse(v.Job)
	r.IsSaved = v.IsSaved
	r.IsApplied = v.IsApplied
	return r
}

func NewJobViewResponses(views []usecase.JobView) []JobResponse {
	out := make([]JobResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewJobViewResponse(v))
	}
	return out
}

func NewEmployerJobPostResponse(p job.EmployerJobPost) EmployerJobPostResponse {
	return EmployerJobPostResponse{
		JobResponse:    NewJobResponse(p.AsJob()),
		ApplicantCount: len(job.SplitList(p.Applicants)),
		CreatedAt:      p.CreatedAt,
	}
}

func splitSkills(s string) []string {
	out := job.SplitList(s)
	if out == nil {
		return []string{}
	}
	return out
}
