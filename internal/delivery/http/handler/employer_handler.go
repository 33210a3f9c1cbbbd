package handler

import (
	"jobconnect/internal/delivery/http/dto"
	"jobconnect/internal/delivery/http/middleware"
	"jobconnect/internal/pkg/response"
	"jobconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type EmployerHandler struct {
	uc usecase.EmployerUsecase
}

type createJobPostRequest struct {
	Title          string `json:"title"`
	Company        string `json:"company"`
	Location       string `json:"location"`
	Salary         string `json:"salary"`
	JobType        string `json:"job_type"`
	Category       string `json:"category"`
	RequiredSkills string `json:"required_skills"`
	Description    string `json:"description"`
}

func NewEmployerHandler(uc usecase.EmployerUsecase) *EmployerHandler {
	return &EmployerHandler{uc: uc}
}

func (h *EmployerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Post("/jobs", h.Create)
	r.Get("/jobs", h.ListMine)
	r.Get("/jobs/:id/applicants", h.Applicants)
	r.Delete("/jobs/:id", h.Delete)
}

func (h *EmployerHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createJobPostRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	p, err := h.uc.CreateJobPost(c.Context(), userID, usecase.CreateJobPostInput{
		Title:          req.Title,
		Company:        req.Company,
		Location:       req.Location,
		Salary:         req.Salary,
		JobType:        req.JobType,
		Category:       req.Category,
		RequiredSkills: req.RequiredSkills,
		Description:    req.Description,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewEmployerJobPostResponse(p))
}

func (h *EmployerHandler) ListMine(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	posts, err := h.uc.ListMyJobPosts(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.EmployerJobPostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, dto.NewEmployerJobPostResponse(p))
	}
	return response.OK(c, out)
}

func (h *EmployerHandler) Applicants(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	applicants, err := h.uc.ListApplicants(c.Context(), userID, postID)
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.ApplicantResponse, 0, len(applicants))
	for _, a := range applicants {
		out = append(out, dto.ApplicantResponse{Profile: dto.NewProfileResponse(a.User, a.Profile)})
	}
	return response.OK(c, out)
}

func (h *EmployerHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteJobPost(c.Context(), userID, postID); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, nil)
}
