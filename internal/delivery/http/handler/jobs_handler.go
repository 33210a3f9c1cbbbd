package handler

import (
	"jobconnect/internal/delivery/http/dto"
	"jobconnect/internal/pkg/response"
	"jobconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type JobsHandler struct {
	jobs      usecase.JobsUsecase
	recommend usecase.JobRecommendationUsecase
}

func NewJobsHandler(jobs usecase.JobsUsecase, recommend usecase.JobRecommendationUsecase) *JobsHandler {
	return &JobsHandler{jobs: jobs, recommend: recommend}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/recommended", h.Recommended)
	r.Get("/saved", h.Saved)
	r.Get("/applied", h.Applied)
	r.Put("/:id/save", h.Save)
	r.Delete("/:id/save", h.Unsave)
	r.Post("/:id/apply", h.Apply)
}

func (h *JobsHandler) List(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	views, err := h.jobs.ListJobs(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobViewResponses(views))
}

func (h *JobsHandler) Recommended(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobs, err := h.recommend.GetRecommendations(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	out := make([]dto.JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, dto.NewJobResponse(j))
	}
	return response.OK(c, out)
}

func (h *JobsHandler) Saved(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	views, err := h.jobs.SavedJobs(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobViewResponses(views))
}

func (h *JobsHandler) Applied(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	views, err := h.jobs.AppliedJobs(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobViewResponses(views))
}

func (h *JobsHandler) Save(c fiber.Ctx) error {
	return h.setSaved(c, true)
}

func (h *JobsHandler) Unsave(c fiber.Ctx) error {
	return h.setSaved(c, false)
}

func (h *JobsHandler) setSaved(c fiber.Ctx, saved bool) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.jobs.SaveJob(c.Context(), userID, jobID, saved)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobViewResponse(v))
}

func (h *JobsHandler) Apply(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	jobID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	v, err := h.jobs.ApplyJob(c.Context(), userID, jobID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewJobViewResponse(v))
}
