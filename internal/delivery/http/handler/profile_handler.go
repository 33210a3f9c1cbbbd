package handler

import (
	"errors"

	"jobconnect/internal/delivery/http/dto"
	"jobconnect/internal/delivery/http/middleware"
	"jobconnect/internal/pkg/response"
	"jobconnect/internal/usecase"
	ucuser "jobconnect/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type saveProfileRequest struct {
	FullName        *string `json:"full_name"`
	Skills          *string `json:"skills"`
	Company         *string `json:"company"`
	AboutMe         *string `json:"about_me"`
	Headline        *string `json:"headline"`
	Location        *string `json:"location"`
	ExperienceYears *int    `json:"experience_years"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
	r.Put("/me", h.SaveMe)
}

func (h *ProfileHandler) GetMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	v, err := h.uc.GetProfile(c.Context(), userID)
	if err != nil {
		return mapProfileError(err)
	}
	return response.OK(c, dto.NewProfileResponse(v.User, v.Profile))
}

func (h *ProfileHandler) SaveMe(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}

	var req saveProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}

	v, err := h.uc.SaveProfile(c.Context(), userID, ucuser.SaveProfileInput{
		FullName:        req.FullName,
		Skills:          req.Skills,
		Company:         req.Company,
		AboutMe:         req.AboutMe,
		Headline:        req.Headline,
		Location:        req.Location,
		ExperienceYears: req.ExperienceYears,
	})
	if err != nil {
		return mapProfileError(err)
	}
	return response.OK(c, dto.NewProfileResponse(v.User, v.Profile))
}

func mapProfileError(err error) error {
	switch {
	case errors.Is(err, ucuser.ErrUserNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
	case errors.Is(err, ucuser.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
