package handler

import (
	"jobconnect/internal/delivery/http/dto"
	"jobconnect/internal/delivery/http/middleware"
	"jobconnect/internal/pkg/response"
	"jobconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type PostHandler struct {
	uc usecase.CommunityUsecase
}

type createPostRequest struct {
	Content string `json:"content"`
}

func NewPostHandler(uc usecase.CommunityUsecase) *PostHandler {
	return &PostHandler{uc: uc}
}

func (h *PostHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.Feed)
	r.Post("/", h.Create)
	r.Post("/:id/like", h.ToggleLike)
	r.Delete("/:id", h.Delete)
}

func (h *PostHandler) Feed(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	posts, err := h.uc.Feed(c.Context(), userID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewPostResponses(posts))
}

func (h *PostHandler) Create(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	var req createPostRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
	}
	p, err := h.uc.CreatePost(c.Context(), userID, req.Content)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Created(c, dto.NewPostResponse(p))
}

func (h *PostHandler) ToggleLike(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	p, err := h.uc.ToggleLike(c.Context(), userID, c.Params("id"))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, dto.NewPostResponse(p))
}

func (h *PostHandler) Delete(c fiber.Ctx) error {
	userID, err := currentUser(c)
	if err != nil {
		return err
	}
	if err := h.uc.DeletePost(c.Context(), userID, c.Params("id")); err != nil {
		return mapUsecaseError(err)
	}
	return response.OK(c, nil)
}
