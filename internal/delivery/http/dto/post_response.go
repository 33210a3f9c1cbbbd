package dto

import (
	"time"

	"jobconnect/internal/usecase"
)

type PostResponse struct {
	ID          string `json:"id"`
	UserID      int64  `json:"user_id"`
	Author      string `json:"author"`
	Company     string `json:"company"`
	Content     string `json:"content"`
	Likes       int    `json:"likes"`
	LikedByMe   bool   `json:"liked_by_me"`
	TimeAgo     string `json:"time_ago"`
	CreatedAt   string `json:"created_at"`
	PendingSync bool   `json:"pending_sync"`
}

func NewPostResponse(p usecase.FeedPost) PostResponse {
	return PostResponse{
		ID:          p.ID,
		UserID:      p.UserID,
		Author:      p.Author,
		Company:     p.Company,
		Content:     p.Content,
		Likes:       p.Likes,
		LikedByMe:   p.LikedByMe,
		TimeAgo:     p.TimeAgo,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
		PendingSync: p.PendingSync,
	}
}

func NewPostResponses(posts []usecase.FeedPost) []PostResponse {
	out := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostResponse(p))
	}
	return out
}
