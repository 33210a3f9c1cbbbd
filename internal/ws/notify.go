package ws

import (
	"encoding/json"
	"time"
)

const EventPostsUpdated = "posts_updated"

type PostsUpdatedEvent struct {
	Type      string `json:"type"`
	PostID    string `json:"post_id"`
	Change    string `json:"change"`
	Timestamp string `json:"timestamp"`
}

func NewPostsUpdatedEvent(postID, change string, at time.Time) PostsUpdatedEvent {
	return PostsUpdatedEvent{
		Type:      EventPostsUpdated,
		PostID:    postID,
		Change:    change,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}

// PostsUpdated broadcasts a posts_updated event. Clients refetch the feed
// on receipt.
func (h *Hub) PostsUpdated(postID, change string) {
	if h == nil {
		return
	}
	b, err := json.Marshal(NewPostsUpdatedEvent(postID, change, time.Now()))
	if err != nil {
		return
	}
	h.Broadcast(b)
}
