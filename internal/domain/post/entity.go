package post

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

var (
	ErrNotFound   = errors.New("post not found")
	ErrInvalidKey = errors.New("invalid post key")
)

// Post is a community post. A post written while the remote store was
// reachable carries RemoteID; one written locally only has LocalID until
// it is synced.
type Post struct {
	LocalID   int64     `json:"-"`
	RemoteID  string    `json:"-"`
	UserID    int64     `json:"user_id"`
	Author    string    `json:"author"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	LikedBy   string    `json:"liked_by"`
	TimeAgo   string    `json:"time_ago"`
	CreatedAt time.Time `json:"created_at"`
}

// Key is the identity handed to clients.
func (p Post) Key() string {
	if p.RemoteID != "" {
		return p.RemoteID
	}
	return strconv.FormatInt(p.LocalID, 10)
}

func (p Post) IsLocalOnly() bool {
	return p.RemoteID == ""
}

type Key struct {
	LocalID  int64
	RemoteID string
}

func (k Key) IsRemote() bool {
	return k.RemoteID != ""
}

// ParseKey reads a client-supplied post identity. Decimal keys are local
// IDs, anything else is a remote document ID.
func ParseKey(s string) (Key, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Key{}, ErrInvalidKey
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		if id <= 0 {
			return Key{}, ErrInvalidKey
		}
		return Key{LocalID: id}, nil
	}
	return Key{RemoteID: s}, nil
}
