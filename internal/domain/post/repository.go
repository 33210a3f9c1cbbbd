package post

import "context"

// LocalRepository is the relational mirror of community posts.
type LocalRepository interface {
	List(ctx context.Context, limit int) ([]Post, error)
	GetByLocalID(ctx context.Context, id int64) (Post, error)
	GetByRemoteID(ctx context.Context, remoteID string) (Post, error)
	Create(ctx context.Context, p Post) (int64, error)
	UpsertByRemoteID(ctx context.Context, p Post) (int64, error)
	UpdateLikes(ctx context.Context, localID int64, likes int, likedBy string) error
	SetRemoteID(ctx context.Context, localID int64, remoteID string) error
	Delete(ctx context.Context, localID int64) error
	DeleteByRemoteID(ctx context.Context, remoteID string) error
	ListPendingSync(ctx context.Context, limit int) ([]Post, error)
}

// RemoteStore is the document store holding the shared feed.
type RemoteStore interface {
	ListPosts(ctx context.Context, limit int) ([]Post, error)
	GetPost(ctx context.Context, id string) (Post, error)
	CreatePost(ctx context.Context, p Post) (string, error)
	UpdateLikes(ctx context.Context, id string, likes int, likedBy string) error
	DeletePost(ctx context.Context, id string) error
}

type ChangeType string

const (
	ChangeUpsert ChangeType = "upsert"
	ChangeDelete ChangeType = "delete"
)

// Change is one event observed on the remote post collection. Post is
// populated for upserts; deletes carry only RemoteID.
type Change struct {
	Type     ChangeType
	RemoteID string
	Post     Post
}
