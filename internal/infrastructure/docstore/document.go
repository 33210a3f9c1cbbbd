package docstore

import (
	"strconv"
	"strings"
	"time"

	"jobconnect/internal/domain/post"
	"jobconnect/internal/pkg/timeago"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var now = time.Now

// postDocument is the wire shape of a post in the remote collection.
type postDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Author    string             `bson:"author"`
	TimeAgo   string             `bson:"timeAgo"`
	Company   string             `bson:"company"`
	Content   string             `bson:"content"`
	Likes     int                `bson:"likes"`
	LikedBy   []string           `bson:"likedBy"`
	UserID    string             `bson:"userId"`
	CreatedAt int64              `bson:"createdAt"`
}

type changeEvent struct {
	OperationType string `bson:"operationType"`
	DocumentKey   struct {
		ID primitive.ObjectID `bson:"_id"`
	} `bson:"documentKey"`
	FullDocument *postDocument `bson:"fullDocument"`
}

func fromPost(p post.Post) postDocument {
	created := p.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	likedBy := post.ParseLikers(p.LikedBy)
	if likedBy == nil {
		likedBy = []string{}
	}
	return postDocument{
		Author:    p.Author,
		TimeAgo:   p.TimeAgo,
		Company:   p.Company,
		Content:   p.Content,
		Likes:     p.Likes,
		LikedBy:   likedBy,
		UserID:    strconv.FormatInt(p.UserID, 10),
		CreatedAt: created.UnixMilli(),
	}
}

// toPost recomputes TimeAgo; the stored value is only as fresh as the
// last write.
func (d postDocument) toPost() post.Post {
	userID, _ := strconv.ParseInt(d.UserID, 10, 64)
	remoteID := ""
	if !d.ID.IsZero() {
		remoteID = d.ID.Hex()
	}
	return post.Post{
		RemoteID:  remoteID,
		UserID:    userID,
		Author:    d.Author,
		Company:   d.Company,
		Content:   d.Content,
		Likes:     d.Likes,
		LikedBy:   post.JoinLikers(post.ParseLikers(strings.Join(d.LikedBy, ","))),
		TimeAgo:   timeago.FormatMillis(d.CreatedAt, now()),
		CreatedAt: time.UnixMilli(d.CreatedAt).UTC(),
	}
}

func (e changeEvent) toChange() (post.Change, bool) {
	switch e.OperationType {
	case "insert", "update", "replace":
		if e.FullDocument == nil {
			return post.Change{}, false
		}
		p := e.FullDocument.toPost()
		return post.Change{Type: post.ChangeUpsert, RemoteID: p.RemoteID, Post: p}, true
	case "delete":
		return post.Change{Type: post.ChangeDelete, RemoteID: e.DocumentKey.ID.Hex()}, true
	default:
		return post.Change{}, false
	}
}
