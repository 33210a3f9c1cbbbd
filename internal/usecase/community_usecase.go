package usecase

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"jobconnect/internal/domain/post"
	"jobconnect/internal/domain/user"
	"jobconnect/internal/metrics"
	"jobconnect/internal/pkg/timeago"
)

const (
	defaultFeedLimit = 100
	maxPostLength    = 2000
)

// FeedPost is a post as served to clients. ID is the reconciled key: the
// remote document ID when the post reached the remote store, otherwise the
// local ID.
type FeedPost struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Author      string    `json:"author"`
	Company     string    `json:"company"`
	Content     string    `json:"content"`
	Likes       int       `json:"likes"`
	LikedBy     string    `json:"liked_by"`
	LikedByMe   bool      `json:"liked_by_me"`
	TimeAgo     string    `json:"time_ago"`
	CreatedAt   time.Time `json:"created_at"`
	PendingSync bool      `json:"pending_sync"`
}

// PostNotifier is told whenever the feed changes.
type PostNotifier interface {
	PostsUpdated(postID, change string)
}

type CommunityUsecase interface {
	Feed(ctx context.Context, viewerID int64) ([]FeedPost, error)
	CreatePost(ctx context.Context, userID int64, content string) (FeedPost, error)
	ToggleLike(ctx context.Context, userID int64, postKey string) (FeedPost, error)
	DeletePost(ctx context.Context, userID int64, postKey string) error
	HandleRemoteChange(ctx context.Context, ch post.Change)
}

// Community coordinates the local post mirror and the remote document
// store. Reads prefer the remote store and fall back to the mirror; writes
// go to the remote store first and are mirrored locally.
type Community struct {
	local    post.LocalRepository
	remote   post.RemoteStore
	users    user.Repository
	profiles user.ProfileRepository
	cache    Cache
	notifier PostNotifier
	logger   *log.Logger

	feedLimit int
	now       func() time.Time
}

type CommunityDeps struct {
	Local    post.LocalRepository
	Remote   post.RemoteStore
	Users    user.Repository
	Profiles user.ProfileRepository
	Cache    Cache
	Notifier PostNotifier
	Logger   *log.Logger
}

func NewCommunityUsecase(d CommunityDeps) *Community {
	return &Community{
		local:     d.Local,
		remote:    d.Remote,
		users:     d.Users,
		profiles:  d.Profiles,
		cache:     d.Cache,
		notifier:  d.Notifier,
		logger:    d.Logger,
		feedLimit: defaultFeedLimit,
		now:       time.Now,
	}
}

// Feed never fails on store errors: it degrades to the local mirror and
// then to an empty feed.
func (u *Community) Feed(ctx context.Context, viewerID int64) ([]FeedPost, error) {
	posts, ok := u.cachedFeed(ctx)
	if !ok {
		posts = u.loadFeed(ctx)
		if u.cache != nil {
			if err := u.cache.SetJSON(ctx, feedCacheKey, posts, feedCacheTTL); err != nil {
				logf(u.logger, "[Community] Feed cache store failed err=%v", err)
			}
		}
	}

	now := u.now()
	out := make([]FeedPost, 0, len(posts))
	for _, p := range posts {
		out = append(out, u.decorate(p, viewerID, now))
	}
	return out, nil
}

func (u *Community) CreatePost(ctx context.Context, userID int64, content string) (FeedPost, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > maxPostLength {
		return FeedPost{}, ErrInvalidInput
	}

	usr, err := u.user(ctx, userID)
	if err != nil {
		return FeedPost{}, err
	}
	company := ""
	if prof, err := u.profiles.Get(ctx, userID); err == nil {
		company = prof.Company
	} else if !errors.Is(err, user.ErrNotFound) {
		logf(u.logger, "[Community] Profile load failed user_id=%d err=%v", userID, err)
	}
	author := usr.FullName
	if author == "" {
		author = usr.Email
	}

	now := u.now().UTC()
	p := post.Post{
		UserID:    userID,
		Author:    author,
		Company:   company,
		Content:   content,
		TimeAgo:   timeago.Format(now, now),
		CreatedAt: now,
	}

	if u.remote != nil {
		id, err := u.remote.CreatePost(ctx, p)
		if err == nil {
			p.RemoteID = id
		} else {
			logf(u.logger, "[Community] Remote create failed, writing locally user_id=%d err=%v", userID, err)
			metrics.StoreFallback("create_post")
		}
	}

	if p.RemoteID != "" {
		localID, err := u.local.UpsertByRemoteID(ctx, p)
		if err != nil {
			logf(u.logger, "[Community] Local mirror failed remote_id=%s err=%v", p.RemoteID, err)
		}
		p.LocalID = localID
	} else {
		localID, err := u.local.Create(ctx, p)
		if err != nil {
			logf(u.logger, "[Community] Local create failed user_id=%d err=%v", userID, err)
			return FeedPost{}, ErrInternal
		}
		p.LocalID = localID
	}

	u.changed(ctx, p.Key(), "created")
	return u.decorate(toFeedPost(p), userID, now), nil
}

// ToggleLike flips the user's like on a post and writes the new count to
// both stores. The read and write are not atomic: concurrent togglers can
// lose an update.
func (u *Community) ToggleLike(ctx context.Context, userID int64, postKey string) (FeedPost, error) {
	if userID <= 0 {
		return FeedPost{}, ErrUnauthorized
	}
	p, err := u.resolve(ctx, postKey)
	if err != nil {
		return FeedPost{}, err
	}

	likedBy, liked := post.ToggleLiker(p.LikedBy, userID)
	p.LikedBy = likedBy
	p.Likes = post.AdjustLikes(p.Likes, liked)

	remoteOK := false
	if p.RemoteID != "" && u.remote != nil {
		if err := u.remote.UpdateLikes(ctx, p.RemoteID, p.Likes, p.LikedBy); err != nil {
			logf(u.logger, "[Community] Remote like update failed remote_id=%s err=%v", p.RemoteID, err)
			metrics.StoreFallback("toggle_like")
		} else {
			remoteOK = true
		}
	}

	localOK := u.writeLocalLikes(ctx, &p)
	if !remoteOK && !localOK {
		return FeedPost{}, ErrInternal
	}

	u.changed(ctx, p.Key(), "updated")
	return u.decorate(toFeedPost(p), userID, u.now()), nil
}

// DeletePost removes a post from both stores. Only its author or an admin
// may delete it.
func (u *Community) DeletePost(ctx context.Context, userID int64, postKey string) error {
	usr, err := u.user(ctx, userID)
	if err != nil {
		return err
	}
	p, err := u.resolve(ctx, postKey)
	if err != nil {
		return err
	}
	if p.UserID != usr.ID && !usr.IsAdmin {
		return ErrForbidden
	}

	remoteOK := false
	if p.RemoteID != "" && u.remote != nil {
		err := u.remote.DeletePost(ctx, p.RemoteID)
		switch {
		case err == nil, errors.Is(err, post.ErrNotFound):
			remoteOK = true
		default:
			logf(u.logger, "[Community] Remote delete failed remote_id=%s err=%v", p.RemoteID, err)
			metrics.StoreFallback("delete_post")
		}
	}

	localOK := true
	var lerr error
	switch {
	case p.LocalID > 0:
		lerr = u.local.Delete(ctx, p.LocalID)
	case p.RemoteID != "":
		lerr = u.local.DeleteByRemoteID(ctx, p.RemoteID)
	}
	if lerr != nil && !errors.Is(lerr, post.ErrNotFound) {
		logf(u.logger, "[Community] Local delete failed key=%s err=%v", p.Key(), lerr)
		localOK = false
	}

	if !remoteOK && !localOK {
		return ErrInternal
	}
	u.changed(ctx, p.Key(), "deleted")
	return nil
}

// HandleRemoteChange applies one change observed on the remote store to the
// local mirror and tells listeners the feed moved.
func (u *Community) HandleRemoteChange(ctx context.Context, ch post.Change) {
	if ch.RemoteID == "" {
		return
	}
	metrics.RemoteEvent(string(ch.Type))

	switch ch.Type {
	case post.ChangeUpsert:
		p := ch.Post
		p.RemoteID = ch.RemoteID
		if _, err := u.local.UpsertByRemoteID(ctx, p); err != nil {
			logf(u.logger, "[Community] Mirror upsert failed remote_id=%s err=%v", ch.RemoteID, err)
		}
		u.changed(ctx, ch.RemoteID, "updated")
	case post.ChangeDelete:
		if err := u.local.DeleteByRemoteID(ctx, ch.RemoteID); err != nil {
			logf(u.logger, "[Community] Mirror delete failed remote_id=%s err=%v", ch.RemoteID, err)
		}
		u.changed(ctx, ch.RemoteID, "deleted")
	}
}

func (u *Community) cachedFeed(ctx context.Context) ([]FeedPost, bool) {
	if u.cache == nil {
		return nil, false
	}
	var cached []FeedPost
	hit, err := u.cache.GetJSON(ctx, feedCacheKey, &cached)
	if err != nil || !hit {
		return nil, false
	}
	return cached, true
}

func (u *Community) loadFeed(ctx context.Context) []FeedPost {
	if u.remote != nil {
		remote, err := u.remote.ListPosts(ctx, u.feedLimit)
		switch {
		case err != nil:
			logf(u.logger, "[Community] Remote feed failed, using local posts err=%v", err)
			metrics.StoreFallback("feed")
		case len(remote) > 0:
			out := make([]FeedPost, 0, len(remote))
			for _, p := range remote {
				if _, err := u.local.UpsertByRemoteID(ctx, p); err != nil {
					logf(u.logger, "[Community] Mirror upsert failed remote_id=%s err=%v", p.RemoteID, err)
				}
				out = append(out, toFeedPost(p))
			}
			return out
		}
	}

	local, err := u.local.List(ctx, u.feedLimit)
	if err != nil {
		logf(u.logger, "[Community] Local feed failed err=%v", err)
		return []FeedPost{}
	}
	out := make([]FeedPost, 0, len(local))
	for _, p := range local {
		out = append(out, toFeedPost(p))
	}
	return out
}

// resolve reads the current state of a post. Remote keys are read from the
// remote store when it answers, else from the local mirror.
func (u *Community) resolve(ctx context.Context, postKey string) (post.Post, error) {
	key, err := post.ParseKey(postKey)
	if err != nil {
		return post.Post{}, ErrInvalidInput
	}

	if !key.IsRemote() {
		p, err := u.local.GetByLocalID(ctx, key.LocalID)
		return p, u.mapPostErr(err, postKey)
	}

	if u.remote != nil {
		p, err := u.remote.GetPost(ctx, key.RemoteID)
		switch {
		case err == nil:
			p.RemoteID = key.RemoteID
			if mirror, err := u.local.GetByRemoteID(ctx, key.RemoteID); err == nil {
				p.LocalID = mirror.LocalID
			}
			return p, nil
		case errors.Is(err, post.ErrNotFound):
			return post.Post{}, ErrNotFound
		default:
			logf(u.logger, "[Community] Remote read failed, using mirror remote_id=%s err=%v", key.RemoteID, err)
			metrics.StoreFallback("read_post")
		}
	}

	p, err := u.local.GetByRemoteID(ctx, key.RemoteID)
	return p, u.mapPostErr(err, postKey)
}

func (u *Community) writeLocalLikes(ctx context.Context, p *post.Post) bool {
	if p.LocalID > 0 {
		if err := u.local.UpdateLikes(ctx, p.LocalID, p.Likes, p.LikedBy); err != nil {
			logf(u.logger, "[Community] Local like update failed local_id=%d err=%v", p.LocalID, err)
			return false
		}
		return true
	}
	if p.RemoteID == "" {
		return false
	}
	id, err := u.local.UpsertByRemoteID(ctx, *p)
	if err != nil {
		logf(u.logger, "[Community] Local mirror failed remote_id=%s err=%v", p.RemoteID, err)
		return false
	}
	p.LocalID = id
	return true
}

func (u *Community) mapPostErr(err error, postKey string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, post.ErrNotFound):
		return ErrNotFound
	default:
		logf(u.logger, "[Community] Post load failed key=%s err=%v", postKey, err)
		return ErrInternal
	}
}

func (u *Community) user(ctx context.Context, id int64) (user.User, error) {
	if id <= 0 {
		return user.User{}, ErrUnauthorized
	}
	usr, err := u.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return user.User{}, ErrUnauthorized
		}
		logf(u.logger, "[Community] User load failed user_id=%d err=%v", id, err)
		return user.User{}, ErrInternal
	}
	return usr, nil
}

// PostsSynced refreshes readers after pending posts reached the remote store.
func (u *Community) PostsSynced(ctx context.Context) {
	u.changed(ctx, "", "synced")
}

func (u *Community) changed(ctx context.Context, postID, change string) {
	if u.cache != nil {
		if err := u.cache.Delete(ctx, feedCacheKey); err != nil {
			logf(u.logger, "[Community] Feed cache invalidation failed err=%v", err)
		}
	}
	if u.notifier != nil {
		u.notifier.PostsUpdated(postID, change)
	}
}

func (u *Community) decorate(p FeedPost, viewerID int64, now time.Time) FeedPost {
	p.TimeAgo = timeago.Format(p.CreatedAt, now)
	p.LikedByMe = viewerID > 0 && post.HasLiker(p.LikedBy, viewerID)
	return p
}

func toFeedPost(p post.Post) FeedPost {
	return FeedPost{
		ID:          p.Key(),
		UserID:      p.UserID,
		Author:      p.Author,
		Company:     p.Company,
		Content:     p.Content,
		Likes:       p.Likes,
		LikedBy:     p.LikedBy,
		TimeAgo:     p.TimeAgo,
		CreatedAt:   p.CreatedAt,
		PendingSync: p.IsLocalOnly(),
	}
}
