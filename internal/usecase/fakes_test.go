package usecase

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"jobconnect/internal/domain/job"
	"jobconnect/internal/domain/post"
	"jobconnect/internal/domain/user"
)

var errStoreDown = errors.New("store down")

type memUserRepo struct {
	users  map[int64]user.User
	nextID int64
}

func newMemUserRepo(users ...user.User) *memUserRepo {
	m := &memUserRepo{users: map[int64]user.User{}}
	for _, u := range users {
		m.users[u.ID] = u
		if u.ID > m.nextID {
			m.nextID = u.ID
		}
	}
	return m
}

func (m *memUserRepo) Create(_ context.Context, u user.User) (int64, error) {
	m.nextID++
	u.ID = m.nextID
	m.users[u.ID] = u
	return u.ID, nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (user.User, error) {
	u, ok := m.users[id]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (user.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *memUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	return err == nil, nil
}

func (m *memUserRepo) UpdateFullName(_ context.Context, id int64, name string) error {
	u, ok := m.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.FullName = name
	m.users[id] = u
	return nil
}

func (m *memUserRepo) ListByIDs(_ context.Context, ids []int64) ([]user.User, error) {
	out := []user.User{}
	for _, id := range ids {
		if u, ok := m.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

type memProfileRepo struct {
	profiles map[int64]user.Profile
	err      error
}

func newMemProfileRepo(profiles ...user.Profile) *memProfileRepo {
	m := &memProfileRepo{profiles: map[int64]user.Profile{}}
	for _, p := range profiles {
		m.profiles[p.UserID] = p
	}
	return m
}

func (m *memProfileRepo) Get(_ context.Context, userID int64) (user.Profile, error) {
	if m.err != nil {
		return user.Profile{}, m.err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return user.Profile{}, user.ErrNotFound
	}
	return p, nil
}

func (m *memProfileRepo) Upsert(_ context.Context, p user.Profile) error {
	if m.err != nil {
		return m.err
	}
	m.profiles[p.UserID] = p
	return nil
}

type memUserJobRepo struct {
	rows   map[int64]job.UserJob
	nextID int64
}

func newMemUserJobRepo() *memUserJobRepo {
	return &memUserJobRepo{rows: map[int64]job.UserJob{}}
}

func (m *memUserJobRepo) FindByUserAndOriginal(_ context.Context, userID, originalJobID int64) (job.UserJob, error) {
	for _, r := range m.rows {
		if r.UserID == userID && r.Job.OriginalJobID == originalJobID {
			return r, nil
		}
	}
	return job.UserJob{}, job.ErrUserJobNotFound
}

func (m *memUserJobRepo) Create(_ context.Context, uj job.UserJob) (int64, error) {
	m.nextID++
	uj.ID = m.nextID
	m.rows[uj.ID] = uj
	return uj.ID, nil
}

func (m *memUserJobRepo) UpdateFlags(_ context.Context, id int64, saved, applied bool) error {
	r, ok := m.rows[id]
	if !ok {
		return job.ErrUserJobNotFound
	}
	r.IsSaved, r.IsApplied = saved, applied
	m.rows[id] = r
	return nil
}

func (m *memUserJobRepo) list(userID int64, keep func(job.UserJob) bool) []job.UserJob {
	out := []job.UserJob{}
	for _, r := range m.rows {
		if r.UserID == userID && keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memUserJobRepo) ListByUser(_ context.Context, userID int64) ([]job.UserJob, error) {
	return m.list(userID, func(job.UserJob) bool { return true }), nil
}

func (m *memUserJobRepo) ListSaved(_ context.Context, userID int64) ([]job.UserJob, error) {
	return m.list(userID, func(r job.UserJob) bool { return r.IsSaved }), nil
}

func (m *memUserJobRepo) ListApplied(_ context.Context, userID int64) ([]job.UserJob, error) {
	return m.list(userID, func(r job.UserJob) bool { return r.IsApplied }), nil
}

type memEmployerRepo struct {
	posts  map[int64]job.EmployerJobPost
	nextID int64
}

func newMemEmployerRepo() *memEmployerRepo {
	return &memEmployerRepo{posts: map[int64]job.EmployerJobPost{}}
}

func (m *memEmployerRepo) Create(_ context.Context, p job.EmployerJobPost) (int64, error) {
	m.nextID++
	p.ID = m.nextID
	m.posts[p.ID] = p
	return p.ID, nil
}

func (m *memEmployerRepo) GetByID(_ context.Context, id int64) (job.EmployerJobPost, error) {
	p, ok := m.posts[id]
	if !ok {
		return job.EmployerJobPost{}, job.ErrEmployerPostNotFound
	}
	return p, nil
}

func (m *memEmployerRepo) ListAll(_ context.Context) ([]job.EmployerJobPost, error) {
	out := []job.EmployerJobPost{}
	for _, p := range m.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memEmployerRepo) ListByEmployer(ctx context.Context, employerID int64) ([]job.EmployerJobPost, error) {
	all, _ := m.ListAll(ctx)
	out := []job.EmployerJobPost{}
	for _, p := range all {
		if p.EmployerID == employerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memEmployerRepo) UpdateApplicants(_ context.Context, id int64, applicants string) error {
	p, ok := m.posts[id]
	if !ok {
		return job.ErrEmployerPostNotFound
	}
	p.Applicants = applicants
	m.posts[id] = p
	return nil
}

func (m *memEmployerRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.posts[id]; !ok {
		return job.ErrEmployerPostNotFound
	}
	delete(m.posts, id)
	return nil
}

type memLocalPosts struct {
	posts  map[int64]post.Post
	nextID int64
	err    error
}

func newMemLocalPosts() *memLocalPosts {
	return &memLocalPosts{posts: map[int64]post.Post{}}
}

func (m *memLocalPosts) sorted() []post.Post {
	out := []post.Post{}
	for _, p := range m.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LocalID > out[j].LocalID })
	return out
}

func (m *memLocalPosts) List(_ context.Context, limit int) ([]post.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := m.sorted()
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memLocalPosts) GetByLocalID(_ context.Context, id int64) (post.Post, error) {
	if m.err != nil {
		return post.Post{}, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return post.Post{}, post.ErrNotFound
	}
	return p, nil
}

func (m *memLocalPosts) GetByRemoteID(_ context.Context, remoteID string) (post.Post, error) {
	if m.err != nil {
		return post.Post{}, m.err
	}
	for _, p := range m.posts {
		if p.RemoteID == remoteID {
			return p, nil
		}
	}
	return post.Post{}, post.ErrNotFound
}

func (m *memLocalPosts) Create(_ context.Context, p post.Post) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.nextID++
	p.LocalID = m.nextID
	m.posts[p.LocalID] = p
	return p.LocalID, nil
}

func (m *memLocalPosts) UpsertByRemoteID(ctx context.Context, p post.Post) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	if existing, err := m.GetByRemoteID(ctx, p.RemoteID); err == nil {
		p.LocalID = existing.LocalID
		m.posts[p.LocalID] = p
		return p.LocalID, nil
	}
	return m.Create(ctx, p)
}

func (m *memLocalPosts) UpdateLikes(_ context.Context, localID int64, likes int, likedBy string) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.posts[localID]
	if !ok {
		return post.ErrNotFound
	}
	p.Likes, p.LikedBy = likes, likedBy
	m.posts[localID] = p
	return nil
}

func (m *memLocalPosts) SetRemoteID(_ context.Context, localID int64, remoteID string) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.posts[localID]
	if !ok {
		return post.ErrNotFound
	}
	p.RemoteID = remoteID
	m.posts[localID] = p
	return nil
}

func (m *memLocalPosts) Delete(_ context.Context, localID int64) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.posts[localID]; !ok {
		return post.ErrNotFound
	}
	delete(m.posts, localID)
	return nil
}

func (m *memLocalPosts) DeleteByRemoteID(_ context.Context, remoteID string) error {
	if m.err != nil {
		return m.err
	}
	for id, p := range m.posts {
		if p.RemoteID == remoteID {
			delete(m.posts, id)
		}
	}
	return nil
}

func (m *memLocalPosts) ListPendingSync(_ context.Context, limit int) ([]post.Post, error) {
	out := []post.Post{}
	for _, p := range m.sorted() {
		if p.RemoteID == "" {
			out = append(out, p)
		}
	}
	return out, nil
}

type memRemoteStore struct {
	posts  map[string]post.Post
	nextID int
	err    error
}

func newMemRemoteStore(posts ...post.Post) *memRemoteStore {
	m := &memRemoteStore{posts: map[string]post.Post{}}
	for _, p := range posts {
		m.posts[p.RemoteID] = p
	}
	return m
}

func (m *memRemoteStore) ListPosts(_ context.Context, limit int) ([]post.Post, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := []post.Post{}
	for _, p := range m.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memRemoteStore) GetPost(_ context.Context, id string) (post.Post, error) {
	if m.err != nil {
		return post.Post{}, m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return post.Post{}, post.ErrNotFound
	}
	return p, nil
}

func (m *memRemoteStore) CreatePost(_ context.Context, p post.Post) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	m.nextID++
	p.RemoteID = "doc" + strconv.Itoa(m.nextID)
	p.LocalID = 0
	m.posts[p.RemoteID] = p
	return p.RemoteID, nil
}

func (m *memRemoteStore) UpdateLikes(_ context.Context, id string, likes int, likedBy string) error {
	if m.err != nil {
		return m.err
	}
	p, ok := m.posts[id]
	if !ok {
		return post.ErrNotFound
	}
	p.Likes, p.LikedBy = likes, likedBy
	m.posts[id] = p
	return nil
}

func (m *memRemoteStore) DeletePost(_ context.Context, id string) error {
	if m.err != nil {
		return m.err
	}
	if _, ok := m.posts[id]; !ok {
		return post.ErrNotFound
	}
	delete(m.posts, id)
	return nil
}

// memCache stores values as-is; GetJSON copies through a type switch on
// the destinations the usecases use.
type memCache struct {
	mu      sync.Mutex
	values  map[string]any
	deletes int
}

func newMemCache() *memCache {
	return &memCache{values: map[string]any{}}
}

func (c *memCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	switch dst := out.(type) {
	case *[]FeedPost:
		*dst = append([]FeedPost(nil), v.([]FeedPost)...)
	case *[]job.Job:
		*dst = append([]job.Job(nil), v.([]job.Job)...)
	default:
		return false, nil
	}
	return true, nil
}

func (c *memCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	c.deletes++
	return nil
}

func (c *memCache) DeleteByPattern(_ context.Context, _ string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values = map[string]any{}
	c.deletes++
	return nil
}

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) PostsUpdated(postID, change string) {
	n.events = append(n.events, change+":"+postID)
}
