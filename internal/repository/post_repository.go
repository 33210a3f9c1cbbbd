package repository

import (
	"context"

	"jobconnect/internal/database"
	"jobconnect/internal/domain/post"
)

const postColumns = `id, COALESCE(remote_id, ''), user_id, author, company, content, likes, liked_by, time_ago, created_at`

type PostgresPostRepository struct {
	db database.DB
}

func NewPostgresPostRepository(db database.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

func (r *PostgresPostRepository) List(ctx context.Context, limit int) ([]post.Post, error) {
	if limit <= 0 {
		limit = 100
	}
	return r.list(ctx, `SELECT `+postColumns+` FROM community_posts ORDER BY created_at DESC, id DESC LIMIT $1`, limit)
}

func (r *PostgresPostRepository) GetByLocalID(ctx context.Context, id int64) (post.Post, error) {
	row := r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM community_posts WHERE id = $1`, id)
	return scanPostRow(row)
}

func (r *PostgresPostRepository) GetByRemoteID(ctx context.Context, remoteID string) (post.Post, error) {
	row := r.db.QueryRow(ctx, `SELECT `+postColumns+` FROM community_posts WHERE remote_id = $1`, remoteID)
	return scanPostRow(row)
}

func (r *PostgresPostRepository) Create(ctx context.Context, p post.Post) (int64, error) {
	var id int64
	row := r.db.QueryRow(ctx,
		`INSERT INTO community_posts (remote_id, user_id, author, company, content, likes, liked_by, time_ago, created_at)
		 VALUES (NULLIF($1, ''), $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		p.RemoteID, p.UserID, p.Author, p.Company, p.Content, p.Likes, p.LikedBy, p.TimeAgo, p.CreatedAt,
	)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// UpsertByRemoteID mirrors a remote post, last writer wins.
func (r *PostgresPostRepository) UpsertByRemoteID(ctx context.Context, p post.Post) (int64, error) {
	var id int64
	row := r.db.QueryRow(ctx,
		`INSERT INTO community_posts (remote_id, user_id, author, company, content, likes, liked_by, time_ago, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (remote_id) WHERE remote_id IS NOT NULL DO UPDATE SET
			author = EXCLUDED.author,
			company = EXCLUDED.company,
			content = EXCLUDED.content,
			likes = EXCLUDED.likes,
			liked_by = EXCLUDED.liked_by,
			time_ago = EXCLUDED.time_ago
		 RETURNING id`,
		p.RemoteID, p.UserID, p.Author, p.Company, p.Content, p.Likes, p.LikedBy, p.TimeAgo, p.CreatedAt,
	)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *PostgresPostRepository) UpdateLikes(ctx context.Context, localID int64, likes int, likedBy string) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE community_posts SET likes = $1, liked_by = $2 WHERE id = $3`,
		likes, likedBy, localID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) SetRemoteID(ctx context.Context, localID int64, remoteID string) error {
	affected, err := r.db.Exec(ctx, `UPDATE community_posts SET remote_id = $1 WHERE id = $2`, remoteID, localID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) Delete(ctx context.Context, localID int64) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM community_posts WHERE id = $1`, localID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return post.ErrNotFound
	}
	return nil
}

func (r *PostgresPostRepository) DeleteByRemoteID(ctx context.Context, remoteID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM community_posts WHERE remote_id = $1`, remoteID)
	return err
}

func (r *PostgresPostRepository) ListPendingSync(ctx context.Context, limit int) ([]post.Post, error) {
	if limit <= 0 {
		limit = 50
	}
	return r.list(ctx,
		`SELECT `+postColumns+` FROM community_posts WHERE remote_id IS NULL ORDER BY created_at ASC, id ASC LIMIT $1`,
		limit,
	)
}

func (r *PostgresPostRepository) list(ctx context.Context, query string, args ...any) ([]post.Post, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]post.Post, 0)
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanPostRow(row database.Row) (post.Post, error) {
	p, err := scanPost(row)
	if err != nil {
		if database.IsNoRows(err) {
			return post.Post{}, post.ErrNotFound
		}
		return post.Post{}, err
	}
	return p, nil
}

func scanPost(row database.Row) (post.Post, error) {
	var p post.Post
	err := row.Scan(&p.LocalID, &p.RemoteID, &p.UserID, &p.Author, &p.Company, &p.Content, &p.Likes, &p.LikedBy, &p.TimeAgo, &p.CreatedAt)
	return p, err
}
