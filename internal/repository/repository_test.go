package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"jobconnect/internal/database"
	"jobconnect/internal/domain/job"
	"jobconnect/internal/domain/post"
	"jobconnect/internal/domain/user"

	"github.com/jackc/pgx/v5"
)

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.vals) {
		return fmt.Errorf("scan dest mismatch: %d != %d", len(dest), len(r.vals))
	}
	for i := range dest {
		switch d := dest[i].(type) {
		case *int64:
			*d = r.vals[i].(int64)
		case *int:
			*d = r.vals[i].(int)
		case *string:
			*d = r.vals[i].(string)
		case *bool:
			*d = r.vals[i].(bool)
		case *time.Time:
			*d = r.vals[i].(time.Time)
		default:
			return fmt.Errorf("unsupported scan type %T", dest[i])
		}
	}
	return nil
}

type execCall struct {
	query string
	args  []any
}

type fakeDB struct {
	row      fakeRow
	affected int64
	execErr  error
	execs    []execCall
}

func (db *fakeDB) Ping(context.Context) error { return nil }
func (db *fakeDB) Close() error               { return nil }
func (db *fakeDB) SQLDB() *sql.DB             { return nil }

func (db *fakeDB) Begin(context.Context) (database.Tx, error) {
	return nil, fmt.Errorf("not implemented")
}

func (db *fakeDB) Exec(_ context.Context, query string, args ...any) (int64, error) {
	db.execs = append(db.execs, execCall{query: query, args: args})
	return db.affected, db.execErr
}

func (db *fakeDB) Query(context.Context, string, ...any) (database.Rows, error) {
	return nil, fmt.Errorf("not implemented")
}

func (db *fakeDB) QueryRow(context.Context, string, ...any) database.Row {
	return db.row
}

func TestUserRepository_GetByEmail_NotFound(t *testing.T) {
	repo := NewPostgresUserRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})
	_, err := repo.GetByEmail(context.Background(), "a@b.c")
	if !errors.Is(err, user.ErrNotFound) {
		t.Fatalf("expected user.ErrNotFound, got %v", err)
	}
}

func TestUserRepository_GetByID_ScansRole(t *testing.T) {
	now := time.Now()
	repo := NewPostgresUserRepository(&fakeDB{row: fakeRow{vals: []any{
		int64(7), "emp@acme.io", "hash", "Ada", "employer", true, now, now,
	}}})
	u, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Role != user.RoleEmployer || !u.IsAdmin || u.FullName != "Ada" {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestUserJobRepository_FindMissingRow(t *testing.T) {
	repo := NewPostgresUserJobRepository(&fakeDB{row: fakeRow{err: sql.ErrNoRows}})
	_, err := repo.FindByUserAndOriginal(context.Background(), 1, 2)
	if !errors.Is(err, job.ErrUserJobNotFound) {
		t.Fatalf("expected ErrUserJobNotFound, got %v", err)
	}
}

func TestUserJobRepository_UpdateFlags_NoRows(t *testing.T) {
	db := &fakeDB{affected: 0}
	repo := NewPostgresUserJobRepository(db)
	err := repo.UpdateFlags(context.Background(), 5, true, false)
	if !errors.Is(err, job.ErrUserJobNotFound) {
		t.Fatalf("expected ErrUserJobNotFound, got %v", err)
	}
	if len(db.execs) != 1 || db.execs[0].args[0] != true || db.execs[0].args[1] != false {
		t.Fatalf("unexpected exec %+v", db.execs)
	}
}

func TestPostRepository_GetByRemoteID(t *testing.T) {
	created := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	repo := NewPostgresPostRepository(&fakeDB{row: fakeRow{vals: []any{
		int64(3), "abc", int64(9), "Ada", "Acme", "hello", 2, "1,9", "Just now", created,
	}}})
	p, err := repo.GetByRemoteID(context.Background(), "abc")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if p.LocalID != 3 || p.RemoteID != "abc" || p.Likes != 2 || p.LikedBy != "1,9" {
		t.Fatalf("unexpected post %+v", p)
	}
}

func TestPostRepository_UpdateLikes(t *testing.T) {
	db := &fakeDB{affected: 1}
	repo := NewPostgresPostRepository(db)
	if err := repo.UpdateLikes(context.Background(), 3, 1, "9"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !strings.Contains(db.execs[0].query, "UPDATE community_posts") {
		t.Fatalf("unexpected query %q", db.execs[0].query)
	}

	db.affected = 0
	if err := repo.UpdateLikes(context.Background(), 3, 1, "9"); !errors.Is(err, post.ErrNotFound) {
		t.Fatalf("expected post.ErrNotFound, got %v", err)
	}
}

func TestEmployerJobRepository_GetByID_NotFound(t *testing.T) {
	repo := NewPostgresEmployerJobRepository(&fakeDB{row: fakeRow{err: pgx.ErrNoRows}})
	_, err := repo.GetByID(context.Background(), 1)
	if !errors.Is(err, job.ErrEmployerPostNotFound) {
		t.Fatalf("expected ErrEmployerPostNotFound, got %v", err)
	}
}

func TestUserRepository_ListByIDs_Empty(t *testing.T) {
	repo := NewPostgresUserRepository(&fakeDB{})
	out, err := repo.ListByIDs(context.Background(), nil)
	if err != nil || len(out) != 0 {
		t.Fatalf("expected empty result without querying, got %v %v", out, err)
	}
}
