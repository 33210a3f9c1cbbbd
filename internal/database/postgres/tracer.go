package postgres

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

const maxLoggedSQL = 200

type queryStartKey struct{}

// slowQueryTracer logs statements that run longer than threshold.
type slowQueryTracer struct {
	threshold time.Duration
	logger    *log.Logger
	now       func() time.Time
}

func newSlowQueryTracer(threshold time.Duration, logger *log.Logger) *slowQueryTracer {
	return &slowQueryTracer{threshold: threshold, logger: logger, now: time.Now}
}

type queryStart struct {
	at  time.Time
	sql string
}

func (t *slowQueryTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{at: t.now(), sql: data.SQL})
}

func (t *slowQueryTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	start, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	elapsed := t.now().Sub(start.at)
	if elapsed < t.threshold {
		return
	}
	t.logger.Printf("[DB] Slow query duration_ms=%d rows=%d err=%v sql=%q",
		elapsed.Milliseconds(), data.CommandTag.RowsAffected(), data.Err, compactSQL(start.sql))
}

// compactSQL folds whitespace and truncates long statements for one-line logs.
func compactSQL(sql string) string {
	s := strings.Join(strings.Fields(sql), " ")
	if len(s) > maxLoggedSQL {
		s = s[:maxLoggedSQL] + "..."
	}
	return s
}
