package journal

import (
	"context"
	"embed"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/idir-jpg/study-success-matching/pkg/pg"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates or upgrades the send_journal table.
func Migrate(ctx context.Context, pool *pgxpool.Pool, table string, log *slog.Logger) error {
	return pg.Migrate(ctx, pool, migrations, "migrations", table, log)
}

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PostgresStore persists entries in send_journal.
type PostgresStore struct {
	db  querier
	now func() time.Time
}

func NewPostgresStore(db querier) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

const insertEntry = `
INSERT INTO send_journal (id, request_id, kind, sender, recipients, subject, test_mode, success, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

func (s *PostgresStore) Record(ctx context.Context, e Entry) error {
	e = normalize(e, s.now())
	to := e.To
	if to == nil {
		to = []string{}
	}
	_, err := s.db.Exec(ctx, insertEntry,
		e.ID, e.RequestID, string(e.Kind), e.Sender, to, e.Subject, e.Test, e.Success, e.Message, e.CreatedAt,
	)
	if err != nil {
		return errors.Join(ErrRecord, err)
	}
	return nil
}

const selectRecent = `
SELECT id, request_id, kind, sender, recipients, subject, test_mode, success, message, created_at
FROM send_journal
ORDER BY created_at DESC
LIMIT $1`

func (s *PostgresStore) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 || limit > MaxRecent {
		limit = MaxRecent
	}
	rows, err := s.db.Query(ctx, selectRecent, limit)
	if err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	defer rows.Close()

	out := make([]Entry, 0, min(limit, 32))
	for rows.Next() {
		var (
			e    Entry
			kind string
		)
		if err := rows.Scan(&e.ID, &e.RequestID, &kind, &e.Sender, &e.To, &e.Subject, &e.Test, &e.Success, &e.Message, &e.CreatedAt); err != nil {
			return nil, errors.Join(ErrQuery, err)
		}
		e.Kind = Kind(kind)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Join(ErrQuery, err)
	}
	return out, nil
}
