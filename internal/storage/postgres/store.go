// Package postgres implements storage.Store on PostgreSQL using pgx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"job-board-api/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// Querier is the subset of pgxpool.Pool and pgx.Tx used by the repositories.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgreSQL error codes the repositories translate.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Store is a PostgreSQL implementation of storage.Store. It owns the pool.
type Store struct {
	pool *pgxpool.Pool
}

var _ storage.Store = (*Store)(nil)

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Users() storage.UserRepository               { return NewUserRepo(s.pool) }
func (s *Store) Jobs() storage.JobRepository                 { return NewJobRepo(s.pool) }
func (s *Store) Applications() storage.ApplicationRepository { return NewApplicationRepo(s.pool) }

// DeleteJob removes the applications and then the job in one transaction.
func (s *Store) DeleteJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var removed int64
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var err error
		removed, err = NewApplicationRepo(s.pool).WithTx(tx).DeleteByJob(ctx, jobID)
		if err != nil {
			return err
		}
		return NewJobRepo(s.pool).WithTx(tx).Delete(ctx, jobID)
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}

// Migrate applies the schema statements in order. Every statement is idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	for i, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate statement %d: %w", i+1, err)
		}
	}
	log.Infof("Postgres schema is up to date (%d statements)", len(schema))
	return nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

// pgErrorCode returns the SQLSTATE of err, or "" when err is not a server error.
func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}
