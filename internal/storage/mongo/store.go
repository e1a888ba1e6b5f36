// Package mongo implements storage.Store on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"job-board-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

// Collection name constants.
const (
	colUsers        = "users"
	colJobs         = "jobs"
	colApplications = "applications"
)

// Store is a MongoDB implementation of storage.Store. It owns the client and
// disconnects it on Close.
type Store struct {
	client *mongod.Client
	db     *mongod.Database
}

var _ storage.Store = (*Store)(nil)

// New creates a Store over the named database.
func New(client *mongod.Client, database string) *Store {
	return &Store{
		client: client,
		db:     client.Database(database),
	}
}

func (s *Store) Users() storage.UserRepository {
	return &UserRepo{col: s.db.Collection(colUsers)}
}

func (s *Store) Jobs() storage.JobRepository {
	return &JobRepo{col: s.db.Collection(colJobs)}
}

func (s *Store) Applications() storage.ApplicationRepository {
	return &ApplicationRepo{col: s.db.Collection(colApplications)}
}

// DeleteJob removes the applications before the job, so a failure part way never leaves
// applications of a deleted job behind. A final sweep removes submissions that were
// inserted while the job was being deleted.
func (s *Store) DeleteJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	if _, err := s.Jobs().GetByID(ctx, jobID); err != nil {
		return 0, err
	}

	apps := s.Applications()
	removed, err := apps.DeleteByJob(ctx, jobID)
	if err != nil {
		return 0, err
	}
	if err := s.Jobs().Delete(ctx, jobID); err != nil {
		return removed, err
	}
	late, err := apps.DeleteByJob(ctx, jobID)
	if err != nil {
		return removed, fmt.Errorf("mongo: sweeping applications of deleted job %s: %w", jobID, err)
	}
	return removed + late, nil
}

// Migrate creates the indexes for all collections, including the unique
// (job_id, user_id) index that guards against duplicate applications.
func (s *Store) Migrate(ctx context.Context) error {
	for col, models := range migrationIndexes() {
		if len(models) == 0 {
			continue
		}
		if _, err := s.db.Collection(col).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: migrate %s indexes: %w", col, err)
		}
	}
	return nil
}

// Ping checks database connectivity.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ── helpers ──────────────────────────────────────────────────────

func now() time.Time {
	return time.Now().UTC()
}

func isNoDocuments(err error) bool {
	return errors.Is(err, mongod.ErrNoDocuments)
}

func isDuplicateKey(err error) bool {
	return mongod.IsDuplicateKeyError(err)
}

func idStrings(ids []uuid.UUID) bson.A {
	out := make(bson.A, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func migrationIndexes() map[string][]mongod.IndexModel {
	return map[string][]mongod.IndexModel{
		colUsers: {
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
		colJobs: {
			{Keys: bson.D{{Key: "posted_by", Value: 1}}},
			{Keys: bson.D{{Key: "created_at", Value: -1}}},
			{Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "type", Value: 1},
			}},
		},
		colApplications: {
			// One application per (job, user).
			{
				Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "user_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		},
	}
}
