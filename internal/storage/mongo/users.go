package mongo

import (
	"context"
	"fmt"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
)

// UserRepo implements storage.UserRepository over the users collection.
type UserRepo struct {
	col *mongod.Collection
}

var _ storage.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	u := *user
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	ts := now().Truncate(time.Millisecond)
	u.CreatedAt, u.UpdatedAt = ts, ts

	if _, err := r.col.InsertOne(ctx, toUserModel(&u)); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("mongo: create user %s: %w", u.Email, storage.ErrConflict)
		}
		return nil, fmt.Errorf("mongo: create user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var m userModel
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: get user: %w", err)
	}
	return fromUserModel(&m)
}

func (r *UserRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	cursor, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}})
	if err != nil {
		return nil, fmt.Errorf("mongo: list users: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []userModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list users decode: %w", err)
	}

	users := make([]models.User, 0, len(docs))
	for i := range docs {
		u, err := fromUserModel(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("mongo: list users convert: %w", err)
		}
		users = append(users, *u)
	}
	return users, nil
}
