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
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// ApplicationRepo implements storage.ApplicationRepository over the applications collection.
type ApplicationRepo struct {
	col *mongod.Collection
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

func applicationFilter(f storage.ApplicationFilter) bson.M {
	filter := bson.M{}
	if f.UserID != uuid.Nil {
		filter["user_id"] = f.UserID.String()
	}
	if len(f.JobIDs) > 0 {
		filter["job_id"] = bson.M{"$in": idStrings(f.JobIDs)}
	}
	return filter
}

func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) (*models.Application, error) {
	a := *app
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	ts := now().Truncate(time.Millisecond)
	a.CreatedAt, a.UpdatedAt = ts, ts

	if _, err := r.col.InsertOne(ctx, toApplicationModel(&a)); err != nil {
		if isDuplicateKey(err) {
			return nil, fmt.Errorf("mongo: create application for job %s: %w", a.JobID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("mongo: create application: %w", err)
	}
	return &a, nil
}

func (r *ApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()})
}

func (r *ApplicationRepo) GetByJobAndUser(ctx context.Context, jobID, userID uuid.UUID) (*models.Application, error) {
	return r.findOne(ctx, bson.M{"job_id": jobID.String(), "user_id": userID.String()})
}

func (r *ApplicationRepo) findOne(ctx context.Context, filter bson.M) (*models.Application, error) {
	var m applicationModel
	if err := r.col.FindOne(ctx, filter).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: get application: %w", err)
	}
	return fromApplicationModel(&m)
}

func (r *ApplicationRepo) List(ctx context.Context, f storage.ApplicationFilter) ([]models.Application, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.col.Find(ctx, applicationFilter(f), findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list applications: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []applicationModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list applications decode: %w", err)
	}

	apps := make([]models.Application, 0, len(docs))
	for i := range docs {
		a, err := fromApplicationModel(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("mongo: list applications convert: %w", err)
		}
		apps = append(apps, *a)
	}
	return apps, nil
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.ApplicationStatus) (*models.Application, error) {
	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": now().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var m applicationModel
	if err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, update, opts).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: update application %s status: %w", id, err)
	}
	return fromApplicationModel(&m)
}

func (r *ApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("mongo: delete application %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *ApplicationRepo) DeleteByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"job_id": jobID.String()})
	if err != nil {
		return 0, fmt.Errorf("mongo: delete applications for job %s: %w", jobID, err)
	}
	return res.DeletedCount, nil
}

// CountByStatus runs $match + $group on status and returns the rows in status order.
func (r *ApplicationRepo) CountByStatus(ctx context.Context, f storage.ApplicationFilter) ([]models.StatusCount, error) {
	pipeline := mongod.Pipeline{
		{{Key: "$match", Value: applicationFilter(f)}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("mongo: count applications by status: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []statusCountModel
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("mongo: count applications decode: %w", err)
	}

	counts := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		status, err := models.ParseApplicationStatus(row.Status)
		if err != nil {
			return nil, fmt.Errorf("mongo: count applications: %w", err)
		}
		counts[status] = row.Count
	}

	out := make([]models.StatusCount, 0, len(counts))
	for _, status := range models.ApplicationStatuses {
		if n, ok := counts[status]; ok {
			out = append(out, models.StatusCount{Status: status, Count: n})
		}
	}
	return out, nil
}
