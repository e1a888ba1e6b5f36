package mongo

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"job-board-api/internal/models"
	"job-board-api/internal/storage"
	"job-board-api/internal/transport/dto"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// JobRepo implements storage.JobRepository over the jobs collection.
type JobRepo struct {
	col *mongod.Collection
}

var _ storage.JobRepository = (*JobRepo)(nil)

func (r *JobRepo) Create(ctx context.Context, job *models.Job) (*models.Job, error) {
	j := *job
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	ts := now().Truncate(time.Millisecond)
	j.CreatedAt, j.UpdatedAt = ts, ts

	if _, err := r.col.InsertOne(ctx, toJobModel(&j)); err != nil {
		return nil, fmt.Errorf("mongo: create job: %w", err)
	}
	return &j, nil
}

func (r *JobRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	var m jobModel
	if err := r.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&m); err != nil {
		if isNoDocuments(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: get job %s: %w", id, err)
	}
	return fromJobModel(&m)
}

func (r *JobRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Job, error) {
	if len(ids) == 0 {
		return []models.Job{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": idStrings(ids)}}, options.Find())
}

// caseInsensitive matches the literal text anywhere in the field.
func caseInsensitive(text string) bson.Regex {
	return bson.Regex{Pattern: regexp.QuoteMeta(text), Options: "i"}
}

func jobFilter(f *dto.ListJobsRequest) bson.M {
	filter := bson.M{}
	if f == nil {
		return filter
	}
	if f.Search != "" {
		re := caseInsensitive(f.Search)
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"company": re},
			bson.M{"description": re},
		}
	}
	if f.Category != "" {
		filter["category"] = string(f.Category)
	}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	if f.Location != "" {
		filter["location"] = caseInsensitive(f.Location)
	}
	if f.PostedBy != uuid.Nil {
		filter["posted_by"] = f.PostedBy.String()
	}
	return filter
}

func (r *JobRepo) List(ctx context.Context, f *dto.ListJobsRequest) ([]models.Job, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	return r.find(ctx, jobFilter(f), findOpts)
}

func (r *JobRepo) find(ctx context.Context, filter bson.M, findOpts *options.FindOptionsBuilder) ([]models.Job, error) {
	cursor, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []jobModel
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list jobs decode: %w", err)
	}

	jobs := make([]models.Job, 0, len(docs))
	for i := range docs {
		j, err := fromJobModel(&docs[i])
		if err != nil {
			return nil, fmt.Errorf("mongo: list jobs convert: %w", err)
		}
		jobs = append(jobs, *j)
	}
	return jobs, nil
}

func (r *JobRepo) ListIDsByPoster(ctx context.Context, posterID uuid.UUID) ([]uuid.UUID, error) {
	findOpts := options.Find().SetProjection(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.col.Find(ctx, bson.M{"posted_by": posterID.String()}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("mongo: list job ids: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID string `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("mongo: list job ids decode: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(docs))
	for _, d := range docs {
		id, err := uuid.Parse(d.ID)
		if err != nil {
			return nil, fmt.Errorf("mongo: parse job id %q: %w", d.ID, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *JobRepo) Update(ctx context.Context, id uuid.UUID, req *dto.UpdateJobRequest) (*models.Job, error) {
	set := bson.M{"updated_at": now().Truncate(time.Millisecond)}
	if req.Title != nil {
		set["title"] = *req.Title
	}
	if req.Location != nil {
		set["location"] = *req.Location
	}
	if req.Type != nil {
		set["type"] = string(*req.Type)
	}
	if req.Salary != nil {
		set["salary"] = *req.Salary
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Requirements != nil {
		set["requirements"] = *req.Requirements
	}
	if req.Category != nil {
		set["category"] = string(*req.Category)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m jobModel
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id.String()}, bson.M{"$set": set}, opts).Decode(&m)
	if err != nil {
		if isNoDocuments(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("mongo: update job %s: %w", id, err)
	}
	return fromJobModel(&m)
}

func (r *JobRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("mongo: delete job %s: %w", id, err)
	}
	if res.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
