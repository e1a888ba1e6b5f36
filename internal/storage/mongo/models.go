package mongo

import (
	"fmt"
	"time"

	"job-board-api/internal/models"

	"github.com/google/uuid"
)

type userModel struct {
	ID           string    `bson:"_id"`
	Name         string    `bson:"name"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	Role         string    `bson:"role"`
	Company      string    `bson:"company,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type jobModel struct {
	ID           string    `bson:"_id"`
	Title        string    `bson:"title"`
	Company      string    `bson:"company"`
	Location     string    `bson:"location"`
	Type         string    `bson:"type"`
	Salary       string    `bson:"salary"`
	Description  string    `bson:"description"`
	Requirements []string  `bson:"requirements"`
	Category     string    `bson:"category"`
	PostedBy     string    `bson:"posted_by"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

type applicationModel struct {
	ID          string    `bson:"_id"`
	JobID       string    `bson:"job_id"`
	UserID      string    `bson:"user_id"`
	CoverLetter string    `bson:"cover_letter"`
	Resume      string    `bson:"resume"`
	Status      string    `bson:"status"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

type statusCountModel struct {
	Status string `bson:"_id"`
	Count  int64  `bson:"count"`
}

// ── converters ───────────────────────────────────────────────────

func toUserModel(u *models.User) *userModel {
	return &userModel{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		PasswordHash: u.PasswordHash,
		Role:         string(u.Role),
		Company:      u.Company,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func fromUserModel(m *userModel) (*models.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse user id %q: %w", m.ID, err)
	}
	role := models.Role(m.Role)
	if !role.Valid() {
		return nil, fmt.Errorf("user %s has invalid role %q", m.ID, m.Role)
	}
	return &models.User{
		ID:           id,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         role,
		Company:      m.Company,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func toJobModel(j *models.Job) *jobModel {
	reqs := j.Requirements
	if reqs == nil {
		reqs = []string{}
	}
	return &jobModel{
		ID:           j.ID.String(),
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Type:         string(j.Type),
		Salary:       j.Salary,
		Description:  j.Description,
		Requirements: reqs,
		Category:     string(j.Category),
		PostedBy:     j.PostedBy.String(),
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func fromJobModel(m *jobModel) (*models.Job, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse job id %q: %w", m.ID, err)
	}
	postedBy, err := uuid.Parse(m.PostedBy)
	if err != nil {
		return nil, fmt.Errorf("parse job %s poster %q: %w", m.ID, m.PostedBy, err)
	}
	return &models.Job{
		ID:           id,
		Title:        m.Title,
		Company:      m.Company,
		Location:     m.Location,
		Type:         models.JobType(m.Type),
		Salary:       m.Salary,
		Description:  m.Description,
		Requirements: m.Requirements,
		Category:     models.Category(m.Category),
		PostedBy:     postedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func toApplicationModel(a *models.Application) *applicationModel {
	return &applicationModel{
		ID:          a.ID.String(),
		JobID:       a.JobID.String(),
		UserID:      a.UserID.String(),
		CoverLetter: a.CoverLetter,
		Resume:      a.Resume,
		Status:      string(a.Status),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func fromApplicationModel(m *applicationModel) (*models.Application, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse application id %q: %w", m.ID, err)
	}
	jobID, err := uuid.Parse(m.JobID)
	if err != nil {
		return nil, fmt.Errorf("parse application %s job id: %w", m.ID, err)
	}
	userID, err := uuid.Parse(m.UserID)
	if err != nil {
		return nil, fmt.Errorf("parse application %s user id: %w", m.ID, err)
	}
	status, err := models.ParseApplicationStatus(m.Status)
	if err != nil {
		return nil, fmt.Errorf("application %s: %w", m.ID, err)
	}
	return &models.Application{
		ID:          id,
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: m.CoverLetter,
		Resume:      m.Resume,
		Status:      status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}, nil
}
