package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// scanString extracts a string from a driver value for the enum Scan methods.
func scanString(typeName string, value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", typeName)
	}
}

// --- Role Enum ---
type Role string

const (
	RoleJobSeeker Role = "jobseeker"
	RoleEmployer  Role = "employer"
)

func (r Role) Valid() bool {
	return r == RoleJobSeeker || r == RoleEmployer
}

// Scan implements the sql.Scanner interface for Role
func (r *Role) Scan(value interface{}) error {
	strVal, err := scanString("Role", value)
	if err != nil {
		return err
	}
	if !Role(strVal).Valid() {
		return fmt.Errorf("invalid Role value: %s", strVal)
	}
	*r = Role(strVal)
	return nil
}

// Value implements the driver.Valuer interface for Role
func (r Role) Value() (driver.Value, error) {
	return string(r), nil
}

// --- Job Type Enum ---
type JobType string

const (
	JobTypeFullTime   JobType = "Full-time"
	JobTypePartTime   JobType = "Part-time"
	JobTypeContract   JobType = "Contract"
	JobTypeFreelance  JobType = "Freelance"
	JobTypeInternship JobType = "Internship"
)

var JobTypes = []JobType{JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeFreelance, JobTypeInternship}

func (t JobType) Valid() bool {
	for _, v := range JobTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Scan implements the sql.Scanner interface for JobType
func (t *JobType) Scan(value interface{}) error {
	strVal, err := scanString("JobType", value)
	if err != nil {
		return err
	}
	if !JobType(strVal).Valid() {
		return fmt.Errorf("invalid JobType value: %s", strVal)
	}
	*t = JobType(strVal)
	return nil
}

// Value implements the driver.Valuer interface for JobType
func (t JobType) Value() (driver.Value, error) {
	return string(t), nil
}

// --- Job Category Enum ---
type Category string

const (
	CategoryDevelopment     Category = "Development"
	CategoryDesign          Category = "Design"
	CategoryMarketing       Category = "Marketing"
	CategorySales           Category = "Sales"
	CategoryBusiness        Category = "Business"
	CategoryCustomerSupport Category = "Customer Support"
)

var Categories = []Category{
	CategoryDevelopment, CategoryDesign, CategoryMarketing,
	CategorySales, CategoryBusiness, CategoryCustomerSupport,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if v == c {
			return true
		}
	}
	return false
}

// Scan implements the sql.Scanner interface for Category
func (c *Category) Scan(value interface{}) error {
	strVal, err := scanString("Category", value)
	if err != nil {
		return err
	}
	if !Category(strVal).Valid() {
		return fmt.Errorf("invalid Category value: %s", strVal)
	}
	*c = Category(strVal)
	return nil
}

// Value implements the driver.Valuer interface for Category
func (c Category) Value() (driver.Value, error) {
	return string(c), nil
}

// --- Application Status Enum ---
type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every status in reporting order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationStatusPending, ApplicationStatusReviewed,
	ApplicationStatusAccepted, ApplicationStatusRejected,
}

// ParseApplicationStatus converts caller input into an ApplicationStatus, rejecting anything outside the closed set.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	status := ApplicationStatus(s)
	if !status.Valid() {
		return "", fmt.Errorf("invalid application status %q", s)
	}
	return status, nil
}

func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed, ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Scan implements the sql.Scanner interface for ApplicationStatus
func (s *ApplicationStatus) Scan(value interface{}) error {
	strVal, err := scanString("ApplicationStatus", value)
	if err != nil {
		return err
	}
	status, err := ParseApplicationStatus(strVal)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Value implements the driver.Valuer interface for ApplicationStatus
func (s ApplicationStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// --- Entities ---

// User is a registered identity. Company is set only for employers.
type User struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	Role         Role      `db:"role"`
	Company      string    `db:"company"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Actor returns the authenticated view of the user.
func (u *User) Actor() Actor {
	return Actor{ID: u.ID, Role: u.Role, Company: u.Company}
}

// Actor is the authenticated identity performing an action.
type Actor struct {
	ID      uuid.UUID
	Role    Role
	Company string
}

type Job struct {
	ID           uuid.UUID `db:"id"`
	Title        string    `db:"title"`
	Company      string    `db:"company"`
	Location     string    `db:"location"`
	Type         JobType   `db:"type"`
	Salary       string    `db:"salary"`
	Description  string    `db:"description"`
	Requirements []string  `db:"requirements"`
	Category     Category  `db:"category"`
	PostedBy     uuid.UUID `db:"posted_by"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Application struct {
	ID          uuid.UUID         `db:"id"`
	JobID       uuid.UUID         `db:"job_id"`
	UserID      uuid.UUID         `db:"user_id"`
	CoverLetter string            `db:"cover_letter"`
	Resume      string            `db:"resume"`
	Status      ApplicationStatus `db:"status"`
	CreatedAt   time.Time         `db:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at"`
}

// StatusCount is one row of an application statistics result.
type StatusCount struct {
	Status ApplicationStatus
	Count  int64
}

// --- Read projections ---

// UserRef is the subset of a User shown next to jobs and applications.
type UserRef struct {
	ID      uuid.UUID
	Name    string
	Email   string
	Company string
}

// JobRef is the subset of a Job shown next to applications.
type JobRef struct {
	ID       uuid.UUID
	Title    string
	Company  string
	Location string
}

// JobDetail is a Job with its poster resolved.
type JobDetail struct {
	Job
	Poster *UserRef
}

// ApplicationDetail is an Application with its job and applicant resolved where requested.
type ApplicationDetail struct {
	Application
	Job       *JobRef
	Applicant *UserRef
}
