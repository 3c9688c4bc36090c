// Package store defines the persistence contract for jobs and job
// applications. Implementations live in the mongo and postgres subpackages.
package store

import (
	"context"
	"errors"

	"github.com/justsurfingit/job-portal/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the given id.
	ErrNotFound = errors.New("store: not found")
	// ErrInvalidID is returned when an id is not well-formed for the backend.
	ErrInvalidID = errors.New("store: invalid id")
)

// JobStore is the "jobs" collection.
type JobStore interface {
	// ListJobs returns jobs owned by hrEmail, or every job when hrEmail is empty.
	ListJobs(ctx context.Context, hrEmail string) ([]models.Job, error)
	GetJob(ctx context.Context, id string) (*models.Job, error)
	InsertJob(ctx context.Context, job *models.Job) (string, error)
	// IncrementApplicationCount atomically adds one to the job's counter.
	IncrementApplicationCount(ctx context.Context, id string) error
}

// ApplicationStore is the "job_applications" collection.
type ApplicationStore interface {
	ListApplicationsByApplicant(ctx context.Context, email string) ([]models.JobApplication, error)
	ListApplicationsByJob(ctx context.Context, jobID string) ([]models.JobApplication, error)
	InsertApplication(ctx context.Context, app *models.JobApplication) (string, error)
	UpdateApplicationStatus(ctx context.Context, id, status string) (models.UpdateResult, error)
}

// Store bundles both collections with a liveness check.
type Store interface {
	JobStore
	ApplicationStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
