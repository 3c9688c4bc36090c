package services

import (
	"context"
	"time"

	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/metrics"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/store"
)

type JobService struct {
	Jobs    store.JobStore
	Metrics metrics.Sink
}

func NewJobService(jobs store.JobStore, sink metrics.Sink) *JobService {
	return &JobService{
		Jobs:    jobs,
		Metrics: sink,
	}
}

// ListJobs returns the jobs posted by hrEmail, or every job when it is empty.
func (s *JobService) ListJobs(ctx context.Context, hrEmail string) ([]models.Job, error) {
	jobs, err := s.Jobs.ListJobs(ctx, hrEmail)
	if err != nil {
		return nil, err
	}
	if jobs == nil {
		jobs = []models.Job{}
	}
	return jobs, nil
}

func (s *JobService) GetJob(ctx context.Context, id string) (*models.Job, error) {
	return s.Jobs.GetJob(ctx, id)
}

func (s *JobService) CreateJob(ctx context.Context, req *dtos.JobCreationRequest) (models.InsertResult, error) {
	job := req.ToModel()
	job.CreatedAt = time.Now().UTC()

	id, err := s.Jobs.InsertJob(ctx, job)
	if err != nil {
		return models.InsertResult{}, err
	}
	s.Metrics.JobCreated()
	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}
