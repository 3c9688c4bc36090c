package services

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/metrics"
	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/store"
)

type ApplicationService struct {
	Applications store.ApplicationStore
	Jobs         store.JobStore
	Metrics      metrics.Sink
	Log          *logrus.Logger
}

func NewApplicationService(apps store.ApplicationStore, jobs store.JobStore, sink metrics.Sink, log *logrus.Logger) *ApplicationService {
	return &ApplicationService{
		Applications: apps,
		Jobs:         jobs,
		Metrics:      sink,
		Log:          log,
	}
}

// ListForApplicant returns the applicant's applications, each enriched with
// the title, location, company and logo of the job it references.
// Applications whose job cannot be resolved are returned as stored.
func (s *ApplicationService) ListForApplicant(ctx context.Context, email string) ([]models.JobApplication, error) {
	apps, err := s.Applications.ListApplicationsByApplicant(ctx, email)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		return []models.JobApplication{}, nil
	}

	// Several applications can point at the same job; look each one up once.
	jobs := make(map[string]*models.Job)
	for i := range apps {
		jobID := apps[i].JobID
		if jobID == "" {
			continue
		}

		job, seen := jobs[jobID]
		if !seen {
			job, err = s.Jobs.GetJob(ctx, jobID)
			if err != nil {
				if !errors.Is(err, store.ErrNotFound) && !errors.Is(err, store.ErrInvalidID) {
					s.Log.WithError(err).WithField("job_id", jobID).Warn("enrichment lookup failed")
				}
				job = nil
			}
			jobs[jobID] = job
		}
		if job != nil {
			apps[i].Enrich(job)
		}
	}
	return apps, nil
}

// ListForJob returns every application submitted for jobID.
func (s *ApplicationService) ListForJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	apps, err := s.Applications.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if apps == nil {
		apps = []models.JobApplication{}
	}
	return apps, nil
}

// Submit stores the application and then bumps the referenced job's
// applicationCount. The application is kept even if the increment fails.
func (s *ApplicationService) Submit(ctx context.Context, req *dtos.ApplicationCreationRequest) (models.InsertResult, error) {
	app := req.ToModel()
	app.CreatedAt = time.Now().UTC()

	id, err := s.Applications.InsertApplication(ctx, app)
	if err != nil {
		return models.InsertResult{}, err
	}
	s.Metrics.ApplicationSubmitted()

	if err := s.Jobs.IncrementApplicationCount(ctx, app.JobID); err != nil {
		s.Metrics.ApplicationCountFailed()
		s.Log.WithError(err).WithFields(logrus.Fields{
			"application_id": id,
			"job_id":         app.JobID,
		}).Warn("applicationCount not incremented")
	}

	return models.InsertResult{Acknowledged: true, InsertedID: id}, nil
}

// UpdateStatus overwrites the status of application id and nothing else.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id, status string) (models.UpdateResult, error) {
	return s.Applications.UpdateApplicationStatus(ctx, id, status)
}
