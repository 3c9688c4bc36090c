// Package postgres implements store.Store with GORM over PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/store"
)

type Store struct {
	DB *gorm.DB
}

var _ store.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// Migrate creates or updates the jobs and job_applications tables.
func (s *Store) Migrate() error {
	return s.DB.AutoMigrate(&models.Job{}, &models.JobApplication{})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *Store) Close(context.Context) error {
	sqlDB, err := s.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) ListJobs(ctx context.Context, hrEmail string) ([]models.Job, error) {
	jobs := []models.Job{}
	q := s.DB.WithContext(ctx).Order("created_at")
	if hrEmail != "" {
		q = q.Where("hr_email = ?", hrEmail)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("find jobs: %w", err)
	}
	return jobs, nil
}

func (s *Store) GetJob(ctx context.Context, id string) (*models.Job, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	var job models.Job
	err := s.DB.WithContext(ctx).First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find job %s: %w", id, err)
	}
	return &job, nil
}

func (s *Store) InsertJob(ctx context.Context, job *models.Job) (string, error) {
	job.ID = uuid.NewString()
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return "", fmt.Errorf("insert job: %w", err)
	}
	return job.ID, nil
}

// IncrementApplicationCount adds one to application_count in a single UPDATE.
func (s *Store) IncrementApplicationCount(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	res := s.DB.WithContext(ctx).
		Model(&models.Job{}).
		Where("id = ?", id).
		UpdateColumn("application_count", gorm.Expr("application_count + ?", 1))
	if res.Error != nil {
		return fmt.Errorf("increment application_count for job %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListApplicationsByApplicant(ctx context.Context, email string) ([]models.JobApplication, error) {
	return s.findApplications(ctx, "applicant_email = ?", email)
}

func (s *Store) ListApplicationsByJob(ctx context.Context, jobID string) ([]models.JobApplication, error) {
	return s.findApplications(ctx, "job_id = ?", jobID)
}

func (s *Store) findApplications(ctx context.Context, query string, arg string) ([]models.JobApplication, error) {
	apps := []models.JobApplication{}
	if err := s.DB.WithContext(ctx).Where(query, arg).Order("created_at").Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("find applications: %w", err)
	}
	return apps, nil
}

func (s *Store) InsertApplication(ctx context.Context, app *models.JobApplication) (string, error) {
	app.ID = uuid.NewString()
	if app.CreatedAt.IsZero() {
		app.CreatedAt = time.Now().UTC()
	}
	if err := s.DB.WithContext(ctx).Create(app).Error; err != nil {
		return "", fmt.Errorf("insert application: %w", err)
	}
	return app.ID, nil
}

func (s *Store) UpdateApplicationStatus(ctx context.Context, id, status string) (models.UpdateResult, error) {
	if err := checkID(id); err != nil {
		return models.UpdateResult{}, err
	}

	res := s.DB.WithContext(ctx).
		Model(&models.JobApplication{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.UpdateResult{}, fmt.Errorf("update application %s: %w", id, res.Error)
	}
	return models.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.RowsAffected,
		ModifiedCount: res.RowsAffected,
	}, nil
}

func checkID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return store.ErrInvalidID
	}
	return nil
}
