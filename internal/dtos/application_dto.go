package dtos

import (
	"strings"

	"github.com/justsurfingit/job-portal/internal/models"
)

type ApplicationCreationRequest struct {
	JobID          string `json:"job_id" binding:"required,notblank"`
	ApplicantEmail string `json:"applicant_email" binding:"required,email"`

	// Optional Fields
	Status   string `json:"status"` // Defaults to "pending" if empty
	LinkedIn string `json:"linkedIn" binding:"omitempty,url"`
	GitHub   string `json:"github" binding:"omitempty,url"`
	Resume   string `json:"resume" binding:"omitempty,url"`
}

func (r *ApplicationCreationRequest) ToModel() *models.JobApplication {
	status := strings.TrimSpace(r.Status)
	if status == "" {
		status = models.ApplicationStatusPending
	}
	return &models.JobApplication{
		JobID:          strings.TrimSpace(r.JobID),
		ApplicantEmail: strings.TrimSpace(r.ApplicantEmail),
		Status:         status,
		LinkedIn:       r.LinkedIn,
		GitHub:         r.GitHub,
		Resume:         r.Resume,
	}
}

type StatusUpdateRequest struct {
	Status string `json:"status" binding:"required,notblank"`
}
