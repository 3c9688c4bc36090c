package dtos

import (
	"strings"

	"github.com/justsurfingit/job-portal/internal/models"
)

type SalaryRange struct {
	Min      int    `json:"min" binding:"gte=0"`
	Max      int    `json:"max" binding:"gte=0,gtefield=Min"`
	Currency string `json:"currency" binding:"omitempty,max=8"`
}

type JobCreationRequest struct {
	Title   string `json:"title" binding:"required,notblank,max=200"`
	Company string `json:"company" binding:"required,notblank,max=200"`
	HREmail string `json:"hr_email" binding:"required,email"`

	// Optional Fields
	Location            string       `json:"location" binding:"max=200"`
	CompanyLogo         string       `json:"company_logo" binding:"omitempty,url"`
	HRName              string       `json:"hr_name"`
	JobType             string       `json:"jobType"`
	Category            string       `json:"category"`
	ApplicationDeadline string       `json:"applicationDeadline" binding:"omitempty,datetime=2006-01-02"`
	SalaryRange         *SalaryRange `json:"salaryRange"`
	Description         string       `json:"description"`
	Requirements        []string     `json:"requirements" binding:"omitempty,dive,notblank"`
	Responsibilities    []string     `json:"responsibilities" binding:"omitempty,dive,notblank"`
	Status              string       `json:"status"`
}

// ToModel trims the request into a Job ready for insertion.
func (r *JobCreationRequest) ToModel() *models.Job {
	job := &models.Job{
		Title:               strings.TrimSpace(r.Title),
		Location:            strings.TrimSpace(r.Location),
		Company:             strings.TrimSpace(r.Company),
		CompanyLogo:         r.CompanyLogo,
		HREmail:             strings.TrimSpace(r.HREmail),
		HRName:              strings.TrimSpace(r.HRName),
		JobType:             r.JobType,
		Category:            r.Category,
		ApplicationDeadline: r.ApplicationDeadline,
		Description:         r.Description,
		Requirements:        r.Requirements,
		Responsibilities:    r.Responsibilities,
		Status:              r.Status,
	}
	if r.SalaryRange != nil {
		job.SalaryRange = models.SalaryRange{
			Min:      r.SalaryRange.Min,
			Max:      r.SalaryRange.Max,
			Currency: r.SalaryRange.Currency,
		}
	}
	return job
}
