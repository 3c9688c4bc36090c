package models

import (
	"time"
)

// Application statuses used by the portal UI. Status is free-form; these are
// the values the client sends.
const (
	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

type SalaryRange struct {
	Min      int    `json:"min,omitempty" bson:"min,omitempty"`
	Max      int    `json:"max,omitempty" bson:"max,omitempty"`
	Currency string `json:"currency,omitempty" bson:"currency,omitempty"`
}

type Job struct {
	ID string `gorm:"primaryKey;type:uuid" json:"_id"`

	Title       string `gorm:"not null" json:"title"`
	Location    string `json:"location,omitempty"`
	Company     string `gorm:"not null" json:"company"`
	CompanyLogo string `json:"company_logo,omitempty"`
	// Owner of the posting
	HREmail string `gorm:"column:hr_email;index;not null" json:"hr_email"`
	HRName  string `gorm:"column:hr_name" json:"hr_name,omitempty"`

	JobType             string      `json:"jobType,omitempty"`
	Category            string      `json:"category,omitempty"`
	ApplicationDeadline string      `json:"applicationDeadline,omitempty"`
	SalaryRange         SalaryRange `gorm:"embedded;embeddedPrefix:salary_" json:"salaryRange"`
	Description         string      `gorm:"type:text" json:"description,omitempty"`
	Requirements        []string    `gorm:"serializer:json;type:text" json:"requirements,omitempty"`
	Responsibilities    []string    `gorm:"serializer:json;type:text" json:"responsibilities,omitempty"`
	Status              string      `json:"status,omitempty"`

	ApplicationCount int `gorm:"not null;default:0" json:"applicationCount"`

	CreatedAt time.Time `json:"created_at"`
}

type JobApplication struct {
	ID string `gorm:"primaryKey;type:uuid" json:"_id"`

	// JobID is a plain string reference, not a foreign key.
	JobID          string `gorm:"index;not null" json:"job_id"`
	ApplicantEmail string `gorm:"index;not null" json:"applicant_email"`
	Status         string `json:"status"`
	LinkedIn       string `gorm:"column:linkedin" json:"linkedIn,omitempty"`
	GitHub         string `gorm:"column:github" json:"github,omitempty"`
	Resume         string `json:"resume,omitempty"`

	CreatedAt time.Time `json:"created_at"`

	// Enrichment copied from the referenced job. Never persisted.
	Title       string `gorm:"-" json:"title,omitempty"`
	Location    string `gorm:"-" json:"location,omitempty"`
	Company     string `gorm:"-" json:"company,omitempty"`
	CompanyLogo string `gorm:"-" json:"company_logo,omitempty"`
}

// Enrich copies the display fields of job onto the application.
func (a *JobApplication) Enrich(job *Job) {
	a.Title = job.Title
	a.Location = job.Location
	a.Company = job.Company
	a.CompanyLogo = job.CompanyLogo
}

// InsertResult acknowledges a created document.
type InsertResult struct {
	Acknowledged bool   `json:"acknowledged"`
	InsertedID   string `json:"insertedId"`
}

// UpdateResult acknowledges an update.
type UpdateResult struct {
	Acknowledged  bool  `json:"acknowledged"`
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}
