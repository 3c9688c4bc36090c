package mongo

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/justsurfingit/job-portal/internal/models"
	"github.com/justsurfingit/job-portal/internal/store"
)

const (
	jobsCollection         = "jobs"
	applicationsCollection = "job_applications"
)

type jobDocument struct {
	ID primitive.ObjectID `bson:"_id,omitempty"`

	Title       string `bson:"title"`
	Location    string `bson:"location,omitempty"`
	Company     string `bson:"company"`
	CompanyLogo string `bson:"company_logo,omitempty"`
	HREmail     string `bson:"hr_email"`
	HRName      string `bson:"hr_name,omitempty"`

	JobType             string          `bson:"jobType,omitempty"`
	Category            string          `bson:"category,omitempty"`
	ApplicationDeadline string          `bson:"applicationDeadline,omitempty"`
	SalaryRange         *salaryDocument `bson:"salaryRange,omitempty"`
	Description         string          `bson:"description,omitempty"`
	Requirements        []string        `bson:"requirements,omitempty"`
	Responsibilities    []string        `bson:"responsibilities,omitempty"`
	Status              string          `bson:"status,omitempty"`

	ApplicationCount int       `bson:"applicationCount,omitempty"`
	CreatedAt        time.Time `bson:"created_at,omitempty"`
}

type salaryDocument struct {
	Min      amount `bson:"min,omitempty"`
	Max      amount `bson:"max,omitempty"`
	Currency string `bson:"currency,omitempty"`
}

// amount is a salary bound. Form-posted jobs store bounds as strings such as
// "40000", so any numeric or string value is accepted; unparsable text reads as 0.
type amount int

func (a *amount) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	v := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32, bsontype.Int64:
		*a = amount(v.AsInt64())
	case bsontype.Double:
		*a = amount(v.Double())
	case bsontype.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.StringValue()), 64)
		if err != nil {
			f = 0
		}
		*a = amount(f)
	case bsontype.Null, bsontype.Undefined:
		*a = 0
	default:
		return fmt.Errorf("cannot decode %s into a salary amount", t)
	}
	return nil
}

func newSalaryDocument(r models.SalaryRange) *salaryDocument {
	if r == (models.SalaryRange{}) {
		return nil
	}
	return &salaryDocument{Min: amount(r.Min), Max: amount(r.Max), Currency: r.Currency}
}

func (d *salaryDocument) model() models.SalaryRange {
	if d == nil {
		return models.SalaryRange{}
	}
	return models.SalaryRange{Min: int(d.Min), Max: int(d.Max), Currency: d.Currency}
}

type applicationDocument struct {
	ID primitive.ObjectID `bson:"_id,omitempty"`

	JobID          string    `bson:"job_id"`
	ApplicantEmail string    `bson:"applicant_email"`
	Status         string    `bson:"status,omitempty"`
	LinkedIn       string    `bson:"linkedIn,omitempty"`
	GitHub         string    `bson:"github,omitempty"`
	Resume         string    `bson:"resume,omitempty"`
	CreatedAt      time.Time `bson:"created_at,omitempty"`
}

// documentID returns the hex _id of a raw document, or "" when it has none.
func documentID(raw bson.Raw) string {
	if oid, ok := raw.Lookup("_id").ObjectIDOK(); ok {
		return oid.Hex()
	}
	return ""
}

// parseID converts a hex string into an ObjectID.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, store.ErrInvalidID
	}
	return oid, nil
}

func newJobDocument(j *models.Job) jobDocument {
	return jobDocument{
		Title:               j.Title,
		Location:            j.Location,
		Company:             j.Company,
		CompanyLogo:         j.CompanyLogo,
		HREmail:             j.HREmail,
		HRName:              j.HRName,
		JobType:             j.JobType,
		Category:            j.Category,
		ApplicationDeadline: j.ApplicationDeadline,
		SalaryRange:         newSalaryDocument(j.SalaryRange),
		Description:         j.Description,
		Requirements:        j.Requirements,
		Responsibilities:    j.Responsibilities,
		Status:              j.Status,
		ApplicationCount:    j.ApplicationCount,
		CreatedAt:           j.CreatedAt,
	}
}

func (d jobDocument) model() models.Job {
	return models.Job{
		ID:                  d.ID.Hex(),
		Title:               d.Title,
		Location:            d.Location,
		Company:             d.Company,
		CompanyLogo:         d.CompanyLogo,
		HREmail:             d.HREmail,
		HRName:              d.HRName,
		JobType:             d.JobType,
		Category:            d.Category,
		ApplicationDeadline: d.ApplicationDeadline,
		SalaryRange:         d.SalaryRange.model(),
		Description:         d.Description,
		Requirements:        d.Requirements,
		Responsibilities:    d.Responsibilities,
		Status:              d.Status,
		ApplicationCount:    d.ApplicationCount,
		CreatedAt:           d.CreatedAt,
	}
}

func newApplicationDocument(a *models.JobApplication) applicationDocument {
	return applicationDocument{
		JobID:          a.JobID,
		ApplicantEmail: a.ApplicantEmail,
		Status:         a.Status,
		LinkedIn:       a.LinkedIn,
		GitHub:         a.GitHub,
		Resume:         a.Resume,
		CreatedAt:      a.CreatedAt,
	}
}

func (d applicationDocument) model() models.JobApplication {
	return models.JobApplication{
		ID:             d.ID.Hex(),
		JobID:          d.JobID,
		ApplicantEmail: d.ApplicantEmail,
		Status:         d.Status,
		LinkedIn:       d.LinkedIn,
		GitHub:         d.GitHub,
		Resume:         d.Resume,
		CreatedAt:      d.CreatedAt,
	}
}
