package dtos

import (
	"testing"

	"github.com/gin-gonic/gin/binding"

	"github.com/justsurfingit/job-portal/internal/models"
)

func init() {
	if err := RegisterValidators(); err != nil {
		panic(err)
	}
}

func TestJobCreationRequest_Validation(t *testing.T) {
	valid := func() JobCreationRequest {
		return JobCreationRequest{Title: "Engineer", Company: "Acme", HREmail: "a@x.com"}
	}

	tests := []struct {
		name    string
		mutate  func(*JobCreationRequest)
		wantErr bool
	}{
		{"minimal", func(*JobCreationRequest) {}, false},
		{"missing title", func(r *JobCreationRequest) { r.Title = "" }, true},
		{"blank title", func(r *JobCreationRequest) { r.Title = "   " }, true},
		{"bad hr email", func(r *JobCreationRequest) { r.HREmail = "not-an-email" }, true},
		{"bad logo url", func(r *JobCreationRequest) { r.CompanyLogo = "logo" }, true},
		{"logo url", func(r *JobCreationRequest) { r.CompanyLogo = "https://i.ibb.co/logo.png" }, false},
		{"deadline format", func(r *JobCreationRequest) { r.ApplicationDeadline = "12/31/2024" }, true},
		{"deadline", func(r *JobCreationRequest) { r.ApplicationDeadline = "2024-12-31" }, false},
		{"salary inverted", func(r *JobCreationRequest) { r.SalaryRange = &SalaryRange{Min: 100, Max: 50} }, true},
		{"salary", func(r *JobCreationRequest) { r.SalaryRange = &SalaryRange{Min: 50, Max: 100, Currency: "bdt"} }, false},
		{"blank requirement", func(r *JobCreationRequest) { r.Requirements = []string{"Go", " "} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid()
			tt.mutate(&req)
			err := binding.Validator.ValidateStruct(&req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStruct() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestJobCreationRequest_ToModel(t *testing.T) {
	req := JobCreationRequest{
		Title:       "  Engineer ",
		Company:     "Acme",
		HREmail:     " a@x.com",
		SalaryRange: &SalaryRange{Min: 1, Max: 2, Currency: "usd"},
	}
	job := req.ToModel()
	if job.Title != "Engineer" || job.HREmail != "a@x.com" {
		t.Errorf("fields not trimmed: %+v", job)
	}
	if job.SalaryRange.Max != 2 || job.SalaryRange.Currency != "usd" {
		t.Errorf("salary range = %+v", job.SalaryRange)
	}
	if job.ApplicationCount != 0 || job.ID != "" {
		t.Errorf("new job must start without id or count: %+v", job)
	}
}

func TestApplicationCreationRequest(t *testing.T) {
	req := ApplicationCreationRequest{JobID: "65a1f0c2e4b0a1b2c3d4e5f6", ApplicantEmail: "b@y.com"}
	if err := binding.Validator.ValidateStruct(&req); err != nil {
		t.Fatalf("valid request rejected: %v", err)
	}
	if app := req.ToModel(); app.Status != models.ApplicationStatusPending {
		t.Errorf("status = %q, want pending default", app.Status)
	}

	req.Status = "accepted"
	if app := req.ToModel(); app.Status != "accepted" {
		t.Errorf("status = %q, want accepted", app.Status)
	}

	for _, bad := range []ApplicationCreationRequest{
		{ApplicantEmail: "b@y.com"},
		{JobID: "x", ApplicantEmail: "nope"},
		{JobID: "x", ApplicantEmail: "b@y.com", Resume: "drive"},
	} {
		if err := binding.Validator.ValidateStruct(&bad); err == nil {
			t.Errorf("expected %+v to be rejected", bad)
		}
	}
}

func TestStatusUpdateRequest(t *testing.T) {
	if err := binding.Validator.ValidateStruct(&StatusUpdateRequest{Status: "accepted"}); err != nil {
		t.Errorf("valid status rejected: %v", err)
	}
	if err := binding.Validator.ValidateStruct(&StatusUpdateRequest{Status: " "}); err == nil {
		t.Error("blank status accepted")
	}
}
