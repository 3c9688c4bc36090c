package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/logging"
	"github.com/justsurfingit/job-portal/internal/services"
	"github.com/justsurfingit/job-portal/internal/store"
)

type JobHandler struct {
	JobService *services.JobService
	Log        *logrus.Logger
}

func NewJobHandler(j *services.JobService, log *logrus.Logger) *JobHandler {
	return &JobHandler{JobService: j, Log: log}
}

// ListJobs is the GET /jobs endpoint. ?email= restricts to one HR's postings.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.JobService.ListJobs(c.Request.Context(), c.Query("email"))
	if err != nil {
		logging.FromContext(h.Log, c).WithError(err).Error("Error fetching jobs")
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// GetJob is the GET /jobs/:id endpoint
func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.JobService.GetJob(c.Request.Context(), c.Param("id"))
	switch {
	case errors.Is(err, store.ErrInvalidID):
		c.String(http.StatusBadRequest, "Invalid job ID format")
		return
	case errors.Is(err, store.ErrNotFound):
		c.String(http.StatusNotFound, "Job not found")
		return
	case err != nil:
		logging.FromContext(h.Log, c).WithError(err).Error("Error fetching job by ID")
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, job)
}

// CreateJob is the POST /jobs endpoint
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	result, err := h.JobService.CreateJob(c.Request.Context(), &req)
	if err != nil {
		logging.FromContext(h.Log, c).WithError(err).Error("Failed to create job")
		internalError(c)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func internalError(c *gin.Context) {
	c.String(http.StatusInternalServerError, "Internal Server Error")
}
