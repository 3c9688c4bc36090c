package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-portal/internal/auth"
	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/logging"
	"github.com/justsurfingit/job-portal/internal/services"
	"github.com/justsurfingit/job-portal/internal/store"
)

type ApplicationHandler struct {
	ApplicationService *services.ApplicationService
	Log                *logrus.Logger
	// EnforceOwner requires the session email to match ?email= on the
	// applicant listing. Set when the token middleware guards that route.
	EnforceOwner bool
}

func NewApplicationHandler(s *services.ApplicationService, log *logrus.Logger, enforceOwner bool) *ApplicationHandler {
	return &ApplicationHandler{ApplicationService: s, Log: log, EnforceOwner: enforceOwner}
}

// ListMine is the GET /job-application?email= endpoint
func (h *ApplicationHandler) ListMine(c *gin.Context) {
	email := strings.TrimSpace(c.Query("email"))
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email query parameter is required"})
		return
	}

	if h.EnforceOwner {
		claims, ok := auth.ClaimsFromContext(c)
		if !ok || claims.Email() != email {
			c.JSON(http.StatusForbidden, gin.H{"message": "forbidden access"})
			return
		}
	}

	apps, err := h.ApplicationService.ListForApplicant(c.Request.Context(), email)
	if err != nil {
		logging.FromContext(h.Log, c).WithError(err).Error("Error fetching job applications")
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListForJob is the GET /job-applications/jobs/:job_id endpoint
func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	apps, err := h.ApplicationService.ListForJob(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		logging.FromContext(h.Log, c).WithError(err).Error("Error fetching applications for job")
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// Submit is the POST /job-applications endpoint
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req dtos.ApplicationCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	result, err := h.ApplicationService.Submit(c.Request.Context(), &req)
	if err != nil {
		logging.FromContext(h.Log, c).WithError(err).Error("Failed to submit application")
		internalError(c)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// UpdateStatus is the PATCH /job-applications/:id endpoint
func (h *ApplicationHandler) UpdateStatus(c *gin.Context) {
	var req dtos.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON format: " + err.Error()})
		return
	}

	result, err := h.ApplicationService.UpdateStatus(c.Request.Context(), c.Param("id"), strings.TrimSpace(req.Status))
	if errors.Is(err, store.ErrInvalidID) {
		c.String(http.StatusBadRequest, "Invalid application ID format")
		return
	}
	if err != nil {
		logging.FromContext(h.Log, c).WithError(err).Error("Failed to update application status")
		internalError(c)
		return
	}
	c.JSON(http.StatusOK, result)
}
