package routes

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/justsurfingit/job-portal/internal/auth"
	"github.com/justsurfingit/job-portal/internal/config"
	"github.com/justsurfingit/job-portal/internal/dtos"
	"github.com/justsurfingit/job-portal/internal/handlers"
	"github.com/justsurfingit/job-portal/internal/logging"
	"github.com/justsurfingit/job-portal/internal/metrics"
	"github.com/justsurfingit/job-portal/internal/services"
	"github.com/justsurfingit/job-portal/internal/store"
)

// Deps are the collaborators the router wires into handlers.
type Deps struct {
	Config  config.Config
	Store   store.Store
	Log     *logrus.Logger
	Metrics metrics.Sink
	// Gatherer backs /metrics when Config.MetricsEnabled is set.
	Gatherer prometheus.Gatherer
}

// New builds the gin engine with every route of the portal.
func New(d Deps) (*gin.Engine, error) {
	if err := dtos.RegisterValidators(); err != nil {
		return nil, err
	}
	if d.Metrics == nil {
		d.Metrics = metrics.Noop{}
	}
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}

	cfg := d.Config
	corsCfg := corsConfig(cfg)
	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("cors: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logging.RequestID())
	r.Use(logging.Middleware(d.Log))
	r.Use(metrics.Middleware(d.Metrics))
	r.Use(cors.New(corsCfg))
	r.Use(requestTimeout(cfg.DBOpTimeout))

	jobService := services.NewJobService(d.Store, d.Metrics)
	applicationService := services.NewApplicationService(d.Store, d.Store, d.Metrics, d.Log)

	jobHandler := handlers.NewJobHandler(jobService, d.Log)
	applicationHandler := handlers.NewApplicationHandler(applicationService, d.Log, cfg.AuthEnabled)

	r.GET("/", handlers.Home)
	r.GET("/health", handlers.HealthCheck(d.Store))
	if cfg.MetricsEnabled && d.Gatherer != nil {
		r.GET(cfg.MetricsPath, metrics.Handler(d.Gatherer))
	}

	// Session routes
	var tokens *auth.TokenManager
	if cfg.AuthEnabled {
		tokens = auth.NewTokenManager(cfg.AccessTokenSecret, cfg.TokenTTL)
		authHandler := handlers.NewAuthHandler(tokens, cfg.CookieSecure, d.Log)
		r.POST("/jwt", authHandler.IssueToken)
		r.POST("/logout", authHandler.Logout)
	}

	// Job routes
	r.GET("/jobs", jobHandler.ListJobs)
	r.GET("/jobs/:id", jobHandler.GetJob)
	r.POST("/jobs", jobHandler.CreateJob)

	// Job application routes
	mine := []gin.HandlerFunc{applicationHandler.ListMine}
	if cfg.AuthEnabled {
		mine = append([]gin.HandlerFunc{auth.RequireToken(tokens, d.Log)}, mine...)
	}
	r.GET("/job-application", mine...)
	r.GET("/job-applications/jobs/:job_id", applicationHandler.ListForJob)
	r.POST("/job-applications", applicationHandler.Submit)
	r.PATCH("/job-applications/:id", applicationHandler.UpdateStatus)

	return r, nil
}

// corsConfig allows the configured origins with credentials when sessions
// are in use, and any origin otherwise.
func corsConfig(cfg config.Config) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "X-Request-ID"}
	c.AllowMethods = []string{"GET", "POST", "PATCH", "OPTIONS"}
	if cfg.AuthEnabled {
		c.AllowOrigins = cfg.CORSOrigins
		c.AllowCredentials = true
	} else {
		c.AllowAllOrigins = true
	}
	return c
}

// requestTimeout bounds the store work of each request.
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
