// Package api exposes projects, tasks and scheduling over HTTP.
//
// Routes:
//
//	GET    /                           health
//	GET    /metrics                    Prometheus metrics
//	POST   /api/auth/register          create an account, returns a token
//	POST   /api/auth/login             returns a token
//	GET    /api/projects               list the caller's projects
//	POST   /api/projects               create a project
//	GET    /api/projects/:id           get a project
//	DELETE /api/projects/:id           delete a project and its tasks
//	GET    /api/projects/:id/tasks     list a project's tasks
//	POST   /api/projects/:id/tasks     add a task
//	POST   /api/projects/:id/schedule  compute a recommended order
//	PUT    /api/tasks/:id              update a task
//	DELETE /api/tasks/:id              delete a task
//
// Everything under /api except the auth routes requires a bearer token.
// Errors are returned as {"message": "..."}.
package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/nishant152030/Project-manager-2/internal/auth"
	"github.com/nishant152030/Project-manager-2/internal/logging"
	"github.com/nishant152030/Project-manager-2/internal/scheduler"
	"github.com/nishant152030/Project-manager-2/internal/state"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "Project Management API"

// Deps are the collaborators the router needs.
type Deps struct {
	Store     state.Store
	Auth      *auth.Service
	Scheduler *scheduler.Scheduler
	Logger    *logging.Logger

	// Registry receives the API metrics and is served on /metrics.
	// Nil means a fresh private registry.
	Registry *prometheus.Registry

	CORSOrigins []string
	// AuthRate and AuthBurst throttle the register and login routes per
	// client IP. A zero AuthRate disables throttling.
	AuthRate  rate.Limit
	AuthBurst int
}

type handler struct {
	store     state.Store
	auth      *auth.Service
	scheduler *scheduler.Scheduler
	log       *logging.Logger
	metrics   *Metrics
	now       func() time.Time
}

// NewRouter builds the gin engine with all middleware and routes.
func NewRouter(d Deps) *gin.Engine {
	reg := d.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	sched := d.Scheduler
	if sched == nil {
		sched = scheduler.New()
		sched.SetDebugLog(d.Logger.Debugf)
	}

	h := &handler{
		store:     d.Store,
		auth:      d.Auth,
		scheduler: sched,
		log:       d.Logger,
		metrics:   NewMetrics(reg),
		now:       time.Now,
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestID())
	r.Use(AccessLog(d.Logger))
	r.Use(h.metrics.Middleware())
	r.Use(CORS(d.CORSOrigins))

	r.GET("/", h.health)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	if d.AuthRate > 0 {
		authGroup.Use(NewIPRateLimiter(d.AuthRate, d.AuthBurst, 10*time.Minute).Middleware())
	}
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)

	secured := api.Group("")
	secured.Use(RequireAuth(d.Auth.Tokens()))

	projects := secured.Group("/projects")
	{
		projects.GET("", h.listProjects)
		projects.POST("", h.createProject)
		projects.GET("/:id", h.getProject)
		projects.DELETE("/:id", h.deleteProject)
		projects.GET("/:id/tasks", h.listTasks)
		projects.POST("/:id/tasks", h.createTask)
		projects.POST("/:id/schedule", h.schedule)
	}

	tasks := secured.Group("/tasks")
	{
		tasks.PUT("/:id", h.updateTask)
		tasks.DELETE("/:id", h.deleteTask)
	}

	return r
}
