package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/minutetrack/minute-tracker/pkg/config"
)

// Router holds all handlers
type Router struct {
	cfg            *config.Config
	meetingHandler *Meeting
	actionHandler  *Action
}

// NewRouter creates a new router with all handlers
func NewRouter(cfg *config.Config, meetingHandler *Meeting, actionHandler *Action) *Router {
	return &Router{
		cfg:            cfg,
		meetingHandler: meetingHandler,
		actionHandler:  actionHandler,
	}
}

// Setup configures all application routes
func (rt *Router) Setup(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", rt.healthCheck)

	// API v1 group
	v1 := e.Group("/v1")

	rt.setupMeetingRoutes(v1)
	rt.setupActionRoutes(v1)
}

// setupMeetingRoutes configures ingestion and meeting routes
func (rt *Router) setupMeetingRoutes(g *echo.Group) {
	meetings := g.Group("/meetings")
	meetings.POST("", rt.meetingHandler.Submit)
	meetings.GET("", rt.meetingHandler.List)
	meetings.GET("/:filename", rt.meetingHandler.Get)
	meetings.GET("/:filename/export", rt.meetingHandler.Export)
	meetings.POST("/:filename/reprocess", rt.meetingHandler.Reprocess)

	jobs := g.Group("/jobs")
	jobs.GET("/:id", rt.meetingHandler.GetJob)
	jobs.POST("/:id/cancel", rt.meetingHandler.CancelJob)
}

// setupActionRoutes configures action lifecycle routes
func (rt *Router) setupActionRoutes(g *echo.Group) {
	actions := g.Group("/actions")
	actions.GET("", rt.actionHandler.List)
	actions.GET("/overdue", rt.actionHandler.Overdue)
	actions.GET("/stats", rt.actionHandler.Stats)
	actions.POST("/:id/complete", rt.actionHandler.Complete)
	actions.GET("/:id/history", rt.actionHandler.History)
}

// healthCheck returns health status
func (rt *Router) healthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"environment": rt.cfg.Server.Environment,
	})
}
