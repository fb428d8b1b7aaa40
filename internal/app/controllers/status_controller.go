package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yigit/gradebook/internal/app/models/dto"
)

// StorePinger reports whether the store is reachable
type StorePinger interface {
	Ping(ctx context.Context) bool
}

// StatusController serves the health and root summary endpoints
type StatusController struct {
	store       StorePinger
	frontendURL string
	pingTimeout time.Duration
}

// NewStatusController creates a new StatusController. A ping that takes
// longer than pingTimeout counts as the store being down.
func NewStatusController(store StorePinger, frontendURL string, pingTimeout time.Duration) *StatusController {
	return &StatusController{
		store:       store,
		frontendURL: frontendURL,
		pingTimeout: pingTimeout,
	}
}

func (c *StatusController) ping(ctx *gin.Context) bool {
	pctx := ctx.Request.Context()
	if c.pingTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(pctx, c.pingTimeout)
		defer cancel()
	}
	return c.store.Ping(pctx)
}

// Health reports liveness and store connectivity. It always answers 200.
func (c *StatusController) Health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.HealthResponse{
		Status: "ok",
		DB:     c.ping(ctx),
	})
}

// Root summarizes the service and the endpoints it serves
func (c *StatusController) Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.StatusResponse{
		Status:   "ok",
		UsingDB:  c.ping(ctx),
		Frontend: c.frontendURL,
		Endpoints: dto.EndpointMap{
			Students: "/students",
			Courses:  "/courses",
			Grades:   "/grades",
			Health:   "/health",
		},
	})
}
