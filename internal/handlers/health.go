package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nats-io/nats.go"

	"github.com/rydio/api/internal/database"
)

const serviceName = "rydio-reco-api"
const serviceVersion = "0.1.0"

// HealthHandler reports service and dependency health.
type HealthHandler struct {
	db   *database.Postgres
	rdb  *database.Redis
	nats *nats.Conn
}

func NewHealthHandler(db *database.Postgres, rdb *database.Redis, natsConn *nats.Conn) *HealthHandler {
	return &HealthHandler{db: db, rdb: rdb, nats: natsConn}
}

// HealthResponse is the deep health payload.
type HealthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Dependencies map[string]string `json:"dependencies"`
}

// Health returns basic liveness.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": serviceName,
		"version": serviceVersion,
	})
}

// DeepHealth checks postgres, redis and NATS. NATS is best-effort
// (catalog invalidation only), so it degrades the status without
// failing it.
func (h *HealthHandler) DeepHealth(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	deps := make(map[string]string)
	allHealthy := true

	if h.db != nil {
		if err := h.db.Pool().Ping(ctx); err != nil {
			deps["database"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			deps["database"] = "healthy"
		}
	} else {
		deps["database"] = "not configured"
	}

	if h.rdb != nil {
		if err := h.rdb.Ping(ctx); err != nil {
			deps["redis"] = "unhealthy: " + err.Error()
			allHealthy = false
		} else {
			deps["redis"] = "healthy"
		}
	} else {
		deps["redis"] = "not configured"
	}

	if h.nats != nil {
		if h.nats.IsConnected() {
			deps["nats"] = "healthy"
		} else {
			deps["nats"] = "disconnected"
		}
	} else {
		deps["nats"] = "not configured"
	}

	status := "healthy"
	httpStatus := http.StatusOK
	if !allHealthy {
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, HealthResponse{
		Status:       status,
		Service:      serviceName,
		Version:      serviceVersion,
		Dependencies: deps,
	})
}
