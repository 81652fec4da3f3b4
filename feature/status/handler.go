package status

import (
	"errors"

	"card-catalog/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for operational status.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the status routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/status")
	group.Get("/", h.HandleStatus)
	group.Get("/bucket", h.HandleBucket)
	group.Get("/breakers", h.HandleBreakers)
	group.Post("/breakers/reset", h.HandleResetBreaker)
}

// HandleStatus reports the combined status.
// @Summary Service Status
// @Description Cache bucket state, circuit breaker snapshots and search index health.
// @Tags status
// @Produce json
// @Success 200 {object} Report
// @Router /status [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	return c.JSON(h.service.Report(c.Context()))
}

// HandleBucket checks and optionally creates the cache bucket.
// @Summary Check Cache Bucket
// @Description Checks that the cache bucket exists. With fix=true a missing bucket is created.
// @Tags status
// @Produce json
// @Param fix query boolean false "Create the bucket when missing"
// @Success 200 {object} BucketReport
// @Failure 404 {object} map[string]string "Cache backend has no bucket"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /status/bucket [get]
func (h *Handler) HandleBucket(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	if !h.service.HasBucket() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "cache backend has no bucket", "code": "NO_BUCKET"})
	}

	report, err := h.service.CheckBucket(c.Context())
	if err != nil {
		l.Error("Bucket check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "code": "INTERNAL"})
	}

	if !report.Exists && c.Query("fix") == "true" {
		l.Warn("Cache bucket missing, creating it", zap.String("bucket", report.Bucket))
		report, err = h.service.FixBucket(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   "Failed to create bucket",
				"details": err.Error(),
				"code":    "INTERNAL",
			})
		}
	}
	return c.JSON(report)
}

// HandleBreakers lists the circuit breakers.
// @Summary List Circuit Breakers
// @Tags status
// @Produce json
// @Success 200 {array} resilience.Snapshot
// @Router /status/breakers [get]
func (h *Handler) HandleBreakers(c *fiber.Ctx) error {
	return c.JSON(h.service.Breakers())
}

// HandleResetBreaker forces a breaker closed.
// @Summary Reset Circuit Breaker
// @Description Closes the breaker of one (service, operation) pair and zeroes its failure count.
// @Tags status
// @Produce json
// @Param service query string true "Service (provider name, object-storage, search, ...)"
// @Param operation query string true "Operation"
// @Success 200 {object} resilience.Snapshot
// @Failure 400 {object} map[string]string "Missing service or operation"
// @Router /status/breakers/reset [post]
func (h *Handler) HandleResetBreaker(c *fiber.Ctx) error {
	snap, err := h.service.ResetBreaker(c.Query("service"), c.Query("operation"))
	if errors.Is(err, ErrBreakerKey) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "code": "INVALID_REQUEST"})
	}
	return c.JSON(snap)
}
