package search

import (
	"errors"
	"strconv"

	"card-catalog/core/logger"
	"card-catalog/feature/cards/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the search endpoints.
type Handler struct {
	engine Engine
	logger *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(engine Engine, logger *zap.Logger) *Handler {
	return &Handler{engine: engine, logger: logger}
}

// RegisterRoutes registers the search routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/search")
	group.Get("/", h.HandleSearch)
	group.Get("/suggest", h.HandleSuggest)
	group.Get("/health", h.HandleHealth)
}

// HandleSearch queries the card index.
// @Summary Search Index
// @Description Full-text search over indexed cards with filters, sorting, pagination and facets.
// @Tags search
// @Produce json
// @Param q query string false "Name text"
// @Param game query string false "Game filter"
// @Param rarity query string false "Rarity filter"
// @Param set query string false "Set filter"
// @Param condition query string false "Condition filter"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Param sort query string false "name, price, rarity or date"
// @Param order query string false "asc or desc"
// @Param page query int false "Page (1-based)"
// @Param size query int false "Page size (max 100)"
// @Success 200 {object} Result
// @Failure 400 {object} map[string]string "Invalid query"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	q, err := parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "code": "INVALID_QUERY"})
	}

	result, err := h.engine.Search(c.Context(), q)
	if err != nil {
		if errors.Is(err, ErrInvalidQuery) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error(), "code": "INVALID_QUERY"})
		}
		l.Error("Index search failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "code": "INTERNAL"})
	}
	return c.JSON(result)
}

// HandleSuggest autocompletes card names.
// @Summary Suggest Names
// @Description Returns distinct card names starting with the prefix.
// @Tags search
// @Produce json
// @Param prefix query string true "Name prefix"
// @Param limit query int false "Maximum suggestions (default 10)"
// @Success 200 {object} map[string]interface{} "Suggestions"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /search/suggest [get]
func (h *Handler) HandleSuggest(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	names, err := h.engine.Suggest(c.Context(), c.Query("prefix"), c.QueryInt("limit", 10))
	if err != nil {
		l.Error("Suggest failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error(), "code": "INTERNAL"})
	}
	return c.JSON(fiber.Map{"suggestions": names})
}

// HandleHealth reports the index status.
// @Summary Index Health
// @Description Reports healthy, degraded (schema drift) or unavailable (database unreachable).
// @Tags search
// @Produce json
// @Success 200 {object} Health
// @Failure 503 {object} Health
// @Router /search/health [get]
func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	health := h.engine.Health(c.Context())
	if health.Status == StatusUnavailable {
		return c.Status(fiber.StatusServiceUnavailable).JSON(health)
	}
	return c.JSON(health)
}

func parseQuery(c *fiber.Ctx) (Query, error) {
	q := Query{
		Text: c.Query("q"),
		Filters: Filters{
			Rarity:    c.Query("rarity"),
			Set:       c.Query("set"),
			Condition: c.Query("condition"),
		},
		Sort: Sort{
			Field: SortField(c.Query("sort")),
			Order: SortOrder(c.Query("order")),
		},
		Pagination: Pagination{
			Page: c.QueryInt("page", 1),
			Size: c.QueryInt("size", DefaultPageSize),
		},
	}
	if raw := c.Query("game"); raw != "" {
		g, ok := models.ParseGame(raw)
		if !ok {
			return q, errors.New("unknown game " + strconv.Quote(raw))
		}
		q.Filters.Game = g
	}
	for name, dst := range map[string]**float64{"min_price": &q.Filters.MinPrice, "max_price": &q.Filters.MaxPrice} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return q, errors.New("invalid " + name + " " + strconv.Quote(raw))
		}
		*dst = &v
	}
	return q, nil
}
