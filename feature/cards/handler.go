package cards

import (
	"errors"

	"card-catalog/core/logger"
	"card-catalog/core/resilience"
	"card-catalog/feature/cards/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves the card endpoints.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// SearchResponse is the body of a card search.
type SearchResponse struct {
	Game  models.Game   `json:"game"`
	Query string        `json:"query"`
	Count int           `json:"count"`
	Data  []models.Card `json:"data"`
}

// RegisterRoutes registers the card routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/cards")
	group.Get("/search", h.HandleSearch)
	group.Delete("/cache", h.HandleClearCache)
	group.Get("/:game/:id", h.HandleGetCard)
}

// HandleSearch searches one game's catalog.
// @Summary Search Cards
// @Description Returns cards matching the query. Served from cache when fresh; stale cache is served when the provider fails.
// @Tags cards
// @Produce json
// @Param game query string true "Game (magic, pokemon, yu-gi-oh, one_piece, ...)"
// @Param q query string true "Search query"
// @Param limit query int false "Page size (default 20, max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} SearchResponse
// @Failure 400 {object} map[string]string "Unsupported game or invalid request"
// @Failure 502 {object} map[string]string "No data available"
// @Failure 503 {object} map[string]string "Circuit open"
// @Router /cards/search [get]
func (h *Handler) HandleSearch(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	game, err := ParseGame(c.Query("game"))
	if err != nil {
		return writeError(c, l, err)
	}
	query := c.Query("q")
	cards, err := h.service.SearchCards(c.Context(), game, query, c.QueryInt("limit", 0), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, l, err)
	}

	return c.JSON(SearchResponse{Game: game, Query: query, Count: len(cards), Data: cards})
}

// HandleGetCard looks one card up by its provider id.
// @Summary Get Card
// @Description Returns one card by game and provider id.
// @Tags cards
// @Produce json
// @Param game path string true "Game"
// @Param id path string true "Provider card id"
// @Success 200 {object} map[string]interface{} "Card"
// @Failure 400 {object} map[string]string "Unsupported game"
// @Failure 404 {object} map[string]string "Card not found"
// @Failure 502 {object} map[string]string "No data available"
// @Router /cards/{game}/{id} [get]
func (h *Handler) HandleGetCard(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	game, err := ParseGame(c.Params("game"))
	if err != nil {
		return writeError(c, l, err)
	}
	card, err := h.service.GetCardByID(c.Context(), game, c.Params("id"))
	if err != nil {
		return writeError(c, l, err)
	}
	return c.JSON(card)
}

// HandleClearCache drops every cached payload.
// @Summary Clear Card Cache
// @Description Removes every cached search and card payload, stale fallbacks included.
// @Tags cards
// @Produce json
// @Success 200 {object} map[string]interface{} "Removed count"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /cards/cache [delete]
func (h *Handler) HandleClearCache(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	l.Info("Clearing card cache")

	removed, err := h.service.ClearCache(c.Context())
	if err != nil {
		return writeError(c, l, err)
	}
	return c.JSON(fiber.Map{"status": "cleared", "removed": removed})
}

func writeError(c *fiber.Ctx, l *zap.Logger, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, ErrUnsupportedGame):
		status, code = fiber.StatusBadRequest, "UNSUPPORTED_GAME"
	case errors.Is(err, ErrInvalidRequest):
		status, code = fiber.StatusBadRequest, "INVALID_REQUEST"
	case errors.Is(err, ErrNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, resilience.ErrCircuitOpen):
		status, code = fiber.StatusServiceUnavailable, "CIRCUIT_OPEN"
	case errors.Is(err, ErrNoDataAvailable):
		status, code = fiber.StatusBadGateway, "NO_DATA_AVAILABLE"
	}
	if status >= fiber.StatusInternalServerError {
		l.Error("Card request failed", zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error(), "code": code})
}
