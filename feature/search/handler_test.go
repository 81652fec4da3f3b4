package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"

	"card-catalog/feature/cards/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubEngine struct {
	lastQuery Query
	result    *Result
	err       error
	health    Health
}

func (s *stubEngine) Search(ctx context.Context, q Query) (*Result, error) {
	s.lastQuery = q
	return s.result, s.err
}

func (s *stubEngine) Suggest(ctx context.Context, prefix string, limit int) ([]string, error) {
	return []string{prefix + "1", prefix + "2"}[:min(limit, 2)], s.err
}

func (s *stubEngine) Health(ctx context.Context) Health {
	return s.health
}

func setupTestApp(engine Engine) *fiber.App {
	app := fiber.New()
	NewHandler(engine, zap.NewNop()).RegisterRoutes(app)
	return app
}

func TestHandleSearch_ParsesQuery(t *testing.T) {
	engine := &stubEngine{result: &Result{Total: 1, Page: 2, Size: 5, Records: []models.Card{{ID: "1", Name: "Bolt", Game: models.GameMagic}}}}
	app := setupTestApp(engine)

	req := httptest.NewRequest("GET", "/search?q=bolt&game=mtg&rarity=common&min_price=1.5&max_price=10&sort=price&order=desc&page=2&size=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	q := engine.lastQuery
	assert.Equal(t, "bolt", q.Text)
	assert.Equal(t, models.GameMagic, q.Filters.Game)
	assert.Equal(t, "common", q.Filters.Rarity)
	require.NotNil(t, q.Filters.MinPrice)
	assert.Equal(t, 1.5, *q.Filters.MinPrice)
	require.NotNil(t, q.Filters.MaxPrice)
	assert.Equal(t, 10.0, *q.Filters.MaxPrice)
	assert.Equal(t, SortPrice, q.Sort.Field)
	assert.Equal(t, Desc, q.Sort.Order)
	assert.Equal(t, Pagination{Page: 2, Size: 5}, q.Pagination)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.EqualValues(t, 1, body["total"])
}

func TestHandleSearch_BadInput(t *testing.T) {
	app := setupTestApp(&stubEngine{err: ErrInvalidQuery})

	for _, url := range []string{"/search?game=chess", "/search?min_price=cheap", "/search?sort=popularity"} {
		resp, err := app.Test(httptest.NewRequest("GET", url, nil))
		require.NoError(t, err)
		assert.Equal(t, 400, resp.StatusCode, url)
	}
}

func TestHandleSearch_EngineFailure(t *testing.T) {
	app := setupTestApp(&stubEngine{err: errors.New("database is locked")})

	resp, err := app.Test(httptest.NewRequest("GET", "/search?q=x", nil))
	require.NoError(t, err)
	assert.Equal(t, 500, resp.StatusCode)
}

func TestHandleSuggest(t *testing.T) {
	app := setupTestApp(&stubEngine{})

	resp, err := app.Test(httptest.NewRequest("GET", "/search/suggest?prefix=char&limit=1", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, []string{"char1"}, body.Suggestions)
}

func TestHandleHealth(t *testing.T) {
	app := setupTestApp(&stubEngine{health: Health{Status: StatusUnavailable}})
	resp, err := app.Test(httptest.NewRequest("GET", "/search/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 503, resp.StatusCode)

	app = setupTestApp(&stubEngine{health: Health{Status: StatusDegraded}})
	resp, err = app.Test(httptest.NewRequest("GET", "/search/health", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestFeature(t *testing.T) {
	assert.False(t, NewFeature(nil, zap.NewNop()).IsEnabled())
	f := NewFeature(&stubEngine{}, zap.NewNop())
	assert.True(t, f.IsEnabled())
	assert.Equal(t, "search", f.Name())
	assert.NoError(t, f.Load(fiber.New()))
}
