package cards

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"card-catalog/core/resilience"
	"card-catalog/feature/cards/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupTestApp(t *testing.T) (*fiber.App, *fixture) {
	t.Helper()
	f := newFixture(t)
	app := fiber.New()
	NewHandler(f.service, zap.NewNop()).RegisterRoutes(app)
	return app, f
}

func decodeBody(t *testing.T, r io.Reader) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(r).Decode(&body))
	return body
}

func TestHandleSearch(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/cards/search?game=pokemon&q=char&limit=5", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	body := decodeBody(t, resp.Body)
	assert.Equal(t, "pokemon", body["game"])
	assert.EqualValues(t, 2, body["count"])
	data := body["data"].([]any)
	assert.Equal(t, "Charizard", data[0].(map[string]any)["name"])
}

func TestHandleSearch_Errors(t *testing.T) {
	app, f := setupTestApp(t)

	cases := []struct {
		name   string
		url    string
		status int
		code   string
	}{
		{"UnknownGame", "/cards/search?game=chess&q=x", 400, "UNSUPPORTED_GAME"},
		{"NoProvider", "/cards/search?game=other&q=x", 400, "UNSUPPORTED_GAME"},
		{"EmptyQuery", "/cards/search?game=pokemon&q=", 400, "INVALID_REQUEST"},
		{"NegativeOffset", "/cards/search?game=pokemon&q=x&offset=-5", 400, "INVALID_REQUEST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", tc.url, nil))
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, decodeBody(t, resp.Body)["code"])
		})
	}

	t.Run("NoDataAvailable", func(t *testing.T) {
		f.provider.setErr(assert.AnError)
		resp, err := app.Test(httptest.NewRequest("GET", "/cards/search?game=pokemon&q=fresh", nil))
		require.NoError(t, err)
		assert.Equal(t, 502, resp.StatusCode)
		assert.Equal(t, "NO_DATA_AVAILABLE", decodeBody(t, resp.Body)["code"])
	})

	t.Run("CircuitOpen", func(t *testing.T) {
		f.provider.setErr(&resilience.CircuitOpenError{Service: "fake", Operation: "search"})
		resp, err := app.Test(httptest.NewRequest("GET", "/cards/search?game=pokemon&q=open", nil))
		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, "CIRCUIT_OPEN", decodeBody(t, resp.Body)["code"])
	})
}

func TestHandleGetCard(t *testing.T) {
	app, f := setupTestApp(t)
	f.provider.card = &models.Card{ID: "base1-4", Name: "Charizard", Game: models.GamePokemon, Extra: map[string]any{"hp": "120"}}

	resp, err := app.Test(httptest.NewRequest("GET", "/cards/pokemon/base1-4", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.Equal(t, "Charizard", body["name"])
	assert.Equal(t, "120", body["hp"])

	f.provider.card = nil
	resp, err = app.Test(httptest.NewRequest("GET", "/cards/pokemon/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}

func TestHandleClearCache(t *testing.T) {
	app, f := setupTestApp(t)

	_, err := app.Test(httptest.NewRequest("GET", "/cards/search?game=pokemon&q=char", nil))
	require.NoError(t, err)
	require.Len(t, f.backend.Keys(""), 1)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/cards/cache", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	body := decodeBody(t, resp.Body)
	assert.EqualValues(t, 1, body["removed"])
	assert.Empty(t, f.backend.Keys(""))
}

func TestFeature(t *testing.T) {
	f := newFixture(t)
	feature := NewFeature(f.service, zap.NewNop())
	assert.Equal(t, "cards", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
	assert.Same(t, f.service, feature.Service())
}
