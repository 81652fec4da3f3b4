package status

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"card-catalog/core/storage/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTestApp(client *mocks.Client) *fiber.App {
	app := fiber.New()
	svc, _ := newTestService(client, nil)
	NewFeature(svc).Load(app)
	return app
}

func TestHandleBucket(t *testing.T) {
	t.Run("CheckOnly", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "card-cache").Return(false, nil)
		app := setupTestApp(m)

		resp, err := app.Test(httptest.NewRequest("GET", "/status/bucket", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body BucketReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.False(t, body.Exists)
		m.AssertNotCalled(t, "MakeBucket", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Fix", func(t *testing.T) {
		m := new(mocks.Client)
		m.On("BucketExists", mock.Anything, "card-cache").Return(false, nil).Twice()
		m.On("MakeBucket", mock.Anything, "card-cache", mock.Anything).Return(nil)
		m.On("BucketExists", mock.Anything, "card-cache").Return(true, nil)
		m.On("ListObjects", mock.Anything, "card-cache", mock.Anything).Return(listing())
		app := setupTestApp(m)

		resp, err := app.Test(httptest.NewRequest("GET", "/status/bucket?fix=true", nil))
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)

		var body BucketReport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Created)
		assert.True(t, body.Exists)
	})

	t.Run("NoBucketBackend", func(t *testing.T) {
		app := fiber.New()
		svc, _ := newTestService(nil, nil)
		NewHandler(svc).RegisterRoutes(app)

		resp, err := app.Test(httptest.NewRequest("GET", "/status/bucket", nil))
		require.NoError(t, err)
		assert.Equal(t, 404, resp.StatusCode)
	})
}

func TestHandleResetBreaker(t *testing.T) {
	app := setupTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("POST", "/status/breakers/reset?service=scryfall&operation=search", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var snap map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&snap))
	assert.Equal(t, "closed", snap["state"])

	resp, err = app.Test(httptest.NewRequest("POST", "/status/breakers/reset?service=scryfall", nil))
	require.NoError(t, err)
	assert.Equal(t, 400, resp.StatusCode)
}

func TestHandleStatus(t *testing.T) {
	app := setupTestApp(nil)

	resp, err := app.Test(httptest.NewRequest("GET", "/status", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "minio", body["cache_backend"])
	assert.Equal(t, []any{}, body["breakers"])
}
