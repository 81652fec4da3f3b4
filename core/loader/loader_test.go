package loader_test

import (
	"errors"
	"testing"

	"card-catalog/core/loader"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

type fakeFeature struct {
	name    string
	enabled bool
	err     error
	loaded  bool
}

func (f *fakeFeature) Name() string    { return f.name }
func (f *fakeFeature) IsEnabled() bool { return f.enabled }
func (f *fakeFeature) Load(app fiber.Router) error {
	f.loaded = true
	return f.err
}

func TestManager_LoadAll(t *testing.T) {
	t.Run("Skips Disabled", func(t *testing.T) {
		on := &fakeFeature{name: "cards", enabled: true}
		off := &fakeFeature{name: "search", enabled: false}

		mgr := loader.NewManager()
		mgr.Register(on)
		mgr.Register(off)

		loaded, err := mgr.LoadAll(fiber.New())
		assert.NoError(t, err)
		assert.Equal(t, []string{"cards"}, loaded)
		assert.True(t, on.loaded)
		assert.False(t, off.loaded)
		assert.Len(t, mgr.Features(), 2)
	})

	t.Run("Stops On Error", func(t *testing.T) {
		bad := &fakeFeature{name: "status", enabled: true, err: errors.New("boom")}
		after := &fakeFeature{name: "cards", enabled: true}

		mgr := loader.NewManager()
		mgr.Register(bad)
		mgr.Register(after)

		_, err := mgr.LoadAll(fiber.New())
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "status")
		assert.False(t, after.loaded)
	})
}
