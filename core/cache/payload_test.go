package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPayload_FreshAt(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	p := &Payload[string]{Data: []string{"x"}, Timestamp: ts, TTL: time.Hour}

	assert.True(t, p.FreshAt(ts))
	assert.True(t, p.FreshAt(ts.Add(time.Hour-time.Millisecond)))
	assert.False(t, p.FreshAt(ts.Add(time.Hour)))
	assert.False(t, p.FreshAt(ts.Add(time.Hour+time.Millisecond)))
	assert.Equal(t, 30*time.Minute, p.Age(ts.Add(30*time.Minute)))
}
