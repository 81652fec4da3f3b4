package utils

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToFloat(t *testing.T) {
	assert.Equal(t, 12.34, ToFloat("12.34"))
	assert.Equal(t, 12.34, ToFloat(12.34))
	assert.Equal(t, 3.0, ToFloat(3))
	assert.Equal(t, 0.5, ToFloat(json.Number("0.5")))
	assert.Equal(t, 0.0, ToFloat(""))
	assert.Equal(t, 0.0, ToFloat(nil))
	assert.Equal(t, 0.0, ToFloat("n/a"))
	assert.Equal(t, 0.0, ToFloat(true))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString("abc"))
	assert.Equal(t, "46986414", ToString(float64(46986414)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "7", ToString(7))
	assert.Equal(t, "OP03-070", ToString([]byte("OP03-070")))
}
