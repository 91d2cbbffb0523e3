package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClampUnprocessedLimit(t *testing.T) {
	assert.Equal(t, 100, clampUnprocessedLimit(0))
	assert.Equal(t, 100, clampUnprocessedLimit(-5))
	assert.Equal(t, 100, clampUnprocessedLimit(501))
	assert.Equal(t, 1, clampUnprocessedLimit(1))
	assert.Equal(t, 250, clampUnprocessedLimit(250))
	assert.Equal(t, 500, clampUnprocessedLimit(500))
}
