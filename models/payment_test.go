package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(49900), MinorUnits(499.00))
	assert.Equal(t, int64(49999), MinorUnits(499.99))
	// Float representation noise must not shave a unit off.
	assert.Equal(t, int64(1010), MinorUnits(10.10))
	assert.Equal(t, int64(5), MinorUnits(0.05))
	assert.Equal(t, int64(0), MinorUnits(0))
}
