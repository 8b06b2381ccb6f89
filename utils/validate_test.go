package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("9876543210"))
	assert.True(t, ValidatePhone("6000000000"))

	assert.False(t, ValidatePhone("5876543210")) // 5 开头不是移动号段
	assert.False(t, ValidatePhone("987654321"))  // 少一位
	assert.False(t, ValidatePhone("98765432100"))
	assert.False(t, ValidatePhone("+919876543210"))
	assert.False(t, ValidatePhone(""))
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(23.0225, 72.5714))
	assert.True(t, ValidateCoordinates(-90, 180))
	assert.True(t, ValidateCoordinates(90, -180))
	assert.True(t, ValidateCoordinates(0, 0))

	assert.False(t, ValidateCoordinates(90.1, 0))
	assert.False(t, ValidateCoordinates(-90.1, 0))
	assert.False(t, ValidateCoordinates(0, 180.1))
	assert.False(t, ValidateCoordinates(0, -180.1))
}
