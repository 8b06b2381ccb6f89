package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveClosingStatus(t *testing.T) {
	assert.Equal(t, ClosingStatusMatched, DeriveClosingStatus(0))
	assert.Equal(t, ClosingStatusMismatch, DeriveClosingStatus(-2))
	assert.Equal(t, ClosingStatusMismatch, DeriveClosingStatus(3))
}
