package biometric

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

func descriptorOf(values ...float64) model.Descriptor {
	return model.Descriptor(values)
}

func TestMatchWithinThreshold(t *testing.T) {
	enrolled := descriptorOf(0, 0, 0, 0)
	captured := descriptorOf(0.3, 0, 0, 0)

	result, err := Match(captured, enrolled, 0.5)

	require.NoError(t, err)
	assert.True(t, result.IsMatch)
	assert.InDelta(t, 0.3, result.Distance, 1e-9)
}

func TestMatchBeyondThreshold(t *testing.T) {
	enrolled := descriptorOf(0, 0, 0, 0)
	captured := descriptorOf(0.6, 0, 0, 0)

	result, err := Match(captured, enrolled, 0.5)

	require.NoError(t, err)
	assert.False(t, result.IsMatch)
	assert.InDelta(t, 0.6, result.Distance, 1e-9)
}

func TestMatchExactThresholdPasses(t *testing.T) {
	enrolled := descriptorOf(0, 0)
	captured := descriptorOf(0.5, 0)

	result, err := Match(captured, enrolled, 0.5)

	require.NoError(t, err)
	assert.True(t, result.IsMatch)
}

func TestMatchNotEnrolled(t *testing.T) {
	_, err := Match(descriptorOf(0.1, 0.2), nil, 0.5)

	assert.ErrorIs(t, err, pkgerrors.NotEnrolled)
}

func TestMatchLengthMismatch(t *testing.T) {
	_, err := Match(descriptorOf(0.1), descriptorOf(0.1, 0.2), 0.5)

	assert.ErrorIs(t, err, pkgerrors.BadDescriptor)
}

func TestMatchEmptyCaptured(t *testing.T) {
	_, err := Match(nil, descriptorOf(0.1, 0.2), 0.5)

	assert.ErrorIs(t, err, pkgerrors.BadDescriptor)
}

func TestDistanceIdenticalVectors(t *testing.T) {
	d := descriptorOf(0.25, -0.5, 0.75)

	assert.Zero(t, Distance(d, d))
}
