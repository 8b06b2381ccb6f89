package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

const testDescriptorLength = 4

func newWorkerFixture(t *testing.T) (*WorkerService, *fakeWorkerStore, *fakeSiteStore) {
	t.Helper()

	site := &model.Site{Name: "Bopal Tower A", Latitude: testSiteLat, Longitude: testSiteLon, RadiusM: 100, Active: true}
	site.ID = 11

	workers := newFakeWorkerStore()
	sites := newFakeSiteStore(site)

	return NewWorkerService(workers, sites, testDescriptorLength), workers, sites
}

func TestCreateWorker(t *testing.T) {
	svc, workers, _ := newWorkerFixture(t)

	worker, err := svc.Create(context.Background(), CreateWorkerParams{
		DisplayName:    "Ravi",
		Phone:          "9876543210",
		DailyRatePaise: 45000,
	})

	require.NoError(t, err)
	assert.NotZero(t, worker.PublicID)
	assert.True(t, worker.Active)
	assert.NotEmpty(t, worker.PhoneCipher)
	require.NotNil(t, worker.PhoneHash)
	assert.Len(t, workers.workers, 1)
}

func TestCreateWorkerWithoutPhone(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	worker, err := svc.Create(context.Background(), CreateWorkerParams{DisplayName: "Ravi"})

	require.NoError(t, err)
	assert.Empty(t, worker.PhoneCipher)
	assert.Nil(t, worker.PhoneHash)
}

func TestCreateWorkerBadPhone(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	_, err := svc.Create(context.Background(), CreateWorkerParams{DisplayName: "Ravi", Phone: "12345"})

	assert.ErrorIs(t, err, pkgerrors.InvalidPhone)
}

func TestCreateWorkerUnknownSite(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	badSite := int64(999)
	_, err := svc.Create(context.Background(), CreateWorkerParams{DisplayName: "Ravi", AssignedSiteID: &badSite})

	assert.ErrorIs(t, err, pkgerrors.SiteNotFound)
}

func TestEnrollDescriptor(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	worker, err := svc.Create(context.Background(), CreateWorkerParams{DisplayName: "Ravi"})
	require.NoError(t, err)
	assert.False(t, worker.Enrolled())

	enrolled, err := svc.Enroll(context.Background(), worker.PublicID, model.Descriptor{0.1, 0.2, 0.3, 0.4})

	require.NoError(t, err)
	assert.True(t, enrolled.Enrolled())
}

func TestEnrollWrongLength(t *testing.T) {
	svc, _, _ := newWorkerFixture(t)

	worker, err := svc.Create(context.Background(), CreateWorkerParams{DisplayName: "Ravi"})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), worker.PublicID, model.Descriptor{0.1, 0.2})

	assert.ErrorIs(t, err, pkgerrors.BadDescriptor)
}

func TestEnrollInactiveWorker(t *testing.T) {
	svc, workers, _ := newWorkerFixture(t)

	worker, err := svc.Create(context.Background(), CreateWorkerParams{DisplayName: "Ravi"})
	require.NoError(t, err)
	workers.workers[worker.PublicID].Active = false

	_, err = svc.Enroll(context.Background(), worker.PublicID, model.Descriptor{0.1, 0.2, 0.3, 0.4})

	assert.ErrorIs(t, err, pkgerrors.WorkerInactive)
}

func TestForceReEnrollClearsDescriptor(t *testing.T) {
	svc, workers, _ := newWorkerFixture(t)

	worker, err := svc.Create(context.Background(), CreateWorkerParams{DisplayName: "Ravi"})
	require.NoError(t, err)

	_, err = svc.Enroll(context.Background(), worker.PublicID, model.Descriptor{0.1, 0.2, 0.3, 0.4})
	require.NoError(t, err)

	require.NoError(t, svc.ForceReEnroll(context.Background(), worker.PublicID))

	assert.False(t, workers.workers[worker.PublicID].Enrolled())
}
