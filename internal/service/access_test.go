package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

type accessFixture struct {
	svc    *AccessService
	access *fakeAccessStore
	events *fakeEvents
	worker *model.Worker
	site   *model.Site
}

func newAccessFixture(t *testing.T) *accessFixture {
	t.Helper()

	site := &model.Site{
		Name:      "Bopal Tower A",
		Latitude:  testSiteLat,
		Longitude: testSiteLon,
		RadiusM:   100,
		Active:    true,
	}
	site.ID = 11

	worker := &model.Worker{
		PublicID:    101,
		DisplayName: "Ravi",
		Active:      true,
	}
	worker.ID = 101

	access := newFakeAccessStore()
	events := &fakeEvents{}

	svc := NewAccessService(
		newFakeWorkerStore(worker),
		newFakeSiteStore(site),
		access,
		events,
	)

	return &accessFixture{
		svc:    svc,
		access: access,
		events: events,
		worker: worker,
		site:   site,
	}
}

func TestSubmitAccessRequest(t *testing.T) {
	f := newAccessFixture(t)

	request, err := f.svc.Submit(context.Background(), f.worker.PublicID, f.site.ID, testSiteLat+0.01, testSiteLon)

	require.NoError(t, err)
	assert.Equal(t, model.AccessRequestStatusPending, request.Status)
	assert.Greater(t, request.DistanceM, 100.0)
	assert.Len(t, f.events.accessCreated, 1)
}

func TestSubmitAccessRequestInactiveWorker(t *testing.T) {
	f := newAccessFixture(t)
	f.worker.Active = false

	_, err := f.svc.Submit(context.Background(), f.worker.PublicID, f.site.ID, testSiteLat, testSiteLon)

	assert.ErrorIs(t, err, pkgerrors.WorkerInactive)
}

func TestSubmitAccessRequestSurvivesPublishFailure(t *testing.T) {
	f := newAccessFixture(t)
	f.events.publishErr = errStoreDown

	// 事件发布失败不影响申请落库
	request, err := f.svc.Submit(context.Background(), f.worker.PublicID, f.site.ID, testSiteLat, testSiteLon)

	require.NoError(t, err)
	assert.NotNil(t, f.access.requests[request.ID])
}

func TestResolveApprove(t *testing.T) {
	f := newAccessFixture(t)

	pending := &model.AccessRequest{WorkerID: f.worker.ID, SiteID: f.site.ID, Status: model.AccessRequestStatusPending}
	pending.ID = 501
	f.access.requests[pending.ID] = pending

	resolved, err := f.svc.Resolve(context.Background(), pending.ID, DecisionApprove, 9001, time.Now())

	require.NoError(t, err)
	assert.Equal(t, model.AccessRequestStatusApproved, resolved.Status)
	require.NotNil(t, resolved.ResolvedBy)
	assert.Equal(t, int64(9001), *resolved.ResolvedBy)
	assert.NotNil(t, resolved.ResolvedAt)
}

func TestResolveReject(t *testing.T) {
	f := newAccessFixture(t)

	pending := &model.AccessRequest{WorkerID: f.worker.ID, SiteID: f.site.ID, Status: model.AccessRequestStatusPending}
	pending.ID = 502
	f.access.requests[pending.ID] = pending

	resolved, err := f.svc.Resolve(context.Background(), pending.ID, DecisionReject, 9001, time.Now())

	require.NoError(t, err)
	assert.Equal(t, model.AccessRequestStatusRejected, resolved.Status)
}

func TestResolveInvalidDecision(t *testing.T) {
	f := newAccessFixture(t)

	_, err := f.svc.Resolve(context.Background(), 1, "maybe", 9001, time.Now())

	assert.ErrorIs(t, err, pkgerrors.InvalidDecision)
}

func TestResolveAlreadyResolved(t *testing.T) {
	f := newAccessFixture(t)

	pending := &model.AccessRequest{WorkerID: f.worker.ID, SiteID: f.site.ID, Status: model.AccessRequestStatusPending}
	pending.ID = 503
	f.access.requests[pending.ID] = pending

	_, err := f.svc.Resolve(context.Background(), pending.ID, DecisionApprove, 9001, time.Now())
	require.NoError(t, err)

	// 终态不可再变，第二个决定必须失败且不覆盖第一个
	_, err = f.svc.Resolve(context.Background(), pending.ID, DecisionReject, 9002, time.Now())
	assert.ErrorIs(t, err, pkgerrors.AlreadyResolved)
	assert.Equal(t, model.AccessRequestStatusApproved, pending.Status)
}

func TestResolveConcurrentDecisions(t *testing.T) {
	f := newAccessFixture(t)

	pending := &model.AccessRequest{WorkerID: f.worker.ID, SiteID: f.site.ID, Status: model.AccessRequestStatusPending}
	pending.ID = 504
	f.access.requests[pending.ID] = pending

	// 两个管理员同时做出相反决定，条件更新保证恰好一个生效
	var wg sync.WaitGroup
	errs := make([]error, 2)
	decisions := []string{DecisionApprove, DecisionReject}
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Resolve(context.Background(), pending.ID, decisions[i], int64(9001+i), time.Now())
		}(i)
	}
	wg.Wait()

	var wins, losses int
	for i, err := range errs {
		switch {
		case err == nil:
			wins++
			if decisions[i] == DecisionApprove {
				assert.Equal(t, model.AccessRequestStatusApproved, pending.Status)
			} else {
				assert.Equal(t, model.AccessRequestStatusRejected, pending.Status)
			}
		default:
			losses++
			assert.ErrorIs(t, err, pkgerrors.AlreadyResolved)
		}
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, 1, losses)
	require.NotNil(t, pending.ResolvedBy)
}

func TestResolveNotFound(t *testing.T) {
	f := newAccessFixture(t)

	_, err := f.svc.Resolve(context.Background(), 999, DecisionApprove, 9001, time.Now())

	assert.ErrorIs(t, err, pkgerrors.AccessRequestNotFound)
}
