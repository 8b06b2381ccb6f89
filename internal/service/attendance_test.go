package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

const (
	testSiteLat = 23.0225
	testSiteLon = 72.5714
)

var errStoreDown = pkgerrors.Definition{Code: "STORE_DOWN", Message: "store down"}

type attendanceFixture struct {
	svc    *AttendanceService
	logs   *fakeAttendanceStore
	access *fakeAccessStore
	events *fakeEvents
	guard  *fakeGuard
	worker *model.Worker
	site   *model.Site
}

func newAttendanceFixture(t *testing.T) *attendanceFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	site := &model.Site{
		Name:      "Bopal Tower A",
		Latitude:  testSiteLat,
		Longitude: testSiteLon,
		RadiusM:   100,
		Active:    true,
	}
	site.ID = 11

	siteID := site.ID
	worker := &model.Worker{
		PublicID:           101,
		DisplayName:        "Ravi",
		EnrolledDescriptor: model.Descriptor{0, 0, 0, 0},
		AssignedSiteID:     &siteID,
		Active:             true,
	}
	worker.ID = 101

	logs := &fakeAttendanceStore{}
	access := newFakeAccessStore()
	events := &fakeEvents{}
	guard := newFakeGuard()

	svc := NewAttendanceService(
		newFakeWorkerStore(worker),
		newFakeSiteStore(site),
		logs,
		access,
		events,
		guard,
		0.5,
		loc,
	)

	return &attendanceFixture{
		svc:    svc,
		logs:   logs,
		access: access,
		events: events,
		guard:  guard,
		worker: worker,
		site:   site,
	}
}

func checkInAt(f *attendanceFixture, lat, lon float64) CheckInParams {
	return CheckInParams{
		WorkerID:   f.worker.PublicID,
		SiteID:     f.site.ID,
		Latitude:   lat,
		Longitude:  lon,
		Descriptor: model.Descriptor{0.1, 0, 0, 0},
		Now:        time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestCheckInSuccess(t *testing.T) {
	f := newAttendanceFixture(t)

	log, request, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))

	require.NoError(t, err)
	assert.Nil(t, request)
	require.NotNil(t, log)
	assert.Equal(t, model.AttendanceStatusCheckedIn, log.Status)
	assert.Equal(t, f.worker.ID, log.WorkerID)
	assert.Equal(t, f.site.ID, log.SiteID)
	assert.Len(t, f.logs.logs, 1)
}

func TestCheckInUsesAssignedSiteWhenUnspecified(t *testing.T) {
	f := newAttendanceFixture(t)

	params := checkInAt(f, testSiteLat, testSiteLon)
	params.SiteID = 0

	log, _, err := f.svc.CheckIn(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, f.site.ID, log.SiteID)
}

func TestCheckInOutOfRangeCreatesAccessRequest(t *testing.T) {
	f := newAttendanceFixture(t)

	// 约 1.1 公里外
	log, request, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat+0.01, testSiteLon))

	assert.ErrorIs(t, err, pkgerrors.OutOfRange)
	assert.Nil(t, log)
	require.NotNil(t, request)
	assert.Equal(t, model.AccessRequestStatusPending, request.Status)
	assert.Greater(t, request.DistanceM, 100.0)
	assert.Len(t, f.events.accessCreated, 1)
	assert.Empty(t, f.logs.logs)
}

func TestCheckInIdentityMismatch(t *testing.T) {
	f := newAttendanceFixture(t)

	params := checkInAt(f, testSiteLat, testSiteLon)
	params.Descriptor = model.Descriptor{3, 3, 3, 3}

	_, _, err := f.svc.CheckIn(context.Background(), params)

	assert.ErrorIs(t, err, pkgerrors.IdentityMismatch)
	assert.Empty(t, f.logs.logs)
}

func TestCheckInNotEnrolled(t *testing.T) {
	f := newAttendanceFixture(t)
	f.worker.EnrolledDescriptor = nil

	_, _, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))

	assert.ErrorIs(t, err, pkgerrors.NotEnrolled)
}

func TestCheckInInactiveWorker(t *testing.T) {
	f := newAttendanceFixture(t)
	f.worker.Active = false

	_, _, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))

	assert.ErrorIs(t, err, pkgerrors.WorkerInactive)
}

func TestCheckInInactiveSite(t *testing.T) {
	f := newAttendanceFixture(t)
	f.site.Active = false

	_, _, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))

	assert.ErrorIs(t, err, pkgerrors.SiteInactive)
}

func TestCheckInNoSiteResolvable(t *testing.T) {
	f := newAttendanceFixture(t)
	f.worker.AssignedSiteID = nil

	params := checkInAt(f, testSiteLat, testSiteLon)
	params.SiteID = 0

	_, _, err := f.svc.CheckIn(context.Background(), params)

	assert.ErrorIs(t, err, pkgerrors.SiteNotFound)
}

func TestCheckInInvalidCoordinates(t *testing.T) {
	f := newAttendanceFixture(t)

	_, _, err := f.svc.CheckIn(context.Background(), checkInAt(f, 91, 0))

	assert.ErrorIs(t, err, pkgerrors.InvalidCoords)
}

func TestCheckInDuplicateSameDay(t *testing.T) {
	f := newAttendanceFixture(t)

	_, _, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))
	require.NoError(t, err)

	_, _, err = f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))
	assert.ErrorIs(t, err, pkgerrors.DuplicateCheckIn)
	assert.Len(t, f.logs.logs, 1)
}

func TestCheckInGuardDownFallsBackToStore(t *testing.T) {
	f := newAttendanceFixture(t)

	// 第一次正常写入，之后 guard 故障，去重全靠存储层唯一约束
	_, _, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))
	require.NoError(t, err)

	f.guard.markErr = errStoreDown

	_, _, err = f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))
	assert.ErrorIs(t, err, pkgerrors.DuplicateCheckIn)
}

func TestCheckInGuardDisabledUsesStoreConstraint(t *testing.T) {
	f := newAttendanceFixture(t)
	f.svc.guard = nopCheckInGuard{}

	// 关闭快路径后重复签到仍被数据库唯一约束挡下
	_, _, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))
	require.NoError(t, err)

	_, _, err = f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))
	assert.ErrorIs(t, err, pkgerrors.DuplicateCheckIn)
	assert.Len(t, f.logs.logs, 1)
}

func TestCheckInReleasesGuardWhenInsertFails(t *testing.T) {
	f := newAttendanceFixture(t)
	f.logs.createErr = errStoreDown

	_, _, err := f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))
	require.Error(t, err)

	// 插入失败必须释放快路径标记，否则工人当天再也打不上卡
	f.logs.createErr = nil
	_, _, err = f.svc.CheckIn(context.Background(), checkInAt(f, testSiteLat, testSiteLon))
	assert.NoError(t, err)
}

func TestCheckInWithApprovedAccessRequest(t *testing.T) {
	f := newAttendanceFixture(t)

	request := &model.AccessRequest{
		WorkerID: f.worker.ID,
		SiteID:   f.site.ID,
		Status:   model.AccessRequestStatusApproved,
	}
	request.ID = 501
	f.access.requests[request.ID] = request

	params := checkInAt(f, testSiteLat+0.01, testSiteLon) // 围栏外
	params.AccessRequestID = &request.ID

	log, _, err := f.svc.CheckIn(context.Background(), params)

	require.NoError(t, err)
	require.NotNil(t, log.ViaAccessRequest)
	assert.Equal(t, request.ID, *log.ViaAccessRequest)
}

func TestCheckInWithPendingAccessRequestRejected(t *testing.T) {
	f := newAttendanceFixture(t)

	request := &model.AccessRequest{
		WorkerID: f.worker.ID,
		SiteID:   f.site.ID,
		Status:   model.AccessRequestStatusPending,
	}
	request.ID = 502
	f.access.requests[request.ID] = request

	params := checkInAt(f, testSiteLat+0.01, testSiteLon)
	params.AccessRequestID = &request.ID

	_, _, err := f.svc.CheckIn(context.Background(), params)

	assert.ErrorIs(t, err, pkgerrors.AccessNotApproved)
}

func TestCheckInWithForeignAccessRequestRejected(t *testing.T) {
	f := newAttendanceFixture(t)

	// 批准的是别的工人的申请
	request := &model.AccessRequest{
		WorkerID: f.worker.ID + 1,
		SiteID:   f.site.ID,
		Status:   model.AccessRequestStatusApproved,
	}
	request.ID = 503
	f.access.requests[request.ID] = request

	params := checkInAt(f, testSiteLat+0.01, testSiteLon)
	params.AccessRequestID = &request.ID

	_, _, err := f.svc.CheckIn(context.Background(), params)

	assert.ErrorIs(t, err, pkgerrors.AccessNotApproved)
}

func TestCheckOutComputesHours(t *testing.T) {
	f := newAttendanceFixture(t)

	checkIn := checkInAt(f, testSiteLat, testSiteLon)
	_, _, err := f.svc.CheckIn(context.Background(), checkIn)
	require.NoError(t, err)

	log, err := f.svc.CheckOut(context.Background(), f.worker.PublicID, checkIn.Now.Add(8*time.Hour))

	require.NoError(t, err)
	assert.Equal(t, model.AttendanceStatusCheckedOut, log.Status)
	require.NotNil(t, log.HoursWorked)
	assert.InDelta(t, 8.0, *log.HoursWorked, 1e-9)
	require.NotNil(t, log.CheckOutAt)
}

func TestCheckOutWithoutOpenSession(t *testing.T) {
	f := newAttendanceFixture(t)

	_, err := f.svc.CheckOut(context.Background(), f.worker.PublicID, time.Now())

	assert.ErrorIs(t, err, pkgerrors.NoOpenSession)
}

func TestCheckOutTwiceFails(t *testing.T) {
	f := newAttendanceFixture(t)

	checkIn := checkInAt(f, testSiteLat, testSiteLon)
	_, _, err := f.svc.CheckIn(context.Background(), checkIn)
	require.NoError(t, err)

	_, err = f.svc.CheckOut(context.Background(), f.worker.PublicID, checkIn.Now.Add(8*time.Hour))
	require.NoError(t, err)

	_, err = f.svc.CheckOut(context.Background(), f.worker.PublicID, checkIn.Now.Add(9*time.Hour))
	assert.ErrorIs(t, err, pkgerrors.NoOpenSession)
}

func TestHistoryRejectsInvalidDates(t *testing.T) {
	f := newAttendanceFixture(t)

	_, _, err := f.svc.History(context.Background(), f.worker.PublicID, "not-a-date", "2026-09-01", 0, 20)

	assert.ErrorIs(t, err, pkgerrors.InvalidDate)
}

func TestHistoryUnknownWorker(t *testing.T) {
	f := newAttendanceFixture(t)

	_, _, err := f.svc.History(context.Background(), 999, "2026-09-01", "2026-09-30", 0, 20)

	assert.ErrorIs(t, err, pkgerrors.WorkerNotFound)
}
