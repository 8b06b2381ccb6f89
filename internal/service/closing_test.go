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

type closingFixture struct {
	svc     *ClosingService
	workers *fakeWorkerStore
	sites   *fakeSiteStore
	logs    *fakeAttendanceStore
	store   *fakeClosingStore
	events  *fakeEvents
	site    *model.Site
	loc     *time.Location
}

func newClosingFixture(t *testing.T) *closingFixture {
	t.Helper()

	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	site := &model.Site{Name: "Bopal Tower A", Latitude: testSiteLat, Longitude: testSiteLon, RadiusM: 100, Active: true}
	site.ID = 11

	workers := newFakeWorkerStore()
	logs := &fakeAttendanceStore{}
	store := newFakeClosingStore()
	events := &fakeEvents{}
	sites := newFakeSiteStore(site)

	svc := NewClosingService(workers, sites, logs, store, events, loc)

	return &closingFixture{
		svc:     svc,
		workers: workers,
		sites:   sites,
		logs:    logs,
		store:   store,
		events:  events,
		site:    site,
		loc:     loc,
	}
}

// addAttendance 在指定日期为 n 个工人补一条考勤记录
func (f *closingFixture) addAttendance(t *testing.T, date string, n int) {
	t.Helper()

	day, err := time.ParseInLocation("2006-01-02", date, f.loc)
	require.NoError(t, err)

	for i := 0; i < n; i++ {
		log := &model.AttendanceLog{
			WorkerID: int64(1000 + i),
			SiteID:   f.site.ID,
			WorkDate: day,
			Status:   model.AttendanceStatusCheckedOut,
		}
		log.ID = int64(len(f.logs.logs) + 1)
		f.logs.logs = append(f.logs.logs, log)
	}
}

func intPtr(v int) *int { return &v }

func closingNow() time.Time {
	// 加尔各答时间 2026-09-01 20:30
	return time.Date(2026, 9, 1, 15, 0, 0, 0, time.UTC)
}

func TestComputeClosingMatched(t *testing.T) {
	f := newClosingFixture(t)
	f.addAttendance(t, "2026-09-01", 8)

	closing, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-01", intPtr(8), "", 9001, closingNow())

	require.NoError(t, err)
	assert.Equal(t, model.ClosingStatusMatched, closing.Status)
	assert.Equal(t, 8, closing.ExpectedCount)
	assert.Equal(t, 8, closing.ScannedCount)
	assert.Zero(t, closing.Difference)
	assert.Equal(t, model.ExpectedSourceManual, closing.ExpectedSource)
	assert.Empty(t, f.events.mismatches)
}

func TestComputeClosingMismatch(t *testing.T) {
	f := newClosingFixture(t)
	f.addAttendance(t, "2026-09-01", 8)

	// 点名簿 10 人，考勤只扫出 8 人
	closing, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-01", intPtr(10), "", 9001, closingNow())

	require.NoError(t, err)
	assert.Equal(t, model.ClosingStatusMismatch, closing.Status)
	assert.Equal(t, -2, closing.Difference)
	assert.Len(t, f.events.mismatches, 1)
}

func TestComputeClosingExpectedFromAssignedWorkers(t *testing.T) {
	f := newClosingFixture(t)
	f.addAttendance(t, "2026-09-01", 3)

	siteID := f.site.ID
	for i := 0; i < 5; i++ {
		w := &model.Worker{PublicID: int64(2000 + i), Active: true, AssignedSiteID: &siteID}
		w.ID = w.PublicID
		f.workers.workers[w.PublicID] = w
	}

	closing, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-01", nil, "", 9001, closingNow())

	require.NoError(t, err)
	assert.Equal(t, 5, closing.ExpectedCount)
	assert.Equal(t, 3, closing.ScannedCount)
	assert.Equal(t, model.ExpectedSourceAssigned, closing.ExpectedSource)
	assert.Equal(t, model.ClosingStatusMismatch, closing.Status)
}

func TestComputeClosingNegativeExpectedRejected(t *testing.T) {
	f := newClosingFixture(t)

	_, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-01", intPtr(-1), "", 9001, closingNow())

	assert.ErrorIs(t, err, pkgerrors.InvalidCount)
}

func TestComputeClosingFutureDateRejected(t *testing.T) {
	f := newClosingFixture(t)

	_, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-02", intPtr(0), "", 9001, closingNow())

	assert.ErrorIs(t, err, pkgerrors.InvalidDate)
}

func TestComputeClosingBadDate(t *testing.T) {
	f := newClosingFixture(t)

	_, err := f.svc.Compute(context.Background(), f.site.ID, "01-09-2026", intPtr(0), "", 9001, closingNow())

	assert.ErrorIs(t, err, pkgerrors.InvalidDate)
}

func TestComputeClosingUnknownSite(t *testing.T) {
	f := newClosingFixture(t)

	_, err := f.svc.Compute(context.Background(), 999, "2026-09-01", intPtr(0), "", 9001, closingNow())

	assert.ErrorIs(t, err, pkgerrors.SiteNotFound)
}

func TestComputeClosingRerunAppends(t *testing.T) {
	f := newClosingFixture(t)
	f.addAttendance(t, "2026-09-01", 8)

	first, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-01", intPtr(10), "", 9001, closingNow())
	require.NoError(t, err)

	// 重跑生成新记录，不改写历史
	second, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-01", intPtr(8), "", 9001, closingNow())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, f.store.closings, 2)
}

func TestSetNote(t *testing.T) {
	f := newClosingFixture(t)
	f.addAttendance(t, "2026-09-01", 8)

	closing, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-01", intPtr(10), "", 9001, closingNow())
	require.NoError(t, err)

	updated, err := f.svc.SetNote(context.Background(), closing.ID, "two workers left early")

	require.NoError(t, err)
	require.NotNil(t, updated.Note)
	assert.Equal(t, "two workers left early", *updated.Note)
}

func TestSetNoteNotFound(t *testing.T) {
	f := newClosingFixture(t)

	_, err := f.svc.SetNote(context.Background(), 999, "ghost")

	assert.ErrorIs(t, err, pkgerrors.ClosingNotFound)
}

func TestBulkDeleteEmptyScope(t *testing.T) {
	f := newClosingFixture(t)

	_, err := f.svc.BulkDelete(context.Background(), nil, 0, closingNow())

	assert.ErrorIs(t, err, pkgerrors.EmptyDeleteScope)
}

func TestBulkDeleteByIDs(t *testing.T) {
	f := newClosingFixture(t)
	f.addAttendance(t, "2026-09-01", 1)

	closing, err := f.svc.Compute(context.Background(), f.site.ID, "2026-09-01", intPtr(1), "", 9001, closingNow())
	require.NoError(t, err)

	deleted, err := f.svc.BulkDelete(context.Background(), []int64{closing.ID, 424242}, 0, closingNow())

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Empty(t, f.store.closings)
}

func TestBulkDeleteOlderThan(t *testing.T) {
	f := newClosingFixture(t)

	old := &model.DailyClosing{SiteID: f.site.ID, ClosingDate: time.Date(2026, 5, 1, 0, 0, 0, 0, f.loc)}
	old.ID = 1
	recent := &model.DailyClosing{SiteID: f.site.ID, ClosingDate: time.Date(2026, 8, 30, 0, 0, 0, 0, f.loc)}
	recent.ID = 2
	f.store.closings[old.ID] = old
	f.store.closings[recent.ID] = recent

	deleted, err := f.svc.BulkDelete(context.Background(), nil, 30, closingNow())

	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
	assert.Contains(t, f.store.closings, recent.ID)
	assert.NotContains(t, f.store.closings, old.ID)
}

func TestPendingReminderSites(t *testing.T) {
	f := newClosingFixture(t)

	done := &model.Site{Name: "Thaltej Yard", Latitude: testSiteLat, Longitude: testSiteLon, RadiusM: 150, Active: true}
	done.ID = 12
	inactive := &model.Site{Name: "Closed Site", Latitude: testSiteLat, Longitude: testSiteLon, RadiusM: 150, Active: false}
	inactive.ID = 13
	f.sites.sites[done.ID] = done
	f.sites.sites[inactive.ID] = inactive

	day := time.Date(2026, 9, 1, 0, 0, 0, 0, f.loc)
	closing := &model.DailyClosing{SiteID: done.ID, ClosingDate: day}
	closing.ID = 77
	f.store.closings[closing.ID] = closing

	pending, err := f.svc.PendingReminderSites(context.Background(), day)

	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, f.site.ID, pending[0].ID)
}
