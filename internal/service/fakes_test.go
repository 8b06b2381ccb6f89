package service

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// 内存假件，按 stores.go 的接口契约实现，错误语义与 repository 保持一致。

type fakeWorkerStore struct {
	workers map[int64]*model.Worker // keyed by public_id
}

func newFakeWorkerStore(workers ...*model.Worker) *fakeWorkerStore {
	s := &fakeWorkerStore{workers: map[int64]*model.Worker{}}
	for _, w := range workers {
		s.workers[w.PublicID] = w
	}
	return s
}

func (s *fakeWorkerStore) Create(ctx context.Context, worker *model.Worker) error {
	s.workers[worker.PublicID] = worker
	return nil
}

func (s *fakeWorkerStore) GetByPublicID(ctx context.Context, publicID int64) (*model.Worker, error) {
	worker, ok := s.workers[publicID]
	if !ok {
		return nil, pkgerrors.WorkerNotFound
	}
	return worker, nil
}

func (s *fakeWorkerStore) Updates(ctx context.Context, workerID int64, fields map[string]interface{}) error {
	for _, w := range s.workers {
		if w.ID != workerID {
			continue
		}
		if v, ok := fields["display_name"]; ok {
			w.DisplayName = v.(string)
		}
		if v, ok := fields["active"]; ok {
			w.Active = v.(bool)
		}
		if v, ok := fields["assigned_site_id"]; ok {
			id := v.(int64)
			w.AssignedSiteID = &id
		}
		return nil
	}
	return pkgerrors.WorkerNotFound
}

func (s *fakeWorkerStore) SetDescriptor(ctx context.Context, workerID int64, descriptor model.Descriptor) error {
	for _, w := range s.workers {
		if w.ID == workerID {
			w.EnrolledDescriptor = descriptor
			return nil
		}
	}
	return pkgerrors.WorkerNotFound
}

func (s *fakeWorkerStore) ClearDescriptor(ctx context.Context, workerID int64) error {
	for _, w := range s.workers {
		if w.ID == workerID {
			w.EnrolledDescriptor = nil
			return nil
		}
	}
	return pkgerrors.WorkerNotFound
}

func (s *fakeWorkerStore) CountActiveBySite(ctx context.Context, siteID int64) (int, error) {
	count := 0
	for _, w := range s.workers {
		if w.Active && w.AssignedSiteID != nil && *w.AssignedSiteID == siteID {
			count++
		}
	}
	return count, nil
}

func (s *fakeWorkerStore) List(ctx context.Context, cursorID int64, limit int) ([]*model.Worker, error) {
	out := make([]*model.Worker, 0, len(s.workers))
	for _, w := range s.workers {
		out = append(out, w)
	}
	return out, nil
}

type fakeSiteStore struct {
	sites map[int64]*model.Site
}

func newFakeSiteStore(sites ...*model.Site) *fakeSiteStore {
	s := &fakeSiteStore{sites: map[int64]*model.Site{}}
	for _, site := range sites {
		s.sites[site.ID] = site
	}
	return s
}

func (s *fakeSiteStore) Create(ctx context.Context, site *model.Site) error {
	s.sites[site.ID] = site
	return nil
}

func (s *fakeSiteStore) GetByID(ctx context.Context, siteID int64) (*model.Site, error) {
	site, ok := s.sites[siteID]
	if !ok {
		return nil, pkgerrors.SiteNotFound
	}
	return site, nil
}

func (s *fakeSiteStore) Updates(ctx context.Context, siteID int64, fields map[string]interface{}) error {
	site, ok := s.sites[siteID]
	if !ok {
		return pkgerrors.SiteNotFound
	}
	if v, ok := fields["radius_m"]; ok {
		site.RadiusM = v.(float64)
	}
	if v, ok := fields["active"]; ok {
		site.Active = v.(bool)
	}
	return nil
}

func (s *fakeSiteStore) ListActive(ctx context.Context) ([]*model.Site, error) {
	out := []*model.Site{}
	for _, site := range s.sites {
		if site.Active {
			out = append(out, site)
		}
	}
	return out, nil
}

func (s *fakeSiteStore) List(ctx context.Context, cursorID int64, limit int) ([]*model.Site, error) {
	out := make([]*model.Site, 0, len(s.sites))
	for _, site := range s.sites {
		out = append(out, site)
	}
	return out, nil
}

type fakeAttendanceStore struct {
	logs      []*model.AttendanceLog
	createErr error
}

func (s *fakeAttendanceStore) Create(ctx context.Context, log *model.AttendanceLog) error {
	if s.createErr != nil {
		return s.createErr
	}
	for _, existing := range s.logs {
		if existing.WorkerID == log.WorkerID && existing.WorkDate.Equal(log.WorkDate) {
			return pkgerrors.DuplicateCheckIn
		}
	}
	s.logs = append(s.logs, log)
	return nil
}

func (s *fakeAttendanceStore) GetOpenByWorkerAndDate(ctx context.Context, workerID int64, workDate time.Time) (*model.AttendanceLog, error) {
	for _, log := range s.logs {
		if log.WorkerID == workerID && log.WorkDate.Equal(workDate) && log.Open() {
			return log, nil
		}
	}
	return nil, nil
}

func (s *fakeAttendanceStore) CloseSession(ctx context.Context, logID int64, checkOutAt time.Time, hoursWorked float64) (int64, error) {
	for _, log := range s.logs {
		if log.ID == logID && log.Open() {
			log.CheckOutAt = &checkOutAt
			log.HoursWorked = &hoursWorked
			log.Status = model.AttendanceStatusCheckedOut
			return 1, nil
		}
	}
	return 0, nil
}

func (s *fakeAttendanceStore) CountDistinctWorkers(ctx context.Context, siteID int64, workDate time.Time) (int, error) {
	seen := map[int64]bool{}
	for _, log := range s.logs {
		if log.SiteID == siteID && log.WorkDate.Equal(workDate) {
			seen[log.WorkerID] = true
		}
	}
	return len(seen), nil
}

func (s *fakeAttendanceStore) ListByWorker(ctx context.Context, workerID int64, fromDate, toDate time.Time, cursorID int64, limit int) ([]*model.AttendanceLog, error) {
	out := []*model.AttendanceLog{}
	for _, log := range s.logs {
		if log.WorkerID != workerID {
			continue
		}
		if log.WorkDate.Before(fromDate) || log.WorkDate.After(toDate) {
			continue
		}
		if cursorID != 0 && log.ID >= cursorID {
			continue
		}
		out = append(out, log)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeAccessStore struct {
	mu       sync.Mutex
	requests map[int64]*model.AccessRequest
}

func newFakeAccessStore(requests ...*model.AccessRequest) *fakeAccessStore {
	s := &fakeAccessStore{requests: map[int64]*model.AccessRequest{}}
	for _, r := range requests {
		s.requests[r.ID] = r
	}
	return s
}

func (s *fakeAccessStore) Create(ctx context.Context, req *model.AccessRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[req.ID] = req
	return nil
}

func (s *fakeAccessStore) GetByID(ctx context.Context, requestID int64) (*model.AccessRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok {
		return nil, pkgerrors.AccessRequestNotFound
	}
	return req, nil
}

// Resolve 与 repository 的条件 UPDATE 对齐，终态判断和写入在同一临界区内完成
func (s *fakeAccessStore) Resolve(ctx context.Context, requestID int64, status model.AccessRequestStatus, adminID int64, resolvedAt time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.requests[requestID]
	if !ok || req.Resolved() {
		return 0, nil
	}
	req.Status = status
	req.ResolvedBy = &adminID
	req.ResolvedAt = &resolvedAt
	return 1, nil
}

func (s *fakeAccessStore) List(ctx context.Context, siteID int64, status string, cursorID int64, limit int) ([]*model.AccessRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []*model.AccessRequest{}
	for _, req := range s.requests {
		if siteID != 0 && req.SiteID != siteID {
			continue
		}
		if status != "" && string(req.Status) != status {
			continue
		}
		out = append(out, req)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeClosingStore struct {
	closings map[int64]*model.DailyClosing
}

func newFakeClosingStore() *fakeClosingStore {
	return &fakeClosingStore{closings: map[int64]*model.DailyClosing{}}
}

func (s *fakeClosingStore) Create(ctx context.Context, closing *model.DailyClosing) error {
	s.closings[closing.ID] = closing
	return nil
}

func (s *fakeClosingStore) GetByID(ctx context.Context, closingID int64) (*model.DailyClosing, error) {
	closing, ok := s.closings[closingID]
	if !ok {
		return nil, pkgerrors.ClosingNotFound
	}
	return closing, nil
}

func (s *fakeClosingStore) UpdateNote(ctx context.Context, closingID int64, note string) (int64, error) {
	closing, ok := s.closings[closingID]
	if !ok {
		return 0, nil
	}
	closing.Note = &note
	return 1, nil
}

func (s *fakeClosingStore) ExistsForDate(ctx context.Context, siteID int64, closingDate time.Time) (bool, error) {
	for _, closing := range s.closings {
		if closing.SiteID == siteID && closing.ClosingDate.Equal(closingDate) {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeClosingStore) List(ctx context.Context, siteID int64, fromDate, toDate time.Time, cursorID int64, limit int) ([]*model.DailyClosing, error) {
	out := []*model.DailyClosing{}
	for _, closing := range s.closings {
		if siteID != 0 && closing.SiteID != siteID {
			continue
		}
		if closing.ClosingDate.Before(fromDate) || closing.ClosingDate.After(toDate) {
			continue
		}
		out = append(out, closing)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeClosingStore) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	var deleted int64
	for _, id := range ids {
		if _, ok := s.closings[id]; ok {
			delete(s.closings, id)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakeClosingStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var deleted int64
	for id, closing := range s.closings {
		if closing.ClosingDate.Before(cutoff) {
			delete(s.closings, id)
			deleted++
		}
	}
	return deleted, nil
}

type fakeAdminStore struct {
	admins map[int64]*model.Admin // keyed by public_id
}

func newFakeAdminStore(admins ...*model.Admin) *fakeAdminStore {
	s := &fakeAdminStore{admins: map[int64]*model.Admin{}}
	for _, a := range admins {
		s.admins[a.PublicID] = a
	}
	return s
}

func (s *fakeAdminStore) Create(ctx context.Context, admin *model.Admin) error {
	s.admins[admin.PublicID] = admin
	return nil
}

func (s *fakeAdminStore) GetByPhoneHash(ctx context.Context, phoneHash string) (*model.Admin, error) {
	for _, admin := range s.admins {
		if admin.PhoneHash != nil && *admin.PhoneHash == phoneHash {
			return admin, nil
		}
	}
	return nil, pkgerrors.LoginFailed
}

func (s *fakeAdminStore) GetByPublicID(ctx context.Context, publicID int64) (*model.Admin, error) {
	admin, ok := s.admins[publicID]
	if !ok {
		return nil, pkgerrors.Unauthorized
	}
	return admin, nil
}

type fakeEvents struct {
	accessCreated []*model.AccessRequest
	mismatches    []*model.DailyClosing
	publishErr    error
}

func (e *fakeEvents) AccessRequestCreated(ctx context.Context, req *model.AccessRequest) error {
	if e.publishErr != nil {
		return e.publishErr
	}
	e.accessCreated = append(e.accessCreated, req)
	return nil
}

func (e *fakeEvents) ClosingMismatch(ctx context.Context, closing *model.DailyClosing) error {
	if e.publishErr != nil {
		return e.publishErr
	}
	e.mismatches = append(e.mismatches, closing)
	return nil
}

type fakeGuard struct {
	marks   map[string]bool
	markErr error
}

func newFakeGuard() *fakeGuard {
	return &fakeGuard{marks: map[string]bool{}}
}

func guardKey(workerID int64, date string) string {
	return date + ":" + strconv.FormatInt(workerID, 10)
}

func (g *fakeGuard) TryMark(ctx context.Context, workerID int64, date string) (bool, error) {
	if g.markErr != nil {
		return false, g.markErr
	}
	key := guardKey(workerID, date)
	if g.marks[key] {
		return false, nil
	}
	g.marks[key] = true
	return true, nil
}

func (g *fakeGuard) Unmark(ctx context.Context, workerID int64, date string) error {
	delete(g.marks, guardKey(workerID, date))
	return nil
}
