package service

import (
	"context"
	"time"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
)

// service 层面向的存储接口，repository 包提供 gorm 实现，测试用内存假件。

type WorkerStore interface {
	Create(ctx context.Context, worker *model.Worker) error
	GetByPublicID(ctx context.Context, publicID int64) (*model.Worker, error)
	Updates(ctx context.Context, workerID int64, fields map[string]interface{}) error
	SetDescriptor(ctx context.Context, workerID int64, descriptor model.Descriptor) error
	ClearDescriptor(ctx context.Context, workerID int64) error
	CountActiveBySite(ctx context.Context, siteID int64) (int, error)
	List(ctx context.Context, cursorID int64, limit int) ([]*model.Worker, error)
}

type SiteStore interface {
	Create(ctx context.Context, site *model.Site) error
	GetByID(ctx context.Context, siteID int64) (*model.Site, error)
	Updates(ctx context.Context, siteID int64, fields map[string]interface{}) error
	ListActive(ctx context.Context) ([]*model.Site, error)
	List(ctx context.Context, cursorID int64, limit int) ([]*model.Site, error)
}

type AttendanceStore interface {
	Create(ctx context.Context, log *model.AttendanceLog) error
	GetOpenByWorkerAndDate(ctx context.Context, workerID int64, workDate time.Time) (*model.AttendanceLog, error)
	CloseSession(ctx context.Context, logID int64, checkOutAt time.Time, hoursWorked float64) (int64, error)
	CountDistinctWorkers(ctx context.Context, siteID int64, workDate time.Time) (int, error)
	ListByWorker(ctx context.Context, workerID int64, fromDate, toDate time.Time, cursorID int64, limit int) ([]*model.AttendanceLog, error)
}

type AccessRequestStore interface {
	Create(ctx context.Context, req *model.AccessRequest) error
	GetByID(ctx context.Context, requestID int64) (*model.AccessRequest, error)
	Resolve(ctx context.Context, requestID int64, status model.AccessRequestStatus, adminID int64, resolvedAt time.Time) (int64, error)
	List(ctx context.Context, siteID int64, status string, cursorID int64, limit int) ([]*model.AccessRequest, error)
}

type ClosingStore interface {
	Create(ctx context.Context, closing *model.DailyClosing) error
	GetByID(ctx context.Context, closingID int64) (*model.DailyClosing, error)
	UpdateNote(ctx context.Context, closingID int64, note string) (int64, error)
	ExistsForDate(ctx context.Context, siteID int64, closingDate time.Time) (bool, error)
	List(ctx context.Context, siteID int64, fromDate, toDate time.Time, cursorID int64, limit int) ([]*model.DailyClosing, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type AdminStore interface {
	Create(ctx context.Context, admin *model.Admin) error
	GetByPhoneHash(ctx context.Context, phoneHash string) (*model.Admin, error)
	GetByPublicID(ctx context.Context, publicID int64) (*model.Admin, error)
}

// Events 核验引擎对外的事件出口，queue 包提供 RabbitMQ 实现。
// 发布失败只记日志，不回滚业务。
type Events interface {
	AccessRequestCreated(ctx context.Context, req *model.AccessRequest) error
	ClosingMismatch(ctx context.Context, closing *model.DailyClosing) error
}

// CheckInGuard (worker, date) 签到意图的快路径去重，redis SETNX 实现
type CheckInGuard interface {
	TryMark(ctx context.Context, workerID int64, date string) (bool, error)
	Unmark(ctx context.Context, workerID int64, date string) error
}
