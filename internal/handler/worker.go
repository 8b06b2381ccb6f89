package handler

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model/dto"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/service"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/response"
)

// CreateWorker 工人建档
// POST /v1/admin/workers
func CreateWorker(ctx context.Context, c *app.RequestContext) {
	var req dto.CreateWorkerRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	worker, err := service.Workers().Create(ctx, service.CreateWorkerParams{
		DisplayName:    req.DisplayName,
		Phone:          req.Phone,
		DailyRatePaise: req.DailyRatePaise,
		AssignedSiteID: req.AssignedSiteID,
		Shift:          req.Shift,
	})
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toWorkerItem(worker))
}

// UpdateWorker 工人编辑
// PATCH /v1/admin/workers/:id
func UpdateWorker(ctx context.Context, c *app.RequestContext) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.WorkerNotFound)
		return
	}

	var req dto.UpdateWorkerRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	worker, err := service.Workers().Update(ctx, workerID, service.UpdateWorkerParams{
		DisplayName:    req.DisplayName,
		DailyRatePaise: req.DailyRatePaise,
		AssignedSiteID: req.AssignedSiteID,
		Shift:          req.Shift,
		Active:         req.Active,
	})
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toWorkerItem(worker))
}

// GetWorker 工人详情
// GET /v1/admin/workers/:id
func GetWorker(ctx context.Context, c *app.RequestContext) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.WorkerNotFound)
		return
	}

	worker, err := service.Workers().Get(ctx, workerID)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toWorkerItem(worker))
}

// ListWorkers 工人列表
// GET /v1/admin/workers
func ListWorkers(ctx context.Context, c *app.RequestContext) {
	cursorID, _ := strconv.ParseInt(c.Query("cursor_id"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	workers, nextCursor, err := service.Workers().List(ctx, cursorID, limit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	items := make([]dto.WorkerItem, 0, len(workers))
	for _, worker := range workers {
		items = append(items, toWorkerItem(worker))
	}

	meta := map[string]interface{}{}
	if nextCursor != 0 {
		meta["next_cursor"] = strconv.FormatInt(nextCursor, 10)
	}

	response.SuccessWithMeta(ctx, c, items, meta)
}

// EnrollWorker 录入特征向量
// POST /v1/admin/workers/:id/enroll
func EnrollWorker(ctx context.Context, c *app.RequestContext) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.WorkerNotFound)
		return
	}

	var req dto.EnrollDescriptorRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	worker, err := service.Workers().Enroll(ctx, workerID, req.Descriptor)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toWorkerItem(worker))
}

// ForceReEnrollWorker 清除特征，强制重新录入
// POST /v1/admin/workers/:id/force-re-enroll
func ForceReEnrollWorker(ctx context.Context, c *app.RequestContext) {
	workerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.WorkerNotFound)
		return
	}

	if err := service.Workers().ForceReEnroll(ctx, workerID); err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.NoContent(ctx, c)
}

func toWorkerItem(worker *model.Worker) dto.WorkerItem {
	return dto.WorkerItem{
		ID:             strconv.FormatInt(worker.PublicID, 10),
		DisplayName:    worker.DisplayName,
		DailyRatePaise: worker.DailyRatePaise,
		AssignedSiteID: worker.AssignedSiteID,
		Shift:          worker.Shift,
		Enrolled:       worker.Enrolled(),
		Active:         worker.Active,
	}
}
