package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/middleware"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model/dto"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/service"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/metrics"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/response"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// ComputeClosing 生成日结
// POST /v1/closings
func ComputeClosing(ctx context.Context, c *app.RequestContext) {
	adminID, ok := middleware.GetAdminID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	var req dto.ComputeClosingRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	closing, err := service.Closing().Compute(ctx, req.SiteID, req.Date, req.ExpectedCount, req.Note, adminID, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.RecordClosing(ctx, string(closing.Status))

	response.Success(ctx, c, toClosingItem(closing))
}

// SetClosingNote 补录差异说明
// PATCH /v1/closings/:id/note
func SetClosingNote(ctx context.Context, c *app.RequestContext) {
	closingID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.ClosingNotFound)
		return
	}

	var req dto.ClosingNoteRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	closing, err := service.Closing().SetNote(ctx, closingID, req.Note)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toClosingItem(closing))
}

// ListClosings 日结列表
// GET /v1/closings
func ListClosings(ctx context.Context, c *app.RequestContext) {
	var query dto.ClosingListQuery
	if err := c.BindQuery(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	closings, nextCursor, err := service.Closing().List(ctx, query.SiteID, query.FromDate, query.ToDate, query.CursorID, query.Limit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	items := make([]dto.ClosingItem, 0, len(closings))
	for _, closing := range closings {
		items = append(items, toClosingItem(closing))
	}

	meta := map[string]interface{}{}
	if nextCursor != 0 {
		meta["next_cursor"] = strconv.FormatInt(nextCursor, 10)
	}

	response.SuccessWithMeta(ctx, c, items, meta)
}

// BulkDeleteClosings 批量删除历史日结，owner 专用
// POST /v1/closings/bulk-delete
func BulkDeleteClosings(ctx context.Context, c *app.RequestContext) {
	var req dto.BulkDeleteClosingsRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	olderThanDays := 0
	if req.OlderThanDays != nil {
		olderThanDays = *req.OlderThanDays
	}

	deleted, err := service.Closing().BulkDelete(ctx, req.IDs, olderThanDays, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, map[string]interface{}{
		"deleted": deleted,
	})
}

func toClosingItem(closing *model.DailyClosing) dto.ClosingItem {
	return dto.ClosingItem{
		ID:             strconv.FormatInt(closing.ID, 10),
		SiteID:         closing.SiteID,
		ClosingDate:    utils.FormatDate(closing.ClosingDate),
		ExpectedCount:  closing.ExpectedCount,
		ScannedCount:   closing.ScannedCount,
		ExpectedSource: string(closing.ExpectedSource),
		Difference:     closing.Difference,
		Status:         string(closing.Status),
		Note:           closing.Note,
		ClosedBy:       closing.ClosedBy,
		CreatedAt:      closing.CreatedAt,
	}
}
