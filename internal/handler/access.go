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
)

// SubmitAccessRequest 提交补卡申请
// POST /v1/access-requests
func SubmitAccessRequest(ctx context.Context, c *app.RequestContext) {
	var req dto.SubmitAccessRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	request, err := service.Access().Submit(ctx, req.WorkerID, req.SiteID, req.Latitude, req.Longitude)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.RecordAccessRequest(ctx, "created")

	response.Success(ctx, c, toAccessRequestItem(request))
}

// ResolveAccessRequest 审批补卡申请
// POST /v1/access-requests/:id/resolve
func ResolveAccessRequest(ctx context.Context, c *app.RequestContext) {
	adminID, ok := middleware.GetAdminID(ctx, c)
	if !ok {
		response.Error(ctx, c, pkgerrors.Unauthorized)
		return
	}

	requestID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(ctx, c, pkgerrors.AccessRequestNotFound)
		return
	}

	var req dto.ResolveAccessRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	request, err := service.Access().Resolve(ctx, requestID, req.Decision, adminID, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	metrics.RecordAccessRequest(ctx, string(request.Status))

	response.Success(ctx, c, toAccessRequestItem(request))
}

// ListAccessRequests 补卡申请列表
// GET /v1/access-requests
func ListAccessRequests(ctx context.Context, c *app.RequestContext) {
	var query dto.AccessRequestListQuery
	if err := c.BindQuery(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	requests, nextCursor, err := service.Access().List(ctx, query.SiteID, query.Status, query.CursorID, query.Limit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	items := make([]dto.AccessRequestItem, 0, len(requests))
	for _, request := range requests {
		items = append(items, toAccessRequestItem(request))
	}

	meta := map[string]interface{}{}
	if nextCursor != 0 {
		meta["next_cursor"] = strconv.FormatInt(nextCursor, 10)
	}

	response.SuccessWithMeta(ctx, c, items, meta)
}

func toAccessRequestItem(request *model.AccessRequest) dto.AccessRequestItem {
	return dto.AccessRequestItem{
		ID:         strconv.FormatInt(request.ID, 10),
		WorkerID:   request.WorkerID,
		SiteID:     request.SiteID,
		Latitude:   request.Latitude,
		Longitude:  request.Longitude,
		DistanceM:  request.DistanceM,
		Status:     string(request.Status),
		ResolvedBy: request.ResolvedBy,
		ResolvedAt: request.ResolvedAt,
		CreatedAt:  request.CreatedAt,
	}
}
