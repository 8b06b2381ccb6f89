package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/veertradingvadi-ship-it/laboros-sub001/config"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/location"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/model/dto"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/service"
	pkgerrors "github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/metrics"
	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/response"
	"github.com/veertradingvadi-ship-it/laboros-sub001/utils"
)

// CheckIn 工人签到
// POST /v1/attendance/check-in
func CheckIn(ctx context.Context, c *app.RequestContext) {
	var req dto.CheckInRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	// 设备上报的读取统一经 Acquire 归一化，定位失败直接报对应错误，不进入核验流程
	timeout := time.Duration(config.Cfg.LocationTimeoutSeconds) * time.Second
	pos, err := location.Acquire(ctx, location.FromReport(req.Latitude, req.Longitude, req.LocationError), timeout)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}
	if len(req.Descriptor) == 0 {
		response.Error(ctx, c, pkgerrors.NoFaceDetected)
		return
	}

	start := time.Now()
	log, accessRequest, err := service.Attendance().CheckIn(ctx, service.CheckInParams{
		WorkerID:        req.WorkerID,
		SiteID:          req.SiteID,
		Latitude:        pos.Latitude,
		Longitude:       pos.Longitude,
		Descriptor:      req.Descriptor,
		AccessRequestID: req.AccessRequestID,
		Now:             start,
	})
	recordCheckInMetrics(ctx, log, accessRequest, err, start)
	if err != nil {
		if accessRequest != nil {
			// 围栏外，附带自动创建的补卡申请让前端引导审批流
			response.ErrorWithDetails(ctx, c, err, map[string]interface{}{
				"access_request_id": strconv.FormatInt(accessRequest.ID, 10),
				"distance_m":        accessRequest.DistanceM,
			})
			return
		}
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toAttendanceItem(log))
}

// CheckOut 工人签退
// POST /v1/attendance/check-out
func CheckOut(ctx context.Context, c *app.RequestContext) {
	var req dto.CheckOutRequest
	if err := c.BindAndValidate(&req); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	log, err := service.Attendance().CheckOut(ctx, req.WorkerID, time.Now())
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	response.Success(ctx, c, toAttendanceItem(log))
}

// AttendanceHistory 考勤历史
// GET /v1/attendance/history
func AttendanceHistory(ctx context.Context, c *app.RequestContext) {
	var query dto.AttendanceHistoryQuery
	if err := c.BindQuery(&query); err != nil {
		response.BindError(ctx, c, err)
		return
	}

	logs, nextCursor, err := service.Attendance().History(ctx, query.WorkerID, query.FromDate, query.ToDate, query.CursorID, query.Limit)
	if err != nil {
		response.Error(ctx, c, err)
		return
	}

	items := make([]dto.AttendanceItem, 0, len(logs))
	for _, log := range logs {
		items = append(items, toAttendanceItem(log))
	}

	meta := map[string]interface{}{}
	if nextCursor != 0 {
		meta["next_cursor"] = strconv.FormatInt(nextCursor, 10)
	}

	response.SuccessWithMeta(ctx, c, items, meta)
}

func recordCheckInMetrics(ctx context.Context, log *model.AttendanceLog, accessRequest *model.AccessRequest, err error, start time.Time) {
	outcome := "success"
	if err != nil {
		if def, ok := err.(pkgerrors.Definition); ok {
			outcome = def.Code
		} else {
			outcome = "INTERNAL_ERROR"
		}
	}

	distance := -1.0
	if log != nil {
		distance = log.GeofenceDistanceM
	} else if accessRequest != nil {
		distance = accessRequest.DistanceM
	}

	metrics.RecordCheckIn(ctx, outcome, time.Since(start).Seconds(), distance)
}

func toAttendanceItem(log *model.AttendanceLog) dto.AttendanceItem {
	return dto.AttendanceItem{
		ID:                strconv.FormatInt(log.ID, 10),
		WorkerID:          log.WorkerID,
		SiteID:            log.SiteID,
		WorkDate:          utils.FormatDate(log.WorkDate),
		CheckInAt:         log.CheckInAt,
		CheckOutAt:        log.CheckOutAt,
		HoursWorked:       log.HoursWorked,
		Status:            string(log.Status),
		GeofenceDistanceM: log.GeofenceDistanceM,
	}
}
