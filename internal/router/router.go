package router

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"

	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/handler"
	"github.com/veertradingvadi-ship-it/laboros-sub001/internal/middleware"
)

func Register(h *server.Hertz) {

	h.Use(middleware.RecoverMiddleware())
	h.Use(middleware.RequestIDMiddleware())
	h.Use(middleware.CORSMiddleware())
	h.Use(middleware.OpenTelemetryMiddleware())

	h.GET("/ping", func(ctx context.Context, c *app.RequestContext) {
		c.JSON(200, map[string]string{"message": "pong"})
	})

	v1 := h.Group("/v1")

	// 认证相关路由
	auth := v1.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware()) // 认证接口限流
	{
		auth.POST("/login", handler.Login)
		auth.POST("/token/refresh", handler.RefreshToken)
	}

	// 考勤路由，终端设备调用，不走管理端鉴权
	attendance := v1.Group("/attendance")
	attendance.Use(middleware.CheckInRateLimitMiddleware())
	{
		attendance.POST("/check-in", handler.CheckIn)
		attendance.POST("/check-out", handler.CheckOut)
		attendance.GET("/history", handler.AttendanceHistory)
	}

	// 补卡申请路由，提交开放给终端，审批和列表需要登录
	accessRequests := v1.Group("/access-requests")
	{
		accessRequests.POST("", handler.SubmitAccessRequest)
		accessRequests.GET("", middleware.AuthMiddleware(), handler.ListAccessRequests)
		accessRequests.POST("/:id/resolve", middleware.AuthMiddleware(), handler.ResolveAccessRequest)
	}

	// 日结路由
	closings := v1.Group("/closings")
	closings.Use(middleware.AuthMiddleware())
	{
		closings.POST("", handler.ComputeClosing)
		closings.GET("", handler.ListClosings)
		closings.PATCH("/:id/note", handler.SetClosingNote)
		closings.POST("/bulk-delete", handler.BulkDeleteClosings)
	}

	// 管理端台账路由
	admin := v1.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	{
		sites := admin.Group("/sites")
		{
			sites.POST("", handler.CreateSite)
			sites.GET("", handler.ListSites)
			sites.GET("/:id", handler.GetSite)
			sites.PATCH("/:id", handler.UpdateSite)
		}

		workers := admin.Group("/workers")
		{
			workers.POST("", handler.CreateWorker)
			workers.GET("", handler.ListWorkers)
			workers.GET("/:id", handler.GetWorker)
			workers.PATCH("/:id", handler.UpdateWorker)
			workers.POST("/:id/enroll", handler.EnrollWorker)
			workers.POST("/:id/force-re-enroll", handler.ForceReEnrollWorker)
		}
	}
}
