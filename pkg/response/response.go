package response

import (
	"context"
	"net/http"

	"github.com/cloudwego/hertz/pkg/app"

	"github.com/veertradingvadi-ship-it/laboros-sub001/pkg/errors"
)

// ErrorResponse 统一的错误响应格式
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Details map[string]interface{} `json:"details,omitempty"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
}

// SuccessResponse 统一的成功响应格式
type SuccessResponse struct {
	Data interface{}            `json:"data"`
	Meta map[string]interface{} `json:"meta,omitempty"`
}

func errorToHTTPStatus(err error) int {
	// 检查是否是 Definition 类型
	def, ok := err.(errors.Definition)
	if !ok {
		if errMsg := err.Error(); errMsg != "" {
			return http.StatusInternalServerError
		}
		return http.StatusInternalServerError
	}

	// 根据错误码映射 HTTP 状态码
	switch def.Code {
	case "UNAUTHORIZED", "LOGIN_FAILED", "INVALID_REFRESH_TOKEN":
		return http.StatusUnauthorized // 401
	case "TOO_MANY_REQUESTS":
		return http.StatusTooManyRequests // 429
	case "OUT_OF_RANGE", "IDENTITY_MISMATCH", "ACCESS_NOT_APPROVED",
		"WORKER_INACTIVE", "SITE_INACTIVE":
		return http.StatusForbidden // 403
	case "DUPLICATE_CHECK_IN", "ALREADY_RESOLVED":
		return http.StatusConflict // 409
	case "ACCESS_REQUEST_NOT_FOUND", "CLOSING_NOT_FOUND",
		"SITE_NOT_FOUND", "WORKER_NOT_FOUND":
		return http.StatusNotFound // 404
	case "NOT_ENROLLED", "NO_OPEN_SESSION", "SESSION_CLOSED",
		"INVALID_COORDINATES", "BAD_DESCRIPTOR", "NO_FACE_DETECTED",
		"LOCATION_PERMISSION_DENIED", "LOCATION_UNAVAILABLE", "LOCATION_TIMEOUT",
		"INVALID_DECISION", "INVALID_COUNT", "INVALID_DATE",
		"EMPTY_DELETE_SCOPE", "INVALID_RADIUS", "INVALID_PHONE",
		"INVALID_ADMIN_ID", "INVALID_REQUEST":
		return http.StatusBadRequest // 400
	default:
		return http.StatusInternalServerError // 500
	}
}

// Error 返回错误响应
func Error(ctx context.Context, c *app.RequestContext, err error) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	var details map[string]interface{}

	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func ErrorWithDetails(ctx context.Context, c *app.RequestContext, err error, details map[string]interface{}) {
	statusCode := errorToHTTPStatus(err)

	var code, message string
	if def, ok := err.(errors.Definition); ok {
		code = def.Code
		message = def.Message
	} else {
		code = "INTERNAL_ERROR"
		message = err.Error()
	}

	c.JSON(statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

func Success(ctx context.Context, c *app.RequestContext, data interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
	})
}

func SuccessWithMeta(ctx context.Context, c *app.RequestContext, data interface{}, meta map[string]interface{}) {
	c.JSON(http.StatusOK, SuccessResponse{
		Data: data,
		Meta: meta,
	})
}

func BindError(ctx context.Context, c *app.RequestContext, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error: ErrorDetail{
			Code:    "INVALID_REQUEST",
			Message: err.Error(),
		},
	})
}

// NoContent 返回 204 No Content（用于 DELETE 等操作）
func NoContent(ctx context.Context, c *app.RequestContext) {
	c.Status(http.StatusNoContent)
}
