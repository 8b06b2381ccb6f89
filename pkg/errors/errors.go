package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// 认证相关错误。
var (
	Unauthorized        = Definition{Code: "UNAUTHORIZED", Message: "Unauthorized"}
	LoginFailed         = Definition{Code: "LOGIN_FAILED", Message: "Phone or password incorrect"}
	InvalidAdminID      = Definition{Code: "INVALID_ADMIN_ID", Message: "Invalid admin ID format"}
	InvalidRefreshToken = Definition{Code: "INVALID_REFRESH_TOKEN", Message: "Refresh token invalid or expired"}
	TooManyRequests     = Definition{Code: "TOO_MANY_REQUESTS", Message: "Too many requests, slow down"}
)

// 打卡核验错误。
var (
	OutOfRange       = Definition{Code: "OUT_OF_RANGE", Message: "Location outside site geofence"}
	IdentityMismatch = Definition{Code: "IDENTITY_MISMATCH", Message: "Face does not match enrolled descriptor"}
	NotEnrolled      = Definition{Code: "NOT_ENROLLED", Message: "Worker has no enrolled descriptor"}
	DuplicateCheckIn = Definition{Code: "DUPLICATE_CHECK_IN", Message: "Worker already checked in for this date"}
	NoOpenSession    = Definition{Code: "NO_OPEN_SESSION", Message: "No open attendance session for worker"}
	SessionClosed    = Definition{Code: "SESSION_CLOSED", Message: "Attendance already checked out for this date"}
	InvalidCoords    = Definition{Code: "INVALID_COORDINATES", Message: "Latitude or longitude out of range"}
	BadDescriptor    = Definition{Code: "BAD_DESCRIPTOR", Message: "Descriptor has wrong length"}
	NoFaceDetected   = Definition{Code: "NO_FACE_DETECTED", Message: "No face detected in captured image"}
)

// 定位采集错误，设备侧三种失败原因必须原样上抛，绝不降级为围栏内。
var (
	LocationPermissionDenied = Definition{Code: "LOCATION_PERMISSION_DENIED", Message: "Location permission denied on device"}
	LocationUnavailable      = Definition{Code: "LOCATION_UNAVAILABLE", Message: "Device position unavailable"}
	LocationTimeout          = Definition{Code: "LOCATION_TIMEOUT", Message: "Location acquisition timed out"}
)

// 补卡申请错误。
var (
	AccessRequestNotFound = Definition{Code: "ACCESS_REQUEST_NOT_FOUND", Message: "Access request not found"}
	AlreadyResolved       = Definition{Code: "ALREADY_RESOLVED", Message: "Access request already resolved"}
	AccessNotApproved     = Definition{Code: "ACCESS_NOT_APPROVED", Message: "Access request is not approved"}
	InvalidDecision       = Definition{Code: "INVALID_DECISION", Message: "Decision must be approve or reject"}
)

// 日结错误。
var (
	ClosingNotFound  = Definition{Code: "CLOSING_NOT_FOUND", Message: "Daily closing not found"}
	InvalidCount     = Definition{Code: "INVALID_COUNT", Message: "Worker count must not be negative"}
	InvalidDate      = Definition{Code: "INVALID_DATE", Message: "Date must be formatted as YYYY-MM-DD"}
	EmptyDeleteScope = Definition{Code: "EMPTY_DELETE_SCOPE", Message: "Bulk delete needs ids or an age cutoff"}
)

// 主数据错误。
var (
	SiteNotFound   = Definition{Code: "SITE_NOT_FOUND", Message: "Site not found"}
	SiteInactive   = Definition{Code: "SITE_INACTIVE", Message: "Site is inactive"}
	InvalidRadius  = Definition{Code: "INVALID_RADIUS", Message: "Site radius must be positive"}
	WorkerNotFound = Definition{Code: "WORKER_NOT_FOUND", Message: "Worker not found"}
	WorkerInactive = Definition{Code: "WORKER_INACTIVE", Message: "Worker is inactive"}
	InvalidPhone   = Definition{Code: "INVALID_PHONE", Message: "Phone number invalid"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	Unauthorized.Code:             Unauthorized,
	LoginFailed.Code:              LoginFailed,
	InvalidAdminID.Code:           InvalidAdminID,
	InvalidRefreshToken.Code:      InvalidRefreshToken,
	TooManyRequests.Code:          TooManyRequests,
	OutOfRange.Code:               OutOfRange,
	IdentityMismatch.Code:         IdentityMismatch,
	NotEnrolled.Code:              NotEnrolled,
	DuplicateCheckIn.Code:         DuplicateCheckIn,
	NoOpenSession.Code:            NoOpenSession,
	SessionClosed.Code:            SessionClosed,
	InvalidCoords.Code:            InvalidCoords,
	BadDescriptor.Code:            BadDescriptor,
	NoFaceDetected.Code:           NoFaceDetected,
	LocationPermissionDenied.Code: LocationPermissionDenied,
	LocationUnavailable.Code:      LocationUnavailable,
	LocationTimeout.Code:          LocationTimeout,
	AccessRequestNotFound.Code:    AccessRequestNotFound,
	AlreadyResolved.Code:          AlreadyResolved,
	AccessNotApproved.Code:        AccessNotApproved,
	InvalidDecision.Code:          InvalidDecision,
	ClosingNotFound.Code:          ClosingNotFound,
	InvalidCount.Code:             InvalidCount,
	InvalidDate.Code:              InvalidDate,
	EmptyDeleteScope.Code:         EmptyDeleteScope,
	SiteNotFound.Code:             SiteNotFound,
	SiteInactive.Code:             SiteInactive,
	InvalidRadius.Code:            InvalidRadius,
	WorkerNotFound.Code:           WorkerNotFound,
	WorkerInactive.Code:           WorkerInactive,
	InvalidPhone.Code:             InvalidPhone,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
