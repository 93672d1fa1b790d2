package common

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// HTTP Status Code Constants
const (
	// Success Codes (2xx)
	StatusOK        = 200 // Thành công
	StatusCreated   = 201 // Tạo mới thành công
	StatusNoContent = 204 // Thành công nhưng không có nội dung trả về

	// Client Error Codes (4xx)
	StatusBadRequest      = 400 // Yêu cầu không hợp lệ
	StatusUnauthorized    = 401 // Chưa xác thực
	StatusForbidden       = 403 // Không có quyền truy cập
	StatusNotFound        = 404 // Không tìm thấy tài nguyên
	StatusConflict        = 409 // Xung đột dữ liệu (chỉ dùng nội bộ; conflict nghiệp vụ trả 400)
	StatusTooManyRequests = 429 // Quá nhiều yêu cầu

	// Server Error Codes (5xx)
	StatusInternalServerError = 500 // Lỗi server
	StatusServiceUnavailable  = 503 // Dịch vụ không khả dụng
)

// Response Messages
const (
	MsgSuccess = "Success"
)

// ErrorCode định nghĩa mã lỗi chi tiết
type ErrorCode struct {
	Code        string // Mã lỗi (ví dụ: AUTH_001)
	Category    string // Phân loại lỗi (ví dụ: Authentication)
	SubCategory string // Phân loại con (ví dụ: Token)
	Description string // Mô tả chi tiết
}

// Định nghĩa các mã lỗi theo hệ thống phân cấp
var (
	// System Errors (SYS_xxx)
	ErrCodeInternalServer = ErrorCode{
		Code:        "SYS_001",
		Category:    "System",
		SubCategory: "Internal",
		Description: "Lỗi hệ thống nội bộ",
	}

	// Authentication / Authorization Errors (AUTH_xxx)
	ErrCodeAuthToken = ErrorCode{
		Code:        "AUTH_001",
		Category:    "Authentication",
		SubCategory: "Token",
		Description: "Lỗi liên quan đến token",
	}

	ErrCodeAuthActor = ErrorCode{
		Code:        "AUTH_002",
		Category:    "Authentication",
		SubCategory: "Actor",
		Description: "Không xác định được danh tính người gọi",
	}

	ErrCodeAuthRole = ErrorCode{
		Code:        "AUTH_003",
		Category:    "Authorization",
		SubCategory: "Role",
		Description: "Sai vai trò hoặc không phải chủ sở hữu",
	}

	// Validation Errors (VAL_xxx)
	ErrCodeValidationInput = ErrorCode{
		Code:        "VAL_001",
		Category:    "Validation",
		SubCategory: "Input",
		Description: "Lỗi dữ liệu đầu vào",
	}

	ErrCodeValidationFormat = ErrorCode{
		Code:        "VAL_002",
		Category:    "Validation",
		SubCategory: "Format",
		Description: "Lỗi định dạng dữ liệu",
	}

	// Database Errors (DB_xxx)
	ErrCodeDatabase = ErrorCode{
		Code:        "DB",
		Category:    "Database",
		SubCategory: "General",
		Description: "Lỗi cơ sở dữ liệu chung",
	}

	ErrCodeDatabaseConnection = ErrorCode{
		Code:        "DB_001",
		Category:    "Database",
		SubCategory: "Connection",
		Description: "Lỗi kết nối cơ sở dữ liệu",
	}

	ErrCodeDatabaseQuery = ErrorCode{
		Code:        "DB_002",
		Category:    "Database",
		SubCategory: "Query",
		Description: "Lỗi truy vấn dữ liệu",
	}

	// Business Logic Errors (BIZ_xxx)
	ErrCodeBusinessState = ErrorCode{
		Code:        "BIZ_001",
		Category:    "Business",
		SubCategory: "State",
		Description: "Thực thể đang ở trạng thái không cho phép thao tác",
	}

	ErrCodeBusinessOperation = ErrorCode{
		Code:        "BIZ_002",
		Category:    "Business",
		SubCategory: "Operation",
		Description: "Lỗi thao tác nghiệp vụ",
	}
)

// Error định nghĩa cấu trúc lỗi chi tiết
type Error struct {
	Code       ErrorCode // Mã lỗi chi tiết
	Message    string    // Thông báo lỗi (hiển thị cho client)
	StatusCode int       // HTTP status code
	Details    any       // Thông tin chi tiết thêm về lỗi
}

// Error trả về message của lỗi
func (e *Error) Error() string {
	return e.Message
}

// Is kiểm tra xem error có phải là target error không (hỗ trợ errors.Is)
func (e *Error) Is(target error) bool {
	if target == nil {
		return false
	}
	if targetErr, ok := target.(*Error); ok {
		return e.Code.Code == targetErr.Code.Code && e.Message == targetErr.Message
	}
	return false
}

// NewError tạo một error mới với đầy đủ thông tin
func NewError(code ErrorCode, message string, statusCode int, details any) error {
	return &Error{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
		Details:    details,
	}
}

// NewValidationError tạo lỗi validation 400 với message cụ thể
func NewValidationError(message string) error {
	return NewError(ErrCodeValidationInput, message, StatusBadRequest, nil)
}

// NewNotFoundError tạo lỗi 404 với message cụ thể
func NewNotFoundError(message string) error {
	return NewError(ErrCodeDatabaseQuery, message, StatusNotFound, nil)
}

// NewForbiddenError tạo lỗi 403 với message cụ thể
func NewForbiddenError(message string) error {
	return NewError(ErrCodeAuthRole, message, StatusForbidden, nil)
}

// NewConflictError tạo lỗi trạng thái nghiệp vụ.
// Theo thiết kế API, conflict trạng thái (sai state cho thao tác) trả về 400, không phải 409.
func NewConflictError(message string) error {
	return NewError(ErrCodeBusinessState, message, StatusBadRequest, nil)
}

// Custom errors
var (
	// Authentication / Authorization Errors
	ErrUnauthorized = NewError(ErrCodeAuthActor, "Authentication required", StatusUnauthorized, nil)
	ErrTokenExpired = NewError(ErrCodeAuthToken, "Session has expired", StatusUnauthorized, nil)
	ErrTokenInvalid = NewError(ErrCodeAuthToken, "Invalid token", StatusUnauthorized, nil)
	ErrTokenMissing = NewError(ErrCodeAuthToken, "Missing authentication token", StatusUnauthorized, nil)
	ErrForbidden    = NewError(ErrCodeAuthRole, "You do not have permission to perform this action", StatusForbidden, nil)

	// Validation Errors
	ErrInvalidInput  = NewError(ErrCodeValidationInput, "Invalid input data", StatusBadRequest, nil)
	ErrInvalidFormat = NewError(ErrCodeValidationFormat, "Invalid data format", StatusBadRequest, nil)
	ErrRequiredField = NewError(ErrCodeValidationInput, "Required field is missing", StatusBadRequest, nil)

	// Database Errors
	ErrNotFound   = NewError(ErrCodeDatabaseQuery, "Resource not found", StatusNotFound, nil)
	ErrDuplicate  = NewError(ErrCodeDatabaseQuery, "Resource already exists", StatusConflict, nil)
	ErrConnection = NewError(ErrCodeDatabaseConnection, "Database connection error", StatusServiceUnavailable, nil)

	// Business Logic Errors
	ErrInvalidState = NewError(ErrCodeBusinessState, "Entity is in an invalid state for this operation", StatusBadRequest, nil)
)

// MongoDB Specific Errors
var (
	ErrMongoConnection = NewError(ErrCodeDatabaseConnection, "MongoDB connection error", StatusServiceUnavailable, nil)
	ErrMongoNetwork    = NewError(ErrCodeDatabaseConnection, "MongoDB network error", StatusServiceUnavailable, nil)
	ErrMongoTimeout    = NewError(ErrCodeDatabaseConnection, "MongoDB request timed out", StatusServiceUnavailable, nil)
	ErrMongoAuth       = NewError(ErrCodeAuthToken, "MongoDB authentication error", StatusUnauthorized, nil)
	ErrMongoQuery      = NewError(ErrCodeDatabaseQuery, "MongoDB query error", StatusInternalServerError, nil)
	ErrMongoWrite      = NewError(ErrCodeDatabaseQuery, "MongoDB write error", StatusInternalServerError, nil)
	ErrMongoDuplicate  = NewError(ErrCodeDatabaseQuery, "Duplicate data in MongoDB", StatusConflict, nil)
	ErrMongoSystem     = NewError(ErrCodeDatabase, "MongoDB system error", StatusInternalServerError, nil)
)

// ConvertMongoError chuyển đổi lỗi MongoDB sang lỗi hệ thống
func ConvertMongoError(err error) error {
	if err == nil {
		return nil
	}

	// Không convert các lỗi đã thuộc taxonomy (ErrNotFound đi qua nguyên vẹn)
	var customErr *Error
	if errors.As(err, &customErr) {
		return err
	}

	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}

	// Phân loại theo dải mã lỗi của mongo.CommandError
	var mongoErr mongo.CommandError
	if errors.As(err, &mongoErr) {
		switch {
		case mongoErr.Code >= 100 && mongoErr.Code < 200:
			return ErrMongoConnection
		case mongoErr.Code >= 200 && mongoErr.Code < 300:
			return ErrMongoAuth
		case mongoErr.Code >= 300 && mongoErr.Code < 400:
			return ErrMongoQuery
		case mongoErr.Code >= 400 && mongoErr.Code < 500:
			return ErrMongoWrite
		case mongoErr.Code >= 500:
			return ErrMongoSystem
		}
	}

	if mongo.IsDuplicateKeyError(err) {
		return ErrMongoDuplicate
	}
	if mongo.IsNetworkError(err) {
		return ErrMongoNetwork
	}
	if mongo.IsTimeout(err) {
		return ErrMongoTimeout
	}

	return NewError(ErrCodeDatabase, "Database error", StatusInternalServerError, err)
}
