package basehdl

import (
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/gofiber/fiber/v3"

	basemodels "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/models"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
)

// Pagination là khối phân trang trong response thành công có danh sách.
type Pagination struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// PaginationFrom tạo khối phân trang từ kết quả phân trang của base service.
func PaginationFrom[T any](r *basemodels.PaginateResult[T]) *Pagination {
	if r == nil {
		return nil
	}
	return &Pagination{
		Page:  r.Page,
		Limit: r.Limit,
		Total: r.Total,
		Pages: r.TotalPage,
	}
}

// JSONResponse trả về JSON response với Content-Type: application/json; charset=utf-8
// Helper function này đảm bảo tất cả JSON responses đều có charset=utf-8 để hỗ trợ UTF-8 encoding đúng cách
func JSONResponse(c fiber.Ctx, statusCode int, data interface{}) error {
	// Set Content-Type với charset=utf-8 trước khi gọi JSON
	c.Set("Content-Type", "application/json; charset=utf-8")
	// Trả về JSON response
	return c.Status(statusCode).JSON(data)
}

// SendError trả về lỗi theo format thống nhất {success:false, message}.
func SendError(c fiber.Ctx, err error) error {
	var customErr *common.Error
	if errors.As(err, &customErr) {
		return JSONResponse(c, customErr.StatusCode, fiber.Map{
			"success": false,
			"message": customErr.Message,
		})
	}
	// Nếu không phải custom error, trả về internal server error
	return JSONResponse(c, common.StatusInternalServerError, fiber.Map{
		"success": false,
		"message": err.Error(),
	})
}

// SendSuccess trả về response thành công {success:true, message, data}.
func SendSuccess(c fiber.Ctx, statusCode int, message string, data interface{}) error {
	return JSONResponse(c, statusCode, fiber.Map{
		"success": true,
		"message": message,
		"data":    data,
	})
}

// SendPaginated trả về response thành công có khối phân trang.
func SendPaginated(c fiber.Ctx, message string, data interface{}, p *Pagination) error {
	return JSONResponse(c, common.StatusOK, fiber.Map{
		"success":    true,
		"message":    message,
		"data":       data,
		"pagination": p,
	})
}

// SafeHandlerWrapper bọc handler với recover để server luôn trả về response
// cho client, kể cả khi có panic xảy ra.
func SafeHandlerWrapper(c fiber.Ctx, fn func() error) error {
	defer func() {
		if r := recover(); r != nil {
			debug.PrintStack()
			SendError(c, common.NewError(
				common.ErrCodeInternalServer,
				fmt.Sprintf("Unexpected server error: %v", r),
				common.StatusInternalServerError,
				nil,
			))
		}
	}()
	return fn()
}
