// Package basehdl - base handlers.
// Package này cung cấp các tiện ích xử lý request/response dùng chung cho các domain handler.
package basehdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/service"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
	"github.com/devxankit/CRM-SaaS-sub000/internal/global"
)

// BaseHandler cung cấp các phương thức xử lý request/response cơ bản cho các domain handler.
// Type Parameters:
//   - T: Kiểu dữ liệu của model
//   - CreateInput: Kiểu dữ liệu DTO khi tạo mới
//   - UpdateInput: Kiểu dữ liệu DTO khi cập nhật
type BaseHandler[T any, CreateInput any, UpdateInput any] struct {
	BaseService basesvc.BaseServiceMongo[T]
}

// ParseRequestBody parse request body thành struct đích.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ParseRequestBody(c fiber.Ctx, out interface{}) error {
	return c.Bind().Body(out)
}

// ValidateInput validate input với struct tag (validate, oneof, etc.)
// Trả về lỗi validation 400 với thông tin field đầu tiên không hợp lệ.
func (h *BaseHandler[T, CreateInput, UpdateInput]) ValidateInput(input interface{}) error {
	if err := global.Validate.Struct(input); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
			first := validationErrs[0]
			return common.NewError(
				common.ErrCodeValidationInput,
				fmt.Sprintf("Field '%s' failed validation on '%s'", first.Field(), first.Tag()),
				common.StatusBadRequest,
				err.Error(),
			)
		}
		return common.NewError(common.ErrCodeValidationInput, "Invalid input data", common.StatusBadRequest, err.Error())
	}
	return nil
}

// ParseObjectIDParam lấy và validate ObjectID từ URL params.
func ParseObjectIDParam(c fiber.Ctx, name string) (primitive.ObjectID, error) {
	raw := c.Params(name)
	if raw == "" {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Missing '%s' in URL params", name),
			common.StatusBadRequest,
			nil,
		)
	}
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("Invalid id '%s' (must be a 24-character hex string)", raw),
			common.StatusBadRequest,
			nil,
		)
	}
	return id, nil
}

// ParsePagination lấy page và limit từ query string với giá trị mặc định.
func ParsePagination(c fiber.Ctx, defaultLimit int64) (page int64, limit int64) {
	page, err := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}
	limit, err = strconv.ParseInt(c.Query("limit", strconv.FormatInt(defaultLimit, 10)), 10, 64)
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	return page, limit
}
