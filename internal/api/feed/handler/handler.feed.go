// Package feedhdl chứa các handler HTTP của feed thông báo.
package feedhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "github.com/devxankit/CRM-SaaS-sub000/internal/api/base/handler"
	feedsvc "github.com/devxankit/CRM-SaaS-sub000/internal/api/feed/service"
	"github.com/devxankit/CRM-SaaS-sub000/internal/api/middleware"
	"github.com/devxankit/CRM-SaaS-sub000/internal/common"
)

// FeedHandler xử lý các request HTTP của feed thông báo.
type FeedHandler struct {
	service *feedsvc.FeedService
}

// NewFeedHandler tạo mới FeedHandler.
func NewFeedHandler() (*FeedHandler, error) {
	service, err := feedsvc.NewFeedService()
	if err != nil {
		return nil, err
	}
	return &FeedHandler{service: service}, nil
}

// parseLimit đọc limit từ query string; giá trị sai kiểu rơi về mặc định.
func parseLimit(c fiber.Ctx) int64 {
	_, limit := basehdl.ParsePagination(c, feedsvc.FeedLimitDefault)
	return limit
}

// HandleClientFeed trả về feed thông báo của client đang đăng nhập.
// GET /api/client/notifications
func (h *FeedHandler) HandleClientFeed(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		items, err := h.service.ClientFeed(c.Context(), actor.ID, parseLimit(c))
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendSuccess(c, common.StatusOK, "Notifications retrieved successfully", items)
	})
}

// HandleEmployeeFeed trả về feed thông báo của employee đang đăng nhập.
// GET /api/employee/notifications
func (h *FeedHandler) HandleEmployeeFeed(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		actor, err := middleware.GetActor(c)
		if err != nil {
			return basehdl.SendError(c, err)
		}

		items, err := h.service.EmployeeFeed(c.Context(), actor.ID, parseLimit(c))
		if err != nil {
			return basehdl.SendError(c, err)
		}
		return basehdl.SendSuccess(c, common.StatusOK, "Notifications retrieved successfully", items)
	})
}
